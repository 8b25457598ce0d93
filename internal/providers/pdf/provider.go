// Package pdf renders the dashboard's print flows: the bill handed to the
// customer and the receipt after payment.
package pdf

import (
	"context"
	"io"
	"strconv"
)

// BillData carries everything the bill layout needs, already resolved;
// the renderer does not touch the database.
type BillData struct {
	UtilityName    string
	UtilityAddress string

	InvoiceNumber string
	IssueDate     string
	Period        string
	Status        string

	CustomerName    string
	CustomerCode    string
	CustomerAddress string
	MeterSerial     string

	PreviousValue float64
	CurrentValue  float64
	UsageM3       float64

	WaterCost   int64
	AdminFee    int64
	TotalAmount int64
}

type ReceiptData struct {
	BillData
	PaidDate   string
	AmountPaid int64
}

type Provider interface {
	GenerateBill(ctx context.Context, data BillData) (io.Reader, error)
	GenerateReceipt(ctx context.Context, data ReceiptData) (io.Reader, error)
}

// formatRupiah renders int64 rupiah as "Rp 47.500".
func formatRupiah(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	if negative {
		return "Rp -" + string(out)
	}
	return "Rp " + string(out)
}

// formatM3 renders a meter value with up to two decimals, trimming zeros.
func formatM3(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s + " m3"
}
