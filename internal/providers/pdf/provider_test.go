package pdf

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatRupiah(t *testing.T) {
	require.Equal(t, "Rp 0", formatRupiah(0))
	require.Equal(t, "Rp 500", formatRupiah(500))
	require.Equal(t, "Rp 47.500", formatRupiah(47500))
	require.Equal(t, "Rp 1.250.000", formatRupiah(1250000))
	require.Equal(t, "Rp -13.500", formatRupiah(-13500))
}

func TestFormatM3(t *testing.T) {
	require.Equal(t, "8.5 m3", formatM3(8.5))
	require.Equal(t, "12 m3", formatM3(12))
	require.Equal(t, "4.25 m3", formatM3(4.25))
}

func TestGenerateBillProducesPDF(t *testing.T) {
	p := New()

	r, err := p.GenerateBill(context.Background(), BillData{
		UtilityName:    "Tirta Sumur Bor",
		UtilityAddress: "Jl. Sumur No. 1",
		InvoiceNumber:  "INV-202501-TEST",
		IssueDate:      "28 Januari 2025",
		Period:         "Januari 2025",
		Status:         "UNPAID",
		CustomerName:   "Budi Santoso",
		CustomerCode:   "budi-santoso",
		PreviousValue:  0,
		CurrentValue:   8.5,
		UsageM3:        8.5,
		WaterCost:      42500,
		AdminFee:       5000,
		TotalAmount:    47500,
	})
	require.NoError(t, err)

	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Greater(t, len(raw), 4)
	require.Equal(t, "%PDF", string(raw[:4]))
}

func TestGenerateReceiptProducesPDF(t *testing.T) {
	p := New()

	r, err := p.GenerateReceipt(context.Background(), ReceiptData{
		BillData: BillData{
			UtilityName:   "Tirta Sumur Bor",
			InvoiceNumber: "INV-202501-TEST",
			Period:        "Januari 2025",
			CustomerName:  "Budi Santoso",
			UsageM3:       8.5,
			WaterCost:     42500,
			AdminFee:      5000,
			TotalAmount:   47500,
		},
		PaidDate:   "2 Februari 2025",
		AmountPaid: 47500,
	})
	require.NoError(t, err)

	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(raw[:4]))
}
