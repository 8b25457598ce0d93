package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

func (p *MarotoProvider) GenerateReceipt(ctx context.Context, data ReceiptData) (io.Reader, error) {
	m := newDocument()

	m.AddRow(12,
		text.NewCol(8, "Kwitansi Pembayaran", props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, data.UtilityName, props.Text{
			Size:  10,
			Align: align.Right,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Nomor tagihan: "+data.InvoiceNumber, props.Text{Top: 0}),
			text.New("Periode: "+data.Period, props.Text{Top: 4}),
			text.New("Tanggal bayar: "+data.PaidDate, props.Text{Top: 8}),
		),
		col.New(6).Add(
			text.New(data.CustomerName, props.Text{Style: fontstyle.Bold}),
			text.New("No. pelanggan: "+data.CustomerCode, props.Text{Top: 4}),
			text.New(data.CustomerAddress, props.Text{Top: 8}),
		),
	)

	m.AddRow(15,
		text.NewCol(12, formatRupiah(data.AmountPaid)+" dibayar pada "+data.PaidDate, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Top:   5,
		}),
	)

	m.AddRow(10,
		text.NewCol(6, "Keterangan", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Pemakaian", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Jumlah", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(6, "Tagihan air "+data.Period, props.Text{Size: 9}),
		text.NewCol(3, formatM3(data.UsageM3), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(3, formatRupiah(data.WaterCost), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(6, "Biaya administrasi", props.Text{Size: 9}),
		text.NewCol(3, "", props.Text{Size: 9}),
		text.NewCol(3, formatRupiah(data.AdminFee), props.Text{Size: 9, Align: align.Right}),
	)

	m.AddRow(12,
		col.New(6),
		text.NewCol(3, "Total dibayar", props.Text{Style: fontstyle.Bold, Size: 11, Top: 3}),
		text.NewCol(3, formatRupiah(data.AmountPaid), props.Text{
			Style: fontstyle.Bold,
			Size:  11,
			Top:   3,
			Align: align.Right,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}
