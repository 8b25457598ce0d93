package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type MarotoProvider struct{}

func New() Provider {
	return &MarotoProvider{}
}

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Halaman {current} dari {total}",
			Place:   props.RightBottom,
		}).
		Build()
	return maroto.New(cfg)
}

func (p *MarotoProvider) GenerateBill(ctx context.Context, data BillData) (io.Reader, error) {
	m := newDocument()

	m.AddRow(12,
		text.NewCol(12, data.UtilityName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, data.UtilityAddress, props.Text{Size: 9}),
	)

	m.AddRow(12,
		text.NewCol(12, "Tagihan Air "+data.Period, props.Text{
			Size:  13,
			Style: fontstyle.Bold,
			Top:   3,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Nomor tagihan: "+data.InvoiceNumber, props.Text{Top: 0}),
			text.New("Tanggal terbit: "+data.IssueDate, props.Text{Top: 4}),
			text.New("Status: "+data.Status, props.Text{Top: 8}),
		),
		col.New(6).Add(
			text.New(data.CustomerName, props.Text{Style: fontstyle.Bold}),
			text.New("No. pelanggan: "+data.CustomerCode, props.Text{Top: 4}),
			text.New(data.CustomerAddress, props.Text{Top: 8}),
			text.New("Meter: "+data.MeterSerial, props.Text{Top: 12}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Keterangan", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Meter", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Jumlah", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(6, "Meter awal", props.Text{Size: 9}),
		text.NewCol(3, formatM3(data.PreviousValue), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(3, "", props.Text{Size: 9}),
	)
	m.AddRow(8,
		text.NewCol(6, "Meter akhir", props.Text{Size: 9}),
		text.NewCol(3, formatM3(data.CurrentValue), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(3, "", props.Text{Size: 9}),
	)
	m.AddRow(8,
		text.NewCol(6, "Pemakaian air", props.Text{Size: 9}),
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
		text.NewCol(3, "Total", props.Text{Style: fontstyle.Bold, Size: 11, Top: 3}),
		text.NewCol(3, formatRupiah(data.TotalAmount), props.Text{
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
