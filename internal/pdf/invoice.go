package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/avasquez/dental-api/internal/model"
)

// ClinicInfo is the letterhead printed on every invoice.
type ClinicInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

type InvoiceRenderer struct {
	clinic ClinicInfo
}

func NewInvoiceRenderer(clinic ClinicInfo) *InvoiceRenderer {
	return &InvoiceRenderer{clinic: clinic}
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Render produces the printable invoice as PDF bytes.
func (r *InvoiceRenderer) Render(inv *model.Invoice, items []*model.InvoiceItem, patient *model.Patient) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, r.clinic.Name, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(16,
		col.New(12).Add(
			text.New(r.clinic.Address, props.Text{Size: 9}),
			text.New(r.clinic.Phone, props.Text{Size: 9, Top: 4}),
			text.New(r.clinic.Email, props.Text{Size: 9, Top: 8}),
		),
	)

	m.AddRow(10,
		text.NewCol(12, "Invoice "+inv.InvoiceNumber, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
		}),
	)

	m.AddRow(24,
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(patient.FullName(), props.Text{Size: 9, Top: 5}),
		),
		col.New(6).Add(
			text.New("Invoice date: "+inv.InvoiceDate, props.Text{Size: 9}),
			text.New("Due date: "+inv.DueDate, props.Text{Size: 9, Top: 4}),
			text.New("Terms: "+inv.PaymentTerms, props.Text{Size: 9, Top: 8}),
			text.New("Status: "+string(inv.Status), props.Text{Size: 9, Top: 12}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range items {
		m.AddRow(8,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.TotalPrice), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, money(inv.Subtotal), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Tax", props.Text{Size: 9}),
		text.NewCol(2, money(inv.TaxAmount), props.Text{Size: 9, Align: align.Right}),
	)
	if inv.DiscountAmount > 0 {
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, "Discount", props.Text{Size: 9}),
			text.NewCol(2, "-"+money(inv.DiscountAmount), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Size: 9}),
		text.NewCol(2, money(inv.TotalAmount), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Paid", props.Text{Size: 9}),
		text.NewCol(2, money(inv.AmountPaid), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Balance due", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, money(inv.BalanceDue), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if inv.Notes != nil && *inv.Notes != "" {
		m.AddRow(14,
			text.NewCol(12, "Notes: "+*inv.Notes, props.Text{Size: 8, Top: 4}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}
