// Package pdf renderiza el devis y la factura de una cotización con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + contacto   │  DEVIS/FACTURE N° + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE / PROVEEDOR: Nombre + Teléfono                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Désignation | Long. | Larg. | Qté | Surface | P.U. | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total H.T. (+ Avance / Reste à payer)              │
//	│  FIRMAS: Client │ Cachet et signature                        │
//	│  FOOTER: Empresa / dirección / teléfono                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appquotation "github.com/luxymarbre/devis-api/internal/application/quotation"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
)

var _ appquotation.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 92, Green: 64, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// CompanyInfo datos del emisor impresos en encabezado y pie.
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
	City    string
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa quotation.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company CompanyInfo
}

// NewMarotoPDFGenerator construye el generador con los datos de la empresa.
func NewMarotoPDFGenerator(company CompanyInfo) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// GenerateQuotationPDF genera el devis y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateQuotationPDF(_ context.Context, q *entity.Quotation) ([]byte, error) {
	if q == nil {
		return nil, fmt.Errorf("pdf: cotización nil")
	}
	m, err := g.newDocument("Devis " + q.Reference)
	if err != nil {
		return nil, err
	}
	g.addBody(m, "DEVIS", q)
	m.AddRows(totalsRow([][2]string{{"TOTAL H.T. :", formatAmount(q.TotalAmount)}}))
	g.addClosing(m)
	return generate(m)
}

// GenerateInvoicePDF genera la factura (devis + anticipo y saldo) y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice) ([]byte, error) {
	if inv == nil || inv.Quotation == nil {
		return nil, fmt.Errorf("pdf: factura sin cotización")
	}
	q := inv.Quotation
	m, err := g.newDocument("Facture " + q.Reference)
	if err != nil {
		return nil, err
	}
	g.addBody(m, "FACTURE", q)
	m.AddRows(totalsRow([][2]string{
		{"TOTAL H.T. :", formatAmount(inv.TotalAmount)},
		{"AVANCE :", formatAmount(inv.AdvancePaid)},
		{"RESTE À PAYER :", formatAmount(inv.RemainingDue)},
	}))
	g.addClosing(m)
	return generate(m)
}

func (g *MarotoPDFGenerator) newDocument(title string) (core.Maroto, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.company.Name, true).
		Build()
	m := maroto.New(cfg)
	if err := m.RegisterFooter(g.footerRows()...); err != nil {
		return nil, fmt.Errorf("pdf: registrar pie: %w", err)
	}
	return m, nil
}

func (g *MarotoPDFGenerator) addBody(m core.Maroto, kind string, q *entity.Quotation) {
	m.AddRows(g.headerRow(kind, q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(q.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
}

func (g *MarotoPDFGenerator) addClosing(m core.Maroto) {
	m.AddRows(row.New(6))
	m.AddRows(signatureRow())
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + contacto (izq) y tipo de documento, N° y fecha (der).
func (g *MarotoPDFGenerator) headerRow(kind string, q *entity.Quotation) core.Row {
	date := q.CreatedAt.Format("02/01/2006")
	if g.company.City != "" {
		date = g.company.City + ", le " + date
	}
	return row.New(22).Add(
		col.New(7).Add(
			text.New(g.company.Name, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(g.company.Address, "-"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Tél : %s   |   Email : %s",
				nonEmpty(g.company.Phone, "-"),
				nonEmpty(g.company.Email, "-"),
			), props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(kind, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+q.Reference, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 8,
			}),
			text.New(date, props.Text{
				Size: 8, Align: align.Right, Top: 15, Color: colorGray,
			}),
		),
	)
}

// clientRow: contraparte (cliente o proveedor según el tipo).
func clientRow(q *entity.Quotation) core.Row {
	label := "CLIENT"
	if q.Type == entity.QuotationTypeSupplier {
		label = "FOURNISSEUR"
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(q.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Tél : "+nonEmpty(q.ClientPhone, "-"), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Désignation", 3, align.Left),
		h("Long.", 1, align.Center),
		h("Larg.", 1, align.Center),
		h("Qté", 1, align.Center),
		h("Surface", 2, align.Right),
		h("P.U.", 2, align.Right),
		h("Total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableLineRows: una fila por línea de la cotización.
func tableLineRows(lines []entity.QuotationLine) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(7).Add(
			cell(nonEmpty(l.ProductName, l.ProductID), 3, align.Left),
			cell(formatNumber(l.Length), 1, align.Center),
			cell(formatNumber(l.Width), 1, align.Center),
			cell(formatNumber(l.Quantity), 1, align.Center),
			cell(formatFixed(l.Surface, 2)+" M²", 2, align.Right),
			cell(formatAmount(l.UnitPrice), 2, align.Right),
			cell(formatAmount(l.TotalPrice), 2, align.Right),
		))
	}
	return rows
}

// totalsRow: pares etiqueta/valor alineados a la derecha; el último se resalta.
func totalsRow(pairs [][2]string) core.Row {
	labels := col.New(3)
	values := col.New(3)
	for i, p := range pairs {
		top := float64(i * 6)
		style := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: top, Right: 2}
		valueStyle := props.Text{Size: 9, Align: align.Right, Top: top, Right: 1}
		if i == len(pairs)-1 {
			style.Size, style.Color = 10, colorPrimary
			valueStyle.Style, valueStyle.Size, valueStyle.Color = fontstyle.Bold, 10, colorPrimary
		}
		labels.Add(text.New(p[0], style))
		values.Add(text.New(p[1], valueStyle))
	}
	return row.New(float64(len(pairs)*6 + 4)).Add(col.New(6), labels, values)
}

func signatureRow() core.Row {
	box := func(label string) core.Col {
		return col.New(6).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 2,
		})).WithStyle(&props.Cell{BorderType: border.Full, BorderColor: colorGray, BorderThickness: 0.2})
	}
	return row.New(30).Add(box("Signature du client"), box("Cachet et signature"))
}

// footerRows: pie repetido en cada página.
func (g *MarotoPDFGenerator) footerRows() []core.Row {
	return []core.Row{
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s  |  %s  |  Tél : %s",
				g.company.Name, nonEmpty(g.company.Address, "-"), nonEmpty(g.company.Phone, "-"),
			), props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 2}),
		)),
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
