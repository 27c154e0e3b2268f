// Package pdf implementa la generación del informe de obra en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT  │  Obra + Estado + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto / Dirección de la obra          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA EQUIPOS: Cant | Equipo | Marca/Modelo | P.Unit | Sub │
//	│  TABLA MATERIALES: Cant | Material | Unidad | P.Unit | Sub  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BALANCE: Ingresos / Gastos / SALDO                         │
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
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/soltecla/solarops-api/internal/application/report"
	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 230, Green: 126, Blue: 34}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.WorkReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateWorkReport genera el PDF del informe de obra y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateWorkReport(_ context.Context, data *report.WorkReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de obra", true).
		WithAuthor(data.Enterprise.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(data.Customer, data.Work))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(data.Equipments) > 0 {
		m.AddRows(sectionTitleRow("EQUIPOS INSTALADOS"))
		m.AddRows(equipmentHeaderRow())
		for _, r := range equipmentRows(data.Equipments) {
			m.AddRows(r)
		}
	}

	if len(data.Materials) > 0 {
		m.AddRows(sectionTitleRow("MATERIALES CONSUMIDOS"))
		m.AddRows(materialHeaderRow())
		for _, r := range materialRows(data.Materials) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(balanceRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y obra + estado + fecha (der).
func headerRow(data *report.WorkReportData) core.Row {
	fecha := data.Work.CreatedAt.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(data.Enterprise.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nonEmpty(data.Enterprise.Document, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INFORME DE OBRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(data.Work.Title, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New(statusLabel(data.Work.Status)+"   |   "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente y dirección de la obra.
func customerRow(customer *entity.User, work *entity.Work) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s   |   Dirección de obra: %s",
				nonEmpty(customer.Email, "—"),
				nonEmpty(customer.Phone, "—"),
				nonEmpty(work.Address, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func equipmentHeaderRow() core.Row {
	return row.New(7).Add(
		tableHeader("Cant.", 1, align.Center),
		tableHeader("Equipo", 4, align.Left),
		tableHeader("Marca / Modelo", 3, align.Left),
		tableHeader("P.Unit.", 2, align.Right),
		tableHeader("Subtotal", 2, align.Right),
	)
}

func equipmentRows(lines []report.EquipmentLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(6).Add(
			tableCell(fmt.Sprintf("%d", l.Quantity), 1, align.Center),
			tableCell(l.Name, 4, align.Left),
			tableCell(nonEmpty(l.Brand+" "+l.Model, "—"), 3, align.Left),
			tableCell("$"+formatMoney(l.Price.StringFixed(0)), 2, align.Right),
			tableCell("$"+formatMoney(l.Subtotal.StringFixed(0)), 2, align.Right),
		))
	}
	return result
}

func materialHeaderRow() core.Row {
	return row.New(7).Add(
		tableHeader("Cant.", 2, align.Center),
		tableHeader("Material", 5, align.Left),
		tableHeader("Unidad", 1, align.Center),
		tableHeader("P.Unit.", 2, align.Right),
		tableHeader("Subtotal", 2, align.Right),
	)
}

func materialRows(materials []entity.WorkMaterial) []core.Row {
	result := make([]core.Row, 0, len(materials))
	for _, wm := range materials {
		result = append(result, row.New(6).Add(
			tableCell(wm.Quantity.StringFixed(2), 2, align.Center),
			tableCell(wm.Name, 5, align.Left),
			tableCell(nonEmpty(wm.Unit, "—"), 1, align.Center),
			tableCell("$"+formatMoney(wm.Amount.StringFixed(0)), 2, align.Right),
			tableCell("$"+formatMoney(wm.Amount.Mul(wm.Quantity).StringFixed(0)), 2, align.Right),
		))
	}
	return result
}

// balanceRow: bloque financiero alineado a la derecha.
func balanceRow(data *report.WorkReportData) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Color: c})
	}
	balanceColor := colorPrimary
	if data.Balance.Sign() < 0 {
		balanceColor = colorRed
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Ingresos:"),
			label("Gastos:"),
			text.New("SALDO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: balanceColor, Right: 2,
			}),
		),
		col.New(3).Add(
			value("$"+formatMoney(data.Incomes.StringFixed(0)), nil),
			value("$"+formatMoney(data.Expenses.StringFixed(0)), nil),
			text.New("$"+formatMoney(data.Balance.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: balanceColor, Right: 1,
			}),
		),
		col.New(3),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func tableHeader(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 1, Left: 1, Right: 1,
	}))
}

func tableCell(s string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func statusLabel(s entity.WorkStatus) string {
	switch s {
	case entity.WorkInProgress:
		return "EN CURSO"
	case entity.WorkCompleted:
		return "FINALIZADA"
	case entity.WorkCancelled:
		return "CANCELADA"
	}
	return string(s)
}

func nonEmpty(s, fallback string) string {
	if s != "" && s != " " {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i, c := range []byte(s) {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, '.')
			}
			buf = append(buf, c)
		}
		s = string(buf)
	}
	if neg {
		return "-" + s
	}
	return s
}
