// Package pdf genera el informe HACCP mensual con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Informe HACCP  │  Local + Periodo                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Entradas registradas / Lotes generados            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALERTAS Y ACCIONES CORRECTIVAS: aviso / crítico / caducado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMA (opcional): responsable + fecha                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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

	"github.com/tu-usuario/haccp-pro/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 68}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var _ report.Generator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.Generator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate genera el PDF del informe y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(data report.Data) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Informe HACCP", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitleRow("Resumen del periodo"))
	m.AddRows(
		metricRow("Entradas registradas", data.Deliveries),
		metricRow("Lotes generados", data.BatchesCreated),
	)

	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(sectionTitleRow("Alertas y acciones correctivas"))
	m.AddRows(
		metricRow("Lotes en aviso", data.WarningCount),
		metricRow("Lotes en estado crítico", data.CriticalCount),
		metricRow("Lotes caducados", data.ExpiredCount),
	)

	if data.SignedBy != nil && *data.SignedBy != "" {
		m.AddRows(line.NewRow(14))
		m.AddRows(signatureRow(*data.SignedBy))
	}

	m.AddRows(line.NewRow(8))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar informe: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título a la izquierda, local y periodo a la derecha.
func headerRow(data report.Data) core.Row {
	period := fmt.Sprintf("%s %d", monthNames[data.Month-1], data.Year)
	return row.New(20).Add(
		col.New(6).Add(
			text.New("Informe HACCP", props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 2,
			}),
			text.New("Control de caducidades y trazabilidad", props.Text{
				Size: 9, Top: 12, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("Local: "+data.LocationName, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 3,
			}),
			text.New("Periodo: "+period, props.Text{
				Size: 10, Align: align.Right, Top: 11,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 3,
			}),
		),
	)
}

func metricRow(label string, value int) core.Row {
	return row.New(7).Add(
		col.New(8).Add(
			text.New(label, props.Text{Size: 10, Top: 1}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d", value), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
		),
	)
}

// signatureRow: bloque de firma del responsable de calidad.
func signatureRow(signedBy string) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("________________________________", props.Text{Size: 10, Top: 4}),
			text.New("Firmado: "+signedBy, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("Fecha: "+time.Now().Format("02/01/2006"), props.Text{
				Size: 10, Top: 4, Align: align.Right,
			}),
		),
	)
}

func footerRow(data report.Data) core.Row {
	generated := fmt.Sprintf("Generado el %s", time.Now().Format("02/01/2006 15:04"))
	return row.New(6).Add(
		col.New(12).Add(
			text.New(generated, props.Text{Size: 7, Color: colorGray, Align: align.Center}),
		),
	)
}
