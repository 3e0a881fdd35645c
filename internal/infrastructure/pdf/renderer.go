// Package pdf draws invoice layouts with maroto.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	goimage "image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/sangkips/retailpos-api/internal/domain/invoice"
)

// item table column widths on maroto's 12-column grid
var itemColumns = []int{4, 1, 2, 2, 1, 2}

var linkColor = &props.Color{Red: 29, Green: 78, Blue: 216}

// Renderer implements invoice.Renderer.
type Renderer struct {
	logger *slog.Logger
}

func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

func (r *Renderer) Extension() string {
	return "pdf"
}

func (r *Renderer) ContentType() string {
	return "application/pdf"
}

func (r *Renderer) Render(ctx context.Context, layout *invoice.Layout) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(10).
		WithTopMargin(12).
		WithRightMargin(10).
		Build()
	m := maroto.New(cfg)

	r.addHeader(m, layout)
	addInfo(m, layout.Info)
	addItems(m, layout.Items)
	addTotals(m, layout.Totals)
	if layout.Payment != nil {
		addPayment(m, layout.Payment)
	}
	addFooter(m, layout.Footer)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// logoExtension sniffs the logo format. Unreadable logos are dropped with a
// warning so a bad asset never blocks an invoice.
func (r *Renderer) logoExtension(logo []byte) (extension.Type, bool) {
	if len(logo) == 0 {
		return "", false
	}
	_, format, err := goimage.DecodeConfig(bytes.NewReader(logo))
	if err != nil {
		r.logger.Warn("skipping invoice logo", "error", err)
		return "", false
	}
	switch format {
	case "png":
		return extension.Png, true
	case "jpeg":
		return extension.Jpg, true
	default:
		r.logger.Warn("skipping invoice logo", "format", format)
		return "", false
	}
}

func (r *Renderer) addHeader(m core.Maroto, l *invoice.Layout) {
	brand := col.New(8).Add(
		text.New(l.Header.BrandName, props.Text{Size: 16, Style: fontstyle.Bold}),
	)
	top := 8.0
	if l.Header.Tagline != "" {
		brand.Add(text.New(l.Header.Tagline, props.Text{Size: 9, Top: top, Style: fontstyle.Italic}))
		top += 5
	}
	if l.Header.Address != "" {
		brand.Add(text.New(l.Header.Address, props.Text{Size: 8, Top: top}))
		top += 5
	}
	if len(l.Header.Contact) > 0 {
		brand.Add(text.New(strings.Join(l.Header.Contact, " | "), props.Text{Size: 8, Top: top}))
	}

	right := col.New(4)
	if ext, ok := r.logoExtension(l.Logo); ok {
		right.Add(image.NewFromBytes(l.Logo, ext, props.Rect{Center: true, Percent: 80}))
	} else {
		right.Add(text.New(l.Title, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right}))
	}

	m.AddRow(28, brand, right)
	m.AddRow(4, line.NewCol(12))
}

func fieldLines(fields []invoice.Field) core.Component {
	var b strings.Builder
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.Label + ": " + f.Value)
	}
	return text.New(b.String(), props.Text{Size: 9})
}

func addInfo(m core.Maroto, grid invoice.InfoGrid) {
	rows := len(grid.Left)
	if len(grid.Right) > rows {
		rows = len(grid.Right)
	}
	m.AddRow(float64(rows)*4+4,
		col.New(6).Add(fieldLines(grid.Left)),
		col.New(6).Add(fieldLines(grid.Right)),
	)
	m.AddRow(4, line.NewCol(12))
}

func tableRow(cells []string, style props.Text) []core.Col {
	cols := make([]core.Col, 0, len(itemColumns))
	for i, size := range itemColumns {
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		p := style
		if i > 0 {
			p.Align = align.Right
		}
		cols = append(cols, col.New(size).Add(text.New(value, p)))
	}
	return cols
}

func addItems(m core.Maroto, t invoice.Table) {
	m.AddRow(7, tableRow(t.Columns, props.Text{Size: 9, Style: fontstyle.Bold})...)
	m.AddRow(2, line.NewCol(12))
	for _, row := range t.Rows {
		m.AddRow(6, tableRow(row, props.Text{Size: 9})...)
	}
	m.AddRow(3, line.NewCol(12))
}

func addTotals(m core.Maroto, totals []invoice.Field) {
	for i, f := range totals {
		style := props.Text{Size: 10, Align: align.Right}
		if i == len(totals)-1 {
			style.Style = fontstyle.Bold
			style.Size = 11
		}
		m.AddRow(6,
			col.New(6),
			col.New(3).Add(text.New(f.Label, style)),
			col.New(3).Add(text.New(f.Value, style)),
		)
	}
}

func addPayment(m core.Maroto, p *invoice.PaymentBlock) {
	m.AddRow(6)
	m.AddRow(36,
		col.New(4).Add(code.NewQr(p.URI, props.Rect{Center: true, Percent: 100})),
		col.New(8).Add(text.New(p.Caption, props.Text{Size: 10, Top: 14})),
	)
}

func addFooter(m core.Maroto, f invoice.Footer) {
	m.AddRow(4, line.NewCol(12))
	if f.Note != "" {
		m.AddRow(8, text.NewCol(12, f.Note, props.Text{Size: 9, Align: align.Center, Style: fontstyle.Italic}))
	}
	if len(f.Links) == 0 {
		return
	}

	width := 12 / len(f.Links)
	if width < 2 {
		width = 2
	}
	cols := make([]core.Col, 0, len(f.Links))
	for _, link := range f.Links {
		url := link.URL
		cols = append(cols, col.New(width).Add(text.New(link.Label, props.Text{
			Size:      9,
			Align:     align.Center,
			Color:     linkColor,
			Hyperlink: &url,
		})))
	}
	m.AddRow(6, cols...)
}
