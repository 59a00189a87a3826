package document

import (
	"bytes"
	"fmt"
	"laporantdx/backend/internal/models"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin = 15.0
	rowHeight  = 7.0
	lineHeight = 5.0
	cellPadY   = 1.0
	labelWidth = 55.0
	valueWidth = 125.0
	fontFamily = "Helvetica"
)

// Render produces the PDF bytes for a report.
func (rd *Renderer) Render(r *models.Report) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("render: nil report")
	}
	return rd.write(rd.Build(r), r)
}

func (rd *Renderer) write(l Layout, r *models.Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCompression(rd.compress)
	// Fixed metadata keeps the output a pure function of the record.
	pdf.SetCreationDate(r.SubmittedAt)
	pdf.SetModificationDate(r.SubmittedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(fmt.Sprintf("%s #%d", l.Title, r.ID), true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 10, tr(l.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	fieldWidths := []float64{labelWidth, valueWidth}

	heading(pdf, tr, "Step 1: Identitas Petugas")
	for _, f := range l.Identity {
		tableRow(pdf, fieldWidths, cell{text: tr(f.Label)}, cell{text: tr(f.Value), link: f.Link})
	}
	pdf.Ln(4)

	heading(pdf, tr, "Step 2: Bukti")
	for _, f := range l.Evidence {
		tableRow(pdf, fieldWidths, cell{text: tr(f.Label)}, cell{text: tr(f.Value), link: f.Link})
	}
	pdf.Ln(4)

	heading(pdf, tr, "Step 3: Acara - Acara")
	widths := []float64{35, 90, 55}
	headerRow(pdf, tr, widths, "Jam", "Acara", "Format")
	for _, row := range l.Schedule {
		tableRow(pdf, widths, cell{text: tr(row.Slot)}, cell{text: tr(row.Program)}, cell{text: tr(row.Format)})
	}
	pdf.Ln(4)

	if len(l.Incidents) > 0 {
		heading(pdf, tr, "Step 4: Kendala - Kendala")
		widths := []float64{80, 30, 70}
		headerRow(pdf, tr, widths, "Keterangan", "Waktu", "Link")
		for _, row := range l.Incidents {
			link := cell{text: tr(row.Link)}
			if row.Link != placeholder {
				link.link = row.Link
			}
			tableRow(pdf, widths, cell{text: tr(row.Description)}, cell{text: tr(row.Time)}, link)
		}
		pdf.Ln(4)
	}

	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(0, rowHeight+1, tr("Kesimpulan: "+l.Outcome), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type translator func(string) string

// cell is one already-translated table cell. A cell with a link is drawn
// blue and underlined, and its whole box is clickable.
type cell struct {
	text string
	link string
}

func heading(pdf *fpdf.Fpdf, tr translator, text string) {
	pdf.SetFont(fontFamily, "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
}

func headerRow(pdf *fpdf.Fpdf, tr translator, widths []float64, cols ...string) {
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(211, 211, 211)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], rowHeight, tr(c), "1", ln, "C", true, 0, "")
	}
}

// tableRow draws one bordered row, wrapping every cell to its column width.
// A row taller than the space left on the page continues on the next page.
func tableRow(pdf *fpdf.Fpdf, widths []float64, cells ...cell) {
	pdf.SetFont(fontFamily, "", 10)
	lines := make([][][]byte, len(cells))
	n := 1
	for i, c := range cells {
		lines[i] = pdf.SplitLines([]byte(c.text), widths[i])
		n = max(n, len(lines[i]))
	}

	left, _, _, _ := pdf.GetMargins()
	_, pageHeight := pdf.GetPageSize()
	_, bottom := pdf.GetAutoPageBreak()
	limit := pageHeight - bottom

	for start := 0; start < n; {
		y := pdf.GetY()
		room := int((limit - y - 2*cellPadY) / lineHeight)
		if room < 1 {
			pdf.AddPage()
			continue
		}
		count := min(room, n-start)
		h := float64(count)*lineHeight + 2*cellPadY

		x := left
		for i, c := range cells {
			pdf.Rect(x, y, widths[i], h, "D")
			if c.link != "" {
				pdf.SetFont(fontFamily, "U", 10)
				pdf.SetTextColor(0, 0, 200)
				pdf.LinkString(x, y, widths[i], h, c.link)
			}
			for k := start; k < start+count && k < len(lines[i]); k++ {
				pdf.SetXY(x, y+cellPadY+float64(k-start)*lineHeight)
				pdf.CellFormat(widths[i], lineHeight, string(lines[i][k]), "", 0, "L", false, 0, "")
			}
			pdf.SetFont(fontFamily, "", 10)
			pdf.SetTextColor(0, 0, 0)
			x += widths[i]
		}
		pdf.SetXY(left, y+h)
		start += count
	}
}
