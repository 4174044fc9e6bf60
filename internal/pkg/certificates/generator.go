package certificates

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Association color scheme used on certificate documents.
var (
	colorPrimary   = [3]int{30, 58, 95}    // Dark navy
	colorAccent    = [3]int{46, 204, 113}  // Green
	colorTextDark  = [3]int{44, 62, 80}    // Dark text
	colorTextMuted = [3]int{127, 140, 141} // Muted text
)

// Data describes one certificate to render.
type Data struct {
	MemberName string
	Title      string
	Detail     string
	Code       string
	IssuedAt   time.Time
}

// Generator renders certificate PDFs.
type Generator struct {
	associationName string
}

// NewGenerator creates a certificate generator.
func NewGenerator(associationName string) *Generator {
	if associationName == "" {
		associationName = "SocioClube"
	}
	return &Generator{associationName: associationName}
}

// Generate renders a single-page landscape A4 certificate.
func (g *Generator) Generate(data Data) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pageWidth, pageHeight := pdf.GetPageSize()

	// Frame
	pdf.SetDrawColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, pageWidth-20, pageHeight-20, "D")
	pdf.SetLineWidth(0.3)
	pdf.Rect(13, 13, pageWidth-26, pageHeight-26, "D")

	// Association header
	pdf.SetY(30)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	pdf.CellFormat(0, 10, tr(g.associationName), "", 1, "C", false, 0, "")

	// Title
	pdf.SetY(55)
	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetTextColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.CellFormat(0, 14, tr(data.Title), "", 1, "C", false, 0, "")

	// Member name
	pdf.SetY(85)
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	pdf.CellFormat(0, 8, tr("Certificamos que"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, tr(data.MemberName), "", 1, "C", false, 0, "")

	// Detail line
	if data.Detail != "" {
		pdf.SetFont("Helvetica", "", 13)
		pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
		pdf.MultiCell(0, 7, tr(data.Detail), "", "C", false)
	}

	// Issue date
	pdf.SetY(pageHeight - 55)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Emitido em %s", data.IssuedAt.Format("02/01/2006"))), "", 1, "C", false, 0, "")

	// Verification code footer
	pdf.SetY(pageHeight - 35)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(colorAccent[0], colorAccent[1], colorAccent[2])
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Código de verificação: %s", data.Code)), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output error: %w", err)
	}
	return buf.Bytes(), nil
}
