package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/gramsehat/backend/pkg/model"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// PDFGenerator renders lab reports and health record sheets for download
type PDFGenerator struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewPDFGenerator creates a new PDFGenerator
func NewPDFGenerator(logger *zap.Logger) *PDFGenerator {
	return &PDFGenerator{
		logger: logger,
		now:    time.Now,
	}
}

// document wraps a page with a UTF-8 to cp1252 translator for the core fonts
type document struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newDocument() *document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	return &document{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (d *document) line(h float64, text string) {
	d.pdf.CellFormat(0, h, d.tr(text), "", 1, "L", false, 0, "")
}

// LabReport renders a lab report with one table per panel
func (g *PDFGenerator) LabReport(report model.LabReport) ([]byte, error) {
	g.logger.Info("generating lab report PDF",
		zap.String("patient_id", report.Patient.PatientID),
		zap.Int("sections", len(report.Sections)),
	)

	doc := newDocument()
	g.addTitle(doc, "Lab Report", report.Patient.Name)

	p := report.Patient
	doc.pdf.SetFont("Arial", "", 11)
	doc.line(6, fmt.Sprintf("Age: %d    Gender: %s    Patient ID: %s", p.Age, p.Gender, p.PatientID))
	doc.line(6, fmt.Sprintf("Collected: %s    Reported: %s", p.CollectionDate, p.ReportDate))
	doc.pdf.Ln(6)

	for _, section := range report.Sections {
		g.addSection(doc, section)
	}

	g.addSummary(doc, report.Summary())

	return g.output(doc, "lab report")
}

// Record renders a single health record card of a family member
func (g *PDFGenerator) Record(member model.FamilyMember, record model.HealthRecord) ([]byte, error) {
	g.logger.Info("generating health record PDF",
		zap.Int("member_id", member.ID),
		zap.Int64("record_id", record.ID),
	)

	doc := newDocument()
	g.addTitle(doc, record.Type, fmt.Sprintf("%s (%s, %d)", member.Name, member.Relation, member.Age))

	g.addSectionHeader(doc, "Record Details")
	doc.line(6, "Record ID: "+strconv.FormatInt(record.ID, 10))
	doc.line(6, "Date: "+record.Date)
	if record.Subtype != nil {
		doc.line(6, "Category: "+*record.Subtype)
	}
	if record.Doctor != nil {
		doc.line(6, "Doctor: "+*record.Doctor)
	}
	if record.Hospital != nil {
		doc.line(6, "Hospital: "+*record.Hospital)
	}
	if record.DocumentURI != nil {
		doc.line(6, "Document: "+*record.DocumentURI)
	}

	return g.output(doc, "health record")
}

func (g *PDFGenerator) output(doc *document, kind string) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		g.logger.Error("failed to generate PDF", zap.String("kind", kind), zap.Error(err))
		return nil, fmt.Errorf("failed to generate %s PDF: %w", kind, err)
	}

	g.logger.Info("PDF generated successfully",
		zap.String("kind", kind),
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

// addTitle adds the document title and header information
func (g *PDFGenerator) addTitle(doc *document, title, subject string) {
	doc.pdf.SetFont("Arial", "B", 20)
	doc.pdf.CellFormat(0, 10, doc.tr(title), "", 1, "C", false, 0, "")
	doc.pdf.Ln(5)

	doc.pdf.SetFont("Arial", "", 12)
	doc.line(8, "Patient: "+subject)
	doc.line(8, "Generated: "+g.now().Format("2006-01-02 15:04"))
	doc.pdf.Ln(6)
}

// addSectionHeader adds a section header
func (g *PDFGenerator) addSectionHeader(doc *document, title string) {
	doc.pdf.SetFont("Arial", "B", 14)
	doc.pdf.SetFillColor(230, 230, 230)
	doc.pdf.CellFormat(0, 10, doc.tr(title), "", 1, "L", true, 0, "")
	doc.pdf.Ln(3)
	doc.pdf.SetFont("Arial", "", 10)
}

// addSection adds one lab panel as a table
func (g *PDFGenerator) addSection(doc *document, section model.LabSection) {
	g.addSectionHeader(doc, section.Name)

	widths := []float64{55, 30, 35, 30, 20}
	headers := []string{"Parameter", "Value", "Unit", "Range", "Status"}

	doc.pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		doc.pdf.CellFormat(widths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	doc.pdf.Ln(-1)

	doc.pdf.SetFont("Arial", "", 10)
	for _, p := range section.Parameters {
		if p.Status != "Normal" {
			doc.pdf.SetTextColor(200, 80, 0)
		}
		cells := []string{
			p.Name,
			strconv.FormatFloat(p.Value, 'f', -1, 64),
			p.Unit,
			p.Range,
			p.Status,
		}
		for i, c := range cells {
			doc.pdf.CellFormat(widths[i], 6, doc.tr(c), "", 0, "L", false, 0, "")
		}
		doc.pdf.Ln(-1)
		doc.pdf.SetTextColor(0, 0, 0)
	}
	doc.pdf.Ln(5)
}

// addSummary adds the per-status parameter counts
func (g *PDFGenerator) addSummary(doc *document, summary map[string]int) {
	g.addSectionHeader(doc, "Summary")

	for _, status := range []string{"Normal", "Borderline"} {
		doc.line(6, fmt.Sprintf("%s: %d", status, summary[status]))
	}
}
