package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/hsadv/quotes-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a single-quote "Orçamento" document.
func (g *Generator) Generate(quote model.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Core fonts are cp1252; the translator keeps the Portuguese accents.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, pageHeight := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, tr("Orçamento"), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Hudson Souza Advocacia", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Especialista em Propriedade Intelectual", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "(32) 99811-4374 | hudsonvbadv@gmail.com", "", 1, "L", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Detalhes do Orçamento"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	half := (pageWidth - 40) / 2
	rows := [][2]string{
		{fmt.Sprintf("Nome: %s", quote.Name), fmt.Sprintf("Email: %s", quote.Email)},
		{fmt.Sprintf("Telefone: %s", quote.Phone), fmt.Sprintf("Empresa: %s", orNA(quote.Company))},
		{fmt.Sprintf("Serviço: %s", quote.ServiceType.Label()), fmt.Sprintf("Urgência: %s", quote.Urgency.Label())},
		{fmt.Sprintf("Status: %s", quote.Status), fmt.Sprintf("Data: %s", quote.CreatedAt.Format("02/01/2006"))},
	}
	for _, row := range rows {
		pdf.CellFormat(half, 8, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(half, 8, tr(row[1]), "", 1, "L", false, 0, "")
	}

	if quote.ProjectDescription != nil && *quote.ProjectDescription != "" {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr("Descrição do Projeto"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(*quote.ProjectDescription), "", "L", false)
	}

	pdf.SetY(pageHeight - 20)
	pdf.SetFont("Helvetica", "", 8)
	now := time.Now()
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Gerado em %s às %s", now.Format("02/01/2006"), now.Format("15:04:05"))), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
