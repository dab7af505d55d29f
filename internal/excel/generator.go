package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hsadv/quotes-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the administrative export: a summary sheet plus the full
// quote listing.
func (g *Generator) Generate(quotes []model.Quote) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Resumo"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, quotes); err != nil {
		return nil, err
	}

	listSheet := "Orçamentos"
	if _, err := file.NewSheet(listSheet); err != nil {
		return nil, err
	}
	if err := g.writeListing(file, listSheet, quotes); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, quotes []model.Quote) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	byService := make(map[string]int)
	byStatus := make(map[string]int)
	for _, quote := range quotes {
		byService[quote.ServiceType.Label()]++
		byStatus[string(quote.Status)]++
	}

	set("A1", "Total de orçamentos")
	set("B1", len(quotes))
	set("A2", "Gerado em")
	set("B2", formatDateTime(time.Now()))

	row := 4
	set(fmt.Sprintf("A%d", row), "Serviço")
	set(fmt.Sprintf("B%d", row), "Quantidade")
	for _, serviceType := range []model.ServiceType{model.ServiceTypeTrademark, model.ServiceTypePriorArt, model.ServiceTypeBoth} {
		label := serviceType.Label()
		if byService[label] == 0 {
			continue
		}
		row++
		set(fmt.Sprintf("A%d", row), label)
		set(fmt.Sprintf("B%d", row), byService[label])
	}

	row += 2
	set(fmt.Sprintf("A%d", row), "Status")
	set(fmt.Sprintf("B%d", row), "Quantidade")
	for _, status := range []model.QuoteStatus{model.QuoteStatusNew, model.QuoteStatusContacted, model.QuoteStatusQuoted, model.QuoteStatusClosed} {
		if byStatus[string(status)] == 0 {
			continue
		}
		row++
		set(fmt.Sprintf("A%d", row), string(status))
		set(fmt.Sprintf("B%d", row), byStatus[string(status)])
	}

	return nil
}

func (g *Generator) writeListing(file *excelize.File, sheet string, quotes []model.Quote) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"ID", "Nome", "Email", "Telefone", "Empresa", "Serviço", "Urgência", "Status", "Data de Criação", "Descrição"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		set(cell, header)
	}

	for i, quote := range quotes {
		row := i + 2
		values := []interface{}{
			quote.ID.String(),
			quote.Name,
			quote.Email,
			quote.Phone,
			orNA(quote.Company),
			quote.ServiceType.Label(),
			quote.Urgency.Label(),
			string(quote.Status),
			formatDate(quote.CreatedAt),
			orNA(quote.ProjectDescription),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			set(cell, value)
		}
	}

	return file.SetColWidth(sheet, "A", "J", 22)
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func formatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
