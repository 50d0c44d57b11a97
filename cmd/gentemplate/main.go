// Command gentemplate generates the blank Excel workbook content editors
// fill in for editorial imports.
// Usage: go run ./cmd/gentemplate
package main

import (
	"log"

	"github.com/xuri/excelize/v2"
)

const outputFile = "content-import-template.xlsx"

func main() {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", "Topics"); err != nil {
		log.Fatal(err)
	}
	writeRow(f, "Topics", 1, []string{"id", "title", "summary", "body", "category", "order"})
	writeRow(f, "Topics", 2, []string{
		"cycle-basics",
		"Understanding Your Cycle",
		"How the menstrual cycle works.",
		"A typical menstrual cycle lasts between 21 and 35 days...",
		"basics",
		"1",
	})

	if _, err := f.NewSheet("Questions"); err != nil {
		log.Fatal(err)
	}
	writeRow(f, "Questions", 1, []string{"id", "question", "answer", "category", "order"})
	writeRow(f, "Questions", 2, []string{
		"when-to-seek-help",
		"When should we see a doctor?",
		"If you are under 35 and have been trying for a year...",
		"getting-help",
		"1",
	})

	if err := f.SaveAs(outputFile); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", outputFile)
}

func writeRow(f *excelize.File, sheet string, row int, values []string) {
	for i, val := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			log.Fatal(err)
		}
	}
}
