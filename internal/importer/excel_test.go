package importer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/petalhealth/content-service/internal/importer"
)

// buildWorkbook creates an in-memory xlsx with the given sheets. Each sheet
// maps to its rows, header row included.
func buildWorkbook(t *testing.T, sheets map[string][][]string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for rowIdx, row := range rows {
			for colIdx, val := range row {
				cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, cellName, val))
			}
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

var topicHeader = []string{"id", "title", "summary", "body", "category", "order"}
var questionHeader = []string{"id", "question", "answer", "category", "order"}

func TestParse_Topics(t *testing.T) {
	wb := buildWorkbook(t, map[string][][]string{
		importer.SheetTopics: {
			topicHeader,
			{"cycle-basics", "Understanding Your Cycle", "summary", "body text", "basics", "1"},
			{"fertile-window", "The Fertile Window", "", "body text", "basics", "2"},
		},
	})

	result, err := importer.Parse(wb)
	require.NoError(t, err)
	require.Len(t, result.Topics, 2)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "cycle-basics", result.Topics[0].ID)
	assert.Equal(t, 2, result.Topics[1].Order)
}

func TestParse_ReportsInvalidRows(t *testing.T) {
	wb := buildWorkbook(t, map[string][][]string{
		importer.SheetTopics: {
			topicHeader,
			{"ok", "Valid Topic", "", "body", "", ""},
			{"", "Missing ID", "", "body", "", ""},
			{"bad-order", "Bad Order", "", "body", "", "soon"},
		},
	})

	result, err := importer.Parse(wb)
	require.NoError(t, err)
	require.Len(t, result.Topics, 1)
	require.Len(t, result.Errors, 2)

	assert.Equal(t, importer.SheetTopics, result.Errors[0].Sheet)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Error, "order")
}

func TestParse_BothSheets(t *testing.T) {
	wb := buildWorkbook(t, map[string][][]string{
		importer.SheetTopics: {
			topicHeader,
			{"t1", "Topic", "", "body", "", ""},
		},
		importer.SheetQuestions: {
			questionHeader,
			{"q1", "When to seek help?", "After a year of trying.", "getting-help", "1"},
		},
	})

	result, err := importer.Parse(wb)
	require.NoError(t, err)
	assert.Len(t, result.Topics, 1)
	require.Len(t, result.Questions, 1)
	assert.Equal(t, "q1", result.Questions[0].ID)
}

func TestParse_SkipsEmptyRows(t *testing.T) {
	wb := buildWorkbook(t, map[string][][]string{
		importer.SheetQuestions: {
			questionHeader,
			{"", "", "", "", ""},
			{"q1", "Q?", "A.", "", ""},
		},
	})

	result, err := importer.Parse(wb)
	require.NoError(t, err)
	assert.Len(t, result.Questions, 1)
	assert.Empty(t, result.Errors)
}

func TestParse_RejectsUnknownWorkbook(t *testing.T) {
	wb := buildWorkbook(t, map[string][][]string{
		"Recipes": {{"name"}, {"soup"}},
	})

	_, err := importer.Parse(wb)
	assert.Error(t, err)
}

func TestParse_RejectsGarbage(t *testing.T) {
	_, err := importer.Parse(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}
