package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"grafeio-data/internal/domain"
)

// exportPageSize caps a roster export at one oversized page.
const exportPageSize = 10000

// CitizensExportHeader roster export columns, in sheet order.
var CitizensExportHeader = []string{
	"Επώνυμο",
	"Όνομα",
	"Πατρώνυμο",
	"Κινητό",
	"Σταθερό",
	"Email",
	"Διεύθυνση",
	"Τ.Κ.",
	"Δήμος",
	"Περιοχή",
	"Εκλογική Περιφέρεια",
	"Σύσταση από",
	"Τελευταία Επαφή",
	"Σημειώσεις",
}

// MilitaryExportHeader conscript export columns, in sheet order.
var MilitaryExportHeader = []string{
	"Βαθμός",
	"Επώνυμο",
	"Όνομα",
	"ΑΣΜ",
	"ΕΣΣΟ",
	"Μονάδα",
	"Επιθυμία",
	"Ημ. Αποστολής",
	"Σχόλια",
}

// GenerateCitizensExport renders the citizen roster as an .xlsx workbook.
func GenerateCitizensExport(citizens []*domain.Citizen) ([]byte, error) {
	rows := make([][]any, 0, len(citizens))
	for _, c := range citizens {
		rows = append(rows, []any{
			c.Surname,
			c.Name,
			c.Patronymic,
			c.MobilePhone,
			c.LandlinePhone,
			c.Email,
			c.Address,
			c.PostalCode,
			c.Municipality,
			c.Area,
			c.ElectoralDistrict,
			c.RecommendationFrom,
			formatDate(c.LastContactDate),
			c.Notes,
		})
	}
	widths := []float64{20, 20, 20, 15, 15, 25, 30, 10, 25, 20, 20, 20, 15, 40}
	return generateRosterExcel("Πολίτες", CitizensExportHeader, widths, rows)
}

// GenerateMilitaryExport renders the conscript roster as an .xlsx workbook.
func GenerateMilitaryExport(personnel []*domain.MilitaryPersonnel) ([]byte, error) {
	rows := make([][]any, 0, len(personnel))
	for _, m := range personnel {
		rows = append(rows, []any{
			m.Rank,
			m.Surname,
			m.Name,
			m.RegistryNumber,
			m.Esso,
			m.ServiceUnit,
			m.Wish,
			formatDate(m.SendDate),
			m.Comments,
		})
	}
	widths := []float64{18, 20, 20, 15, 10, 30, 30, 15, 40}
	return generateRosterExcel("Στρατιωτικοί", MilitaryExportHeader, widths, rows)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}

func generateRosterExcel(sheetName string, headers []string, widths []float64, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	// Note: don't defer Close() here, WriteTo needs the file to stay open

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if i < len(widths) && widths[i] > 0 {
			if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			if value == nil || value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	// freeze the header row
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeXLSX(w http.ResponseWriter, filename string, payload []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
