// Package xlsx genera los libros Excel de SKUs y del plan de pedido con excelize.
package xlsx

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/internal/application/planning"
)

var _ planning.SpreadsheetExporter = (*ExcelizeExporter)(nil)

// Nombres de hoja.
const (
	SheetProducts = "SKUs"
	SheetPlan     = "PlanPedido"
	SheetNotes    = "Notas"
)

// Ancho de columna en caracteres: contenido más largo + 2, acotado a [10, 45].
const (
	minColWidth = 10
	maxColWidth = 45
	colPadding  = 2
)

var productHeaders = []string{
	"SKU", "Producto", "Lead time (días)", "Z", "Stock FBA", "En tránsito",
	"Meses con datos", "Velocidad diaria", "Desv. diaria", "Stock seguridad",
	"Punto de reorden", "Pedido 60 días",
}

var planHeaders = []string{
	"SKU", "Producto", "Lead time (días)", "Stock FBA", "En tránsito",
	"Velocidad diaria", "Stock seguridad", "Punto de reorden", "Pedido 60 días",
}

// ExcelizeExporter implementa planning.SpreadsheetExporter.
type ExcelizeExporter struct{}

// NewExcelizeExporter construye el exportador.
func NewExcelizeExporter() *ExcelizeExporter { return &ExcelizeExporter{} }

// ProductsWorkbook libro con todos los SKUs y sus métricas. Sin historial las métricas quedan vacías.
func (e *ExcelizeExporter) ProductsWorkbook(rows []dto.ProductSummaryDTO) ([]byte, error) {
	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		line := []any{
			r.Product.SKU,
			r.Product.Name,
			r.Product.LeadTimeDays,
			r.Product.ZValue.InexactFloat64(),
			r.Product.FBAStock,
			r.Product.InboundStock,
			r.Metrics.MonthsObserved,
		}
		if r.Metrics.HistoryStatus == dto.HistoryStatusInsufficient {
			line = append(line, "sin historial", "", "", "", "")
		} else {
			line = append(line,
				r.Metrics.DailyVelocity.InexactFloat64(),
				r.Metrics.StdDailyDemand.InexactFloat64(),
				r.Metrics.SafetyStock.InexactFloat64(),
				r.Metrics.ReorderPoint.InexactFloat64(),
				r.Metrics.OrderUnits,
			)
		}
		data = append(data, line)
	}
	return writeWorkbook(SheetProducts, productHeaders, data)
}

// PlanWorkbook libro del plan de pedido.
func (e *ExcelizeExporter) PlanWorkbook(rows []dto.ProductSummaryDTO) ([]byte, error) {
	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, []any{
			r.Product.SKU,
			r.Product.Name,
			r.Product.LeadTimeDays,
			r.Product.FBAStock,
			r.Product.InboundStock,
			r.Metrics.DailyVelocity.InexactFloat64(),
			r.Metrics.SafetyStock.InexactFloat64(),
			r.Metrics.ReorderPoint.InexactFloat64(),
			r.Metrics.OrderUnits,
		})
	}
	return writeWorkbook(SheetPlan, planHeaders, data)
}

func writeWorkbook(sheet string, headers []string, data [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, line := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := styleHeader(f, sheet, len(headers)); err != nil {
		return nil, err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}
	if err := autosizeColumns(f, sheet, header, data); err != nil {
		return nil, err
	}
	if err := writeNotes(f); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func styleHeader(f *excelize.File, sheet string, cols int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

// autosizeColumns ajusta cada columna al texto más largo que contiene.
func autosizeColumns(f *excelize.File, sheet string, header []any, data [][]any) error {
	for c := range header {
		maxLen := 0
		for _, line := range append([][]any{header}, data...) {
			if c < len(line) {
				maxLen = max(maxLen, utf8.RuneCountInString(fmt.Sprint(line[c])))
			}
		}
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, columnWidth(maxLen)); err != nil {
			return fmt.Errorf("column width %s: %w", name, err)
		}
	}
	return nil
}

func columnWidth(maxLen int) float64 {
	return float64(min(maxColWidth, max(minColWidth, maxLen+colPadding)))
}

func writeNotes(f *excelize.File) error {
	if _, err := f.NewSheet(SheetNotes); err != nil {
		return fmt.Errorf("notes sheet: %w", err)
	}
	notes := [][]any{
		{"Pedido 60 días", planning.OrderQuantityLabel},
		{"Velocidad diaria", "Promedio de las ventas de los últimos 3 meses calendario con registro / 30"},
		{"Punto de reorden", "Velocidad diaria × lead time + stock de seguridad"},
	}
	for i, line := range notes {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetNotes, cell, &line); err != nil {
			return fmt.Errorf("write notes: %w", err)
		}
	}
	return f.SetColWidth(SheetNotes, "A", "A", 20)
}
