package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"wafer-histogram/internal/logger"
	"wafer-histogram/internal/models"

	"fyne.io/fyne/v2"
	"github.com/xuri/excelize/v2"
)

const exporterComponent = "Exporter"

// ExportService writes filtered records back to disk
type ExportService struct {
	logger logger.Logger
}

// NewExportService creates an exporter
func NewExportService(log logger.Logger) *ExportService {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &ExportService{logger: log}
}

// header is the column header row preceded by the unnamed index column
func header() []string {
	return append([]string{""}, models.Columns...)
}

// SaveToWriter writes records to a dialog writer, choosing the format from
// its extension, and closes it.
func (es *ExportService) SaveToWriter(ctx context.Context, writer fyne.URIWriteCloser, records []models.Record) error {
	defer writer.Close()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path := ""
	if uri := writer.URI(); uri != nil {
		path = uri.Path()
	}
	return es.Export(writer, FormatFromPath(path), records)
}

// Export serialises records with a header row and a leading index column
func (es *ExportService) Export(w io.Writer, format Format, records []models.Record) error {
	var err error
	switch format {
	case FormatXLSX:
		err = es.writeWorkbook(w, records)
	default:
		err = es.writeDelimited(w, records)
	}
	if err != nil {
		es.logger.Error(exporterComponent, err, map[string]interface{}{
			"format": format.String(),
		})
		return err
	}

	es.logger.Info(exporterComponent, "records exported", map[string]interface{}{
		"format": format.String(),
		"rows":   len(records),
	})
	return nil
}

func (es *ExportService) writeDelimited(w io.Writer, records []models.Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, rec := range records {
		row := append([]string{strconv.Itoa(rec.Index)}, rec.Fields()...)
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rec.Index, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}
	return nil
}

func (es *ExportService) writeWorkbook(w io.Writer, records []models.Record) error {
	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)

	headerRow := make([]interface{}, 0, models.FieldCount+1)
	for _, name := range header() {
		headerRow = append(headerRow, name)
	}
	if err := workbook.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := make([]interface{}, 0, models.FieldCount+1)
		row = append(row, rec.Index)
		for _, field := range rec.Fields() {
			row = append(row, field)
		}
		if err := workbook.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rec.Index, err)
		}
	}

	if err := workbook.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
