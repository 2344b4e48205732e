package services

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"wafer-histogram/internal/logger"
	"wafer-histogram/internal/models"

	"fyne.io/fyne/v2"
	"github.com/xuri/excelize/v2"
)

const (
	parserComponent = "RecordParser"
	headRows        = 5
	ctxCheckEvery   = 1024
)

// rawRow is one tokenised line of input before column assignment
type rawRow struct {
	line   int
	fields []string
}

// RecordService parses measurement files into record tables
type RecordService struct {
	logger logger.Logger
}

// NewRecordService creates a record parser
func NewRecordService(log logger.Logger) *RecordService {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &RecordService{logger: log}
}

// LoadFromReader parses the file behind a dialog reader and closes it
func (rs *RecordService) LoadFromReader(ctx context.Context, reader fyne.URIReadCloser) (*models.Table, error) {
	defer reader.Close()

	source := ""
	if uri := reader.URI(); uri != nil {
		source = uri.Path()
	}
	return rs.Load(ctx, reader, source)
}

// LoadFile parses the file at path
func (rs *RecordService) LoadFile(ctx context.Context, path string) (*models.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return rs.Load(ctx, file, path)
}

// Load parses r. source names the input and selects the format by extension:
// .xlsx is read as a workbook, everything else as comma-delimited text.
func (rs *RecordService) Load(ctx context.Context, r io.Reader, source string) (*models.Table, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	startTime := time.Now()

	var (
		table *models.Table
		err   error
	)
	if FormatFromPath(source) == FormatXLSX {
		table, err = rs.parseWorkbook(ctx, r)
	} else {
		table, err = rs.parseDelimited(ctx, r)
	}
	if err != nil {
		return nil, err
	}
	table.Source = source

	rs.logger.Info(parserComponent, "records loaded", map[string]interface{}{
		"source":      source,
		"rows":        table.Len(),
		"skipped":     table.Skipped,
		"head":        headFields(table),
		"wafer_ids":   DistinctWaferIDs(table),
		"duration_ms": time.Since(startTime).Milliseconds(),
	})

	return table, nil
}

func (rs *RecordService) parseDelimited(ctx context.Context, r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1

	rows := make([]rawRow, 0)
	skipped := 0
	for i := 0; ; i++ {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rs.logger.Warning(parserComponent, "skipping unparsable line", map[string]interface{}{
					"line":  parseErr.StartLine,
					"error": parseErr.Err.Error(),
				})
				skipped++
				continue
			}
			return nil, fmt.Errorf("failed to read records: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, rawRow{line: line, fields: fields})
	}

	table := rs.buildTable(rows, false)
	table.Skipped += skipped
	return table, nil
}

func (rs *RecordService) parseWorkbook(ctx context.Context, r io.Reader) (*models.Table, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	cells, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := make([]rawRow, 0, len(cells))
	for i, fields := range cells {
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, rawRow{line: i + 1, fields: fields})
	}

	return rs.buildTable(rows, true), nil
}

// buildTable assigns columns to tokenised rows. Raw input has no header; a
// leading header written by the exporter is recognised by its empty index
// cell, and the index is then stripped from every row and kept as the record
// index. padToHeader restores trailing empty cells that workbooks omit.
func (rs *RecordService) buildTable(rows []rawRow, padToHeader bool) *models.Table {
	table := &models.Table{Records: make([]models.Record, 0, len(rows))}
	if len(rows) == 0 {
		return table
	}

	indexed := false
	width := models.FieldCount
	if isExportHeader(rows[0].fields) {
		rs.logger.Debug(parserComponent, "exported header recognised", map[string]interface{}{
			"line": rows[0].line,
		})
		indexed = true
		width++
		rows = rows[1:]
	} else {
		padToHeader = false
	}

	for _, row := range rows {
		fields := row.fields
		if padToHeader && len(fields) < width {
			padded := make([]string, width)
			copy(padded, fields)
			fields = padded
		}

		if len(fields) != width {
			rs.logger.Warning(parserComponent, "skipping row with wrong field count", map[string]interface{}{
				"line":     row.line,
				"fields":   len(fields),
				"expected": width,
			})
			table.Skipped++
			continue
		}

		index := len(table.Records)
		if indexed {
			parsed, err := strconv.Atoi(strings.TrimSpace(fields[0]))
			if err != nil {
				rs.logger.Warning(parserComponent, "skipping row with invalid index", map[string]interface{}{
					"line":  row.line,
					"index": fields[0],
				})
				table.Skipped++
				continue
			}
			index = parsed
			fields = fields[1:]
		}

		rec, err := models.NewRecord(index, fields)
		if err != nil {
			table.Skipped++
			continue
		}
		table.Records = append(table.Records, rec)
	}

	return table
}

// isExportHeader reports whether fields is the header row written by the
// exporter: an empty index cell followed by the column names.
func isExportHeader(fields []string) bool {
	if len(fields) != models.FieldCount+1 || strings.TrimSpace(fields[0]) != "" {
		return false
	}
	return equalFields(fields[1:], models.Columns)
}

func equalFields(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if strings.TrimSpace(a[i]) != b[i] {
			return false
		}
	}
	return true
}

func headFields(table *models.Table) [][]string {
	head := table.Head(headRows)
	out := make([][]string, 0, len(head))
	for _, rec := range head {
		out = append(out, append([]string{strconv.Itoa(rec.Index)}, rec.Fields()...))
	}
	return out
}

// Format identifies an on-disk table format
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
)

func (f Format) String() string {
	if f == FormatXLSX {
		return "xlsx"
	}
	return "csv"
}

// FormatFromPath selects the format from the file extension, defaulting to CSV
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}
