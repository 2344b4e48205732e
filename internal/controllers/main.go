package controllers

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"wafer-histogram/internal/logger"
	"wafer-histogram/internal/models"
	"wafer-histogram/internal/services"
	"wafer-histogram/internal/timing"

	"fyne.io/fyne/v2"
)

const controllerComponent = "MainController"

// View is the part of the window the controller drives
type View interface {
	SetOpenFileHandler(handler func())
	SetSaveDataHandler(handler func())
	SetWaferSelectHandler(handler func(string))

	SetWaferIDs(ids []string)
	DrawHistogram(h *models.Histogram) error
	UpdateStatus(status string)
	SetDataInfo(source string, rows, wafers, skipped int)

	ShowInfo(title, message string)
	ShowError(title string, err error)
	ShowOpenDialog(callback func(fyne.URIReadCloser, error))
	ShowSaveDialog(fileName string, callback func(fyne.URIWriteCloser, error))
}

// MainController runs the open, select and save actions against the session.
// Every action runs to completion on the UI thread.
type MainController struct {
	// Services
	recordService    *services.RecordService
	histogramService *services.HistogramService
	exportService    *services.ExportService

	session  *models.Session
	mainView View
	logger   logger.Logger
	timings  *timing.Tracker

	// parent of every action context; cancelled on application shutdown
	baseCtx       context.Context
	actionTimeout time.Duration
}

// NewMainController creates a new main controller
func NewMainController(
	recordService *services.RecordService,
	histogramService *services.HistogramService,
	exportService *services.ExportService,
	session *models.Session,
	log logger.Logger,
) *MainController {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &MainController{
		recordService:    recordService,
		histogramService: histogramService,
		exportService:    exportService,
		session:          session,
		logger:           log,
		timings:          timing.NewTracker(),
		baseCtx:          context.Background(),
		actionTimeout:    2 * time.Minute,
	}
}

// SetMainView associates the main view with this controller
// SetContext makes ctx the parent of every load and save, so cancelling it
// aborts an action in progress
func (mc *MainController) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	mc.baseCtx = ctx
}

func (mc *MainController) SetMainView(view View) {
	mc.mainView = view
	mc.setupViewEventHandlers()
}

// setupViewEventHandlers connects view callbacks to controller methods
func (mc *MainController) setupViewEventHandlers() {
	if mc.mainView == nil {
		return
	}

	mc.mainView.SetOpenFileHandler(mc.OpenFile)
	mc.mainView.SetSaveDataHandler(mc.SaveData)
	mc.mainView.SetWaferSelectHandler(mc.SelectWafer)
}

// OpenFile asks for a file and, unless cancelled, replaces the current table
func (mc *MainController) OpenFile() {
	if mc.mainView == nil {
		return
	}

	mc.mainView.ShowOpenDialog(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mc.handleError("File selection failed", err)
			return
		}
		if reader == nil {
			return
		}
		mc.loadFromReader(reader)
	})
}

// loadFromReader parses the chosen file and moves the session to DataLoaded
func (mc *MainController) loadFromReader(reader fyne.URIReadCloser) {
	ctx, cancel := context.WithTimeout(mc.baseCtx, mc.actionTimeout)
	defer cancel()

	stop := mc.timings.Start("load")
	mc.mainView.UpdateStatus("Loading file...")

	table, err := mc.recordService.LoadFromReader(ctx, reader)
	if err != nil {
		mc.handleError("File load failed", err)
		mc.mainView.UpdateStatus("Ready")
		return
	}

	ids := services.DistinctWaferIDs(table)
	mc.session.Load(table, ids)

	mc.mainView.SetWaferIDs(ids)
	mc.mainView.SetDataInfo(table.Source, table.Len(), len(ids), table.Skipped)
	mc.mainView.UpdateStatus("File loaded")

	mc.logger.Info(controllerComponent, "table replaced", map[string]interface{}{
		"source":      table.Source,
		"rows":        table.Len(),
		"wafers":      len(ids),
		"skipped":     table.Skipped,
		"duration_ms": stop().Milliseconds(),
	})
}

// SelectWafer redraws the histogram for waferID. An id with no rows shows an
// informational message and leaves the plot as it was.
func (mc *MainController) SelectWafer(waferID string) {
	if mc.mainView == nil {
		return
	}

	table, err := mc.session.Table()
	if err != nil {
		mc.handleError("No data loaded", err)
		return
	}
	if err := mc.session.Select(waferID); err != nil {
		mc.handleError("No data loaded", err)
		return
	}

	rows := table.FilterByWafer(waferID)
	if len(rows) == 0 {
		mc.logger.Info(controllerComponent, "no rows for wafer", map[string]interface{}{
			"wafer_id": waferID,
		})
		mc.mainView.ShowInfo("No Data", fmt.Sprintf("No data available for Wafer ID: %s", waferID))
		return
	}

	mc.logger.Debug(controllerComponent, "wafer selected", map[string]interface{}{
		"wafer_id": waferID,
		"rows":     len(rows),
	})

	stop := mc.timings.Start("draw")
	hist, err := mc.histogramService.BuildForRecords(waferID, rows)
	if err != nil {
		mc.handleError("Histogram failed", err)
		return
	}
	if err := mc.mainView.DrawHistogram(hist); err != nil {
		mc.handleError("Histogram failed", err)
		return
	}

	stop()
	mc.mainView.UpdateStatus(fmt.Sprintf("Wafer %s: %d measurements", waferID, hist.Samples))
}

// SaveData asks for a destination and writes the rows of the selected wafer
func (mc *MainController) SaveData() {
	if mc.mainView == nil {
		return
	}

	table, err := mc.session.Table()
	if err != nil {
		mc.handleError("No data loaded", err)
		return
	}
	waferID, err := mc.session.Selected()
	if err != nil {
		mc.handleError("No data loaded", err)
		return
	}

	mc.mainView.ShowSaveDialog(suggestedFileName(waferID), func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mc.handleError("File selection failed", err)
			return
		}
		if writer == nil {
			return
		}
		mc.saveToWriter(writer, waferID, table)
	})
}

// saveToWriter filters table by waferID and writes it through writer
func (mc *MainController) saveToWriter(writer fyne.URIWriteCloser, waferID string, table *models.Table) {
	ctx, cancel := context.WithTimeout(mc.baseCtx, mc.actionTimeout)
	defer cancel()

	path := ""
	if uri := writer.URI(); uri != nil {
		path = uri.Path()
	}
	if abs, err := filepath.Abs(path); err == nil && path != "" {
		path = abs
	}

	stop := mc.timings.Start("save")
	rows := table.FilterByWafer(waferID)
	if err := mc.exportService.SaveToWriter(ctx, writer, rows); err != nil {
		mc.handleError("Save failed", err)
		mc.mainView.UpdateStatus("Save failed")
		return
	}

	mc.logger.Info(controllerComponent, "wafer data saved", map[string]interface{}{
		"wafer_id":    waferID,
		"rows":        len(rows),
		"path":        path,
		"duration_ms": stop().Milliseconds(),
	})
	mc.mainView.UpdateStatus("Data saved")
	mc.mainView.ShowInfo("Success", fmt.Sprintf("Data saved successfully at %s", path))
}

// State returns the current session state
func (mc *MainController) State() models.SessionState {
	return mc.session.State()
}

// Timings returns the per-action duration tracker
func (mc *MainController) Timings() *timing.Tracker {
	return mc.timings
}

// Shutdown logs the final session state and action timings when the
// application closes
func (mc *MainController) Shutdown() {
	snap := mc.session.Snapshot()
	fields := map[string]interface{}{
		"state":  snap.State.String(),
		"source": snap.Source,
		"rows":   snap.Rows,
	}
	if !snap.LoadedAt.IsZero() {
		fields["loaded_for"] = time.Since(snap.LoadedAt).Round(time.Second).String()
	}
	mc.logger.Info(controllerComponent, "controller shutdown", fields)

	for _, s := range mc.timings.Snapshot() {
		mc.logger.Debug(controllerComponent, "action timing", map[string]interface{}{
			"action": s.Operation,
			"count":  s.Count,
			"avg_ms": s.Average().Milliseconds(),
			"max_ms": s.Max.Milliseconds(),
		})
	}
}

// handleError logs err and reports it to the user
func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error(controllerComponent, err, map[string]interface{}{
		"action": title,
	})
	if mc.mainView != nil {
		mc.mainView.ShowError(title, err)
	}
}

func suggestedFileName(waferID string) string {
	if waferID == "" {
		return "wafer_data.csv"
	}
	return fmt.Sprintf("wafer_%s.csv", waferID)
}
