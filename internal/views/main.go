package views

import (
	"fmt"
	"image"
	"image/png"

	"wafer-histogram/internal/models"
	"wafer-histogram/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// MainView is the single application window
type MainView struct {
	// UI Components
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	plot          *components.PlotSurface
	statusBar     *components.StatusBar
	menu          *fyne.MainMenu
}

// NewMainView creates the main view and installs it as the window content
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()

	return view
}

// initializeComponents creates all UI components
func (mv *MainView) initializeComponents() {
	mv.toolbar = components.NewToolbar()
	mv.plot = components.NewPlotSurface()
	mv.statusBar = components.NewStatusBar()

	mv.plot.SetSaveImageHandler(mv.showSaveImageDialog)
}

// buildLayout constructs the main layout
func (mv *MainView) buildLayout() {
	mv.mainContainer = container.NewBorder(
		container.NewPadded(mv.toolbar.GetContainer()), // top
		mv.statusBar.GetContainer(),                    // bottom
		nil,                                            // left
		nil,                                            // right
		mv.plot.GetContainer(),                         // center
	)

	mv.window.SetContent(mv.mainContainer)
}

// Event handler setters - called by controller

// SetOpenFileHandler sets the handler for the Open File action
func (mv *MainView) SetOpenFileHandler(handler func()) {
	mv.toolbar.SetOpenHandler(handler)
}

// SetSaveDataHandler sets the handler for the Save Data action
func (mv *MainView) SetSaveDataHandler(handler func()) {
	mv.toolbar.SetSaveHandler(handler)
}

// SetWaferSelectHandler sets the handler for dropdown choices
func (mv *MainView) SetWaferSelectHandler(handler func(string)) {
	mv.toolbar.SetWaferSelectHandler(handler)
}

// UI update methods - called by controller

// SetWaferIDs refreshes the dropdown after a file was loaded
func (mv *MainView) SetWaferIDs(ids []string) {
	mv.toolbar.SetWaferIDs(ids)
}

// DrawHistogram clears the plot surface and draws h
func (mv *MainView) DrawHistogram(h *models.Histogram) error {
	return mv.plot.Draw(h)
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// SetDataInfo updates the loaded file summary
func (mv *MainView) SetDataInfo(source string, rows, wafers, skipped int) {
	mv.statusBar.SetDataInfo(source, rows, wafers, skipped)
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), mv.window)
}

// ShowInfo displays an information dialog
func (mv *MainView) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, mv.window)
}

// ShowOpenDialog displays a file selection dialog
func (mv *MainView) ShowOpenDialog(callback func(fyne.URIReadCloser, error)) {
	fd := dialog.NewFileOpen(callback, mv.window)
	fd.Resize(dialogSize(mv.window))
	fd.Show()
}

// ShowSaveDialog displays a file save dialog suggesting fileName
func (mv *MainView) ShowSaveDialog(fileName string, callback func(fyne.URIWriteCloser, error)) {
	fd := dialog.NewFileSave(callback, mv.window)
	fd.SetFileName(fileName)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".xlsx"}))
	fd.Resize(dialogSize(mv.window))
	fd.Show()
}

// showSaveImageDialog exports the displayed chart as PNG
func (mv *MainView) showSaveImageDialog(img image.Image, waferID string) {
	if img == nil {
		dialog.ShowInformation("Save Image", "No chart to save.", mv.window)
		return
	}
	fd := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			mv.ShowError("Image save failed", err)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			mv.ShowError("Image save failed", err)
		}
	}, mv.window)
	fd.SetFileName(fmt.Sprintf("histogram_%s.png", waferID))
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	fd.Resize(dialogSize(mv.window))
	fd.Show()
}

// GetToolbar returns the toolbar component
func (mv *MainView) GetToolbar() *components.Toolbar {
	return mv.toolbar
}

// GetPlotSurface returns the plot component
func (mv *MainView) GetPlotSurface() *components.PlotSurface {
	return mv.plot
}

// GetMainMenu returns the installed main menu, nil before SetupMenus
func (mv *MainView) GetMainMenu() *fyne.MainMenu {
	return mv.menu
}

// GetStatusBar returns the status bar component
func (mv *MainView) GetStatusBar() *components.StatusBar {
	return mv.statusBar
}

// Show displays the view
func (mv *MainView) Show() {
	mv.window.Show()
}

func dialogSize(window fyne.Window) fyne.Size {
	size := window.Canvas().Size()
	return fyne.NewSize(max(size.Width*0.9, 600), max(size.Height*0.9, 420))
}
