package components

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays application status and information about the loaded file
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	dataInfo    *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.dataInfo = widget.NewLabel("No file loaded")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.dataInfo,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetDataInfo summarises the loaded table
func (sb *StatusBar) SetDataInfo(source string, rows, wafers, skipped int) {
	info := fmt.Sprintf("%s: %d rows, %d wafers", filepath.Base(source), rows, wafers)
	if skipped > 0 {
		info += fmt.Sprintf(", %d skipped", skipped)
	}
	sb.dataInfo.SetText(info)
}

// GetDataInfo returns the data summary text
func (sb *StatusBar) GetDataInfo() string {
	return sb.dataInfo.Text
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
