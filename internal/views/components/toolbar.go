package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the wafer dropdown and the file actions
type Toolbar struct {
	container   *fyne.Container
	waferSelect *widget.Select
	openButton  *widget.Button
	saveButton  *widget.Button

	// set while the dropdown is cleared programmatically
	clearing bool

	// Event handlers
	openHandler        func()
	saveHandler        func()
	waferSelectHandler func(string)
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	toolbar.setupEventHandlers()
	return toolbar
}

// createComponents initializes all toolbar components
func (t *Toolbar) createComponents() {
	t.waferSelect = widget.NewSelect([]string{}, nil)
	t.waferSelect.PlaceHolder = "Select Wafer ID"
	t.waferSelect.Disable()

	t.openButton = widget.NewButton("Open File", nil)
	t.openButton.Importance = widget.HighImportance

	t.saveButton = widget.NewButton("Save Data", nil)
	t.saveButton.Importance = widget.HighImportance
	t.saveButton.Disable()
}

// buildLayout constructs the toolbar layout
func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		widget.NewLabel("Wafer ID"),
		container.NewGridWrap(fyne.NewSize(220, t.waferSelect.MinSize().Height), t.waferSelect),
		widget.NewSeparator(),
		t.openButton,
		t.saveButton,
	)
}

// setupEventHandlers connects widget events
func (t *Toolbar) setupEventHandlers() {
	t.openButton.OnTapped = t.Open
	t.saveButton.OnTapped = t.Save

	// ClearSelected fires OnChanged too; only user choices are forwarded.
	// An empty WaferID is a valid choice.
	t.waferSelect.OnChanged = func(waferID string) {
		if t.clearing {
			return
		}
		if t.waferSelectHandler != nil {
			t.waferSelectHandler(waferID)
		}
	}
}

// Open runs the open file handler
func (t *Toolbar) Open() {
	if t.openHandler != nil {
		t.openHandler()
	}
}

// Save runs the save data handler
func (t *Toolbar) Save() {
	if t.saveHandler != nil {
		t.saveHandler()
	}
}

// SetOpenHandler sets the open file handler
func (t *Toolbar) SetOpenHandler(handler func()) {
	t.openHandler = handler
}

// SetSaveHandler sets the save data handler
func (t *Toolbar) SetSaveHandler(handler func()) {
	t.saveHandler = handler
}

// SetWaferSelectHandler sets the handler for dropdown choices
func (t *Toolbar) SetWaferSelectHandler(handler func(string)) {
	t.waferSelectHandler = handler
}

// SetWaferIDs replaces the dropdown choices, clears the selection and
// enables the data actions
func (t *Toolbar) SetWaferIDs(ids []string) {
	t.clearing = true
	t.waferSelect.ClearSelected()
	t.clearing = false
	t.waferSelect.SetOptions(append([]string(nil), ids...))
	t.waferSelect.Enable()
	t.saveButton.Enable()
}

// WaferIDs returns the current dropdown choices
func (t *Toolbar) WaferIDs() []string {
	return append([]string(nil), t.waferSelect.Options...)
}

// Selected returns the current dropdown value
func (t *Toolbar) Selected() string {
	return t.waferSelect.Selected
}

// SelectWafer sets the dropdown as if the user had chosen waferID
func (t *Toolbar) SelectWafer(waferID string) {
	t.waferSelect.SetSelected(waferID)
}

// DataActionsEnabled reports whether the dropdown and save action are usable
func (t *Toolbar) DataActionsEnabled() bool {
	return !t.waferSelect.Disabled() && !t.saveButton.Disabled()
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
