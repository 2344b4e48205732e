package views

import (
	"fyne.io/fyne/v2"
)

// buildMainMenu mirrors the toolbar actions and the plot navigation in the
// window menu. Data actions go through the same handlers as the buttons, so
// the controller applies the same state checks.
func (mv *MainView) buildMainMenu(quit func()) *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open File...", func() {
			mv.toolbar.Open()
		}),
		fyne.NewMenuItem("Save Data...", func() {
			mv.toolbar.Save()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Chart Image...", func() {
			mv.plot.RequestSaveImage()
		}),
	)
	if quit != nil {
		fileMenu.Items = append(fileMenu.Items,
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Quit", quit),
		)
	}

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mv.plot.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mv.plot.ZoomOut),
		fyne.NewMenuItem("Reset View", mv.plot.ResetView),
	)

	return fyne.NewMainMenu(fileMenu, viewMenu)
}

// SetupMenus installs the main menu on the window. quit is attached to the
// File menu when not nil.
func (mv *MainView) SetupMenus(quit func()) {
	mv.menu = mv.buildMainMenu(quit)
	mv.window.SetMainMenu(mv.menu)
}
