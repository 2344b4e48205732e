package views

import (
	"testing"

	"wafer-histogram/internal/models"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainViewWiring(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	w := test.NewWindow(nil)
	defer w.Close()

	mv := NewMainView(w)
	require.NotNil(t, w.Content())
	assert.False(t, mv.GetToolbar().DataActionsEnabled())

	var selected string
	mv.SetWaferSelectHandler(func(id string) { selected = id })

	mv.SetWaferIDs([]string{"W1", "W2"})
	mv.SetDataInfo("/tmp/lot.csv", 3, 2, 1)
	mv.UpdateStatus("File loaded")

	assert.True(t, mv.GetToolbar().DataActionsEnabled())
	assert.Equal(t, "lot.csv: 3 rows, 2 wafers, 1 skipped", mv.GetStatusBar().GetDataInfo())
	assert.Equal(t, "File loaded", mv.GetStatusBar().GetStatus())

	mv.GetToolbar().SelectWafer("W2")
	assert.Equal(t, "W2", selected)
}

func TestMainViewDrawHistogram(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	w := test.NewWindow(nil)
	defer w.Close()
	mv := NewMainView(w)

	h := &models.Histogram{WaferID: "W1", Edges: []float64{1, 2, 3}, Counts: []int{2, 1}, Samples: 3}
	require.NoError(t, mv.DrawHistogram(h))
	assert.Same(t, h, mv.GetPlotSurface().Histogram())

	assert.Error(t, mv.DrawHistogram(&models.Histogram{WaferID: "empty"}))
	assert.Same(t, h, mv.GetPlotSurface().Histogram(), "a failed draw keeps the previous plot")
}

func TestMainMenuUsesToolbarHandlers(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	w := test.NewWindow(nil)
	defer w.Close()
	mv := NewMainView(w)

	opened, saved, quit := 0, 0, 0
	mv.SetOpenFileHandler(func() { opened++ })
	mv.SetSaveDataHandler(func() { saved++ })
	mv.SetupMenus(func() { quit++ })

	menu := mv.GetMainMenu()
	require.NotNil(t, menu)
	require.Len(t, menu.Items, 2)

	items := map[string]func(){}
	for _, m := range menu.Items {
		for _, item := range m.Items {
			if item.Action != nil {
				items[item.Label] = item.Action
			}
		}
	}
	require.Contains(t, items, "Open File...")
	require.Contains(t, items, "Save Data...")
	require.Contains(t, items, "Quit")
	require.Contains(t, items, "Zoom In")

	items["Open File..."]()
	items["Save Data..."]()
	items["Quit"]()
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, saved)
	assert.Equal(t, 1, quit)

	assert.NotPanics(t, items["Zoom In"], "navigation without a plot is ignored")
}
