package components

import (
	"image"
	"math"

	"wafer-histogram/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	zoomFactor  = 0.5
	panFraction = 0.25
	// narrowest view, as a fraction of one bin width
	minViewBins = 0.25
)

// PlotSurface is the reusable histogram canvas with navigation controls
type PlotSurface struct {
	container *fyne.Container
	image     *canvas.Image
	toolbar   *widget.Toolbar

	placeholder image.Image
	histogram   *models.Histogram
	viewFrom    float64
	viewTo      float64
	width       int
	height      int
	draws       int

	saveImageHandler func(image.Image, string)
}

// NewPlotSurface creates an empty plot surface
func NewPlotSurface() *PlotSurface {
	ps := &PlotSurface{width: ChartWidth, height: ChartHeight}
	ps.createComponents()
	ps.buildLayout()
	return ps
}

func (ps *PlotSurface) createComponents() {
	ps.placeholder = placeholderImage(ps.width, ps.height, "Open a file and select a Wafer ID to plot its resistance histogram")

	ps.image = canvas.NewImageFromImage(ps.placeholder)
	ps.image.FillMode = canvas.ImageFillContain
	ps.image.ScaleMode = canvas.ImageScaleSmooth
	ps.image.SetMinSize(fyne.NewSize(float32(ps.width)/2, float32(ps.height)/2))

	ps.toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.HomeIcon(), func() { ps.ResetView() }),
		widget.NewToolbarAction(theme.NavigateBackIcon(), func() { ps.Pan(-panFraction) }),
		widget.NewToolbarAction(theme.NavigateNextIcon(), func() { ps.Pan(panFraction) }),
		widget.NewToolbarAction(theme.ZoomInIcon(), func() { ps.ZoomIn() }),
		widget.NewToolbarAction(theme.ZoomOutIcon(), func() { ps.ZoomOut() }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), ps.RequestSaveImage),
	)
}

func (ps *PlotSurface) buildLayout() {
	ps.container = container.NewBorder(
		nil,
		ps.toolbar,
		nil, nil,
		ps.image,
	)
}

// Draw clears the surface and plots h over its full range
func (ps *PlotSurface) Draw(h *models.Histogram) error {
	lo, hi := h.Range()
	img, err := RenderHistogram(h, lo, hi, ps.width, ps.height)
	if err != nil {
		return err
	}

	ps.histogram = h
	ps.viewFrom, ps.viewTo = 0, 1
	ps.draws++
	ps.show(img)
	return nil
}

// ZoomIn halves the visible range around its centre
func (ps *PlotSurface) ZoomIn() {
	ps.zoom(zoomFactor)
}

// ZoomOut doubles the visible range around its centre
func (ps *PlotSurface) ZoomOut() {
	ps.zoom(1 / zoomFactor)
}

func (ps *PlotSurface) zoom(factor float64) {
	if ps.histogram == nil {
		return
	}
	centre := (ps.viewFrom + ps.viewTo) / 2
	half := (ps.viewTo - ps.viewFrom) * factor / 2
	ps.setView(centre-half, centre+half)
}

// Pan shifts the visible range by fraction of its width; negative moves left
func (ps *PlotSurface) Pan(fraction float64) {
	if ps.histogram == nil {
		return
	}
	shift := (ps.viewTo - ps.viewFrom) * fraction
	ps.setView(ps.viewFrom+shift, ps.viewTo+shift)
}

// ResetView restores the full histogram range
func (ps *PlotSurface) ResetView() {
	if ps.histogram == nil {
		return
	}
	ps.setView(0, 1)
}

// setView clamps [from, to], given as fractions of the histogram extent, to
// [0, 1] and redraws. Working in fractions keeps the arithmetic finite for
// any extent.
func (ps *PlotSurface) setView(from, to float64) {
	minWidth := minViewBins / float64(ps.histogram.Bins())

	width := math.Min(to-from, 1)
	if width < minWidth {
		centre := (from + to) / 2
		from = centre - minWidth/2
		width = minWidth
	}
	from = math.Max(from, 0)
	if from+width > 1 {
		from = 1 - width
	}
	to = from + width

	lo, hi := ps.toValue(from), ps.toValue(to)
	img, err := RenderHistogram(ps.histogram, lo, hi, ps.width, ps.height)
	if err != nil {
		return
	}
	ps.viewFrom, ps.viewTo = from, to
	ps.show(img)
}

// toValue maps a fraction of the extent onto the resistance axis
func (ps *PlotSurface) toValue(f float64) float64 {
	lo, hi := ps.histogram.Range()
	switch f {
	case 0:
		return lo
	case 1:
		return hi
	}
	return lo*(1-f) + hi*f
}

func (ps *PlotSurface) show(img image.Image) {
	ps.image.Image = img
	ps.image.Refresh()
}

// RequestSaveImage passes the displayed chart to the save image handler
func (ps *PlotSurface) RequestSaveImage() {
	if ps.saveImageHandler == nil || ps.histogram == nil {
		return
	}
	ps.saveImageHandler(ps.image.Image, ps.histogram.WaferID)
}

// SetSaveImageHandler sets the handler for the save image control
func (ps *PlotSurface) SetSaveImageHandler(handler func(img image.Image, waferID string)) {
	ps.saveImageHandler = handler
}

// Histogram returns the histogram currently drawn, nil before the first draw
func (ps *PlotSurface) Histogram() *models.Histogram {
	return ps.histogram
}

// View returns the visible x range, zero before the first draw
func (ps *PlotSurface) View() (float64, float64) {
	if ps.histogram == nil {
		return 0, 0
	}
	return ps.toValue(ps.viewFrom), ps.toValue(ps.viewTo)
}

// DrawCount returns how many times a histogram has been drawn
func (ps *PlotSurface) DrawCount() int {
	return ps.draws
}

// Image returns the image currently displayed
func (ps *PlotSurface) Image() image.Image {
	return ps.image.Image
}

// HasPlot returns true once a histogram has been drawn
func (ps *PlotSurface) HasPlot() bool {
	return ps.histogram != nil
}

// GetContainer returns the plot container
func (ps *PlotSurface) GetContainer() *fyne.Container {
	return ps.container
}
