package components

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"strconv"

	"wafer-histogram/internal/models"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	ChartWidth  = 780
	ChartHeight = 460
)

var (
	barFill   = drawing.ColorFromHex("1f77b4")
	barStroke = drawing.ColorBlack
)

// HistogramTitle is the chart title shown for a wafer
func HistogramTitle(waferID string) string {
	return fmt.Sprintf("Histogram of Resistance Values for Wafer ID: %s", waferID)
}

// RenderHistogram draws h as outlined bars restricted to the x range
// [viewMin, viewMax] and returns the rasterised chart.
func RenderHistogram(h *models.Histogram, viewMin, viewMax float64, width, height int) (image.Image, error) {
	if h == nil || h.Bins() == 0 {
		return nil, fmt.Errorf("no histogram to render")
	}
	if !(viewMax > viewMin) {
		viewMin, viewMax = h.Range()
	}

	xs, ys := histogramOutline(h, viewMin, viewMax)
	top, ticks := frequencyTicks(h.MaxCount())

	// the chart needs a finite axis span; rescale the x values when the span
	// overflows and undo it in the labels
	scale := xScale(viewMin, viewMax)
	if scale != 1 {
		for i := range xs {
			xs[i] *= scale
		}
	}

	ch := chart.Chart{
		Title:      HistogramTitle(h.WaferID),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Resistance",
			Range:          &chart.ContinuousRange{Min: viewMin * scale, Max: viewMax * scale},
			ValueFormatter: func(v interface{}) string { return formatResistance(v, scale) },
		},
		YAxis: chart.YAxis{
			Name:  "Frequency",
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			Ticks: ticks,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Resistance",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: barStroke,
					StrokeWidth: 1,
					FillColor:   barFill,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render histogram: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode histogram: %w", err)
	}
	return img, nil
}

// histogramOutline traces every visible bin as a closed bar so that each one
// gets its own edge, clipping bins to [lo, hi].
func histogramOutline(h *models.Histogram, lo, hi float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(h.Counts)*4)
	ys := make([]float64, 0, len(h.Counts)*4)

	for i, count := range h.Counts {
		left, right := h.Edges[i], h.Edges[i+1]
		if right <= lo || left >= hi {
			continue
		}
		left = math.Max(left, lo)
		right = math.Min(right, hi)

		c := float64(count)
		xs = append(xs, left, left, right, right)
		ys = append(ys, 0, c, c, 0)
	}

	if len(xs) < 2 {
		return []float64{lo, hi}, []float64{0, 0}
	}
	return xs, ys
}

// frequencyTicks returns the y axis ceiling and whole-number ticks up to it
func frequencyTicks(maxCount int) (float64, []chart.Tick) {
	if maxCount < 1 {
		maxCount = 1
	}
	step := int(math.Ceil(float64(maxCount) / 6))
	if step < 1 {
		step = 1
	}
	top := int(math.Ceil(float64(maxCount)*1.05/float64(step))) * step
	if top <= maxCount {
		top += step
	}

	ticks := make([]chart.Tick, 0, top/step+1)
	for v := 0; v <= top; v += step {
		ticks = append(ticks, chart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return float64(top), ticks
}

// xScale returns a power of two that brings max-min into the finite range
func xScale(lo, hi float64) float64 {
	scale := 1.0
	for math.IsInf(hi*scale-lo*scale, 0) {
		scale /= 4
	}
	return scale
}

func formatResistance(v interface{}, scale float64) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f/scale, 'g', 5, 64)
	}
	return fmt.Sprintf("%v", v)
}
