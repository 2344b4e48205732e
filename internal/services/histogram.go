package services

import (
	"errors"
	"fmt"
	"math"

	"wafer-histogram/internal/logger"
	"wafer-histogram/internal/models"
)

// ErrNoSamples is returned when a histogram is requested for an empty sample set
var ErrNoSamples = errors.New("no samples to bin")

// HistogramService bins resistance samples into fixed-width bins
type HistogramService struct {
	bins   int
	logger logger.Logger
}

// NewHistogramService creates a binning service; bins <= 0 selects models.DefaultBins
func NewHistogramService(bins int, log logger.Logger) *HistogramService {
	if bins <= 0 {
		bins = models.DefaultBins
	}
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &HistogramService{bins: bins, logger: log}
}

// Bins returns the configured bin count
func (hs *HistogramService) Bins() int {
	return hs.bins
}

// BuildForRecords coerces the Resistance field of records and bins it
func (hs *HistogramService) BuildForRecords(waferID string, records []models.Record) (*models.Histogram, error) {
	values, err := models.Resistances(records)
	if err != nil {
		return nil, fmt.Errorf("wafer %s: %w", waferID, err)
	}
	return hs.Build(waferID, values)
}

// Build bins values over their observed range. Every bin is half-open except
// the last, which also holds the maximum. A constant sample set is centred in
// a range of width one.
func (hs *HistogramService) Build(waferID string, values []float64) (*models.Histogram, error) {
	if len(values) == 0 {
		return nil, ErrNoSamples
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %v", models.ErrNonNumericResistance, v)
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
		if lo == hi {
			lo, hi = math.Nextafter(lo, math.Inf(-1)), math.Nextafter(hi, math.Inf(1))
		}
	}

	// edges are convex combinations of lo and hi so they stay finite even
	// when hi-lo overflows
	edges := make([]float64, hs.bins+1)
	for i := range edges {
		f := float64(i) / float64(hs.bins)
		edges[i] = lo*(1-f) + hi*f
	}
	edges[0], edges[hs.bins] = lo, hi

	counts := make([]int, hs.bins)
	for _, v := range values {
		counts[binIndex(v, lo, hi, hs.bins)]++
	}

	hs.logger.Debug("HistogramService", "histogram built", map[string]interface{}{
		"wafer_id": waferID,
		"samples":  len(values),
		"min":      lo,
		"max":      hi,
		"bins":     hs.bins,
	})

	return &models.Histogram{
		WaferID: waferID,
		Edges:   edges,
		Counts:  counts,
		Samples: len(values),
	}, nil
}

func binIndex(v, lo, hi float64, bins int) int {
	if v >= hi {
		return bins - 1
	}
	// halved operands keep both differences finite
	idx := int((v/2 - lo/2) / (hi/2 - lo/2) * float64(bins))
	if idx < 0 {
		return 0
	}
	if idx >= bins {
		return bins - 1
	}
	return idx
}
