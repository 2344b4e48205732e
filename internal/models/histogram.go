package models

// DefaultBins is the number of fixed-width bins used for resistance histograms
const DefaultBins = 30

// Histogram holds binned resistance counts for one wafer. Edges has one more
// entry than Counts.
type Histogram struct {
	WaferID string
	Edges   []float64
	Counts  []int
	Samples int
}

// Bins returns the number of bins
func (h *Histogram) Bins() int {
	if h == nil {
		return 0
	}
	return len(h.Counts)
}

// Range returns the lower and upper edge of the histogram
func (h *Histogram) Range() (float64, float64) {
	if h == nil || len(h.Edges) == 0 {
		return 0, 0
	}
	return h.Edges[0], h.Edges[len(h.Edges)-1]
}

// MaxCount returns the tallest bin
func (h *Histogram) MaxCount() int {
	if h == nil {
		return 0
	}
	maxCount := 0
	for _, c := range h.Counts {
		if c > maxCount {
			maxCount = c
		}
	}
	return maxCount
}

// Total sums the bin counts
func (h *Histogram) Total() int {
	if h == nil {
		return 0
	}
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}
