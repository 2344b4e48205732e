package timing

import (
	"sort"
	"sync"
	"time"
)

// Stats summarises the recorded durations of one operation
type Stats struct {
	Operation string
	Count     int
	Total     time.Duration
	Max       time.Duration
}

// Average returns the mean duration, zero when nothing was recorded
func (s Stats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Tracker accumulates durations per named operation
type Tracker struct {
	stats map[string]*Stats
	mu    sync.RWMutex
	now   func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		stats: make(map[string]*Stats),
		now:   time.Now,
	}
}

// Start begins timing operation. The returned function records the elapsed
// time and returns it; call it once.
func (tt *Tracker) Start(operation string) func() time.Duration {
	start := tt.now()
	return func() time.Duration {
		elapsed := tt.now().Sub(start)
		tt.Record(operation, elapsed)
		return elapsed
	}
}

// Record adds one duration for operation
func (tt *Tracker) Record(operation string, d time.Duration) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	s, ok := tt.stats[operation]
	if !ok {
		s = &Stats{Operation: operation}
		tt.stats[operation] = s
	}
	s.Count++
	s.Total += d
	if d > s.Max {
		s.Max = d
	}
}

// Snapshot returns the stats of every operation ordered by name
func (tt *Tracker) Snapshot() []Stats {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	out := make([]Stats, 0, len(tt.stats))
	for _, s := range tt.stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Operation < out[j].Operation })
	return out
}
