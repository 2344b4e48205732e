package models

import (
	"errors"
	"sync"
	"time"
)

// ErrNoDataLoaded rejects actions that need a table before any file was opened
var ErrNoDataLoaded = errors.New("no data loaded: open a file first")

// SessionState is the observable state of the shell
type SessionState int

const (
	NoDataLoaded SessionState = iota
	DataLoaded
)

func (s SessionState) String() string {
	switch s {
	case DataLoaded:
		return "DataLoaded"
	default:
		return "NoDataLoaded"
	}
}

// SessionSnapshot is a read-only copy of the session
type SessionSnapshot struct {
	State      SessionState
	Source     string
	Rows       int
	Skipped    int
	WaferIDs   []string
	SelectedID string
	LoadedAt   time.Time
}

// Session holds the current table and selection. It replaces the table
// wholesale on every successful open.
type Session struct {
	mu         sync.RWMutex
	state      SessionState
	table      *Table
	waferIDs   []string
	selectedID string
	loadedAt   time.Time
}

// NewSession returns a session in the NoDataLoaded state
func NewSession() *Session {
	return &Session{state: NoDataLoaded}
}

// Load installs a freshly parsed table and moves to DataLoaded. The previous
// table and selection are discarded.
func (s *Session) Load(table *Table, waferIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if table == nil {
		table = &Table{}
	}
	s.table = table
	s.waferIDs = append([]string(nil), waferIDs...)
	s.selectedID = ""
	s.state = DataLoaded
	s.loadedAt = time.Now()
}

// Table returns the current table or ErrNoDataLoaded
func (s *Session) Table() (*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != DataLoaded {
		return nil, ErrNoDataLoaded
	}
	return s.table, nil
}

// Select records the wafer currently chosen in the dropdown
func (s *Session) Select(waferID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != DataLoaded {
		return ErrNoDataLoaded
	}
	s.selectedID = waferID
	return nil
}

// Selected returns the current wafer selection, empty when nothing is chosen
func (s *Session) Selected() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != DataLoaded {
		return "", ErrNoDataLoaded
	}
	return s.selectedID, nil
}

// State returns the current state
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot copies the session for display and logging
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := SessionSnapshot{
		State:      s.state,
		WaferIDs:   append([]string(nil), s.waferIDs...),
		SelectedID: s.selectedID,
		LoadedAt:   s.loadedAt,
	}
	if s.table != nil {
		snap.Source = s.table.Source
		snap.Rows = len(s.table.Records)
		snap.Skipped = s.table.Skipped
	}
	return snap
}
