package editor

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
)

// State is the search state
type State int

const (
	StateIdle State = iota
	StateSearching
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	default:
		return "unknown"
	}
}

// Match is a selected search hit
type Match struct {
	Range Range  `json:"range"`
	Text  string `json:"text"`
}

// Searcher runs a case-insensitive literal search over a buffer
type Searcher struct {
	mu      sync.Mutex
	buf     *Buffer
	state   State
	query   string
	re      *regexp2.Regexp
	cursor  *Cursor
	version uint64
}

// NewSearcher creates an idle searcher over buf
func NewSearcher(buf *Buffer) *Searcher {
	return &Searcher{buf: buf}
}

// State returns the current state
func (s *Searcher) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Query returns the active (trimmed) query
func (s *Searcher) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Submit starts a new search from the top of the buffer and selects the first hit.
// A blank query returns the searcher to idle and yields no match.
func (s *Searcher) Submit(query string) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.TrimSpace(query)
	if q == "" {
		s.reset()
		return nil, nil
	}

	re, err := regexp2.Compile(regexp2.Escape(q), regexp2.IgnoreCase)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	runes, version := s.buf.snapshot()
	s.state = StateSearching
	s.query = q
	s.re = re
	s.cursor = newCursor(re, runes, 0)
	s.version = version

	return s.step(true)
}

// Next selects the following hit, wrapping to the top once. Idle searchers do nothing.
func (s *Searcher) Next() (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle {
		return nil, nil
	}
	return s.step(true)
}

// Prev selects the preceding hit, wrapping to the bottom once. Idle searchers do nothing.
func (s *Searcher) Prev() (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle {
		return nil, nil
	}
	return s.step(false)
}

// Reset discards the cursor and returns to idle
func (s *Searcher) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Searcher) reset() {
	s.state = StateIdle
	s.query = ""
	s.re = nil
	s.cursor = nil
}

func (s *Searcher) step(forward bool) (*Match, error) {
	s.refresh()

	found, err := s.advance(forward)
	if err != nil {
		return nil, err
	}
	if !found {
		start := 0
		if !forward {
			start = len(s.cursor.runes)
		}
		s.cursor = newCursor(s.re, s.cursor.runes, start)
		if found, err = s.advance(forward); err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrNotFound
		}
	}

	from, to := s.cursor.From(), s.cursor.To()
	r := s.buf.Select(from, to)
	return &Match{Range: r, Text: string(s.cursor.runes[from:to])}, nil
}

func (s *Searcher) advance(forward bool) (bool, error) {
	if forward {
		return s.cursor.FindNext()
	}
	return s.cursor.FindPrevious()
}

// refresh rebuilds the cursor when the buffer text changed under it
func (s *Searcher) refresh() {
	runes, version := s.buf.snapshot()
	if version == s.version {
		return
	}
	s.cursor = newCursor(s.re, runes, s.cursor.To())
	s.version = version
}
