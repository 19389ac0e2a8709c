package editor

import (
	"sort"
	"sync"
	"unicode/utf8"
)

// ScrollMargin is the margin kept around a selection scrolled into view
const ScrollMargin = 50

// Pos is a zero-based line and rune column
type Pos struct {
	Line int `json:"line"`
	Ch   int `json:"ch"`
}

// Range is a half-open span of the buffer
type Range struct {
	From Pos `json:"from"`
	To   Pos `json:"to"`
}

// ScrollTarget asks the view to bring a range into sight
type ScrollTarget struct {
	Range  Range `json:"range"`
	Margin int   `json:"margin"`
}

// Buffer is the editor document with its selection and pending scroll
type Buffer struct {
	mu         sync.RWMutex
	text       string
	runes      []rune
	lineStarts []int
	version    uint64
	selection  *Range
	scroll     *ScrollTarget
}

// NewBuffer creates a buffer holding text
func NewBuffer(text string) *Buffer {
	b := &Buffer{}
	b.setText(text)
	return b
}

// Text returns the full contents
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// SetText replaces the contents and drops the selection
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setText(text)
}

func (b *Buffer) setText(text string) {
	if !utf8.ValidString(text) {
		text = string([]rune(text))
	}
	b.text = text
	b.runes = []rune(text)
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i, r := range b.runes {
		if r == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
	b.version++
	b.selection = nil
	b.scroll = nil
}

// Version changes every time the text is replaced
func (b *Buffer) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Len returns the length in runes
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.runes)
}

// LineCount returns the number of lines (an empty buffer has one)
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lineStarts)
}

// IsEmpty reports whether the buffer holds only whitespace
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, r := range b.runes {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}

// PosAt converts a rune offset into a position, clamping to the buffer
func (b *Buffer) PosAt(offset int) Pos {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.posAt(offset)
}

func (b *Buffer) posAt(offset int) Pos {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.runes) {
		offset = len(b.runes)
	}
	line := sort.Search(len(b.lineStarts), func(i int) bool { return b.lineStarts[i] > offset }) - 1
	return Pos{Line: line, Ch: offset - b.lineStarts[line]}
}

// OffsetAt converts a position into a rune offset, clamping to the buffer
func (b *Buffer) OffsetAt(p Pos) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(b.lineStarts) {
		return len(b.runes)
	}
	start := b.lineStarts[p.Line]
	end := len(b.runes)
	if p.Line+1 < len(b.lineStarts) {
		end = b.lineStarts[p.Line+1] - 1
	}
	off := start + p.Ch
	if p.Ch < 0 {
		off = start
	}
	if off > end {
		off = end
	}
	return off
}

// Select marks the rune span [from, to) and scrolls it into view
func (b *Buffer) Select(from, to int) Range {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := Range{From: b.posAt(from), To: b.posAt(to)}
	b.selection = &r
	b.scroll = &ScrollTarget{Range: r, Margin: ScrollMargin}
	return r
}

// Selection returns the current selection, if any
func (b *Buffer) Selection() (Range, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.selection == nil {
		return Range{}, false
	}
	return *b.selection, true
}

// ScrollTarget returns the pending scroll request, if any
func (b *Buffer) ScrollTarget() (ScrollTarget, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.scroll == nil {
		return ScrollTarget{}, false
	}
	return *b.scroll, true
}

// snapshot returns the runes and version for a search pass
func (b *Buffer) snapshot() ([]rune, uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.runes, b.version
}
