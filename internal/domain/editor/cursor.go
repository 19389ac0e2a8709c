package editor

import (
	"github.com/dlclark/regexp2"
)

// Cursor walks the matches of a pattern over a fixed rune slice.
// Offsets are rune indices.
type Cursor struct {
	re      *regexp2.Regexp
	runes   []rune
	from    int
	to      int
	matched bool
}

func newCursor(re *regexp2.Regexp, runes []rune, start int) *Cursor {
	if start < 0 {
		start = 0
	}
	if start > len(runes) {
		start = len(runes)
	}
	return &Cursor{re: re, runes: runes, from: start, to: start}
}

// From returns the start offset of the current match
func (c *Cursor) From() int { return c.from }

// To returns the end offset of the current match
func (c *Cursor) To() int { return c.to }

// Matched reports whether the cursor sits on a match
func (c *Cursor) Matched() bool { return c.matched }

// FindNext moves to the first match starting at or after the current match end
func (c *Cursor) FindNext() (bool, error) {
	start := c.to
	if c.matched && c.from == c.to {
		start++
	}
	if start > len(c.runes) {
		c.matched = false
		return false, nil
	}

	m, err := c.re.FindRunesMatchStartingAt(c.runes, start)
	if err != nil {
		return false, err
	}
	if m == nil {
		c.matched = false
		return false, nil
	}

	c.from, c.to, c.matched = m.Index, m.Index+m.Length, true
	return true, nil
}

// FindPrevious moves to the match with the latest start that ends at or before the
// current match start. Overlapping matches count, so every start offset is visited.
func (c *Cursor) FindPrevious() (bool, error) {
	limit := c.from

	var last *regexp2.Match
	for start := 0; start < limit; {
		m, err := c.re.FindRunesMatchStartingAt(c.runes, start)
		if err != nil {
			return false, err
		}
		if m == nil || m.Index >= limit {
			break
		}
		if m.Index+m.Length <= limit {
			last = m
		}
		start = m.Index + 1
	}
	if last == nil {
		c.matched = false
		return false, nil
	}

	c.from, c.to, c.matched = last.Index, last.Index+last.Length, true
	return true, nil
}
