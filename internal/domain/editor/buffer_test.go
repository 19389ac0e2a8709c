package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBufferPositions(t *testing.T) {
	b := NewBuffer("ab\ncd\n")

	assert.Equal(t, 3, b.LineCount())
	assert.Equal(t, 6, b.Len())

	tests := []struct {
		offset int
		want   Pos
	}{
		{0, Pos{0, 0}},
		{2, Pos{0, 2}},
		{3, Pos{1, 0}},
		{4, Pos{1, 1}},
		{6, Pos{2, 0}},
		{100, Pos{2, 0}},
		{-4, Pos{0, 0}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.PosAt(tt.offset), "offset %d", tt.offset)
	}

	assert.Equal(t, 4, b.OffsetAt(Pos{Line: 1, Ch: 1}))
	assert.Equal(t, 2, b.OffsetAt(Pos{Line: 0, Ch: 10}))
	assert.Equal(t, 6, b.OffsetAt(Pos{Line: 5}))
	assert.Equal(t, 0, b.OffsetAt(Pos{Line: -1}))
}

func TestBufferCountsRunes(t *testing.T) {
	b := NewBuffer("héllo ✓")
	assert.Equal(t, 7, b.Len())
	assert.Equal(t, Pos{Line: 0, Ch: 6}, b.PosAt(6))
}

func TestBufferSelection(t *testing.T) {
	b := NewBuffer("one\ntwo")

	_, ok := b.Selection()
	assert.False(t, ok)

	r := b.Select(4, 7)
	assert.Equal(t, Range{From: Pos{1, 0}, To: Pos{1, 3}}, r)

	sel, ok := b.Selection()
	assert.True(t, ok)
	assert.Equal(t, r, sel)

	target, ok := b.ScrollTarget()
	assert.True(t, ok)
	assert.Equal(t, ScrollMargin, target.Margin)
	assert.Equal(t, r, target.Range)

	v := b.Version()
	b.SetText("three")
	assert.Greater(t, b.Version(), v)
	_, ok = b.Selection()
	assert.False(t, ok)
	_, ok = b.ScrollTarget()
	assert.False(t, ok)
}

func TestBufferIsEmpty(t *testing.T) {
	assert.True(t, NewBuffer("").IsEmpty())
	assert.True(t, NewBuffer(" \n\t").IsEmpty())
	assert.False(t, NewBuffer(" {} ").IsEmpty())
	assert.Equal(t, 1, NewBuffer("").LineCount())
}
