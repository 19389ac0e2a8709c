package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/blueprint"
	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/editor"
	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/history"
	"github.com/GriffinCanCode/BlueprintStudio/internal/providers/storage"
)

const sampleBlueprint = "0eJyrVkpUsjKsBQAIKgIJ" // {"a":1}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type codecMetrics struct {
	mu  sync.Mutex
	ops []string
}

func (c *codecMetrics) RecordCodecOperation(op string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.ops = append(c.ops, op+":"+result)
}

func newWorkspace(t *testing.T, opts ...Option) (*Workspace, storage.Store) {
	t.Helper()
	backing := storage.NewMemoryStore()
	hist := history.NewStore(backing, nil)
	return New(context.Background(), nil, hist, nil, opts...), backing
}

func TestNewLoadsHistory(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	require.NoError(t, backing.Set(ctx, history.StorageKey, []byte(`["0abcdefghijklmnop"]`)))

	ws := New(ctx, blueprint.NewCodec(), history.NewStore(backing, nil), nil)

	entries := ws.History()
	require.Len(t, entries, 1)
	assert.Equal(t, "0abcdefghi...", entries[0].Label)
	assert.Equal(t, "Restore blueprint #1", entries[0].Title)
	assert.Empty(t, ws.EditorText())
}

func TestDecode(t *testing.T) {
	metrics := &codecMetrics{}
	ws, _ := newWorkspace(t, WithMetrics(metrics))

	view, err := ws.Decode(context.Background(), "  "+sampleBlueprint+"\n")
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"a\": 1\n}", view.Editor)
	assert.True(t, strings.HasPrefix(view.Encoded, blueprint.VersionPrefix))
	assert.Equal(t, 14, view.InputFontSize)
	require.Len(t, view.History, 1)
	assert.Equal(t, sampleBlueprint, view.History[0].Blueprint)
	assert.Equal(t, []string{"decode:ok", "encode:ok"}, metrics.ops)

	// the preview decodes back to the same document
	doc, err := blueprint.Decode(view.Encoded)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, doc.String())
}

func TestDecodeFailureLeavesHistoryAlone(t *testing.T) {
	ws, _ := newWorkspace(t)

	view, err := ws.Decode(context.Background(), "0!!!invalid!!!")
	require.Error(t, err)
	assert.True(t, blueprint.IsDecodeError(err))
	assert.Empty(t, view.History)
	assert.Equal(t, "0!!!invalid!!!", view.Input)

	_, err = ws.Decode(context.Background(), "   ")
	assert.ErrorIs(t, err, blueprint.ErrEmptyInput)
	assert.Empty(t, ws.History())
}

func TestDecodeTwiceKeepsOneEntry(t *testing.T) {
	ws, backing := newWorkspace(t)
	ctx := context.Background()

	_, err := ws.Decode(ctx, sampleBlueprint)
	require.NoError(t, err)
	_, err = ws.Decode(ctx, sampleBlueprint)
	require.NoError(t, err)

	assert.Len(t, ws.History(), 1)
	raw, err := backing.Get(ctx, history.StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `["`+sampleBlueprint+`"]`, string(raw))
}

func TestRestoreFromHistory(t *testing.T) {
	ws, _ := newWorkspace(t)
	ctx := context.Background()

	_, err := ws.Decode(ctx, sampleBlueprint)
	require.NoError(t, err)
	ws.SetEditorText("changed")
	ws.ClearInput()

	view, err := ws.RestoreFromHistory(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, sampleBlueprint, view.Input)
	assert.Equal(t, "{\n  \"a\": 1\n}", view.Editor)

	_, err = ws.RestoreFromHistory(ctx, 5)
	assert.ErrorIs(t, err, ErrHistoryEntryNotFound)
}

func TestEncodeEditor(t *testing.T) {
	ws, _ := newWorkspace(t)

	ws.SetEditorText("{\n  // comment\n  \"b\": [1, 2,],\n}")
	view, err := ws.EncodeEditor()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": [\n    1,\n    2\n  ]\n}", view.Editor)

	doc, err := blueprint.Decode(view.Encoded)
	require.NoError(t, err)
	assert.Equal(t, `{"b":[1,2]}`, doc.String())

	// encoding does not touch the history
	assert.Empty(t, view.History)
}

func TestEncodeEditorErrors(t *testing.T) {
	ws, _ := newWorkspace(t)

	_, err := ws.EncodeEditor()
	assert.ErrorIs(t, err, ErrEmptyEditor)

	ws.SetEditorText("{not json")
	view, err := ws.EncodeEditor()
	require.Error(t, err)
	assert.True(t, blueprint.IsEncodeError(err))
	assert.Equal(t, "{not json", view.Editor)
}

func TestEncodeText(t *testing.T) {
	ws, _ := newWorkspace(t)
	ws.SetEditorText(`{"old":true}`)

	view, err := ws.EncodeText(`{"c": 3,}`)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"c\": 3\n}", view.Editor)

	doc, err := blueprint.Decode(view.Encoded)
	require.NoError(t, err)
	assert.Equal(t, `{"c":3}`, doc.String())

	_, err = ws.EncodeText("  ")
	assert.ErrorIs(t, err, ErrEmptyEditor)
}

func TestEncodeTextIsAtomic(t *testing.T) {
	ws, _ := newWorkspace(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		want := fmt.Sprintf(`{"n":%d}`, i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			view, err := ws.EncodeText(want)
			if !assert.NoError(t, err) {
				return
			}
			doc, err := blueprint.Decode(view.Encoded)
			if assert.NoError(t, err) {
				assert.Equal(t, want, doc.String())
			}
		}()
		go func() {
			defer wg.Done()
			ws.SetEditorText(`{"n":"other"}`)
		}()
	}
	wg.Wait()
}

func TestSearchAndReplace(t *testing.T) {
	ws, _ := newWorkspace(t)
	ws.SetEditorText("foo bar foo")

	m, err := ws.Search("FOO")
	require.NoError(t, err)
	assert.Equal(t, editor.Range{From: editor.Pos{Ch: 0}, To: editor.Pos{Ch: 3}}, m.Range)

	m, err = ws.FindNext()
	require.NoError(t, err)
	assert.Equal(t, 8, m.Range.From.Ch)

	m, err = ws.FindPrev()
	require.NoError(t, err)
	assert.Equal(t, 0, m.Range.From.Ch)

	view := ws.View()
	assert.Equal(t, "searching", view.Search.State)
	require.NotNil(t, view.Selection)
	assert.Equal(t, editor.ScrollMargin, view.Selection.Margin)

	n, view, err := ws.ReplaceAll("foo", "baz")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "baz bar baz", view.Editor)

	_, err = ws.Search("foo")
	assert.ErrorIs(t, err, editor.ErrNotFound)

	_, _, err = ws.ReplaceAll("", "x")
	assert.ErrorIs(t, err, editor.ErrEmptyPattern)
}

func TestClearHistory(t *testing.T) {
	ws, backing := newWorkspace(t)
	ctx := context.Background()

	_, err := ws.Decode(ctx, sampleBlueprint)
	require.NoError(t, err)

	ws.ClearHistory(ctx)
	assert.Empty(t, ws.History())
	_, err = backing.Get(ctx, history.StorageKey)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestExport(t *testing.T) {
	ws, _ := newWorkspace(t)

	_, err := ws.Export(blueprint.FormatYAML)
	assert.ErrorIs(t, err, ErrEmptyEditor)

	_, err = ws.Decode(context.Background(), sampleBlueprint)
	require.NoError(t, err)

	out, err := ws.Export(blueprint.FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "a: 1")
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 14},
		{500, 14},
		{501, 13},
		{1001, 12},
		{2501, 11},
		{5001, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FontSize(tt.n), "n=%d", tt.n)
	}
}

func TestShortLabel(t *testing.T) {
	assert.Equal(t, "0eJyrVkpUs...", ShortLabel(sampleBlueprint))
	assert.Equal(t, "short...", ShortLabel("short"))
}

func TestConcurrentOperations(t *testing.T) {
	ws, _ := newWorkspace(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = ws.Decode(ctx, sampleBlueprint)
		}()
		go func() {
			defer wg.Done()
			_, _ = ws.Search("a")
			_ = ws.View()
		}()
	}
	wg.Wait()

	assert.Len(t, ws.History(), 1)
}
