package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/blueprint"
	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/editor"
	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/history"
)

var (
	// ErrEmptyEditor is returned when encoding a blank editor
	ErrEmptyEditor = errors.New("JSON editor is empty")
	// ErrHistoryEntryNotFound is returned for an out-of-range history index
	ErrHistoryEntryNotFound = errors.New("history entry not found")
)

// Metrics receives codec observations
type Metrics interface {
	RecordCodecOperation(op string, err error)
}

// Workspace is the studio state shared by all requests
type Workspace struct {
	mu       sync.Mutex
	codec    *blueprint.Codec
	history  *history.Store
	buffer   *editor.Buffer
	searcher *editor.Searcher
	logger   *zap.Logger
	metrics  Metrics

	input     string
	encoded   string
	encodeErr string
}

// Option customises a Workspace
type Option func(*Workspace)

// WithMetrics attaches a metrics sink
func WithMetrics(m Metrics) Option {
	return func(w *Workspace) { w.metrics = m }
}

// New loads the persisted history and then creates an empty editor
func New(ctx context.Context, codec *blueprint.Codec, hist *history.Store, logger *zap.Logger, opts ...Option) *Workspace {
	if logger == nil {
		logger = zap.NewNop()
	}
	if codec == nil {
		codec = blueprint.NewCodec()
	}

	loaded := hist.Load(ctx)
	logger.Info("History loaded", zap.Int("entries", len(loaded)))

	buffer := editor.NewBuffer("")
	w := &Workspace{
		codec:    codec,
		history:  hist,
		buffer:   buffer,
		searcher: editor.NewSearcher(buffer),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// View returns the current state
func (w *Workspace) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.view()
}

// SetInput stores the blueprint input field without decoding it
func (w *Workspace) SetInput(input string) View {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = input
	return w.view()
}

// ClearInput empties the blueprint input field
func (w *Workspace) ClearInput() View {
	return w.SetInput("")
}

// Decode decodes input into the editor and records it in the history.
// The history is only touched when decoding succeeds.
func (w *Workspace) Decode(ctx context.Context, input string) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.decode(ctx, input)
}

func (w *Workspace) decode(ctx context.Context, input string) (View, error) {
	w.input = input

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return w.view(), blueprint.ErrEmptyInput
	}

	doc, err := w.codec.Decode(trimmed)
	w.observe("decode", err)
	if err != nil {
		w.logger.Debug("Blueprint decode failed", zap.Error(err), zap.Int("length", len(trimmed)))
		return w.view(), err
	}

	w.history.Record(ctx, trimmed)

	text, err := doc.Indent()
	if err != nil {
		return w.view(), fmt.Errorf("format document: %w", err)
	}
	w.buffer.SetText(text)
	w.preview(doc)

	return w.view(), nil
}

// RestoreFromHistory puts a history entry into the input field and decodes it
func (w *Workspace) RestoreFromHistory(ctx context.Context, index int) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	item, ok := w.history.Get(index)
	if !ok {
		return w.view(), fmt.Errorf("%w: index %d", ErrHistoryEntryNotFound, index)
	}
	return w.decode(ctx, item)
}

// SetEditorText replaces the editor contents
func (w *Workspace) SetEditorText(text string) View {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buffer.SetText(text)
	return w.view()
}

// EditorText returns the editor contents
func (w *Workspace) EditorText() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buffer.Text()
}

// EncodeEditor encodes the editor contents into the preview and reformats the editor.
// Comments and trailing commas are tolerated.
func (w *Workspace) EncodeEditor() (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.encodeEditor()
}

// EncodeText replaces the editor contents with text and encodes it in one step
func (w *Workspace) EncodeText(text string) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buffer.SetText(text)
	return w.encodeEditor()
}

func (w *Workspace) encodeEditor() (View, error) {
	if w.buffer.IsEmpty() {
		return w.view(), ErrEmptyEditor
	}

	doc, err := blueprint.Import([]byte(w.buffer.Text()), blueprint.FormatJSONC)
	if err != nil {
		encErr := &blueprint.EncodeError{Err: err}
		w.observe("encode", encErr)
		return w.view(), encErr
	}

	encoded, err := w.codec.Encode(doc)
	w.observe("encode", err)
	if err != nil {
		return w.view(), err
	}
	w.encoded, w.encodeErr = encoded, ""

	text, err := doc.Indent()
	if err != nil {
		return w.view(), fmt.Errorf("format document: %w", err)
	}
	w.buffer.SetText(text)

	return w.view(), nil
}

// Search starts a search; a blank query cancels it
func (w *Workspace) Search(query string) (*editor.Match, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.searcher.Submit(query)
}

// FindNext moves to the next search hit
func (w *Workspace) FindNext() (*editor.Match, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.searcher.Next()
}

// FindPrev moves to the previous search hit
func (w *Workspace) FindPrev() (*editor.Match, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.searcher.Prev()
}

// ReplaceAll applies a regular expression replacement to the editor
func (w *Workspace) ReplaceAll(pattern, replacement string) (int, View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := editor.ReplaceAll(w.buffer, pattern, replacement)
	if err != nil {
		return 0, w.view(), err
	}
	w.logger.Debug("Replaced matches", zap.Int("count", n))
	return n, w.view(), nil
}

// History returns the history entries, most recent first
func (w *Workspace) History() []Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return entries(w.history.List())
}

// ClearHistory empties the history
func (w *Workspace) ClearHistory(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.history.Clear(ctx)
}

// Export renders the editor contents in the given format
func (w *Workspace) Export(format blueprint.Format) ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buffer.IsEmpty() {
		return nil, ErrEmptyEditor
	}
	doc, err := blueprint.Import([]byte(w.buffer.Text()), blueprint.FormatJSONC)
	if err != nil {
		return nil, err
	}
	return blueprint.Export(doc, format)
}

// preview encodes doc into the preview field; failures are shown, not returned
func (w *Workspace) preview(doc blueprint.Document) {
	encoded, err := w.codec.Encode(doc)
	w.observe("encode", err)
	if err != nil {
		w.logger.Warn("Preview encoding failed", zap.Error(err))
		w.encoded, w.encodeErr = "", err.Error()
		return
	}
	w.encoded, w.encodeErr = encoded, ""
}

func (w *Workspace) observe(op string, err error) {
	if w.metrics != nil {
		w.metrics.RecordCodecOperation(op, err)
	}
}

// view must be called with mu held
func (w *Workspace) view() View {
	v := View{
		Input:           w.input,
		InputFontSize:   FontSize(utf8.RuneCountInString(w.input)),
		Editor:          w.buffer.Text(),
		Encoded:         w.encoded,
		EncodedFontSize: FontSize(utf8.RuneCountInString(w.encoded)),
		EncodeError:     w.encodeErr,
		Search: SearchView{
			State: w.searcher.State().String(),
			Query: w.searcher.Query(),
		},
		History: entries(w.history.List()),
	}
	if target, ok := w.buffer.ScrollTarget(); ok {
		v.Selection = &Selection{Range: target.Range, Margin: target.Margin}
	}
	return v
}
