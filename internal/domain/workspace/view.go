package workspace

import (
	"fmt"
	"unicode/utf8"

	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/editor"
)

// LabelLength is the number of characters shown for a history entry
const LabelLength = 10

// Entry is one history item as displayed
type Entry struct {
	Index     int    `json:"index"`
	Label     string `json:"label"`
	Title     string `json:"title"`
	Blueprint string `json:"blueprint"`
}

// Selection is the editor selection and the pending scroll request
type Selection struct {
	Range  editor.Range `json:"range"`
	Margin int          `json:"margin"`
}

// SearchView reports the search state
type SearchView struct {
	State string `json:"state"`
	Query string `json:"query,omitempty"`
}

// View is a snapshot of everything the page renders
type View struct {
	Input           string     `json:"input"`
	InputFontSize   int        `json:"inputFontSize"`
	Editor          string     `json:"editor"`
	Encoded         string     `json:"encoded"`
	EncodedFontSize int        `json:"encodedFontSize"`
	EncodeError     string     `json:"encodeError,omitempty"`
	Selection       *Selection `json:"selection,omitempty"`
	Search          SearchView `json:"search"`
	History         []Entry    `json:"history"`
}

// FontSize picks a text size in pixels for a field holding n characters
func FontSize(n int) int {
	switch {
	case n > 5000:
		return 10
	case n > 2500:
		return 11
	case n > 1000:
		return 12
	case n > 500:
		return 13
	default:
		return 14
	}
}

// ShortLabel returns the first LabelLength characters followed by an ellipsis
func ShortLabel(blueprint string) string {
	if utf8.RuneCountInString(blueprint) <= LabelLength {
		return blueprint + "..."
	}
	return string([]rune(blueprint)[:LabelLength]) + "..."
}

func entries(items []string) []Entry {
	out := make([]Entry, len(items))
	for i, item := range items {
		out[i] = Entry{
			Index:     i,
			Label:     ShortLabel(item),
			Title:     fmt.Sprintf("Restore blueprint #%d", i+1),
			Blueprint: item,
		}
	}
	return out
}
