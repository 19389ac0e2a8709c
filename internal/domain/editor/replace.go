package editor

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// ReplaceAll substitutes every match of pattern in the buffer.
// The pattern is a case-sensitive ECMAScript regular expression and the
// replacement may reference groups ($1, $&, $$). It returns the number of
// matches replaced; a pass that leaves the text unchanged is ErrNotFound.
func ReplaceAll(buf *Buffer, pattern, replacement string) (int, error) {
	if pattern == "" {
		return 0, ErrEmptyPattern
	}

	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	text := buf.Text()
	count, err := countMatches(re, text)
	if err != nil {
		return 0, fmt.Errorf("match failed: %w", err)
	}
	if count == 0 {
		return 0, ErrNotFound
	}

	out, err := re.Replace(text, replacement, -1, -1)
	if err != nil {
		return 0, fmt.Errorf("replace failed: %w", err)
	}
	if out == text {
		return 0, ErrNotFound
	}

	buf.SetText(out)
	return count, nil
}

func countMatches(re *regexp2.Regexp, text string) (int, error) {
	n := 0
	m, err := re.FindStringMatch(text)
	for m != nil && err == nil {
		n++
		m, err = re.FindNextMatch(m)
	}
	return n, err
}
