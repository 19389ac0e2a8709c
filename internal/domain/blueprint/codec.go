package blueprint

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// VersionPrefix marks the current blueprint string format revision.
const VersionPrefix = "0"

// MaxDocumentSize caps the inflated size of a blueprint (32MB)
const MaxDocumentSize = 32 << 20

var errDocumentTooLarge = fmt.Errorf("inflated blueprint exceeds %d bytes", MaxDocumentSize)

// Document is the compact JSON text of a blueprint.
// Object key order and number literals are kept exactly as decoded.
type Document []byte

// String returns the compact JSON text
func (d Document) String() string {
	return string(d)
}

// Indent returns the document formatted with two-space indentation.
func (d Document) Indent() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, d, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MarshalJSON embeds the document verbatim.
func (d Document) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// Codec converts blueprint strings to documents and back.
type Codec struct {
	level int
}

// NewCodec creates a codec using the default compression level
func NewCodec() *Codec {
	return &Codec{level: zlib.DefaultCompression}
}

// NewCodecLevel creates a codec with an explicit zlib compression level.
func NewCodecLevel(level int) (*Codec, error) {
	if level < zlib.HuffmanOnly || level > zlib.BestCompression {
		return nil, fmt.Errorf("invalid compression level %d", level)
	}
	return &Codec{level: level}, nil
}

// StripVersion removes exactly one leading version character, if present.
func StripVersion(blueprint string) string {
	return strings.TrimPrefix(blueprint, VersionPrefix)
}

// Decode turns a blueprint string into a JSON document.
//
// Input is trimmed first; a blank string yields ErrEmptyInput before any
// codec work. Strings without the version character are decoded as-is.
func (c *Codec) Decode(blueprint string) (Document, error) {
	s := strings.TrimSpace(blueprint)
	if s == "" {
		return nil, ErrEmptyInput
	}

	raw, err := decodeBase64(StripVersion(s))
	if err != nil {
		return nil, &DecodeError{Stage: StageBase64, Err: err}
	}

	text, err := inflate(raw)
	if err != nil {
		return nil, &DecodeError{Stage: StageInflate, Err: err}
	}

	doc, err := compact(text)
	if err != nil {
		return nil, &DecodeError{Stage: StageJSON, Err: err}
	}

	return doc, nil
}

// Encode turns a JSON document into a versioned blueprint string.
func (c *Codec) Encode(doc Document) (string, error) {
	text, err := compact(doc)
	if err != nil {
		return "", &EncodeError{Err: err}
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, c.level)
	if err != nil {
		return "", &EncodeError{Err: err}
	}
	if _, err := zw.Write(text); err != nil {
		zw.Close()
		return "", &EncodeError{Err: err}
	}
	if err := zw.Close(); err != nil {
		return "", &EncodeError{Err: err}
	}

	return VersionPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// EncodeValue serializes an arbitrary value and encodes it.
func (c *Codec) EncodeValue(v interface{}) (string, error) {
	data, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return "", &EncodeError{Err: err}
	}
	return c.Encode(Document(data))
}

// Decode is a convenience function using the default codec
func Decode(blueprint string) (Document, error) {
	return NewCodec().Decode(blueprint)
}

// Encode is a convenience function using the default codec
func Encode(doc Document) (string, error) {
	return NewCodec().Encode(doc)
}

// decodeBase64 accepts standard base64 with or without padding.
// ASCII whitespace is ignored, as browsers do for atob.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			return -1
		}
		return r
	}, s)
	s = strings.TrimRight(s, "=")
	return base64.RawStdEncoding.DecodeString(s)
}

// inflate reads a zlib stream, or a raw DEFLATE stream when no zlib header is present.
func inflate(data []byte) ([]byte, error) {
	var rc io.ReadCloser
	if hasZlibHeader(data) {
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		rc = zr
	} else {
		rc = flate.NewReader(bytes.NewReader(data))
	}
	defer rc.Close()

	out, err := io.ReadAll(io.LimitReader(rc, MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > MaxDocumentSize {
		return nil, errDocumentTooLarge
	}
	return out, nil
}

// hasZlibHeader checks the RFC 1950 CMF/FLG pair.
func hasZlibHeader(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	return b[0]&0x0f == 8 && b[0]>>4 <= 7 && (uint16(b[0])<<8|uint16(b[1]))%31 == 0
}

func compact(text []byte) (Document, error) {
	if !utf8.Valid(text) {
		return nil, errors.New("document is not valid UTF-8")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, text); err != nil {
		return nil, err
	}
	return Document(buf.Bytes()), nil
}
