package blueprint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
)

// Format names a document text format
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
)

// ErrUnsupportedFormat is returned for unknown or one-way formats.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat maps a user-supplied name (case-insensitive, "yml" allowed) to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "jsonc":
		return FormatJSONC, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Export renders a document in the requested format.
// YAML keeps object key order; TOML requires an object at the top level
// and cannot represent null.
func Export(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, FormatJSONC:
		text, err := doc.Indent()
		if err != nil {
			return nil, fmt.Errorf("failed to format JSON: %w", err)
		}
		return []byte(text + "\n"), nil

	case FormatYAML:
		out, err := yaml.JSONToYAML(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert to YAML: %w", err)
		}
		return out, nil

	case FormatTOML:
		dec := json.NewDecoder(bytes.NewReader(doc))
		dec.UseNumber()
		var root interface{}
		if err := dec.Decode(&root); err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		table, ok := root.(map[string]interface{})
		if !ok {
			return nil, errors.New("TOML export requires a JSON object at the top level")
		}
		converted, err := tomlValue(table, "")
		if err != nil {
			return nil, err
		}
		out, err := toml.Marshal(converted)
		if err != nil {
			return nil, fmt.Errorf("failed to convert to TOML: %w", err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Import parses text in the given format into a document.
func Import(data []byte, format Format) (Document, error) {
	switch format {
	case FormatJSON:
		return compact(data)
	case FormatJSONC:
		return compact(jsonc.ToJSON(data))
	case FormatYAML:
		out, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return compact(out)
	default:
		return nil, fmt.Errorf("%w for import: %q", ErrUnsupportedFormat, format)
	}
}

// tomlValue converts json.Number leaves to int64/float64 and rejects nulls.
func tomlValue(v interface{}, path string) (interface{}, error) {
	switch t := v.(type) {
	case nil:
		if path == "" {
			path = "(root)"
		}
		return nil, fmt.Errorf("TOML cannot represent null at %s", path)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number at %s: %w", path, err)
		}
		return f, nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, child := range t {
			cv, err := tomlValue(child, joinPath(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = cv
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, child := range t {
			cv, err := tomlValue(child, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	default:
		return v, nil
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
