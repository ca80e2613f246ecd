// Package propset loads property set requests from YAML or JSON documents and
// applies them to objects through bean.SetProperties.
//
// A request document looks like:
//
//	names: [Name, Email, Age]
//	values:
//	  Name: ann
//	  Age: 31
//
// Only the listed names are written; a listed name without a value is reset.
// When names is omitted, every key of values is written, in sorted order.
package propset

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"beankit/bean"
)

// Request is a whitelist of property names and the values to write.
type Request struct {
	Names  []string       `yaml:"names,omitempty" json:"names,omitempty"`
	Values map[string]any `yaml:"values" json:"values"`
}

// LoadFile reads a request from path. Files ending in .json are decoded as
// JSON, anything else as YAML.
func LoadFile(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}

	return Parse(data)
}

// Parse decodes a YAML request. Unknown top-level keys are rejected.
func Parse(data []byte) (*Request, error) {
	var req Request

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to parse request YAML: %w", err)
	}

	applyDefaults(&req)

	return &req, nil
}

// ParseJSON decodes a JSON request. Numbers become int64 when they are
// integral and float64 otherwise.
func ParseJSON(data []byte) (*Request, error) {
	var req Request

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to parse request JSON: %w", err)
	}

	for k, v := range req.Values {
		req.Values[k] = normalizeNumbers(v)
	}

	applyDefaults(&req)

	return &req, nil
}

// Apply writes req into obj. A nil or empty request yields a new default
// instance, as bean.SetProperties does for an empty value map.
func Apply[T any](obj T, req *Request) (T, error) {
	if req == nil {
		return bean.SetProperties(obj, nil, nil)
	}

	return bean.SetProperties(obj, req.Names, req.Values)
}

func applyDefaults(req *Request) {
	if len(req.Names) == 0 && len(req.Values) > 0 {
		req.Names = slices.Sorted(maps.Keys(req.Values))
	}
}

func normalizeNumbers(v any) any {
	switch tv := v.(type) {
	case json.Number:
		if i, err := tv.Int64(); err == nil {
			return i
		}

		if f, err := tv.Float64(); err == nil {
			return f
		}

		return tv.String()

	case map[string]any:
		for k, item := range tv {
			tv[k] = normalizeNumbers(item)
		}

		return tv

	case []any:
		for i, item := range tv {
			tv[i] = normalizeNumbers(item)
		}

		return tv

	default:
		return v
	}
}
