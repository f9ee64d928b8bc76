// Package codec decodes descriptor files and encodes catalogs. Descriptors
// ending in .yaml or .yml are read as YAML; everything else is read as an
// XML property list. Catalogs are always written as property lists.
package codec

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/makecatalogs/pkg/errors"
	"github.com/arthur-debert/makecatalogs/pkg/plist"
	"github.com/arthur-debert/makecatalogs/pkg/types"
	"gopkg.in/yaml.v3"
)

// Format identifies a descriptor serialization.
type Format string

const (
	FormatPlist Format = "plist"
	FormatYAML  Format = "yaml"
)

// FormatFor picks the format for a descriptor file by extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatPlist
	}
}

// Decode parses data as a single mapping in the given format.
func Decode(data []byte, format Format) (map[string]any, error) {
	switch format {
	case FormatYAML:
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("malformed yaml: %w", err)
		}
		value, err := normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("malformed yaml: %w", err)
		}
		dict, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("malformed yaml: top-level value is not a mapping")
		}
		return dict, nil
	default:
		return plist.UnmarshalDict(data)
	}
}

// ReadFile reads and decodes the descriptor at path.
func ReadFile(s types.Storage, path string) (map[string]any, error) {
	data, err := s.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", path).
			WithDetail("path", path)
	}
	dict, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDecode, "cannot decode %s", path).
			WithDetail("path", path)
	}
	return dict, nil
}

// EncodeCatalog encodes a sequence of descriptors as a property list array.
func EncodeCatalog[M ~map[string]any](items []M) ([]byte, error) {
	arr := make([]any, len(items))
	for i, item := range items {
		arr[i] = map[string]any(item)
	}
	data, err := plist.Marshal(arr)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrEncode, "cannot encode catalog")
	}
	return data, nil
}

// normalize converts YAML-decoded values to the plist value model: int
// becomes int64 and non-string mapping keys are stringified. Null has no
// plist form, so null mapping values and sequence items are dropped.
func normalize(v any) (any, error) {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			if err := setValue(m, k, item); err != nil {
				return nil, err
			}
		}
		return m, nil
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			if err := setValue(m, fmt.Sprint(k), item); err != nil {
				return nil, err
			}
		}
		return m, nil
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			if item == nil {
				continue
			}
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	case int:
		return int64(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("integer %d overflows int64", val)
		}
		return int64(val), nil
	default:
		return v, nil
	}
}

func setValue(m map[string]any, key string, item any) error {
	if item == nil {
		return nil
	}
	n, err := normalize(item)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	m[key] = n
	return nil
}
