package versioning

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Snapshot is the serialized capture of a versionable record: a primary
// blob of named scalar/date/text fields plus zero or more named nested
// collection blobs. Dates travel as RFC 3339 text so a restore round-trips
// them exactly.
type Snapshot struct {
	Data        string
	Collections map[string]string
}

// CaptureFields serializes every json-tagged field of entity except the
// excluded keys. Collection keys are excluded here and captured separately.
func CaptureFields(entity any, exclude ...string) (string, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	for _, key := range exclude {
		delete(fields, key)
	}
	out, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	return string(out), nil
}

// RestoreFields applies every key in data onto entity, field by field.
// Keys absent from the blob leave the live value untouched, as do excluded
// keys and values that no longer decode into their field (typically a date
// that was edited by hand); one bad field never fails the whole restore.
func RestoreFields(entity any, data string, exclude ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return fmt.Errorf("restore: decode snapshot: %w", err)
	}
	for _, key := range exclude {
		delete(fields, key)
	}

	rv := reflect.ValueOf(entity)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("restore: entity must be a non-nil pointer")
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		key := jsonKey(field)
		if key == "" {
			continue
		}
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, rv.Field(i).Addr().Interface()); err != nil {
			continue
		}
	}
	return nil
}

// CaptureCollection serializes a nested collection wholesale.
func CaptureCollection[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	out, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("capture collection: %w", err)
	}
	return string(out), nil
}

// DecodeCollection reconstructs a nested collection from its blob. An empty
// blob means an empty collection, not an error.
func DecodeCollection[T any](blob string) ([]T, error) {
	if strings.TrimSpace(blob) == "" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func jsonKey(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}
