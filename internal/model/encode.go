package model

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
)

// encodeFields writes struct value v as a JSON object in field order, then the
// extra keys in sorted order. An omitempty field is skipped when zero, except
// that a non-nil empty slice or map is written as [] or {}: a list decoded
// from [] is re-encoded as [] instead of disappearing.
func encodeFields(v reflect.Value, extra map[string]json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	written := make(map[string]bool)

	write := func(key string, value []byte) {
		if len(written) > 0 {
			buf.WriteByte(',')
		}
		written[key] = true
		name, _ := json.Marshal(key)
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('{')
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, opts, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		field := v.Field(i)
		if opts == "omitempty" && !present(field) {
			continue
		}
		data, err := json.Marshal(field.Interface())
		if err != nil {
			return nil, err
		}
		write(name, data)
	}

	keys := make([]string, 0, len(extra))
	for key := range extra {
		if !written[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		write(key, extra[key])
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// present reports whether an omitempty field carries a value worth writing
func present(field reflect.Value) bool {
	switch field.Kind() {
	case reflect.Slice, reflect.Map:
		return !field.IsNil()
	default:
		return !field.IsZero()
	}
}

func (t TimelineItem) MarshalJSON() ([]byte, error) {
	type alias TimelineItem
	return encodeFields(reflect.ValueOf(alias(t)), nil)
}

func (e Entity) MarshalJSON() ([]byte, error) {
	type alias Entity
	return encodeFields(reflect.ValueOf(alias(e)), nil)
}

func (c Contradiction) MarshalJSON() ([]byte, error) {
	type alias Contradiction
	return encodeFields(reflect.ValueOf(alias(c)), nil)
}

func (h Hypothesis) MarshalJSON() ([]byte, error) {
	type alias Hypothesis
	return encodeFields(reflect.ValueOf(alias(h)), nil)
}

func (g Gap) MarshalJSON() ([]byte, error) {
	type alias Gap
	return encodeFields(reflect.ValueOf(alias(g)), nil)
}

func (v VerificationTask) MarshalJSON() ([]byte, error) {
	type alias VerificationTask
	return encodeFields(reflect.ValueOf(alias(v)), nil)
}

func (s EvidenceStrengthItem) MarshalJSON() ([]byte, error) {
	type alias EvidenceStrengthItem
	return encodeFields(reflect.ValueOf(alias(s)), nil)
}
