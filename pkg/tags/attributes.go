package tags

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Attrs maps attribute names to values.
//
// Values may be strings, Tokens, booleans, numbers, slices (joined with "_")
// or, under DataKey, a nested map expanded to data-* attributes.
type Attrs map[string]any

// Reserved attribute keys.
const (
	// NewlineKey overrides the newline policy of one tag. It is never rendered.
	NewlineKey = "newline"
	// DataKey holds a map expanded to data-<key> attributes.
	DataKey = "data"
	// ClassKey is the class attribute.
	ClassKey = "class"
)

// Clone returns a shallow copy of a. A nil a yields nil.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// NormalizeAttributes normalizes attrs against the default tables.
func NormalizeAttributes(attrs Attrs) string {
	return DefaultTables().Normalize(attrs)
}

// Normalize renders attrs as an attribute string with a leading space, or ""
// when nothing is left to render. attrs is not modified.
//
// The newline key is dropped, a data map is expanded to data-* keys and
// boolean attributes are mirrored (checked: true becomes checked="checked")
// or removed when their value is anything but true. Keys are emitted in
// ascending order.
func (t *Tables) Normalize(attrs Attrs) string {
	if len(attrs) == 0 {
		return ""
	}

	work := attrs.Clone()
	delete(work, NewlineKey)

	if value, ok := work[DataKey]; ok {
		if entries, isMap := dataMap(value); isMap {
			delete(work, DataKey)
			for k, v := range entries {
				work[DataKey+"-"+k] = v
			}
		} else if value == nil || value == false {
			delete(work, DataKey)
		}
	}

	for name, val := range work {
		if !t.IsBooleanAttr(name) {
			continue
		}
		if val == true {
			work[name] = name
		} else {
			delete(work, name)
		}
	}

	if len(work) == 0 {
		return ""
	}
	return " " + FormatAttributes(work, false)
}

// FormatAttributes renders attrs as key="value" pairs in ascending key
// order, separated by single spaces. Slice values are joined with "_" and
// nil renders as an empty value. With skipBlank set, blank values are left
// out.
func FormatAttributes(attrs Attrs, skipBlank bool) string {
	keys := make([]string, 0, len(attrs))
	for k, v := range attrs {
		if skipBlank && isBlank(v) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(formatValue(attrs[k]))
		b.WriteByte('"')
	}
	return b.String()
}

// formatValue renders one attribute value.
func formatValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case Token:
		return string(s)
	case []string:
		return strings.Join(s, "_")
	case []Token:
		parts := make([]string, len(s))
		for i, tok := range s {
			parts[i] = string(tok)
		}
		return strings.Join(parts, "_")
	case []any:
		parts := make([]string, len(s))
		for i, el := range s {
			parts[i] = stringify(el)
		}
		return strings.Join(parts, "_")
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = stringify(rv.Index(i).Interface())
		}
		return strings.Join(parts, "_")
	}
	return stringify(v)
}

// dataMap returns the entries of a data attribute value when it is a map.
func dataMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Attrs:
		return m, true
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
	}
	return out, true
}

// isBlank reports whether v is nil, false, a whitespace-only string or an
// empty collection.
func isBlank(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case bool:
		return !s
	case string:
		return strings.TrimSpace(s) == ""
	case Token:
		return strings.TrimSpace(string(s)) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}
