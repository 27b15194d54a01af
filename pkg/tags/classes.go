package tags

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Token is a single class or attribute token. Unlike a string class value it
// is never split on whitespace.
type Token string

// MergeClasses returns the deduplicated, ascending, space-separated union of
// the class tokens in classes.
//
// A Token is one token, a string is split on whitespace and every element of
// a slice is stringified as one token. Nil values and values of any other
// type are ignored.
//
//	MergeClasses("alert", []string{"alert", "alert-info"}) // "alert alert-info"
//	MergeClasses("b a", Token("c"))                        // "a b c"
func MergeClasses(classes ...any) string {
	seen := make(map[string]bool)
	var tokens []string
	add := func(tok string) {
		if tok == "" || seen[tok] {
			return
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}

	for _, c := range classes {
		switch v := c.(type) {
		case nil:
		case Token:
			add(string(v))
		case string:
			for _, tok := range strings.Fields(v) {
				add(tok)
			}
		case []string:
			for _, tok := range v {
				add(tok)
			}
		case []Token:
			for _, tok := range v {
				add(string(tok))
			}
		case []any:
			for _, el := range v {
				add(stringify(el))
			}
		default:
			rv := reflect.ValueOf(c)
			if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
				for i := 0; i < rv.Len(); i++ {
					add(stringify(rv.Index(i).Interface()))
				}
			}
		}
	}

	sort.Strings(tokens)
	return strings.TrimSpace(strings.Join(tokens, " "))
}

// MergeAttrClasses merges classes into the class entry of attrs and returns
// attrs. When the merged value is empty the class entry is removed, so it is
// not rendered as class="". A nil attrs is replaced by a new map.
func MergeAttrClasses(attrs Attrs, classes ...any) Attrs {
	if attrs == nil {
		attrs = Attrs{}
	}
	merged := MergeClasses(append([]any{attrs[ClassKey]}, classes...)...)
	if merged == "" {
		delete(attrs, ClassKey)
		return attrs
	}
	attrs[ClassKey] = merged
	return attrs
}

// stringify renders a single value the way attribute values are rendered.
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case Token:
		return string(s)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
