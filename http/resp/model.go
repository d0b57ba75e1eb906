package resp

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ConventionName derives the model attribute name of v from its type:
//
//	Order{}        => "order"
//	&Order{}       => "order"
//	[]Order{}      => "orderList"
//	"hello"        => "string"
//	Page[Order]{}  => "page"
//	map[string]int => "map"
//
// A leading acronym is left as is, e.g., URL{} => "URL".
func ConventionName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}

	var suffix string
	if k := t.Kind(); k == reflect.Slice || k == reflect.Array {
		suffix = "List"
		t = t.Elem()
		if rv := reflect.ValueOf(v); t.Kind() == reflect.Interface && rv.Len() > 0 && !rv.Index(0).IsNil() {
			t = rv.Index(0).Elem().Type()
		}
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}

	if name == "" {
		name = t.Kind().String()
	}

	return decapitalize(name) + suffix
}

func decapitalize(name string) string {
	first, size := utf8.DecodeRuneInString(name)
	if !unicode.IsUpper(first) {
		return name
	}

	if second, _ := utf8.DecodeRuneInString(name[size:]); unicode.IsUpper(second) {
		return name
	}

	return string(unicode.ToLower(first)) + name[size:]
}
