package yamlrender

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

const indentUnit = "  "

// Render writes v as block YAML starting at indent 0. Mapping keys are
// emitted in insertion order for *Map and sorted for plain Go maps; nil
// values are skipped entirely.
func Render(v any) string {
	var b strings.Builder
	switch n := normalize(v).(type) {
	case nil:
	case *Map:
		writeMap(&b, n, 0)
	case []any:
		for _, item := range n {
			writeItem(&b, item, 0)
		}
	default:
		b.WriteString(scalar(n))
		b.WriteString("\n")
	}
	return b.String()
}

// Join builds a multi-document stream from already rendered documents.
func Join(docs ...string) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		if d == "" {
			continue
		}
		if !strings.HasSuffix(d, "\n") {
			d += "\n"
		}
		parts = append(parts, d)
	}
	return strings.Join(parts, "---\n")
}

func pad(indent int) string {
	return strings.Repeat(indentUnit, indent)
}

func writeMap(b *strings.Builder, m *Map, indent int) {
	for _, key := range m.keys {
		v := normalize(m.values[key])
		if v == nil {
			continue
		}
		prefix := pad(indent) + scalarKey(key) + ":"
		switch n := v.(type) {
		case *Map:
			if n.Len() == 0 {
				b.WriteString(prefix + " {}\n")
				continue
			}
			b.WriteString(prefix + "\n")
			writeMap(b, n, indent+1)
		case []any:
			if len(n) == 0 {
				b.WriteString(prefix + " []\n")
				continue
			}
			b.WriteString(prefix + "\n")
			for _, item := range n {
				writeItem(b, item, indent+1)
			}
		default:
			b.WriteString(prefix + " " + scalar(n) + "\n")
		}
	}
}

// writeItem emits one sequence element. Mapping bodies sit at indent+1 so
// their first key can share the line with the dash.
func writeItem(b *strings.Builder, item any, indent int) {
	dash := pad(indent) + "- "
	switch n := normalize(item).(type) {
	case nil:
		b.WriteString(dash + "null\n")
	case *Map:
		var body strings.Builder
		writeMap(&body, n, indent+1)
		if body.Len() == 0 {
			b.WriteString(dash + "{}\n")
			return
		}
		b.WriteString(dash)
		b.WriteString(strings.TrimPrefix(body.String(), pad(indent+1)))
	case []any:
		if len(n) == 0 {
			b.WriteString(dash + "[]\n")
			return
		}
		b.WriteString(strings.TrimRight(dash, " ") + "\n")
		for _, sub := range n {
			writeItem(b, sub, indent+1)
		}
	default:
		b.WriteString(dash + scalar(n) + "\n")
	}
}

func scalarKey(k string) string {
	return Quote(k)
}

func scalar(v any) string {
	switch s := v.(type) {
	case string:
		return Quote(s)
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case uint64:
		return strconv.FormatUint(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case fmt.Stringer:
		return Quote(s.String())
	default:
		return Quote(fmt.Sprint(s))
	}
}

// normalize folds the accepted value shapes into *Map, []any or a scalar,
// returning nil for anything that should not be emitted.
func normalize(v any) any {
	switch n := v.(type) {
	case nil:
		return nil
	case *Map:
		if n == nil {
			return nil
		}
		return n
	case map[string]string:
		if n == nil {
			return nil
		}
		m := NewMap()
		for _, k := range sortedKeys(n) {
			m.Set(k, n[k])
		}
		return m
	case map[string]any:
		if n == nil {
			return nil
		}
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, n[k])
		}
		return m
	case []any:
		if n == nil {
			return nil
		}
		return n
	case string, bool, int, int32, int64, uint64, float64:
		return n
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
		}
		return m
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	}
	return v
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
