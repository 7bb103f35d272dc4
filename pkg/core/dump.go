package core

import (
	"reflect"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Kind returns the node's type name without package or pointer, e.g. "BinaryExpr".
func Kind(n Node) string {
	if n == nil {
		return "nil"
	}
	t := reflect.TypeOf(n)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

var (
	nodeType      = reflect.TypeOf((*Node)(nil)).Elem()
	tokenTypeType = reflect.TypeOf(token.TokenType(0))
	nodeInfoType  = reflect.TypeOf(NodeInfo{})
)

// Dump converts a tree into plain maps, slices and scalars suitable for JSON
// or YAML encoding. Every node map carries its kind under "node"; zero-valued
// fields are omitted.
func Dump(n Node) any {
	if n == nil {
		return nil
	}
	return dumpValue(reflect.ValueOf(n))
}

func dumpValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return dumpValue(v.Elem())
	case reflect.Struct:
		if dt, ok := v.Interface().(DataType); ok {
			return dt.String()
		}
		return dumpStruct(v)
	case reflect.Slice:
		if v.Len() == 0 {
			return nil
		}
		out := make([]any, v.Len())
		for i := range v.Len() {
			out[i] = dumpValue(v.Index(i))
		}
		return out
	case reflect.Bool:
		return v.Bool()
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int32, reflect.Int64:
		if v.Type() == tokenTypeType {
			return token.TokenType(v.Int()).String()
		}
		if s, ok := v.Interface().(interface{ String() string }); ok {
			return s.String()
		}
		return v.Int()
	}
	return v.Interface()
}

func dumpStruct(v reflect.Value) map[string]any {
	t := v.Type()
	out := make(map[string]any, t.NumField()+1)
	if reflect.PointerTo(t).Implements(nodeType) {
		out["node"] = t.Name()
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if f.Type == nodeInfoType {
			if span := fv.Interface().(NodeInfo).Span; span.Start.IsValid() {
				out["pos"] = span.Start.String()
			}
			continue
		}
		if fv.IsZero() {
			continue
		}
		out[snakeCase(f.Name)] = dumpValue(fv)
	}
	return out
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
