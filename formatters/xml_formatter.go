package formatters

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/faturalab/fatura/api"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// XMLFormatter handles the markup-tree export: one element per field, named
// after the field's JSON name, recursing into nested objects. Array items
// emit one repeated element each, sharing the parent key name. There is no
// attribute or namespace handling. Text content is escaped for & < > so the
// output stays well-formed regardless of what a party typed into a form.
type XMLFormatter struct{}

// NewXMLFormatter creates a new XML formatter.
func NewXMLFormatter() *XMLFormatter {
	return &XMLFormatter{}
}

// Format serializes the invoice under a single <invoice> root element.
func (f *XMLFormatter) Format(inv api.Invoice) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString("<invoice>")
	if err := f.encodeChildren(&sb, reflect.ValueOf(inv)); err != nil {
		return nil, err
	}
	sb.WriteString("</invoice>")
	return []byte(sb.String()), nil
}

// encodeChildren writes the elements for each field of a struct or entry of
// a map. Map keys are sorted so the output is deterministic.
func (f *XMLFormatter) encodeChildren(sb *strings.Builder, v reflect.Value) error {
	v = indirect(v)
	switch v.Kind() {
	case reflect.Struct:
		if v.Type() == reflect.TypeOf(time.Time{}) {
			sb.WriteString(escapeXML(v.Interface().(time.Time).Format(time.RFC3339)))
			return nil
		}
		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			name, omitempty := jsonFieldName(field)
			if name == "-" {
				continue
			}
			fv := v.Field(i)
			if omitempty && fv.IsZero() {
				continue
			}
			if err := f.encodeElement(sb, name, fv); err != nil {
				return err
			}
		}
	case reflect.Map:
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, fmt.Sprint(k.Interface()))
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := f.encodeElement(sb, k, v.MapIndex(reflect.ValueOf(k))); err != nil {
				return err
			}
		}
	default:
		return f.encodeScalar(sb, v)
	}
	return nil
}

// encodeElement writes <name>...</name>, repeating the element once per
// item when the value is a slice or array.
func (f *XMLFormatter) encodeElement(sb *strings.Builder, name string, v reflect.Value) error {
	v = indirect(v)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		for i := 0; i < v.Len(); i++ {
			sb.WriteString("<" + name + ">")
			if err := f.encodeChildren(sb, v.Index(i)); err != nil {
				return err
			}
			sb.WriteString("</" + name + ">")
		}
		return nil
	}

	sb.WriteString("<" + name + ">")
	if err := f.encodeChildren(sb, v); err != nil {
		return err
	}
	sb.WriteString("</" + name + ">")
	return nil
}

func (f *XMLFormatter) encodeScalar(sb *strings.Builder, v reflect.Value) error {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.String:
		sb.WriteString(escapeXML(v.String()))
	case reflect.Bool:
		sb.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		sb.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		sb.WriteString(formatNumber(v.Float()))
	default:
		return fmt.Errorf("cannot serialize %s value to xml", v.Kind())
	}
	return nil
}

// indirect resolves pointers and interfaces down to the concrete value.
func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// jsonFieldName resolves the element name for a struct field from its json
// tag so the XML tree mirrors the structured-data document shape.
func jsonFieldName(field reflect.StructField) (name string, omitempty bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name, false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = field.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty
}

// escapeXML covers the minimal set needed for well-formed element content.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
