package plist

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/beevik/etree"
)

const doctype = `DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd"`

// Marshal encodes v as an XML property list, indented with tabs.
func Marshal(v any) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(doctype)
	root := doc.CreateElement("plist")
	root.CreateAttr("version", "1.0")

	if err := encodeValue(root, v); err != nil {
		return nil, err
	}

	doc.IndentTabs()
	return doc.WriteToBytes()
}

func encodeValue(parent *etree.Element, v any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("plist cannot encode a nil value")
	case string:
		parent.CreateElement("string").SetText(val)
	case bool:
		if val {
			parent.CreateElement("true")
		} else {
			parent.CreateElement("false")
		}
	case int:
		parent.CreateElement("integer").SetText(strconv.Itoa(val))
	case int64:
		parent.CreateElement("integer").SetText(strconv.FormatInt(val, 10))
	case int32:
		parent.CreateElement("integer").SetText(strconv.FormatInt(int64(val), 10))
	case uint64:
		parent.CreateElement("integer").SetText(strconv.FormatUint(val, 10))
	case float64:
		parent.CreateElement("real").SetText(strconv.FormatFloat(val, 'g', -1, 64))
	case time.Time:
		parent.CreateElement("date").SetText(val.UTC().Format(DateFormat))
	case []byte:
		parent.CreateElement("data").SetText(base64.StdEncoding.EncodeToString(val))
	case []string:
		arr := parent.CreateElement("array")
		for _, s := range val {
			arr.CreateElement("string").SetText(s)
		}
	case []any:
		arr := parent.CreateElement("array")
		for _, item := range val {
			if err := encodeValue(arr, item); err != nil {
				return err
			}
		}
	case map[string]any:
		return encodeDict(parent, val)
	default:
		return encodeReflect(parent, reflect.ValueOf(v))
	}
	return nil
}

func encodeDict(parent *etree.Element, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dict := parent.CreateElement("dict")
	for _, k := range keys {
		dict.CreateElement("key").SetText(k)
		if err := encodeValue(dict, m[k]); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
	}
	return nil
}

// encodeReflect handles named map and slice types, such as a map type
// declared over map[string]any.
func encodeReflect(parent *etree.Element, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("plist cannot encode map with %s keys", rv.Type().Key())
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return encodeDict(parent, m)
	case reflect.Slice, reflect.Array:
		arr := parent.CreateElement("array")
		for i := 0; i < rv.Len(); i++ {
			if err := encodeValue(arr, rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parent.CreateElement("integer").SetText(strconv.FormatInt(rv.Int(), 10))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parent.CreateElement("integer").SetText(strconv.FormatUint(rv.Uint(), 10))
		return nil
	case reflect.Float32:
		parent.CreateElement("real").SetText(strconv.FormatFloat(rv.Float(), 'g', -1, 32))
		return nil
	case reflect.String:
		parent.CreateElement("string").SetText(rv.String())
		return nil
	default:
		return fmt.Errorf("plist cannot encode value of type %s", rv.Type())
	}
}
