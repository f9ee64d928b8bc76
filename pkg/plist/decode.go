package plist

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// DateFormat is the layout of <date> elements.
const DateFormat = "2006-01-02T15:04:05Z"

// Unmarshal parses an XML property list and returns its top-level value.
func Unmarshal(data []byte) (any, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("malformed plist: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "plist" {
		return nil, fmt.Errorf("malformed plist: missing <plist> root element")
	}

	children := root.ChildElements()
	if len(children) != 1 {
		return nil, fmt.Errorf("malformed plist: <plist> must contain exactly one value, found %d", len(children))
	}
	return decodeElement(children[0])
}

// UnmarshalDict parses a property list whose top-level value is a <dict>.
func UnmarshalDict(data []byte) (map[string]any, error) {
	v, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	dict, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("malformed plist: top-level value is %T, not a dict", v)
	}
	return dict, nil
}

func decodeElement(el *etree.Element) (any, error) {
	switch el.Tag {
	case "dict":
		return decodeDict(el)
	case "array":
		children := el.ChildElements()
		items := make([]any, 0, len(children))
		for _, child := range children {
			v, err := decodeElement(child)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case "string":
		return el.Text(), nil
	case "integer":
		text := strings.TrimSpace(el.Text())
		n, err := parseInteger(text)
		if err != nil {
			return nil, fmt.Errorf("malformed plist: bad <integer> %q", text)
		}
		return n, nil
	case "real":
		text := strings.TrimSpace(el.Text())
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed plist: bad <real> %q", text)
		}
		return f, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "date":
		text := strings.TrimSpace(el.Text())
		t, err := time.Parse(DateFormat, text)
		if err != nil {
			return nil, fmt.Errorf("malformed plist: bad <date> %q", text)
		}
		return t, nil
	case "data":
		text := strings.Join(strings.Fields(el.Text()), "")
		b, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("malformed plist: bad <data>: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("malformed plist: unexpected element <%s>", el.Tag)
	}
}

func decodeDict(el *etree.Element) (map[string]any, error) {
	children := el.ChildElements()
	if len(children)%2 != 0 {
		return nil, fmt.Errorf("malformed plist: <dict> has a key without a value")
	}

	dict := make(map[string]any, len(children)/2)
	for i := 0; i < len(children); i += 2 {
		keyEl := children[i]
		if keyEl.Tag != "key" {
			return nil, fmt.Errorf("malformed plist: expected <key> in <dict>, found <%s>", keyEl.Tag)
		}
		v, err := decodeElement(children[i+1])
		if err != nil {
			return nil, err
		}
		dict[keyEl.Text()] = v
	}
	return dict, nil
}

// parseInteger reads decimal, or hexadecimal with a 0x prefix. Leading
// zeros do not select octal.
func parseInteger(text string) (int64, error) {
	digits, neg := strings.CutPrefix(text, "-")
	if rest, ok := strings.CutPrefix(strings.ToLower(digits), "0x"); ok {
		if strings.HasPrefix(rest, "-") || strings.HasPrefix(rest, "+") {
			return 0, strconv.ErrSyntax
		}
		if neg {
			rest = "-" + rest
		}
		return strconv.ParseInt(rest, 16, 64)
	}
	return strconv.ParseInt(text, 10, 64)
}
