package xmldoc

import (
	"fmt"
	"strings"
)

const (
	xmlDeclaration = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"
	indentUnit     = "  "
)

// Marshal renders the document as pretty-printed UTF-8 XML. Elements with no
// content render as self-closing tags. Element order follows key insertion
// order, so the output for a given tree is byte-identical on every call.
func Marshal(doc *Object) (string, error) {
	if doc == nil || doc.Len() == 0 {
		return "", fmt.Errorf("cannot serialize empty document")
	}

	var b strings.Builder
	b.WriteString(xmlDeclaration)
	for _, key := range doc.Keys() {
		value, _ := doc.Get(key)
		if err := writeValue(&b, key, value, 0); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeValue(b *strings.Builder, name string, value any, depth int) error {
	if strings.HasPrefix(name, "@") || name == "#text" {
		return fmt.Errorf("attribute %s has no parent element", name)
	}

	switch v := value.(type) {
	case nil:
		writeSelfClosing(b, name, nil, depth)
	case string:
		if v == "" {
			writeSelfClosing(b, name, nil, depth)
			return nil
		}
		indent(b, depth)
		b.WriteString("<" + name + ">")
		b.WriteString(escape(v))
		b.WriteString("</" + name + ">\n")
	case []any:
		for _, item := range v {
			if err := writeValue(b, name, item, depth); err != nil {
				return err
			}
		}
	case *Object:
		return writeObject(b, name, v, depth)
	default:
		return fmt.Errorf("element %s holds unsupported value %T", name, value)
	}
	return nil
}

func writeObject(b *strings.Builder, name string, obj *Object, depth int) error {
	var attrs []string
	text := ""
	childCount := 0
	for _, key := range obj.Keys() {
		switch {
		case strings.HasPrefix(key, "@"):
			attrs = append(attrs, key)
		case key == "#text":
			text = obj.Text(key)
		default:
			childCount++
		}
	}

	if childCount == 0 && text == "" {
		writeSelfClosing(b, name, attrPairs(obj, attrs), depth)
		return nil
	}

	indent(b, depth)
	b.WriteString("<" + name)
	writeAttrs(b, attrPairs(obj, attrs))
	b.WriteString(">")

	if childCount == 0 {
		b.WriteString(escape(text))
		b.WriteString("</" + name + ">\n")
		return nil
	}

	b.WriteString("\n")
	if text != "" {
		indent(b, depth+1)
		b.WriteString(escape(text))
		b.WriteString("\n")
	}
	for _, key := range obj.Keys() {
		if strings.HasPrefix(key, "@") || key == "#text" {
			continue
		}
		value, _ := obj.Get(key)
		if err := writeValue(b, key, value, depth+1); err != nil {
			return err
		}
	}
	indent(b, depth)
	b.WriteString("</" + name + ">\n")
	return nil
}

type attrPair struct {
	name  string
	value string
}

func attrPairs(obj *Object, keys []string) []attrPair {
	pairs := make([]attrPair, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, attrPair{name: key[1:], value: obj.Text(key)})
	}
	return pairs
}

func writeSelfClosing(b *strings.Builder, name string, attrs []attrPair, depth int) {
	indent(b, depth)
	b.WriteString("<" + name)
	writeAttrs(b, attrs)
	b.WriteString("/>\n")
}

func writeAttrs(b *strings.Builder, attrs []attrPair) {
	for _, attr := range attrs {
		b.WriteString(" " + attr.name + "=\"" + escapeAttr(attr.value) + "\"")
	}
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indentUnit)
	}
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;")
	return r.Replace(s)
}
