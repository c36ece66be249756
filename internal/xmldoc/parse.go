package xmldoc

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Parse decodes an XML document into its ordered-object form. The returned
// object has exactly one key, the root element name. Character data directly
// inside an element that also carries children or attributes is stored under
// "#text"; an element with only character data parses to a plain string.
func Parse(data string) (*Object, error) {
	decoder := xml.NewDecoder(strings.NewReader(data))

	root := NewObject()
	var rootName string
	for {
		tok, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("malformed document: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		rootName = start.Name.Local
		value, err := parseElement(decoder, start)
		if err != nil {
			return nil, err
		}
		root.Set(rootName, value)
		break
	}
	if rootName == "" {
		return nil, fmt.Errorf("document has no root element")
	}
	return root, nil
}

// parseElement consumes the content of start up to its matching end tag and
// returns either a string (pure text element) or an *Object.
func parseElement(decoder *xml.Decoder, start xml.StartElement) (any, error) {
	obj := NewObject()
	for _, attr := range start.Attr {
		if attr.Name.Space == "xmlns" {
			// Prefixed namespace declarations are not carried through.
			continue
		}
		obj.Set("@"+attr.Name.Local, attr.Value)
	}

	var text strings.Builder
	hasChildren := false
	for {
		tok, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("malformed element %s: %w", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			hasChildren = true
			child, err := parseElement(decoder, t)
			if err != nil {
				return nil, err
			}
			obj.Append(t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			content := strings.TrimSpace(text.String())
			if !hasChildren && obj.Len() == 0 {
				// Pure text leaf, including the empty element case.
				return content, nil
			}
			if content != "" {
				obj.Set("#text", content)
			}
			return obj, nil
		}
	}
}
