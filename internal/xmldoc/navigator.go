package xmldoc

import (
	"strings"

	"github.com/antchfx/xpath"
)

// navNode is one node of the materialized navigation tree built over an
// Object. The object tree itself has no parent or sibling links, so Select
// snapshots it into linked nodes before evaluating an expression. The source
// value is kept on each element node so matches can be handed back to the
// caller in document form.
type navNode struct {
	typ      xpath.NodeType
	name     string
	text     string
	attrs    []attrPair
	src      any
	parent   *navNode
	children []*navNode
}

func buildNavTree(doc *Object) *navNode {
	root := &navNode{typ: xpath.RootNode, src: doc}
	appendChildren(root, doc)
	return root
}

func appendChildren(parent *navNode, obj *Object) {
	for _, key := range obj.Keys() {
		if strings.HasPrefix(key, "@") {
			parent.attrs = append(parent.attrs, attrPair{name: key[1:], value: obj.Text(key)})
			continue
		}
		value, _ := obj.Get(key)
		for _, item := range List(value) {
			appendChild(parent, key, item)
		}
	}
}

func appendChild(parent *navNode, name string, value any) {
	if name == "#text" {
		if s, ok := value.(string); ok && s != "" {
			parent.children = append(parent.children, &navNode{
				typ: xpath.TextNode, text: s, src: s, parent: parent,
			})
		}
		return
	}

	node := &navNode{typ: xpath.ElementNode, name: name, src: value, parent: parent}
	parent.children = append(parent.children, node)
	switch v := value.(type) {
	case string:
		if v != "" {
			node.children = append(node.children, &navNode{
				typ: xpath.TextNode, text: v, src: v, parent: node,
			})
		}
	case *Object:
		appendChildren(node, v)
	}
}

func (n *navNode) value() string {
	if n.typ == xpath.TextNode {
		return n.text
	}
	var b strings.Builder
	for _, child := range n.children {
		b.WriteString(child.value())
	}
	return b.String()
}

// Navigator adapts the object tree to xpath.NodeNavigator. A navigator
// positioned on an attribute has attr >= 0.
type Navigator struct {
	root *navNode
	cur  *navNode
	attr int
}

// NewNavigator returns a navigator positioned on the document root.
func NewNavigator(doc *Object) *Navigator {
	root := buildNavTree(doc)
	return &Navigator{root: root, cur: root, attr: -1}
}

// Current returns the source value underlying the navigator position.
func (nav *Navigator) Current() any {
	if nav.attr >= 0 {
		return nav.cur.attrs[nav.attr].value
	}
	return nav.cur.src
}

func (nav *Navigator) NodeType() xpath.NodeType {
	if nav.attr >= 0 {
		return xpath.AttributeNode
	}
	return nav.cur.typ
}

func (nav *Navigator) LocalName() string {
	if nav.attr >= 0 {
		return nav.cur.attrs[nav.attr].name
	}
	return nav.cur.name
}

func (nav *Navigator) Prefix() string { return "" }

func (nav *Navigator) Value() string {
	if nav.attr >= 0 {
		return nav.cur.attrs[nav.attr].value
	}
	return nav.cur.value()
}

func (nav *Navigator) Copy() xpath.NodeNavigator {
	clone := *nav
	return &clone
}

func (nav *Navigator) MoveToRoot() {
	nav.cur = nav.root
	nav.attr = -1
}

func (nav *Navigator) MoveToParent() bool {
	if nav.attr >= 0 {
		nav.attr = -1
		return true
	}
	if nav.cur.parent == nil {
		return false
	}
	nav.cur = nav.cur.parent
	return true
}

func (nav *Navigator) MoveToNextAttribute() bool {
	if nav.attr+1 >= len(nav.cur.attrs) {
		return false
	}
	nav.attr++
	return true
}

func (nav *Navigator) MoveToChild() bool {
	if nav.attr >= 0 || len(nav.cur.children) == 0 {
		return false
	}
	nav.cur = nav.cur.children[0]
	return true
}

func (nav *Navigator) MoveToFirst() bool {
	if nav.attr >= 0 || nav.cur.parent == nil {
		return false
	}
	nav.cur = nav.cur.parent.children[0]
	return true
}

func (nav *Navigator) MoveToNext() bool {
	if nav.attr >= 0 {
		return false
	}
	sibling := nav.sibling(+1)
	if sibling == nil {
		return false
	}
	nav.cur = sibling
	return true
}

func (nav *Navigator) MoveToPrevious() bool {
	if nav.attr >= 0 {
		return false
	}
	sibling := nav.sibling(-1)
	if sibling == nil {
		return false
	}
	nav.cur = sibling
	return true
}

func (nav *Navigator) sibling(offset int) *navNode {
	parent := nav.cur.parent
	if parent == nil {
		return nil
	}
	for i, child := range parent.children {
		if child == nav.cur {
			j := i + offset
			if j < 0 || j >= len(parent.children) {
				return nil
			}
			return parent.children[j]
		}
	}
	return nil
}

func (nav *Navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*Navigator)
	if !ok || o.root != nav.root {
		return false
	}
	nav.cur = o.cur
	nav.attr = o.attr
	return true
}

// Select evaluates an XPath expression against the document and returns the
// matched source values in document order. Element matches come back as
// *Object or string depending on the underlying value; attribute matches as
// their string value.
func Select(doc *Object, expr string) ([]any, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, err
	}
	iter := compiled.Select(NewNavigator(doc))
	var out []any
	for iter.MoveNext() {
		nav := iter.Current().(*Navigator)
		out = append(out, nav.Current())
	}
	return out, nil
}

// SelectObjects evaluates expr and keeps only the object-valued matches.
func SelectObjects(doc *Object, expr string) ([]*Object, error) {
	matches, err := Select(doc, expr)
	if err != nil {
		return nil, err
	}
	out := make([]*Object, 0, len(matches))
	for _, m := range matches {
		if obj, ok := m.(*Object); ok {
			out = append(out, obj)
		}
	}
	return out, nil
}
