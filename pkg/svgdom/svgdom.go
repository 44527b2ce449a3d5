// Package svgdom is a minimal SVG-aware parse-mutate-serialize utility.
// It builds a small element tree (elements, text, comments) on top of
// encoding/xml so callers can manipulate structured nodes instead of
// splicing markup strings. It is not a full DOM: namespaces are mapped
// back to the handful of prefixes real-world SVG uses (xlink, xml,
// xmlns declarations) and everything else is kept by local name.
package svgdom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
	CommentNode
)

// Attr is a single attribute. Name keeps the serialized form,
// prefix included ("xlink:href", "xmlns", "viewBox").
type Attr struct {
	Name  string
	Value string
}

// Node is one node of the parsed tree. Name/Attrs/Children are only
// meaningful for ElementNode; Data holds text or comment content.
type Node struct {
	Kind     NodeKind
	Name     string
	Attrs    []Attr
	Children []*Node
	Data     string
}

const (
	xlinkNS = "http://www.w3.org/1999/xlink"
	xmlNS   = "http://www.w3.org/XML/1998/namespace"
)

// Parse decodes an SVG (or any XML) document into a node tree and
// returns the root element. Processing instructions, directives and
// leading/trailing junk outside the root are dropped. A malformed
// document or a document with no root element is an error.
func Parse(raw string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))
	dec.Strict = true
	dec.Entity = xml.HTMLEntity

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if len(stack) != 0 {
				return nil, fmt.Errorf("svgdom: unexpected EOF inside <%s>", stack[len(stack)-1].Name)
			}
			break
		}
		if err != nil {
			return nil, fmt.Errorf("svgdom: parse: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Kind: ElementNode, Name: t.Name.Local}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: attrName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("svgdom: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("svgdom: unexpected </%s>", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue // whitespace around the root
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{Kind: TextNode, Data: string(t)})
		case xml.Comment:
			if len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{Kind: CommentNode, Data: string(t)})
		}
	}

	if root == nil {
		return nil, fmt.Errorf("svgdom: no root element")
	}
	return root, nil
}

// attrName maps a resolved xml.Name back to its serialized form.
func attrName(n xml.Name) string {
	switch n.Space {
	case "":
		return n.Local
	case "xmlns":
		return "xmlns:" + n.Local
	case xlinkNS, "xlink":
		return "xlink:" + n.Local
	case xmlNS, "xml":
		return "xml:" + n.Local
	default:
		// Unknown namespace: keep the local name so the attribute
		// survives a round trip even if the prefix is lost.
		return n.Local
	}
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the attribute value or "" when absent.
func (n *Node) AttrValue(name string) string {
	v, _ := n.Attr(name)
	return v
}

// SetAttr sets or replaces an attribute, preserving attribute order.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttr deletes an attribute, reporting whether it was present.
func (n *Node) RemoveAttr(name string) bool {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

// ChildElements returns the element children only.
func (n *Node) ChildElements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// AppendChild appends a child node.
func (n *Node) AppendChild(c *Node) {
	n.Children = append(n.Children, c)
}

// PrependChild inserts a child node before all existing children.
func (n *Node) PrependChild(c *Node) {
	n.Children = append([]*Node{c}, n.Children...)
}

// RemoveChild deletes the first occurrence of c from n's children.
func (n *Node) RemoveChild(c *Node) bool {
	for i, ch := range n.Children {
		if ch == c {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return true
		}
	}
	return false
}

// Walk visits n and every descendant element in document order. The
// visit function returning false prunes the subtree below that node.
func (n *Node) Walk(visit func(*Node) bool) {
	if n.Kind != ElementNode {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			c.Walk(visit)
		}
	}
}

// FindAll returns every descendant element (including n itself) whose
// tag is one of names, in document order.
func (n *Node) FindAll(names ...string) []*Node {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	var out []*Node
	n.Walk(func(e *Node) bool {
		if _, ok := set[e.Name]; ok {
			out = append(out, e)
		}
		return true
	})
	return out
}

// FindByID returns the descendant element with the given id, or nil.
func (n *Node) FindByID(id string) *Node {
	var found *Node
	n.Walk(func(e *Node) bool {
		if found != nil {
			return false
		}
		if e.AttrValue("id") == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// TextContent concatenates all descendant text nodes.
func (n *Node) TextContent() string {
	var b strings.Builder
	var rec func(*Node)
	rec = func(node *Node) {
		for _, c := range node.Children {
			switch c.Kind {
			case TextNode:
				b.WriteString(c.Data)
			case ElementNode:
				rec(c)
			}
		}
	}
	if n.Kind == TextNode {
		return n.Data
	}
	rec(n)
	return b.String()
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	cp := &Node{Kind: n.Kind, Name: n.Name, Data: n.Data}
	if n.Attrs != nil {
		cp.Attrs = make([]Attr, len(n.Attrs))
		copy(cp.Attrs, n.Attrs)
	}
	for _, c := range n.Children {
		cp.Children = append(cp.Children, c.Clone())
	}
	return cp
}

// Serialize renders the subtree rooted at n back to markup. Attribute
// order is preserved from parsing, so serialization is deterministic.
func Serialize(n *Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	switch n.Kind {
	case TextNode:
		b.WriteString(escapeText(n.Data))
	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->")
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(n.Name)
		for _, a := range n.Attrs {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			b.WriteString(`="`)
			b.WriteString(escapeAttr(a.Value))
			b.WriteByte('"')
		}
		if len(n.Children) == 0 {
			b.WriteString("/>")
			return
		}
		b.WriteByte('>')
		for _, c := range n.Children {
			writeNode(b, c)
		}
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteByte('>')
	}
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var attrEscaper = strings.NewReplacer(
	"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
)

func escapeText(s string) string { return textEscaper.Replace(s) }
func escapeAttr(s string) string { return attrEscaper.Replace(s) }

// ViewBox is a parsed viewBox attribute.
type ViewBox struct {
	X, Y, W, H float64
}

// ParseViewBox parses "minX minY width height" (commas tolerated).
func ParseViewBox(s string) (ViewBox, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	if len(fields) != 4 {
		return ViewBox{}, false
	}
	var vals [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, false
		}
		vals[i] = v
	}
	return ViewBox{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, true
}

// ParseLength parses an SVG length attribute ("120", "120px", "12.5"),
// ignoring a trailing px unit. Percentages and other units fail.
func ParseLength(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
