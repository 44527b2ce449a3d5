// Package optimize normalizes a sanitized SVG for animation: it makes
// sure a viewBox exists, gives the root and every animatable element a
// stable id, and strips editor noise the animation providers would
// otherwise trip over. Optimize is idempotent; a second pass reports
// no further modifications.
package optimize

import (
	"fmt"
	"strings"

	"logoforge/pkg/svgdom"
)

// Attributes various editors leave behind that carry no meaning for
// rendering or animation.
var noiseAttrs = []string{
	"data-name",
	"data-old-color",
	"data-original",
	"xmlns:xlink",
	"xml:space",
	"enable-background",
}

// Elements that receive generated ids so providers can target them.
var animatableElements = map[string]struct{}{
	"path": {}, "rect": {}, "circle": {}, "ellipse": {},
	"polygon": {}, "polyline": {}, "g": {}, "text": {},
}

const (
	rootIDPrefix    = "lf-svg"
	elementIDPrefix = "lf-el"
)

// Optimize returns the normalized markup and an audit line per change.
// Input that does not parse is returned unchanged with an error.
func Optimize(svg string) (string, []string, error) {
	root, err := svgdom.Parse(svg)
	if err != nil {
		return svg, nil, fmt.Errorf("optimize: %w", err)
	}
	if root.Name != "svg" {
		return svg, nil, fmt.Errorf("optimize: root element is <%s>, expected <svg>", root.Name)
	}

	var mods []string

	mods = append(mods, stripNoise(root)...)
	mods = append(mods, removeComments(root)...)
	mods = append(mods, collapseGroups(root)...)
	mods = append(mods, ensureViewBox(root)...)
	mods = append(mods, assignIDs(root)...)

	if len(mods) == 0 {
		return svg, nil, nil
	}
	return svgdom.Serialize(root), mods, nil
}

func stripNoise(root *svgdom.Node) []string {
	var mods []string
	root.Walk(func(e *svgdom.Node) bool {
		for _, name := range noiseAttrs {
			if e.RemoveAttr(name) {
				mods = append(mods, fmt.Sprintf("stripped %s from <%s>", name, e.Name))
			}
		}
		return true
	})
	return mods
}

func removeComments(root *svgdom.Node) []string {
	var mods []string
	root.Walk(func(e *svgdom.Node) bool {
		kept := e.Children[:0]
		for _, c := range e.Children {
			if c.Kind == svgdom.CommentNode {
				mods = append(mods, "removed comment node")
				continue
			}
			kept = append(kept, c)
		}
		e.Children = kept
		return true
	})
	return mods
}

// Attributes that make a group structurally significant; such groups
// are never flattened.
var structuralGroupAttrs = []string{"transform", "mask", "clip-path", "filter"}

func groupIsStructural(g *svgdom.Node) bool {
	for _, name := range structuralGroupAttrs {
		if _, ok := g.Attr(name); ok {
			return true
		}
	}
	return false
}

// collapseGroups removes empty <g> elements and flattens single-child
// groups that carry no transform/mask/clip-path/filter. Attributes of
// a removed group move onto the surviving child unless the child
// already defines them. Runs bottom-up so nested trivia collapses in
// one pass.
func collapseGroups(root *svgdom.Node) []string {
	var mods []string

	var rec func(n *svgdom.Node)
	rec = func(n *svgdom.Node) {
		for _, c := range n.ChildElements() {
			rec(c)
		}

		kept := n.Children[:0]
		for _, c := range n.Children {
			if c.Kind != svgdom.ElementNode || c.Name != "g" {
				kept = append(kept, c)
				continue
			}
			elems := c.ChildElements()
			switch {
			case len(elems) == 0 && strings.TrimSpace(c.TextContent()) == "":
				mods = append(mods, "removed empty <g> element")
			case len(elems) == 1 && !groupIsStructural(c) && strings.TrimSpace(onlyText(c)) == "":
				child := elems[0]
				for _, a := range c.Attrs {
					if _, exists := child.Attr(a.Name); !exists {
						child.SetAttr(a.Name, a.Value)
					}
				}
				mods = append(mods, fmt.Sprintf("flattened single-child <g> around <%s>", child.Name))
				kept = append(kept, child)
			default:
				kept = append(kept, c)
			}
		}
		n.Children = kept
	}
	rec(root)

	return mods
}

// onlyText returns the text directly inside n, not counting element
// children's content.
func onlyText(n *svgdom.Node) string {
	var b strings.Builder
	for _, c := range n.Children {
		if c.Kind == svgdom.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// ensureViewBox derives viewBox from width/height when both are
// present and numeric. Otherwise the attribute stays absent and the
// analyzer flags it.
func ensureViewBox(root *svgdom.Node) []string {
	if _, ok := root.Attr("viewBox"); ok {
		return nil
	}
	w, wok := svgdom.ParseLength(root.AttrValue("width"))
	h, hok := svgdom.ParseLength(root.AttrValue("height"))
	if !wok || !hok || w <= 0 || h <= 0 {
		return nil
	}
	vb := fmt.Sprintf("0 0 %g %g", w, h)
	root.SetAttr("viewBox", vb)
	return []string{fmt.Sprintf("added viewBox=%q derived from width/height", vb)}
}

// assignIDs gives the root and every unidentified animatable element a
// deterministic id, skipping anything that would collide with ids the
// document already uses.
func assignIDs(root *svgdom.Node) []string {
	taken := make(map[string]struct{})
	root.Walk(func(e *svgdom.Node) bool {
		if id := e.AttrValue("id"); id != "" {
			taken[id] = struct{}{}
		}
		return true
	})

	nextID := func(prefix string, counter *int) string {
		for {
			id := fmt.Sprintf("%s-%d", prefix, *counter)
			*counter++
			if _, clash := taken[id]; !clash {
				taken[id] = struct{}{}
				return id
			}
		}
	}

	var mods []string
	var rootCounter, elemCounter int

	if root.AttrValue("id") == "" {
		id := nextID(rootIDPrefix, &rootCounter)
		root.SetAttr("id", id)
		mods = append(mods, fmt.Sprintf("assigned id %q to root <svg>", id))
	}

	root.Walk(func(e *svgdom.Node) bool {
		if e == root {
			return true
		}
		if _, animatable := animatableElements[e.Name]; !animatable {
			return true
		}
		if e.AttrValue("id") != "" {
			return true
		}
		id := nextID(elementIDPrefix, &elemCounter)
		e.SetAttr("id", id)
		mods = append(mods, fmt.Sprintf("assigned id %q to <%s>", id, e.Name))
		return true
	})

	return mods
}
