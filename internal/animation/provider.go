// Package animation holds the animation providers (CSS, SMIL, JS), the
// registry that picks among them, and the orchestrating service the
// HTTP layer and CLI call into.
package animation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"logoforge/pkg/models"
	"logoforge/pkg/svgdom"
)

// Provider ids are fixed; the registry's selection policy switches on
// them.
const (
	ProviderCSS  = "css"
	ProviderSMIL = "smil"
	ProviderJS   = "js"
)

// Provider is one interchangeable animation-generation strategy. The
// input SVG is already sanitized and optimized; Animate must either
// return a well-formed SVG document or an error, never a broken
// artifact.
type Provider interface {
	ID() string
	Name() string
	Supports(t models.AnimationType) bool
	Animate(ctx context.Context, svg string, opts models.AnimationOptions) (*models.AnimatedSVGLogo, error)
}

// parseRoot parses an SVG document and verifies the root element.
func parseRoot(svg string) (*svgdom.Node, error) {
	root, err := svgdom.Parse(svg)
	if err != nil {
		return nil, err
	}
	if root.Name != "svg" {
		return nil, fmt.Errorf("root element is <%s>, expected <svg>", root.Name)
	}
	return root, nil
}

// newToken returns a collision-resistant identifier usable in CSS
// class names, keyframe names and element ids.
func newToken(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + id[:8]
}

// elements a provider may auto-target when the caller names none.
var autoTargetNames = []string{
	"path", "rect", "circle", "ellipse", "polygon", "polyline", "g", "text",
}

// autoTargets lists the animatable descendant elements of root in
// document order, excluding root itself.
func autoTargets(root *svgdom.Node) []*svgdom.Node {
	all := root.FindAll(autoTargetNames...)
	out := all[:0]
	for _, e := range all {
		if e != root {
			out = append(out, e)
		}
	}
	return out
}

// resolveTargets maps explicit element ids to nodes, silently skipping
// ids that do not exist in the document.
func resolveTargets(root *svgdom.Node, ids []string) []*svgdom.Node {
	var out []*svgdom.Node
	for _, id := range ids {
		if n := root.FindByID(id); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// sequentialTargets picks the element set for a sequential animation:
// explicit sequence order first, then explicit elements, then every
// animatable element.
func sequentialTargets(root *svgdom.Node, opts models.AnimationOptions) []*svgdom.Node {
	if len(opts.SequenceOrder) > 0 {
		return resolveTargets(root, opts.SequenceOrder)
	}
	if len(opts.Elements) > 0 {
		return resolveTargets(root, opts.Elements)
	}
	return autoTargets(root)
}

// addClass appends a class to an element, preserving any class value
// the caller already set.
func addClass(n *svgdom.Node, class string) {
	existing := n.AttrValue("class")
	if existing == "" {
		n.SetAttr("class", class)
		return
	}
	for _, c := range strings.Fields(existing) {
		if c == class {
			return
		}
	}
	n.SetAttr("class", existing+" "+class)
}

// transformOrigin returns the caller-supplied origin or the default.
func transformOrigin(opts models.AnimationOptions) string {
	if strings.TrimSpace(opts.TransformOrigin) != "" {
		return opts.TransformOrigin
	}
	return "center center"
}

// centerOf computes the document center from viewBox when present,
// falling back to width/height. ok is false when neither is usable.
func centerOf(root *svgdom.Node) (cx, cy float64, ok bool) {
	if vb, found := svgdom.ParseViewBox(root.AttrValue("viewBox")); found {
		return vb.X + vb.W/2, vb.Y + vb.H/2, true
	}
	w, wok := svgdom.ParseLength(root.AttrValue("width"))
	h, hok := svgdom.ParseLength(root.AttrValue("height"))
	if wok && hok && w > 0 && h > 0 {
		return w / 2, h / 2, true
	}
	return 0, 0, false
}
