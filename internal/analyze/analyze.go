// Package analyze classifies a sanitized SVG before animation: can it
// be animated at all, how complex is it, and does it satisfy the
// structural prerequisites of the requested animation type.
package analyze

import (
	"fmt"

	"logoforge/pkg/models"
	"logoforge/pkg/svgdom"
)

// Fixed classification thresholds. Not tunable per call.
const (
	moderateElementCount = 200
	complexElementCount  = 500
	moderateGroupDepth   = 3
	complexGroupDepth    = 5
)

// Compatibility is the per-animation-type verdict. Incompatibility is
// advisory: the orchestrator logs it and proceeds.
type Compatibility struct {
	Compatible bool
	Reason     string
}

// Analyze inspects svg for the requested animation type. Animatable is
// false only on structural invalidity (unparseable markup, missing
// <svg> root); everything else lands in Issues.
func Analyze(svg string, t models.AnimationType) models.AnalysisResult {
	root, err := svgdom.Parse(svg)
	if err != nil {
		return models.AnalysisResult{
			Animatable: false,
			Complexity: models.ComplexitySimple,
			Issues:     []string{fmt.Sprintf("SVG does not parse: %v", err)},
		}
	}
	if root.Name != "svg" {
		return models.AnalysisResult{
			Animatable: false,
			Complexity: models.ComplexitySimple,
			Issues:     []string{fmt.Sprintf("root element is <%s>, expected <svg>", root.Name)},
		}
	}

	res := models.AnalysisResult{Animatable: true, Complexity: models.ComplexitySimple}

	var elementCount int
	var hasFilter, hasForeignObject bool
	root.Walk(func(e *svgdom.Node) bool {
		elementCount++
		switch e.Name {
		case "filter":
			hasFilter = true
		case "foreignObject":
			hasForeignObject = true
		}
		return true
	})
	depth := groupDepth(root, 0)

	if elementCount > moderateElementCount || depth > moderateGroupDepth || hasFilter {
		res.Complexity = models.ComplexityModerate
	}
	if elementCount > complexElementCount || depth > complexGroupDepth || hasForeignObject {
		res.Complexity = models.ComplexityComplex
	}

	if _, ok := root.Attr("viewBox"); !ok {
		res.Issues = append(res.Issues, "missing viewBox; transform-origin effects may misbehave")
	}
	if hasFilter {
		res.Issues = append(res.Issues, "contains <filter>; animated filters are expensive to render")
	}
	if hasForeignObject {
		res.Issues = append(res.Issues, "contains <foreignObject>; content inside it cannot be animated")
	}

	if compat := CheckCompatibility(root, t); !compat.Compatible {
		res.Issues = append(res.Issues, compat.Reason)
	}

	return res
}

// CheckCompatibility verifies the structural prerequisite of t against
// an already-parsed document.
func CheckCompatibility(root *svgdom.Node, t models.AnimationType) Compatibility {
	switch t {
	case models.Draw, models.Morph:
		if len(root.FindAll("path")) == 0 {
			return Compatibility{
				Compatible: false,
				Reason:     fmt.Sprintf("animation type %q requires path elements; none found", t),
			}
		}
	case models.Typewriter:
		if len(root.FindAll("text")) == 0 {
			return Compatibility{
				Compatible: false,
				Reason:     fmt.Sprintf("animation type %q requires text elements; none found", t),
			}
		}
	}
	return Compatibility{Compatible: true}
}

// groupDepth returns the deepest <g> nesting level below n.
func groupDepth(n *svgdom.Node, depth int) int {
	max := depth
	for _, c := range n.ChildElements() {
		d := depth
		if c.Name == "g" {
			d++
		}
		if v := groupDepth(c, d); v > max {
			max = v
		}
	}
	return max
}
