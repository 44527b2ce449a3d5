package animation

import (
	"context"
	"fmt"
	"strings"

	"logoforge/pkg/models"
	"logoforge/pkg/svgdom"
)

// SMILProvider renders animations as native SVG animation elements
// (<animate>, <animateTransform>). Output is a single self-contained
// SVG document; no CSS or JS accompanies it.
type SMILProvider struct{}

func NewSMILProvider() *SMILProvider { return &SMILProvider{} }

func (p *SMILProvider) ID() string   { return ProviderSMIL }
func (p *SMILProvider) Name() string { return "SVG SMIL" }

var smilSupported = map[models.AnimationType]struct{}{
	models.FadeIn: {}, models.FadeInUp: {}, models.FadeInDown: {},
	models.FadeInLeft: {}, models.FadeInRight: {},
	models.ZoomIn: {}, models.ZoomOut: {},
	models.Spin: {}, models.Draw: {}, models.Float: {}, models.Pulse: {},
}

func (p *SMILProvider) Supports(t models.AnimationType) bool {
	_, ok := smilSupported[t]
	return ok
}

func (p *SMILProvider) Animate(ctx context.Context, svg string, opts models.AnimationOptions) (*models.AnimatedSVGLogo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := svgdom.Parse(svg)
	if err != nil {
		return nil, fmt.Errorf("smil provider: %w", err)
	}
	if root.Name != "svg" {
		return nil, fmt.Errorf("smil provider: root element is <%s>, expected <svg>", root.Name)
	}

	token := newToken("lf_smil")

	switch opts.Type {
	case models.FadeIn:
		g := wrapChildren(root, token)
		g.AppendChild(smilAnimate("opacity", "0", "1", opts.Timing))
	case models.FadeInUp, models.FadeInDown, models.FadeInLeft, models.FadeInRight:
		g := wrapChildren(root, token)
		g.AppendChild(smilAnimate("opacity", "0", "1", opts.Timing))
		g.AppendChild(smilAnimateTransform("translate", fadeOffset(opts.Type), "0 0", opts.Timing, true))
	case models.ZoomIn, models.ZoomOut:
		target, err := wrapForCenterScale(root, token)
		if err != nil {
			return nil, fmt.Errorf("smil provider: %w", err)
		}
		from, to := "0", "1"
		if opts.Type == models.ZoomOut {
			from, to = "1.5", "1"
		}
		target.AppendChild(smilAnimateTransform("scale", from, to, opts.Timing, false))
	case models.Pulse:
		target, err := wrapForCenterScale(root, token)
		if err != nil {
			return nil, fmt.Errorf("smil provider: %w", err)
		}
		target.AppendChild(smilAnimateTransformValues("scale", "1;1.1;1", opts.Timing, false))
	case models.Spin:
		// rotate takes explicit center args, no wrapping sandwich needed
		cx, cy, ok := centerOf(root)
		if !ok {
			cx, cy = 0, 0
		}
		g := wrapChildren(root, token)
		g.AppendChild(smilAnimateTransform("rotate",
			fmt.Sprintf("0 %s %s", fmtNum(cx), fmtNum(cy)),
			fmt.Sprintf("360 %s %s", fmtNum(cx), fmtNum(cy)),
			opts.Timing, false))
	case models.Float:
		g := wrapChildren(root, token)
		g.AppendChild(smilAnimateTransformValues("translate", "0 0;0 -10;0 0", opts.Timing, true))
	case models.Draw:
		animateDraw(root, opts)
	default:
		// Unsupported requests should be filtered by the registry;
		// degrade to the fade-in equivalent rather than failing.
		g := wrapChildren(root, token)
		g.AppendChild(smilAnimate("opacity", "0", "1", opts.Timing))
	}

	return &models.AnimatedSVGLogo{
		OriginalSvg:      svg,
		AnimatedSvg:      svgdom.Serialize(root),
		AnimationOptions: opts,
	}, nil
}

// fadeOffset gives the starting translate for a directional fade.
func fadeOffset(t models.AnimationType) string {
	switch t {
	case models.FadeInUp:
		return "0 20"
	case models.FadeInDown:
		return "0 -20"
	case models.FadeInLeft:
		return "-20 0"
	case models.FadeInRight:
		return "20 0"
	}
	return "0 0"
}

// wrapChildren moves every child of root into a fresh <g> and returns
// it. SMIL transform animations cannot be attached to the root <svg>
// element reliably, so all effects run on this group.
func wrapChildren(root *svgdom.Node, token string) *svgdom.Node {
	g := &svgdom.Node{Kind: svgdom.ElementNode, Name: "g"}
	g.SetAttr("id", token)
	g.Children = root.Children
	root.Children = []*svgdom.Node{g}
	return g
}

// wrapForCenterScale builds the translate sandwich a center-relative
// scale needs, since SMIL transforms have no transform-origin:
// translate(cx,cy) · animated-scale · translate(-cx,-cy).
func wrapForCenterScale(root *svgdom.Node, token string) (*svgdom.Node, error) {
	cx, cy, ok := centerOf(root)
	if !ok {
		return nil, fmt.Errorf("cannot determine center: no viewBox or width/height")
	}

	inner := &svgdom.Node{Kind: svgdom.ElementNode, Name: "g"}
	inner.SetAttr("transform", fmt.Sprintf("translate(%s,%s)", fmtNum(-cx), fmtNum(-cy)))
	inner.Children = root.Children

	scaled := &svgdom.Node{Kind: svgdom.ElementNode, Name: "g"}
	scaled.SetAttr("id", token)
	scaled.AppendChild(inner)

	outer := &svgdom.Node{Kind: svgdom.ElementNode, Name: "g"}
	outer.SetAttr("transform", fmt.Sprintf("translate(%s,%s)", fmtNum(cx), fmtNum(cy)))
	outer.AppendChild(scaled)

	root.Children = []*svgdom.Node{outer}
	return scaled, nil
}

// animateDraw emits the draw-then-fill pair per path: a dash sweep
// with a per-path 100ms stagger and a fill fade starting at the
// halfway point of the stroke duration.
func animateDraw(root *svgdom.Node, opts models.AnimationOptions) {
	paths := root.FindAll("path")
	for i, path := range paths {
		begin := opts.Timing.DelayMS + i*100

		path.SetAttr("stroke-dasharray", "1000")
		path.SetAttr("stroke-dashoffset", "1000")

		stroke := smilAnimate("stroke-dashoffset", "1000", "0", opts.Timing)
		stroke.SetAttr("begin", fmt.Sprintf("%dms", begin))
		path.AppendChild(stroke)

		path.SetAttr("fill-opacity", "0")
		fill := &svgdom.Node{Kind: svgdom.ElementNode, Name: "animate"}
		fill.SetAttr("attributeName", "fill-opacity")
		fill.SetAttr("from", "0")
		fill.SetAttr("to", "1")
		fill.SetAttr("begin", fmt.Sprintf("%dms", begin+opts.Timing.DurationMS/2))
		fill.SetAttr("dur", fmt.Sprintf("%dms", opts.Timing.DurationMS/2))
		fill.SetAttr("fill", "freeze")
		path.AppendChild(fill)
	}
}

// smilAnimate builds an <animate> for a plain attribute.
func smilAnimate(attr, from, to string, t models.AnimationTiming) *svgdom.Node {
	n := &svgdom.Node{Kind: svgdom.ElementNode, Name: "animate"}
	n.SetAttr("attributeName", attr)
	n.SetAttr("from", from)
	n.SetAttr("to", to)
	applySMILTiming(n, t, 2)
	return n
}

// smilAnimateTransform builds an <animateTransform> with from/to
// values. additive transforms compose with a transform the target
// already carries instead of replacing it.
func smilAnimateTransform(transformType, from, to string, t models.AnimationTiming, additive bool) *svgdom.Node {
	n := &svgdom.Node{Kind: svgdom.ElementNode, Name: "animateTransform"}
	n.SetAttr("attributeName", "transform")
	n.SetAttr("type", transformType)
	n.SetAttr("from", from)
	n.SetAttr("to", to)
	if additive {
		n.SetAttr("additive", "sum")
	}
	applySMILTiming(n, t, 2)
	return n
}

// smilAnimateTransformValues is the multi-keyframe variant.
func smilAnimateTransformValues(transformType, values string, t models.AnimationTiming, additive bool) *svgdom.Node {
	n := &svgdom.Node{Kind: svgdom.ElementNode, Name: "animateTransform"}
	n.SetAttr("attributeName", "transform")
	n.SetAttr("type", transformType)
	n.SetAttr("values", values)
	if additive {
		n.SetAttr("additive", "sum")
	}
	points := 1 + strings.Count(values, ";")
	applySMILTiming(n, t, points)
	return n
}

// applySMILTiming sets dur/begin, the repeat semantics and the easing
// splines. Finite single iterations freeze on completion; repeating
// animations must not also freeze, the two semantics are distinct.
func applySMILTiming(n *svgdom.Node, t models.AnimationTiming, keyPoints int) {
	n.SetAttr("dur", fmt.Sprintf("%dms", t.DurationMS))
	n.SetAttr("begin", fmt.Sprintf("%dms", t.DelayMS))

	switch {
	case t.Iterations == models.IterationInfinite:
		n.SetAttr("repeatCount", "indefinite")
	case t.Iterations > 1:
		n.SetAttr("repeatCount", fmt.Sprintf("%d", t.Iterations))
	default:
		n.SetAttr("fill", "freeze")
	}

	calcMode, splines := keySplineFor(t.Easing)
	if calcMode == "linear" || splines == "" {
		return
	}
	n.SetAttr("calcMode", calcMode)

	segments := keyPoints - 1
	if segments < 1 {
		segments = 1
	}
	keyTimes := make([]string, keyPoints)
	keySplines := make([]string, segments)
	for i := 0; i < keyPoints; i++ {
		keyTimes[i] = fmtNum(float64(i) / float64(segments))
	}
	for i := range keySplines {
		keySplines[i] = splines
	}
	n.SetAttr("keyTimes", strings.Join(keyTimes, ";"))
	n.SetAttr("keySplines", strings.Join(keySplines, ";"))
}

func fmtNum(f float64) string {
	return fmt.Sprintf("%g", f)
}
