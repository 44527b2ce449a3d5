package animation

import (
	"context"
	"fmt"
	"strings"

	"logoforge/pkg/models"
	"logoforge/pkg/svgdom"
)

// JSProvider generates an imperative requestAnimationFrame script for
// the effects CSS and SMIL cannot express (morphing, typewriter,
// measured draw, wave). Scripts are self-contained: they register a
// stop handle under window.logoforgeAnimations[id] and also stop on
// page unload, restoring the attributes they touched.
type JSProvider struct{}

func NewJSProvider() *JSProvider { return &JSProvider{} }

func (p *JSProvider) ID() string   { return ProviderJS }
func (p *JSProvider) Name() string { return "imperative JS" }

var jsSupported = map[models.AnimationType]struct{}{
	models.Morph: {}, models.Draw: {}, models.Typewriter: {},
	models.Wave: {}, models.Shimmer: {}, models.Sequential: {},
	models.Float: {}, models.Pulse: {}, models.Custom: {},
}

func (p *JSProvider) Supports(t models.AnimationType) bool {
	_, ok := jsSupported[t]
	return ok
}

// jsFallbackViewBox is injected when the input has neither viewBox nor
// width/height. The provider runs standalone, so it carries its own
// fallback policy instead of relying on the optimizer's.
const jsFallbackViewBox = "0 0 300 300"

func (p *JSProvider) Animate(ctx context.Context, svg string, opts models.AnimationOptions) (*models.AnimatedSVGLogo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := svgdom.Parse(svg)
	if err != nil {
		return nil, fmt.Errorf("js provider: %w", err)
	}
	if root.Name != "svg" {
		return nil, fmt.Errorf("js provider: root element is <%s>, expected <svg>", root.Name)
	}

	if _, ok := root.Attr("viewBox"); !ok {
		if _, wok := root.Attr("width"); !wok {
			root.SetAttr("viewBox", jsFallbackViewBox)
		} else if _, hok := root.Attr("height"); !hok {
			root.SetAttr("viewBox", jsFallbackViewBox)
		}
	}

	rootID := root.AttrValue("id")
	if rootID == "" {
		rootID = newToken("lf_js")
		root.SetAttr("id", rootID)
	}

	var js string
	switch opts.Type {
	case models.Morph:
		js = p.morphScript(root, rootID, opts)
	case models.Draw:
		js = p.drawScript(rootID, opts)
	case models.Typewriter:
		js = p.typewriterScript(root, rootID, opts)
	case models.Wave:
		js = p.waveScript(root, rootID, opts)
	case models.Shimmer:
		js = p.shimmerScript(root, rootID, opts)
	case models.Sequential:
		js = p.sequentialScript(root, rootID, opts)
	case models.Float:
		js = frameScript(rootID, opts,
			"var y = -10 * Math.sin(Math.PI * t); el.style.transform = 'translateY(' + y + 'px)';",
			"el.style.transform = '';")
	case models.Pulse:
		js = frameScript(rootID, opts,
			"var s = 1 + 0.1 * Math.sin(Math.PI * t); el.style.transformOrigin = 'center'; el.style.transform = 'scale(' + s + ')';",
			"el.style.transform = ''; el.style.transformOrigin = '';")
	case models.Custom:
		if opts.JSCode != "" {
			js = opts.JSCode
		} else {
			js = frameScript(rootID, opts,
				"el.style.opacity = String(t);",
				"el.style.opacity = '';")
		}
	default:
		// Registry should have filtered this; degrade to a fade.
		js = frameScript(rootID, opts,
			"el.style.opacity = String(t);",
			"el.style.opacity = '';")
	}

	return &models.AnimatedSVGLogo{
		OriginalSvg:      svg,
		AnimatedSvg:      svgdom.Serialize(root),
		JSCode:           js,
		AnimationOptions: opts,
	}, nil
}

// jsIterations renders the iteration bound as a JS expression.
func jsIterations(n int) string {
	if n == models.IterationInfinite {
		return "Infinity"
	}
	if n <= 0 {
		n = 1
	}
	return fmt.Sprintf("%d", n)
}

// frameScript is the shared rAF driver: eased progress t in [0,1] per
// cycle, bounded iterations, stop handle and unload cleanup. render
// and restore are JS statements operating on the element `el`.
func frameScript(rootID string, opts models.AnimationOptions, render, restore string) string {
	return fmt.Sprintf(`(function() {
  var el = document.getElementById('%[1]s');
  if (!el) return;
  var ease = function(t) { return %[2]s; };
  var duration = %[3]d, delay = %[4]d, iterations = %[5]s;
  var start = null, rafId = null, stopped = false;
  function render(t) { %[6]s }
  function restore() { %[7]s }
  function frame(ts) {
    if (stopped) return;
    if (start === null) start = ts + delay;
    var elapsed = ts - start;
    if (elapsed < 0) { rafId = requestAnimationFrame(frame); return; }
    var cycle = Math.floor(elapsed / duration);
    if (cycle >= iterations) { render(ease(1)); return; }
    var frac = elapsed / duration - cycle;
    render(ease(frac));
    rafId = requestAnimationFrame(frame);
  }
  function stop() {
    if (stopped) return;
    stopped = true;
    if (rafId !== null) cancelAnimationFrame(rafId);
    restore();
  }
  window.logoforgeAnimations = window.logoforgeAnimations || {};
  window.logoforgeAnimations['%[1]s'] = { stop: stop };
  window.addEventListener('unload', stop);
  rafId = requestAnimationFrame(frame);
})();
`, rootID, jsEasingBody(opts.Timing.Easing), opts.Timing.DurationMS, opts.Timing.DelayMS, jsIterations(opts.Timing.Iterations), render, restore)
}

// morphScript interpolates numeric path parameters between consecutive
// paths when their command sequences match positionally; mismatched
// command types hard-switch at the 50% progress mark. The path list
// rotates one step per iteration.
func (p *JSProvider) morphScript(root *svgdom.Node, rootID string, opts models.AnimationOptions) string {
	var ds []string
	for _, path := range root.FindAll("path") {
		if d := path.AttrValue("d"); d != "" {
			ds = append(ds, fmt.Sprintf("%q", d))
		}
	}
	if len(ds) < 2 {
		return frameScript(rootID, opts,
			"el.style.opacity = String(t);",
			"el.style.opacity = '';")
	}

	setup := fmt.Sprintf(`  var paths = [%s];
  var target = el.querySelector('path');
  if (!target) return;
  var original = target.getAttribute('d');
  function tokens(d) { return d.match(/[a-zA-Z]|-?[0-9.]+/g) || []; }
  function lerpPath(a, b, t) {
    var ta = tokens(a), tb = tokens(b);
    if (ta.length !== tb.length) return t < 0.5 ? a : b;
    var out = [];
    for (var i = 0; i < ta.length; i++) {
      if (/[a-zA-Z]/.test(ta[i])) {
        if (ta[i] !== tb[i]) return t < 0.5 ? a : b;
        out.push(ta[i]);
      } else {
        var va = parseFloat(ta[i]), vb = parseFloat(tb[i]);
        out.push(String(va + (vb - va) * t));
      }
    }
    return out.join(' ');
  }
`, strings.Join(ds, ", "))

	render := `var from = paths[cycle % paths.length];
    var to = paths[(cycle + 1) % paths.length];
    target.setAttribute('d', lerpPath(from, to, t));`

	return cycleScript(rootID, opts, setup, render, "target.setAttribute('d', original);")
}

// drawScript estimates each shape's perimeter (measured for paths when
// the runtime provides getTotalLength, formulaic for the primitive
// shapes) and drives a dash sweep with fill fade-in after 70% stroke
// progress.
func (p *JSProvider) drawScript(rootID string, opts models.AnimationOptions) string {
	setup := `  var shapes = el.querySelectorAll('path, rect, circle, ellipse, line, polyline, polygon');
  var entries = [];
  function perimeter(s) {
    var tag = s.tagName.toLowerCase();
    if (tag === 'path' && s.getTotalLength) { try { return s.getTotalLength(); } catch (e) {} }
    var n = function(name) { return parseFloat(s.getAttribute(name)) || 0; };
    if (tag === 'rect') return 2 * (n('width') + n('height'));
    if (tag === 'circle') return 2 * Math.PI * n('r');
    if (tag === 'ellipse') {
      var a = n('rx'), b = n('ry');
      return Math.PI * (3 * (a + b) - Math.sqrt((3 * a + b) * (a + 3 * b)));
    }
    if (tag === 'line') {
      var dx = n('x2') - n('x1'), dy = n('y2') - n('y1');
      return Math.sqrt(dx * dx + dy * dy);
    }
    if (tag === 'polyline' || tag === 'polygon') {
      var pts = (s.getAttribute('points') || '').trim().split(/[\s,]+/).map(parseFloat);
      var total = 0;
      for (var i = 2; i + 1 < pts.length; i += 2) {
        var ddx = pts[i] - pts[i - 2], ddy = pts[i + 1] - pts[i - 1];
        total += Math.sqrt(ddx * ddx + ddy * ddy);
      }
      if (tag === 'polygon' && pts.length >= 4) {
        var cdx = pts[0] - pts[pts.length - 2], cdy = pts[1] - pts[pts.length - 1];
        total += Math.sqrt(cdx * cdx + cdy * cdy);
      }
      return total;
    }
    return 1000;
  }
  for (var i = 0; i < shapes.length; i++) {
    var s = shapes[i];
    var len = perimeter(s) || 1000;
    entries.push({
      el: s,
      len: len,
      dash: s.getAttribute('stroke-dasharray'),
      offset: s.getAttribute('stroke-dashoffset'),
      fill: s.getAttribute('fill-opacity')
    });
    s.setAttribute('stroke-dasharray', String(len));
    s.setAttribute('stroke-dashoffset', String(len));
    s.setAttribute('fill-opacity', '0');
  }
`
	render := `for (var i = 0; i < entries.length; i++) {
      var e = entries[i];
      e.el.setAttribute('stroke-dashoffset', String(e.len * (1 - t)));
      var f = t < 0.7 ? 0 : (t - 0.7) / 0.3;
      e.el.setAttribute('fill-opacity', String(f));
    }`
	restore := `for (var i = 0; i < entries.length; i++) {
      var e = entries[i];
      if (e.dash === null) e.el.removeAttribute('stroke-dasharray'); else e.el.setAttribute('stroke-dasharray', e.dash);
      if (e.offset === null) e.el.removeAttribute('stroke-dashoffset'); else e.el.setAttribute('stroke-dashoffset', e.offset);
      if (e.fill === null) e.el.removeAttribute('fill-opacity'); else e.el.setAttribute('fill-opacity', e.fill);
    }`
	return cycleScript(rootID, opts, setup, render, restore)
}

// typewriterScript relies on Animate having exploded each <text> into
// per-character tspans; characters fade in on a schedule of total
// duration divided by character count, with per-text stagger.
func (p *JSProvider) typewriterScript(root *svgdom.Node, rootID string, opts models.AnimationOptions) string {
	texts := root.FindAll("text")
	for ti, text := range texts {
		content := text.TextContent()
		if content == "" {
			continue
		}
		text.Children = nil
		for _, r := range content {
			tspan := &svgdom.Node{Kind: svgdom.ElementNode, Name: "tspan"}
			tspan.SetAttr("opacity", "0")
			tspan.SetAttr("data-lf-tw", fmt.Sprintf("%d", ti))
			tspan.AppendChild(&svgdom.Node{Kind: svgdom.TextNode, Data: string(r)})
			text.AppendChild(tspan)
		}
	}

	stagger := opts.StaggerMS
	if stagger <= 0 {
		stagger = 100
	}

	setup := fmt.Sprintf(`  var groups = {};
  var all = el.querySelectorAll('tspan[data-lf-tw]');
  for (var i = 0; i < all.length; i++) {
    var key = all[i].getAttribute('data-lf-tw');
    (groups[key] = groups[key] || []).push(all[i]);
  }
  var stagger = %d;
`, stagger)

	render := `for (var key in groups) {
      var chars = groups[key];
      var local = elapsed - Number(key) * stagger;
      var per = duration / Math.max(1, chars.length);
      for (var i = 0; i < chars.length; i++) {
        chars[i].setAttribute('opacity', local >= (i + 1) * per ? '1' : '0');
      }
    }`
	restore := `for (var key in groups) {
      var chars = groups[key];
      for (var i = 0; i < chars.length; i++) chars[i].setAttribute('opacity', '1');
    }`
	return cycleScript(rootID, opts, setup, render, restore)
}

// waveScript oscillates each animatable element vertically with a
// phase offset by element index.
func (p *JSProvider) waveScript(root *svgdom.Node, rootID string, opts models.AnimationOptions) string {
	ids := targetIDs(root, opts)
	setup := fmt.Sprintf(`  var ids = [%s];
  var targets = [];
  for (var i = 0; i < ids.length; i++) {
    var n = document.getElementById(ids[i]);
    if (n) targets.push(n);
  }
`, quoteJoin(ids))
	render := `for (var i = 0; i < targets.length; i++) {
      var y = -6 * Math.sin(2 * Math.PI * t + i * 0.5);
      targets[i].style.transform = 'translateY(' + y + 'px)';
    }`
	restore := `for (var i = 0; i < targets.length; i++) targets[i].style.transform = '';`
	return cycleScript(rootID, opts, setup, render, restore)
}

// shimmerScript mutates the document structurally: a linearGradient in
// <defs> plus an overlay rect whose horizontal offset the script
// sweeps across the logo.
func (p *JSProvider) shimmerScript(root *svgdom.Node, rootID string, opts models.AnimationOptions) string {
	gradID := rootID + "_grad"
	overlayID := rootID + "_overlay"

	defs := findOrCreateDefs(root)
	grad := &svgdom.Node{Kind: svgdom.ElementNode, Name: "linearGradient"}
	grad.SetAttr("id", gradID)
	grad.SetAttr("x1", "0%")
	grad.SetAttr("y1", "0%")
	grad.SetAttr("x2", "100%")
	grad.SetAttr("y2", "0%")
	for _, stop := range []struct{ offset, opacity string }{
		{"0%", "0"}, {"50%", "0.6"}, {"100%", "0"},
	} {
		s := &svgdom.Node{Kind: svgdom.ElementNode, Name: "stop"}
		s.SetAttr("offset", stop.offset)
		s.SetAttr("stop-color", "#ffffff")
		s.SetAttr("stop-opacity", stop.opacity)
		grad.AppendChild(s)
	}
	defs.AppendChild(grad)

	overlay := &svgdom.Node{Kind: svgdom.ElementNode, Name: "rect"}
	overlay.SetAttr("id", overlayID)
	overlay.SetAttr("x", "-100%")
	overlay.SetAttr("y", "0")
	overlay.SetAttr("width", "100%")
	overlay.SetAttr("height", "100%")
	overlay.SetAttr("fill", fmt.Sprintf("url(#%s)", gradID))
	overlay.SetAttr("pointer-events", "none")
	root.AppendChild(overlay)

	setup := fmt.Sprintf(`  var overlay = document.getElementById('%s');
  if (!overlay) return;
`, overlayID)
	render := `var x = -100 + 200 * t;
    overlay.setAttribute('x', x + '%');`
	restore := `overlay.setAttribute('x', '-100%');`
	return cycleScript(rootID, opts, setup, render, restore)
}

// sequentialScript reveals targets one by one with the configured
// stagger, each easing over its own duration window.
func (p *JSProvider) sequentialScript(root *svgdom.Node, rootID string, opts models.AnimationOptions) string {
	targets := sequentialTargets(root, opts)
	var ids []string
	for _, t := range targets {
		if id := t.AttrValue("id"); id != "" {
			ids = append(ids, id)
		}
	}

	stagger := opts.StaggerMS
	if stagger <= 0 {
		stagger = 100
	}

	setup := fmt.Sprintf(`  var ids = [%s];
  var targets = [];
  for (var i = 0; i < ids.length; i++) {
    var n = document.getElementById(ids[i]);
    if (n) { n.style.opacity = '0'; targets.push(n); }
  }
  var stagger = %d;
`, quoteJoin(ids), stagger)
	render := `for (var i = 0; i < targets.length; i++) {
      var local = (elapsed - i * stagger) / duration;
      if (local < 0) local = 0;
      if (local > 1) local = 1;
      targets[i].style.opacity = String(ease(local));
    }`
	restore := `for (var i = 0; i < targets.length; i++) targets[i].style.opacity = '';`
	return cycleScript(rootID, opts, setup, render, restore)
}

// cycleScript is the extended driver for scripts that need raw elapsed
// time and the current cycle index in addition to eased progress.
func cycleScript(rootID string, opts models.AnimationOptions, setup, render, restore string) string {
	return fmt.Sprintf(`(function() {
  var el = document.getElementById('%[1]s');
  if (!el) return;
%[2]s  var ease = function(t) { return %[3]s; };
  var duration = %[4]d, delay = %[5]d, iterations = %[6]s;
  var start = null, rafId = null, stopped = false;
  function restore() {
    %[8]s
  }
  function frame(ts) {
    if (stopped) return;
    if (start === null) start = ts + delay;
    var elapsed = ts - start;
    if (elapsed < 0) { rafId = requestAnimationFrame(frame); return; }
    var cycle = Math.floor(elapsed / duration);
    var frac = elapsed / duration - cycle;
    if (cycle >= iterations) { cycle = iterations - 1; frac = 1; }
    var t = ease(Math.min(1, frac));
    %[7]s
    if (frac >= 1 && iterations !== Infinity) return;
    rafId = requestAnimationFrame(frame);
  }
  function stop() {
    if (stopped) return;
    stopped = true;
    if (rafId !== null) cancelAnimationFrame(rafId);
    restore();
  }
  window.logoforgeAnimations = window.logoforgeAnimations || {};
  window.logoforgeAnimations['%[1]s'] = { stop: stop };
  window.addEventListener('unload', stop);
  rafId = requestAnimationFrame(frame);
})();
`, rootID, setup, jsEasingBody(opts.Timing.Easing), opts.Timing.DurationMS, opts.Timing.DelayMS, jsIterations(opts.Timing.Iterations), render, restore)
}

// targetIDs resolves explicit elements first, then every animatable
// element carrying an id.
func targetIDs(root *svgdom.Node, opts models.AnimationOptions) []string {
	if len(opts.Elements) > 0 {
		return opts.Elements
	}
	var ids []string
	for _, e := range autoTargets(root) {
		if id := e.AttrValue("id"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}

func findOrCreateDefs(root *svgdom.Node) *svgdom.Node {
	for _, c := range root.ChildElements() {
		if c.Name == "defs" {
			return c
		}
	}
	defs := &svgdom.Node{Kind: svgdom.ElementNode, Name: "defs"}
	root.PrependChild(defs)
	return defs
}
