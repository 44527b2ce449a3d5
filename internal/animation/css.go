package animation

import (
	"context"
	"fmt"
	"strings"

	"logoforge/pkg/models"
	"logoforge/pkg/svgdom"
)

// CSSProvider renders animations as @keyframes plus class rules. It is
// the default strategy for everything that does not need native SMIL
// or per-frame scripting.
type CSSProvider struct{}

func NewCSSProvider() *CSSProvider { return &CSSProvider{} }

func (p *CSSProvider) ID() string   { return ProviderCSS }
func (p *CSSProvider) Name() string { return "CSS keyframes" }

var cssSupported = map[models.AnimationType]struct{}{
	models.FadeIn: {}, models.FadeInUp: {}, models.FadeInDown: {},
	models.FadeInLeft: {}, models.FadeInRight: {},
	models.ZoomIn: {}, models.ZoomOut: {},
	models.Spin: {}, models.Pulse: {}, models.Float: {}, models.Bounce: {},
	models.Shimmer: {}, models.Sequential: {}, models.Draw: {}, models.Custom: {},
}

func (p *CSSProvider) Supports(t models.AnimationType) bool {
	_, ok := cssSupported[t]
	return ok
}

// Animate injects class attributes into the SVG and generates the
// matching stylesheet. JS is emitted only for the click trigger.
func (p *CSSProvider) Animate(ctx context.Context, svg string, opts models.AnimationOptions) (*models.AnimatedSVGLogo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := svgdom.Parse(svg)
	if err != nil {
		return nil, fmt.Errorf("css provider: %w", err)
	}
	if root.Name != "svg" {
		return nil, fmt.Errorf("css provider: root element is <%s>, expected <svg>", root.Name)
	}

	token := newToken("lf_anim")
	var css strings.Builder
	var js string

	switch opts.Type {
	case models.Sequential:
		p.writeSequential(&css, root, token, opts)
	case models.Draw:
		addClass(root, token)
		p.writeDraw(&css, token, opts)
	default:
		targets := resolveTargets(root, opts.Elements)
		if len(targets) == 0 {
			targets = []*svgdom.Node{root}
		}
		for _, t := range targets {
			addClass(t, token)
		}
		p.writeSingle(&css, token, opts)
	}

	if opts.CustomCSS != "" {
		css.WriteString("\n")
		css.WriteString(opts.CustomCSS)
		css.WriteString("\n")
	}

	if opts.Trigger == models.TriggerClick {
		js = clickToggleScript(token)
	}

	return &models.AnimatedSVGLogo{
		OriginalSvg:      svg,
		AnimatedSvg:      svgdom.Serialize(root),
		CSSCode:          css.String(),
		JSCode:           js,
		AnimationOptions: opts,
	}, nil
}

// ruleSelector applies the trigger to a base class selector. Hover
// gates the animation behind :hover; click behind a .clicked class the
// generated script toggles.
func ruleSelector(base string, trigger models.AnimationTrigger) string {
	switch trigger {
	case models.TriggerHover:
		return base + ":hover"
	case models.TriggerClick:
		return base + ".clicked"
	default:
		return base
	}
}

// iterationCount renders animation-iteration-count.
func iterationCount(n int) string {
	if n == models.IterationInfinite {
		return "infinite"
	}
	if n <= 0 {
		n = 1
	}
	return fmt.Sprintf("%d", n)
}

// writeTiming emits the timing properties shared by every rule.
func writeTiming(css *strings.Builder, name string, t models.AnimationTiming, delayMS int) {
	direction := t.Direction
	if direction == "" {
		direction = models.DirectionNormal
	}
	fmt.Fprintf(css, "  animation-name: %s;\n", name)
	fmt.Fprintf(css, "  animation-duration: %dms;\n", t.DurationMS)
	fmt.Fprintf(css, "  animation-delay: %dms;\n", delayMS)
	fmt.Fprintf(css, "  animation-timing-function: %s;\n", cssTimingFunction(t.Easing))
	fmt.Fprintf(css, "  animation-iteration-count: %s;\n", iterationCount(t.Iterations))
	fmt.Fprintf(css, "  animation-direction: %s;\n", direction)
	css.WriteString("  animation-fill-mode: forwards;\n")
}

// writeSingle handles every one-shot type animated through a shared
// class: fades, zooms, spin, pulse, float, bounce, shimmer, custom.
func (p *CSSProvider) writeSingle(css *strings.Builder, token string, opts models.AnimationOptions) {
	kfName := token + "_kf"
	keyframes, needsOrigin := keyframesFor(opts, kfName)
	if keyframes != "" {
		css.WriteString(keyframes)
		css.WriteString("\n")
	}

	fmt.Fprintf(css, "%s {\n", ruleSelector("."+token, opts.Trigger))
	if keyframes != "" {
		writeTiming(css, kfName, opts.Timing, opts.Timing.DelayMS)
	}
	if needsOrigin {
		fmt.Fprintf(css, "  transform-origin: %s;\n", transformOrigin(opts))
		css.WriteString("  transform-box: fill-box;\n")
	}
	css.WriteString("}\n")
}

// writeSequential emits one rule per target with a staggered delay;
// elements share the keyframes but not the class.
func (p *CSSProvider) writeSequential(css *strings.Builder, root *svgdom.Node, token string, opts models.AnimationOptions) {
	targets := sequentialTargets(root, opts)

	kfName := token + "_kf"
	fmt.Fprintf(css, "@keyframes %s {\n  from { opacity: 0; }\n  to { opacity: 1; }\n}\n", kfName)

	stagger := opts.StaggerMS
	if stagger <= 0 {
		stagger = 100
	}

	for i, target := range targets {
		class := fmt.Sprintf("%s_%d", token, i)
		addClass(target, class)
		fmt.Fprintf(css, "%s {\n  opacity: 0;\n", ruleSelector("."+class, opts.Trigger))
		writeTiming(css, kfName, opts.Timing, opts.Timing.DelayMS+i*stagger)
		css.WriteString("}\n")
	}
}

// writeDraw targets path elements under the token class. The dash
// length is the fixed 1000 approximation, not a measured path length;
// very long paths draw too fast and very short ones too slow.
func (p *CSSProvider) writeDraw(css *strings.Builder, token string, opts models.AnimationOptions) {
	kfName := token + "_draw"
	fmt.Fprintf(css, "@keyframes %s {\n  to { stroke-dashoffset: 0; }\n}\n", kfName)
	fmt.Fprintf(css, "%s path {\n", ruleSelector("."+token, opts.Trigger))
	css.WriteString("  stroke-dasharray: 1000;\n")
	css.WriteString("  stroke-dashoffset: 1000;\n")
	writeTiming(css, kfName, opts.Timing, opts.Timing.DelayMS)
	css.WriteString("}\n")
}

// keyframesFor returns the @keyframes block for a single-class type
// and whether the rule needs a transform-origin. Custom without
// caller-supplied keyframes emits nothing: the class is applied but no
// animation runs, which is the documented caller contract. Anything
// unrecognized falls back to the fade-in keyframes.
func keyframesFor(opts models.AnimationOptions, name string) (string, bool) {
	head := "@keyframes " + name + " {\n"
	switch opts.Type {
	case models.FadeIn:
		return head + "  from { opacity: 0; }\n  to { opacity: 1; }\n}\n", false
	case models.FadeInUp:
		return head + "  from { opacity: 0; transform: translateY(20px); }\n  to { opacity: 1; transform: translateY(0); }\n}\n", false
	case models.FadeInDown:
		return head + "  from { opacity: 0; transform: translateY(-20px); }\n  to { opacity: 1; transform: translateY(0); }\n}\n", false
	case models.FadeInLeft:
		return head + "  from { opacity: 0; transform: translateX(-20px); }\n  to { opacity: 1; transform: translateX(0); }\n}\n", false
	case models.FadeInRight:
		return head + "  from { opacity: 0; transform: translateX(20px); }\n  to { opacity: 1; transform: translateX(0); }\n}\n", false
	case models.ZoomIn:
		return head + "  from { opacity: 0; transform: scale(0); }\n  to { opacity: 1; transform: scale(1); }\n}\n", true
	case models.ZoomOut:
		return head + "  from { opacity: 0; transform: scale(1.5); }\n  to { opacity: 1; transform: scale(1); }\n}\n", true
	case models.Spin:
		return head + "  from { transform: rotate(0deg); }\n  to { transform: rotate(360deg); }\n}\n", true
	case models.Pulse:
		return head + "  0% { transform: scale(1); }\n  50% { transform: scale(1.1); }\n  100% { transform: scale(1); }\n}\n", true
	case models.Float:
		return head + "  0% { transform: translateY(0); }\n  50% { transform: translateY(-10px); }\n  100% { transform: translateY(0); }\n}\n", false
	case models.Bounce:
		return head + "  0%, 20%, 50%, 80%, 100% { transform: translateY(0); }\n  40% { transform: translateY(-30px); }\n  60% { transform: translateY(-15px); }\n}\n", false
	case models.Shimmer:
		return head + "  0% { filter: brightness(1); }\n  50% { filter: brightness(1.6); }\n  100% { filter: brightness(1); }\n}\n", false
	case models.Custom:
		if opts.CustomKeyframes == "" {
			return "", false
		}
		return head + opts.CustomKeyframes + "\n}\n", false
	default:
		return head + "  from { opacity: 0; }\n  to { opacity: 1; }\n}\n", false
	}
}

// clickToggleScript wires the click trigger: a listener on every
// element carrying the token class (or a staggered variant of it)
// toggling the .clicked class.
func clickToggleScript(token string) string {
	return fmt.Sprintf(`(function() {
  var els = document.querySelectorAll('[class*="%[1]s"]');
  for (var i = 0; i < els.length; i++) {
    els[i].addEventListener('click', function() {
      this.classList.toggle('clicked');
    });
  }
})();
`, token)
}
