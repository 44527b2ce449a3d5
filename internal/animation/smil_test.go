package animation

import (
	"context"
	"strings"
	"testing"

	"logoforge/pkg/models"
)

func TestSMILSupports(t *testing.T) {
	p := NewSMILProvider()
	for _, yes := range []models.AnimationType{models.FadeIn, models.ZoomIn, models.Spin, models.Draw, models.Float, models.Pulse} {
		if !p.Supports(yes) {
			t.Errorf("Supports(%s) = false", yes)
		}
	}
	for _, no := range []models.AnimationType{models.Morph, models.Typewriter, models.Sequential, models.Custom, models.Bounce} {
		if p.Supports(no) {
			t.Errorf("Supports(%s) = true", no)
		}
	}
}

func TestSMILOutputIsSelfContained(t *testing.T) {
	p := NewSMILProvider()
	out, err := p.Animate(context.Background(), simpleSVG, models.AnimationOptions{
		Type:   models.FadeIn,
		Timing: timing(1000),
	})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if out.CSSCode != "" || out.JSCode != "" {
		t.Errorf("SMIL output must carry no CSS/JS, got css=%q js=%q", out.CSSCode, out.JSCode)
	}
	if !strings.Contains(out.AnimatedSvg, "<animate ") {
		t.Errorf("no animate element: %s", out.AnimatedSvg)
	}
}

func TestSMILSpinIndefinite(t *testing.T) {
	p := NewSMILProvider()
	out, err := p.Animate(context.Background(), simpleSVG, models.AnimationOptions{
		Type: models.Spin,
		Timing: models.AnimationTiming{
			DurationMS: 3000,
			Easing:     models.EaseLinear,
			Iterations: models.IterationInfinite,
		},
	})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	for _, want := range []string{
		"<animateTransform",
		`type="rotate"`,
		`from="0 50 50"`,
		`to="360 50 50"`,
		`repeatCount="indefinite"`,
		`dur="3000ms"`,
	} {
		if !strings.Contains(out.AnimatedSvg, want) {
			t.Errorf("missing %q in:\n%s", want, out.AnimatedSvg)
		}
	}
	// repeating animations never also freeze
	if strings.Contains(out.AnimatedSvg, `fill="freeze"`) {
		t.Errorf("indefinite animation also freezes:\n%s", out.AnimatedSvg)
	}
}

func TestSMILSingleIterationFreezes(t *testing.T) {
	p := NewSMILProvider()
	out, err := p.Animate(context.Background(), simpleSVG, models.AnimationOptions{
		Type:   models.FadeIn,
		Timing: timing(1000),
	})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if !strings.Contains(out.AnimatedSvg, `fill="freeze"`) {
		t.Errorf("single iteration should freeze:\n%s", out.AnimatedSvg)
	}
	if strings.Contains(out.AnimatedSvg, "repeatCount") {
		t.Errorf("single iteration must not set repeatCount:\n%s", out.AnimatedSvg)
	}
}

func TestSMILFiniteRepeatCount(t *testing.T) {
	p := NewSMILProvider()
	out, err := p.Animate(context.Background(), simpleSVG, models.AnimationOptions{
		Type: models.Pulse,
		Timing: models.AnimationTiming{
			DurationMS: 500,
			Easing:     models.EaseInOut,
			Iterations: 3,
		},
	})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if !strings.Contains(out.AnimatedSvg, `repeatCount="3"`) {
		t.Errorf("finite repeatCount missing:\n%s", out.AnimatedSvg)
	}
}

func TestSMILZoomBuildsTranslateSandwich(t *testing.T) {
	p := NewSMILProvider()
	out, err := p.Animate(context.Background(), simpleSVG, models.AnimationOptions{
		Type:   models.ZoomIn,
		Timing: timing(800),
	})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	// center of the 0 0 100 100 viewBox
	if !strings.Contains(out.AnimatedSvg, `transform="translate(50,50)"`) ||
		!strings.Contains(out.AnimatedSvg, `transform="translate(-50,-50)"`) {
		t.Errorf("translate sandwich missing:\n%s", out.AnimatedSvg)
	}
	if !strings.Contains(out.AnimatedSvg, `type="scale"`) {
		t.Errorf("scale animation missing:\n%s", out.AnimatedSvg)
	}
}

func TestSMILZoomFailsWithoutCenter(t *testing.T) {
	p := NewSMILProvider()
	_, err := p.Animate(context.Background(), `<svg><path d="M0 0"/></svg>`, models.AnimationOptions{
		Type:   models.ZoomIn,
		Timing: timing(800),
	})
	if err == nil {
		t.Error("zoom without viewBox or dimensions should fail")
	}
}

func TestSMILSpinFallsBackToOriginWithoutCenter(t *testing.T) {
	p := NewSMILProvider()
	out, err := p.Animate(context.Background(), `<svg><path d="M0 0"/></svg>`, models.AnimationOptions{
		Type:   models.Spin,
		Timing: timing(800),
	})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if !strings.Contains(out.AnimatedSvg, `from="0 0 0"`) {
		t.Errorf("rotate center should default to origin:\n%s", out.AnimatedSvg)
	}
}

func TestSMILEasingSplines(t *testing.T) {
	p := NewSMILProvider()
	out, err := p.Animate(context.Background(), simpleSVG, models.AnimationOptions{
		Type: models.FadeIn,
		Timing: models.AnimationTiming{
			DurationMS: 1000,
			Easing:     models.EaseOut,
			Iterations: 1,
		},
	})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	for _, want := range []string{`calcMode="spline"`, `keySplines="0 0 0.58 1"`, `keyTimes="0;1"`} {
		if !strings.Contains(out.AnimatedSvg, want) {
			t.Errorf("missing %q in:\n%s", want, out.AnimatedSvg)
		}
	}
}

func TestSMILLinearEasingOmitsSplines(t *testing.T) {
	p := NewSMILProvider()
	out, err := p.Animate(context.Background(), simpleSVG, models.AnimationOptions{
		Type: models.FadeIn,
		Timing: models.AnimationTiming{
			DurationMS: 1000,
			Easing:     models.EaseLinear,
			Iterations: 1,
		},
	})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if strings.Contains(out.AnimatedSvg, "keySplines") {
		t.Errorf("linear easing should not emit splines:\n%s", out.AnimatedSvg)
	}
}

func TestSMILDrawStaggersPaths(t *testing.T) {
	in := `<svg viewBox="0 0 10 10"><path d="M0 0L1 1"/><path d="M2 2L3 3"/></svg>`
	p := NewSMILProvider()
	out, err := p.Animate(context.Background(), in, models.AnimationOptions{
		Type:   models.Draw,
		Timing: timing(1000),
	})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	for _, want := range []string{
		`stroke-dasharray="1000"`,
		`stroke-dashoffset="1000"`,
		`begin="0ms"`,
		`begin="100ms"`,
		`attributeName="fill-opacity"`,
		`begin="500ms"`,
	} {
		if !strings.Contains(out.AnimatedSvg, want) {
			t.Errorf("missing %q in:\n%s", want, out.AnimatedSvg)
		}
	}
}
