package analyze

import (
	"fmt"
	"strings"
	"testing"

	"logoforge/pkg/models"
)

func svgWithElements(n int) string {
	var b strings.Builder
	b.WriteString(`<svg viewBox="0 0 10 10">`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<rect x="%d" width="1" height="1"/>`, i)
	}
	b.WriteString(`</svg>`)
	return b.String()
}

func nestedGroups(depth int) string {
	var b strings.Builder
	b.WriteString(`<svg viewBox="0 0 10 10">`)
	for i := 0; i < depth; i++ {
		b.WriteString("<g>")
	}
	b.WriteString(`<path d="M0 0"/>`)
	for i := 0; i < depth; i++ {
		b.WriteString("</g>")
	}
	b.WriteString(`</svg>`)
	return b.String()
}

func TestUnparseableIsNotAnimatable(t *testing.T) {
	res := Analyze("<svg><path", models.FadeIn)
	if res.Animatable {
		t.Error("unparseable input reported animatable")
	}
	if len(res.Issues) == 0 {
		t.Error("no issue recorded")
	}
}

func TestNonSVGRootIsNotAnimatable(t *testing.T) {
	res := Analyze("<div/>", models.FadeIn)
	if res.Animatable {
		t.Error("non-svg root reported animatable")
	}
}

func TestComplexityTiers(t *testing.T) {
	cases := []struct {
		name string
		svg  string
		want models.Complexity
	}{
		{"small flat document", svgWithElements(10), models.ComplexitySimple},
		{"many elements", svgWithElements(250), models.ComplexityModerate},
		{"very many elements", svgWithElements(600), models.ComplexityComplex},
		{"deep groups", nestedGroups(4), models.ComplexityModerate},
		{"very deep groups", nestedGroups(6), models.ComplexityComplex},
		{"filter", `<svg viewBox="0 0 10 10"><filter id="f"/><path d="M0 0"/></svg>`, models.ComplexityModerate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Analyze(tc.svg, models.FadeIn)
			if !res.Animatable {
				t.Fatalf("not animatable: %v", res.Issues)
			}
			if res.Complexity != tc.want {
				t.Errorf("complexity = %s, want %s", res.Complexity, tc.want)
			}
		})
	}
}

func TestMissingViewBoxIsAdvisory(t *testing.T) {
	res := Analyze(`<svg><path d="M0 0"/></svg>`, models.FadeIn)
	if !res.Animatable {
		t.Fatal("missing viewBox must not block animation")
	}
	found := false
	for _, issue := range res.Issues {
		if strings.Contains(issue, "viewBox") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing viewBox not flagged: %v", res.Issues)
	}
}

func TestDrawWithoutPathsIsAdvisory(t *testing.T) {
	res := Analyze(`<svg viewBox="0 0 10 10"><rect width="5" height="5"/></svg>`, models.Draw)
	if !res.Animatable {
		t.Fatal("draw prerequisite must be advisory, not fatal")
	}
	found := false
	for _, issue := range res.Issues {
		if strings.Contains(issue, "path elements") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing-paths advisory absent: %v", res.Issues)
	}
}

func TestTypewriterWithoutTextIsAdvisory(t *testing.T) {
	res := Analyze(`<svg viewBox="0 0 10 10"><path d="M0 0"/></svg>`, models.Typewriter)
	if !res.Animatable {
		t.Fatal("typewriter prerequisite must be advisory")
	}
	found := false
	for _, issue := range res.Issues {
		if strings.Contains(issue, "text elements") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing-text advisory absent: %v", res.Issues)
	}
}

func TestCompatiblePrerequisitesReportNoIssue(t *testing.T) {
	res := Analyze(`<svg viewBox="0 0 10 10"><path d="M0 0L5 5"/></svg>`, models.Draw)
	if !res.Animatable || len(res.Issues) != 0 {
		t.Errorf("unexpected issues: %v", res.Issues)
	}
}
