package sanitize

import (
	"strings"
	"testing"
)

func TestEmptyInputIsFatal(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		res := Sanitize(in)
		if len(res.Errors) == 0 {
			t.Errorf("Sanitize(%q): no error", in)
		}
		if res.Svg != "" {
			t.Errorf("Sanitize(%q): Svg = %q, want empty", in, res.Svg)
		}
	}
}

func TestNonSVGInputIsFatal(t *testing.T) {
	res := Sanitize("just some text")
	if len(res.Errors) == 0 {
		t.Fatal("expected fatal error for non-SVG input")
	}

	res = Sanitize("<html><body/></html>")
	if len(res.Errors) == 0 {
		t.Fatal("expected fatal error for non-svg root")
	}
}

func TestRemovesDisallowedElements(t *testing.T) {
	in := `<svg><script>alert(1)</script><foreignObject><div/></foreignObject><circle r="5"/></svg>`
	res := Sanitize(in)

	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if !res.IsModified {
		t.Fatal("IsModified = false")
	}
	for _, bad := range []string{"<script", "<foreignObject", "alert(1)"} {
		if strings.Contains(res.Svg, bad) {
			t.Errorf("output still contains %q: %s", bad, res.Svg)
		}
	}
	if !strings.Contains(res.Svg, "<circle") {
		t.Error("benign content removed")
	}
	if len(res.Modifications) != 2 {
		t.Errorf("modifications = %v, want 2 entries", res.Modifications)
	}
}

func TestRemovesNestedDisallowedElements(t *testing.T) {
	in := `<svg><g><g><iframe src="https://evil.example"/></g></g></svg>`
	res := Sanitize(in)
	if strings.Contains(res.Svg, "iframe") {
		t.Errorf("nested iframe survived: %s", res.Svg)
	}
}

func TestRemovesEventHandlerAttrs(t *testing.T) {
	in := `<svg onload="alert(1)"><rect onclick="steal()" width="5" height="5"/></svg>`
	res := Sanitize(in)

	if strings.Contains(strings.ToLower(res.Svg), "onload") ||
		strings.Contains(strings.ToLower(res.Svg), "onclick") {
		t.Errorf("event handlers survived: %s", res.Svg)
	}
	if !strings.Contains(res.Svg, `width="5"`) {
		t.Error("benign attribute removed")
	}
}

func TestRemovesXlinkHrefAndUnsafeValues(t *testing.T) {
	in := `<svg><use xlink:href="#target"/><a href="javascript:alert(1)">x</a><image href="data:text/html,<b>hi</b>"/></svg>`
	res := Sanitize(in)

	lower := strings.ToLower(res.Svg)
	for _, bad := range []string{"xlink:href", "javascript:", "data:text/html"} {
		if strings.Contains(lower, bad) {
			t.Errorf("output still contains %q: %s", bad, res.Svg)
		}
	}
}

func TestRemovesInlineDataURIs(t *testing.T) {
	// an inline image/svg+xml payload is a full document and can carry
	// its own event handlers
	scripted := `<svg viewBox="0 0 10 10"><image href="data:image/svg+xml;base64,PHN2ZyBvbmxvYWQ9ImFsZXJ0KDEpIi8+"/></svg>`
	res := Sanitize(scripted)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if strings.Contains(strings.ToLower(res.Svg), "data:") {
		t.Errorf("inline data: URI survived: %s", res.Svg)
	}
	if !strings.Contains(res.Svg, "<image") {
		t.Error("element removed instead of its unsafe attribute")
	}

	// raster payloads are stripped too; no data: scheme passes
	raster := `<svg viewBox="0 0 10 10"><image href="data:image/png;base64,iVBORw0KGgo="/></svg>`
	res = Sanitize(raster)
	if strings.Contains(strings.ToLower(res.Svg), "data:") {
		t.Errorf("raster data: URI survived: %s", res.Svg)
	}
}

func TestSanitizeRegexStripsInlineDataURIs(t *testing.T) {
	in := `<svg><br><image href="data:image/svg+xml;base64,PHN2ZyBvbmxvYWQ9ImFsZXJ0KDEpIi8+"/></svg>`
	res := Sanitize(in)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected regex fallback warning")
	}
	if strings.Contains(strings.ToLower(res.Svg), "data:") {
		t.Errorf("regex path left inline data: URI: %s", res.Svg)
	}
}

func TestCleanInputPassesUnmodified(t *testing.T) {
	in := `<svg viewBox="0 0 10 10"><path d="M0 0L5 5" fill="red"/></svg>`
	res := Sanitize(in)

	if res.IsModified {
		t.Errorf("clean input reported as modified: %v", res.Modifications)
	}
	if res.Svg != in {
		t.Errorf("clean input changed:\n in: %s\nout: %s", in, res.Svg)
	}
}

func TestMalformedSVGTakesRegexPath(t *testing.T) {
	// <br> is never closed, so the XML parse fails, but an <svg appears.
	in := `<svg onload="alert(1)"><br><script>alert(2)</script><rect width="5"/></svg>`
	res := Sanitize(in)

	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "regex sanitizer") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing regex fallback warning, got %v", res.Warnings)
	}
	lower := strings.ToLower(res.Svg)
	if strings.Contains(lower, "<script") || strings.Contains(lower, "onload") {
		t.Errorf("regex path left executable content: %s", res.Svg)
	}
}

func TestSanitizeRegexStripsAll(t *testing.T) {
	in := `<svg onclick='x()'><script type="text/javascript">while(1){}</script>` +
		`<iframe src="https://evil.example"></iframe>` +
		`<use xlink:href="#a"/><a href="javascript:void(0)">x</a></svg>`
	res := SanitizeRegex(in)

	lower := strings.ToLower(res.Svg)
	for _, bad := range []string{"<script", "<iframe", "onclick", "xlink:href", "javascript:"} {
		if strings.Contains(lower, bad) {
			t.Errorf("regex sanitizer left %q: %s", bad, res.Svg)
		}
	}
	if !res.IsModified || len(res.Modifications) == 0 {
		t.Error("modifications not recorded")
	}
}

// The sanitizer's contract: nothing executable survives, whichever
// path the input takes.
func TestNoExecutableContentSurvives(t *testing.T) {
	inputs := []string{
		`<svg><script>fetch('https://evil.example')</script></svg>`,
		`<svg onmouseover="x()"><g onfocus="y()"/></svg>`,
		`<svg><embed src="x.html"/><object data="x.html"/></svg>`,
		`<svg><video src="v.mp4"/><audio src="a.mp3"/></svg>`,
		`<svg><a href="JAVASCRIPT:alert(1)">x</a></svg>`,
		`<svg><image href="data:image/svg+xml,<svg onload='alert(1)'/>"/></svg>`,
		`<svg><image href="DATA:image/svg+xml;base64,PHN2Zy8+"/></svg>`,
	}
	for _, in := range inputs {
		res := Sanitize(in)
		if len(res.Errors) != 0 {
			continue
		}
		lower := strings.ToLower(res.Svg)
		for _, bad := range []string{"<script", "javascript:", "data:", "<embed", "<object", "<video", "<audio", "onmouseover", "onfocus"} {
			if strings.Contains(lower, bad) {
				t.Errorf("executable content survived in %q: %s", in, res.Svg)
			}
		}
	}
}
