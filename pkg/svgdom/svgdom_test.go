package svgdom

import (
	"strings"
	"testing"
)

func TestParseBasic(t *testing.T) {
	root, err := Parse(`<svg viewBox="0 0 100 100"><g id="a"><path d="M0 0L10 10"/></g></svg>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Name != "svg" {
		t.Fatalf("root = %q, want svg", root.Name)
	}
	if got := root.AttrValue("viewBox"); got != "0 0 100 100" {
		t.Errorf("viewBox = %q", got)
	}
	paths := root.FindAll("path")
	if len(paths) != 1 {
		t.Fatalf("found %d paths, want 1", len(paths))
	}
	if n := root.FindByID("a"); n == nil || n.Name != "g" {
		t.Errorf("FindByID(a) = %v", n)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"unclosed", "<svg><g>"},
		{"mismatched", "<svg><g></svg></g>"},
		{"multiple roots", "<svg/><svg/>"},
		{"junk", "not markup at all"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.in); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tc.in)
			}
		})
	}
}

func TestParseKeepsNamespacedAttrs(t *testing.T) {
	root, err := Parse(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"><use xlink:href="#x"/></svg>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	use := root.FindAll("use")[0]
	if got := use.AttrValue("xlink:href"); got != "#x" {
		t.Errorf("xlink:href = %q", got)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	in := `<svg viewBox="0 0 10 10"><rect x="1" y="2" width="3" height="4"/><text>hi &amp; bye</text></svg>`
	root, err := Parse(in)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := Serialize(root)
	if out != in {
		t.Errorf("round trip changed markup:\n in: %s\nout: %s", in, out)
	}
}

func TestSerializeEscapesAttrValues(t *testing.T) {
	n := &Node{Kind: ElementNode, Name: "svg"}
	n.SetAttr("data-x", `a"b<c`)
	out := Serialize(n)
	if strings.Contains(out, `a"b<c`) {
		t.Errorf("unescaped attr in output: %s", out)
	}
	if !strings.Contains(out, "&quot;") || !strings.Contains(out, "&lt;") {
		t.Errorf("missing escapes in output: %s", out)
	}
}

func TestSetAttrPreservesOrder(t *testing.T) {
	root, _ := Parse(`<svg width="1" height="2"/>`)
	root.SetAttr("width", "9")
	if root.Attrs[0].Name != "width" || root.Attrs[0].Value != "9" {
		t.Errorf("attrs = %v", root.Attrs)
	}
}

func TestRemoveChild(t *testing.T) {
	root, _ := Parse(`<svg><g/><path d="M0 0"/></svg>`)
	g := root.FindAll("g")[0]
	if !root.RemoveChild(g) {
		t.Fatal("RemoveChild returned false")
	}
	if len(root.FindAll("g")) != 0 {
		t.Error("g still present after removal")
	}
}

func TestWalkPrunes(t *testing.T) {
	root, _ := Parse(`<svg><g id="skip"><path d="M0 0"/></g><circle r="1"/></svg>`)
	var seen []string
	root.Walk(func(n *Node) bool {
		seen = append(seen, n.Name)
		return n.AttrValue("id") != "skip"
	})
	for _, name := range seen {
		if name == "path" {
			t.Error("walk descended into pruned subtree")
		}
	}
}

func TestTextContent(t *testing.T) {
	root, _ := Parse(`<svg><text>Lo<tspan>go</tspan></text></svg>`)
	if got := root.TextContent(); got != "Logo" {
		t.Errorf("TextContent = %q", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	root, _ := Parse(`<svg><g id="a"/></svg>`)
	cp := root.Clone()
	cp.FindByID("a").SetAttr("id", "b")
	if root.FindByID("a") == nil {
		t.Error("mutating clone changed original")
	}
}

func TestParseViewBox(t *testing.T) {
	cases := []struct {
		in   string
		want ViewBox
		ok   bool
	}{
		{"0 0 100 50", ViewBox{0, 0, 100, 50}, true},
		{"0,0,100,50", ViewBox{0, 0, 100, 50}, true},
		{"-10 -5 20 10", ViewBox{-10, -5, 20, 10}, true},
		{"1 2 3", ViewBox{}, false},
		{"a b c d", ViewBox{}, false},
		{"", ViewBox{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseViewBox(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseViewBox(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseLength(t *testing.T) {
	if v, ok := ParseLength("120px"); !ok || v != 120 {
		t.Errorf("ParseLength(120px) = %v, %v", v, ok)
	}
	if v, ok := ParseLength(" 12.5 "); !ok || v != 12.5 {
		t.Errorf("ParseLength(12.5) = %v, %v", v, ok)
	}
	if _, ok := ParseLength("50%"); ok {
		t.Error("ParseLength(50%) should fail")
	}
}
