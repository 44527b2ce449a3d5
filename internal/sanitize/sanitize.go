// Package sanitize strips script-capable content from untrusted SVG
// input before it reaches the animation pipeline. Input is attacker
// controlled (user upload or AI output) and must never carry anything
// executable into a browser.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"

	"logoforge/pkg/models"
	"logoforge/pkg/svgdom"
)

// Elements removed outright, wherever they appear.
var disallowedElements = map[string]struct{}{
	"script":        {},
	"foreignObject": {},
	"iframe":        {},
	"video":         {},
	"audio":         {},
	"embed":         {},
	"object":        {},
}

// Attribute value substrings that force removal regardless of name.
// All data: URIs are disallowed, not just text/html: an inline
// image/svg+xml payload can smuggle a scripted document. Matching
// anywhere in the value over-strips benign attributes; that is the
// safe direction.
var disallowedValueParts = []string{
	"javascript:",
	"data:",
}

// Sanitize parses raw, removes disallowed elements and attributes and
// returns the cleaned markup plus an audit trail. Fatal conditions
// (empty input, no <svg> root) populate Errors and leave Svg empty.
// Markup that is not well-formed XML but still looks like SVG goes
// through the regex fallback path; see SanitizeRegex.
func Sanitize(raw string) models.SanitizationResult {
	res := models.SanitizationResult{Svg: raw}

	if strings.TrimSpace(raw) == "" {
		res.Svg = ""
		res.Errors = append(res.Errors, "empty SVG input")
		return res
	}

	root, err := svgdom.Parse(raw)
	if err != nil {
		if !strings.Contains(raw, "<svg") {
			res.Svg = ""
			res.Errors = append(res.Errors, "no <svg> root element found")
			return res
		}
		// Not well-formed XML but plausibly renderable SVG. The
		// regex sanitizer enforces the same disallow-lists without
		// structural guarantees; recorded as a residual risk.
		out := SanitizeRegex(raw)
		out.Warnings = append(out.Warnings,
			"markup is not well-formed XML; regex sanitizer applied (structurally weaker fallback)")
		return out
	}

	if root.Name != "svg" {
		res.Svg = ""
		res.Errors = append(res.Errors, fmt.Sprintf("root element is <%s>, expected <svg>", root.Name))
		return res
	}

	mods := sanitizeTree(root)
	res.Modifications = mods
	res.IsModified = len(mods) > 0
	if res.IsModified {
		res.Svg = svgdom.Serialize(root)
	}
	return res
}

// sanitizeTree removes disallowed elements and attributes in place and
// returns one audit line per modification.
func sanitizeTree(root *svgdom.Node) []string {
	var mods []string

	var prune func(n *svgdom.Node)
	prune = func(n *svgdom.Node) {
		kept := n.Children[:0]
		for _, c := range n.Children {
			if c.Kind == svgdom.ElementNode {
				if _, bad := disallowedElements[c.Name]; bad {
					mods = append(mods, fmt.Sprintf("removed disallowed <%s> element", c.Name))
					continue
				}
				prune(c)
			}
			kept = append(kept, c)
		}
		n.Children = kept
	}
	prune(root)

	root.Walk(func(e *svgdom.Node) bool {
		var keep []svgdom.Attr
		for _, a := range e.Attrs {
			if reason := attrViolation(a); reason != "" {
				mods = append(mods, fmt.Sprintf("removed %s attribute %q from <%s>", reason, a.Name, e.Name))
				continue
			}
			keep = append(keep, a)
		}
		e.Attrs = keep
		return true
	})

	return mods
}

// attrViolation classifies a disallowed attribute, or returns "".
func attrViolation(a svgdom.Attr) string {
	name := strings.ToLower(a.Name)
	if strings.HasPrefix(name, "on") {
		return "event handler"
	}
	if name == "xlink:href" {
		return "external reference"
	}
	lower := strings.ToLower(a.Value)
	for _, part := range disallowedValueParts {
		if strings.Contains(lower, part) {
			return "unsafe value in"
		}
	}
	return ""
}

var (
	reScriptBlock = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	reBadElemPair = regexp.MustCompile(`(?is)<(?:foreignObject|iframe|video|audio|embed|object)\b[^>]*>.*?</\s*(?:foreignObject|iframe|video|audio|embed|object)\s*>`)
	reBadElemSolo = regexp.MustCompile(`(?is)<(?:script|foreignObject|iframe|video|audio|embed|object)\b[^>]*/?>`)
	reEventAttr   = regexp.MustCompile(`(?i)\son[a-z]+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	reXlinkHref   = regexp.MustCompile(`(?i)\sxlink:href\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	reUnsafeValue = regexp.MustCompile(`(?i)\s[a-z:-]+\s*=\s*("[^"]*(?:javascript:|data:)[^"]*"|'[^']*(?:javascript:|data:)[^']*')`)
)

// SanitizeRegex is the string-level fallback sanitizer. It enforces
// the same disallow-lists as Sanitize but cannot guarantee the result
// is structurally valid; callers treat its output as advisory-clean.
func SanitizeRegex(raw string) models.SanitizationResult {
	res := models.SanitizationResult{Svg: raw}
	out := raw

	strip := func(re *regexp.Regexp, what string) {
		matches := re.FindAllString(out, -1)
		if len(matches) == 0 {
			return
		}
		out = re.ReplaceAllString(out, "")
		res.Modifications = append(res.Modifications,
			fmt.Sprintf("removed %d %s occurrence(s) via regex", len(matches), what))
	}

	strip(reScriptBlock, "script block")
	strip(reBadElemPair, "disallowed element")
	strip(reBadElemSolo, "disallowed element tag")
	strip(reEventAttr, "event handler attribute")
	strip(reXlinkHref, "xlink:href attribute")
	strip(reUnsafeValue, "unsafe attribute value")

	res.Svg = out
	res.IsModified = len(res.Modifications) > 0
	return res
}
