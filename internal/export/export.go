// Package export turns a generated animation into a downloadable
// artifact: a self-contained SVG or a standalone HTML document.
package export

import (
	"errors"
	"fmt"
	"strings"

	"logoforge/pkg/models"
)

// ErrUnsupportedFormat marks formats that are accepted by the API
// shape but have no renderer yet (gif, mp4).
var ErrUnsupportedFormat = errors.New("export format not supported")

// Package renders the artifact bytes and content type for a format.
func Package(logo models.AnimatedSVGLogo, format models.ExportFormat) ([]byte, string, error) {
	switch format {
	case models.ExportSVG:
		out, err := embedInSVG(logo)
		if err != nil {
			return nil, "", err
		}
		return []byte(out), "image/svg+xml", nil
	case models.ExportHTML:
		return []byte(standaloneHTML(logo)), "text/html; charset=utf-8", nil
	case models.ExportGIF, models.ExportMP4:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	default:
		return nil, "", fmt.Errorf("unknown export format %q", format)
	}
}

// embedInSVG produces a single SVG document that carries its own
// styles and behavior: a <style> block right after the opening
// <svg ...> tag and a CDATA-wrapped <script> before the closing tag.
func embedInSVG(logo models.AnimatedSVGLogo) (string, error) {
	svg := logo.AnimatedSvg
	open := strings.Index(svg, "<svg")
	if open < 0 {
		return "", fmt.Errorf("animated markup has no <svg> element")
	}
	end := strings.Index(svg[open:], ">")
	if end < 0 {
		return "", fmt.Errorf("animated markup has an unterminated <svg> tag")
	}
	insertAt := open + end + 1

	var b strings.Builder
	b.WriteString(svg[:insertAt])
	if logo.CSSCode != "" {
		b.WriteString("\n<style>\n")
		b.WriteString(logo.CSSCode)
		b.WriteString("</style>")
	}
	rest := svg[insertAt:]

	if logo.JSCode != "" {
		close := strings.LastIndex(rest, "</svg>")
		if close < 0 {
			return "", fmt.Errorf("animated markup has no closing </svg> tag")
		}
		b.WriteString(rest[:close])
		b.WriteString("<script><![CDATA[\n")
		b.WriteString(logo.JSCode)
		b.WriteString("\n]]></script>")
		b.WriteString(rest[close:])
	} else {
		b.WriteString(rest)
	}
	return b.String(), nil
}

// standaloneHTML wraps the animation in a minimal page for previewing
// in a browser.
func standaloneHTML(logo models.AnimatedSVGLogo) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Animated Logo</title>\n")
	if logo.CSSCode != "" {
		b.WriteString("<style>\n")
		b.WriteString(logo.CSSCode)
		b.WriteString("</style>\n")
	}
	b.WriteString("</head>\n<body>\n")
	b.WriteString(logo.AnimatedSvg)
	b.WriteString("\n")
	if logo.JSCode != "" {
		b.WriteString("<script>\n")
		b.WriteString(logo.JSCode)
		b.WriteString("</script>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
