package animation

import (
	"strconv"
	"strings"

	"logoforge/pkg/models"
)

// cssTimingFunction maps an easing to the CSS timing-function string.
// Unrecognized values are passed through so explicit cubic-bezier()
// strings keep working.
func cssTimingFunction(e models.AnimationEasing) string {
	switch e {
	case models.EaseLinear:
		return "linear"
	case models.Ease:
		return "ease"
	case models.EaseIn:
		return "ease-in"
	case models.EaseOut:
		return "ease-out"
	case models.EaseInOut:
		return "ease-in-out"
	case models.EaseElastic:
		return "cubic-bezier(0.68, -0.55, 0.265, 1.55)"
	case models.EaseBounce:
		return "cubic-bezier(0.175, 0.885, 0.32, 1.275)"
	default:
		if strings.HasPrefix(string(e), "cubic-bezier(") {
			return string(e)
		}
		return "ease"
	}
}

// keySplineFor maps an easing to an SMIL calcMode/keySplines pair.
// Linear is special-cased to calcMode=linear with no splines. SMIL
// control points must stay inside [0,1], so the overshooting elastic
// and bounce curves are clamped approximations.
func keySplineFor(e models.AnimationEasing) (calcMode, keySplines string) {
	switch e {
	case models.EaseLinear:
		return "linear", ""
	case models.Ease:
		return "spline", "0.25 0.1 0.25 1"
	case models.EaseIn:
		return "spline", "0.42 0 1 1"
	case models.EaseOut:
		return "spline", "0 0 0.58 1"
	case models.EaseInOut:
		return "spline", "0.42 0 0.58 1"
	case models.EaseElastic:
		return "spline", "0.68 0 0.265 1"
	case models.EaseBounce:
		return "spline", "0.175 0.885 0.32 1"
	default:
		if pts, ok := parseCubicBezier(string(e)); ok {
			return "spline", pts
		}
		return "spline", "0 0 0.58 1"
	}
}

// parseCubicBezier extracts the four control values from a
// cubic-bezier(a,b,c,d) string, clamped to the [0,1] range SMIL
// requires for the x coordinates (y values are clamped too; SMIL
// rejects anything outside the unit square).
func parseCubicBezier(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "cubic-bezier(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "cubic-bezier("), ")")
	parts := strings.Split(inner, ",")
	if len(parts) != 4 {
		return "", false
	}
	out := make([]string, 0, 4)
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return "", false
		}
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		out = append(out, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return strings.Join(out, " "), true
}

// jsEasingBody returns the JavaScript expression body used by the JS
// provider's embedded easing table. These are fixed polynomial
// approximations, not true cubic-bezier solving.
func jsEasingBody(e models.AnimationEasing) string {
	switch e {
	case models.EaseLinear:
		return "t"
	case models.EaseIn:
		return "t*t"
	case models.EaseOut:
		return "t*(2-t)"
	case models.Ease, models.EaseInOut:
		return "t<0.5 ? 2*t*t : -1+(4-2*t)*t"
	default:
		return "t*(2-t)"
	}
}
