package models

// AnimationType identifies one of the supported animation effects.
// The set is closed: provider support lookup and the registry's
// selection policy both switch over these values.
type AnimationType string

const (
	FadeIn      AnimationType = "fade_in"
	FadeInUp    AnimationType = "fade_in_up"
	FadeInDown  AnimationType = "fade_in_down"
	FadeInLeft  AnimationType = "fade_in_left"
	FadeInRight AnimationType = "fade_in_right"
	ZoomIn      AnimationType = "zoom_in"
	ZoomOut     AnimationType = "zoom_out"
	Spin        AnimationType = "spin"
	Pulse       AnimationType = "pulse"
	Float       AnimationType = "float"
	Bounce      AnimationType = "bounce"
	Shimmer     AnimationType = "shimmer"
	Draw        AnimationType = "draw"
	Morph       AnimationType = "morph"
	Sequential  AnimationType = "sequential"
	Typewriter  AnimationType = "typewriter"
	Wave        AnimationType = "wave"
	Custom      AnimationType = "custom"
)

// AllAnimationTypes is the ordered list of every supported type.
var AllAnimationTypes = []AnimationType{
	FadeIn, FadeInUp, FadeInDown, FadeInLeft, FadeInRight,
	ZoomIn, ZoomOut, Spin, Pulse, Float, Bounce, Shimmer,
	Draw, Morph, Sequential, Typewriter, Wave, Custom,
}

// ValidAnimationType checks whether s names a known animation type.
func ValidAnimationType(s string) bool {
	for _, t := range AllAnimationTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// AnimationEasing names a timing curve. Anything outside the predefined
// set is treated as a raw cubic-bezier() string and passed through.
type AnimationEasing string

const (
	EaseLinear  AnimationEasing = "linear"
	Ease        AnimationEasing = "ease"
	EaseIn      AnimationEasing = "ease-in"
	EaseOut     AnimationEasing = "ease-out"
	EaseInOut   AnimationEasing = "ease-in-out"
	EaseElastic AnimationEasing = "elastic"
	EaseBounce  AnimationEasing = "bounce"
)

// AnimationTrigger controls when the generated animation starts.
type AnimationTrigger string

const (
	TriggerLoad  AnimationTrigger = "load"
	TriggerHover AnimationTrigger = "hover"
	TriggerClick AnimationTrigger = "click"
)

// AnimationDirection mirrors the CSS animation-direction values.
type AnimationDirection string

const (
	DirectionNormal           AnimationDirection = "normal"
	DirectionReverse          AnimationDirection = "reverse"
	DirectionAlternate        AnimationDirection = "alternate"
	DirectionAlternateReverse AnimationDirection = "alternate-reverse"
)

// IterationInfinite marks an animation that repeats forever.
const IterationInfinite = -1

// AnimationTiming holds the shared timing parameters of an animation.
// DurationMS must be > 0; the orchestrator fills the rest from defaults.
type AnimationTiming struct {
	DurationMS int                `json:"duration_ms"`
	DelayMS    int                `json:"delay_ms,omitempty"`
	Easing     AnimationEasing    `json:"easing,omitempty"`
	Iterations int                `json:"iterations,omitempty"` // IterationInfinite for indefinite
	Direction  AnimationDirection `json:"direction,omitempty"`
}

// AnimationOptions is the full request an animation provider receives.
// SequenceOrder wins over Elements for sequential animations when both
// are given.
type AnimationOptions struct {
	Type            AnimationType    `json:"type"`
	Timing          AnimationTiming  `json:"timing"`
	Trigger         AnimationTrigger `json:"trigger,omitempty"`
	Elements        []string         `json:"elements,omitempty"`
	SequenceOrder   []string         `json:"sequence_order,omitempty"`
	StaggerMS       int              `json:"stagger_ms,omitempty"`
	TransformOrigin string           `json:"transform_origin,omitempty"`
	CustomKeyframes string           `json:"custom_keyframes,omitempty"`
	CustomCSS       string           `json:"custom_css,omitempty"`
	JSCode          string           `json:"js_code,omitempty"`
}

// AnimatedSVGLogo is the artifact a provider produces. AnimatedSvg is
// always a well-formed SVG document; CSSCode/JSCode are populated only
// when the chosen strategy needs them (SMIL output needs neither).
type AnimatedSVGLogo struct {
	OriginalSvg      string           `json:"original_svg"`
	AnimatedSvg      string           `json:"animated_svg"`
	CSSCode          string           `json:"css_code,omitempty"`
	JSCode           string           `json:"js_code,omitempty"`
	AnimationOptions AnimationOptions `json:"animation_options"`
}

// SanitizationResult is the audit record of one sanitizer pass. It is
// produced once per raw input and never mutated afterward.
type SanitizationResult struct {
	Svg           string   `json:"svg"`
	IsModified    bool     `json:"is_modified"`
	Modifications []string `json:"modifications,omitempty"`
	Errors        []string `json:"errors,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Complexity tiers reported by the animatability analyzer.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// AnalysisResult is the analyzer's verdict for one SVG + animation type.
type AnalysisResult struct {
	Animatable bool       `json:"animatable"`
	Complexity Complexity `json:"complexity"`
	Issues     []string   `json:"issues,omitempty"`
}

// Stable error codes surfaced across the orchestrator boundary.
const (
	ErrCodeInvalidInput       = "invalid_input"
	ErrCodeSanitizationFailed = "sanitization_failed"
	ErrCodeOptimizationFailed = "optimization_failed"
	ErrCodeProviderFailed     = "provider_failed"
	ErrCodeProviderNotFound   = "provider_not_found"
	ErrCodeUnexpected         = "unexpected_error"
)

// AnimationError is the structured failure half of an AnimationResponse.
type AnimationError struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code"`
}

// AnimationResponse is the discriminated result of Service.Animate.
// Exactly one of Result/Error is set depending on Success.
type AnimationResponse struct {
	Success          bool             `json:"success"`
	Result           *AnimatedSVGLogo `json:"result,omitempty"`
	Error            *AnimationError  `json:"error,omitempty"`
	Warnings         []string         `json:"warnings,omitempty"`
	ProcessingTimeMS int64            `json:"processing_time_ms"`
	FromCache        bool             `json:"from_cache,omitempty"`
}
