package animation

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"logoforge/internal/analyze"
	"logoforge/internal/optimize"
	"logoforge/internal/sanitize"
	"logoforge/pkg/cache"
	"logoforge/pkg/models"
	"logoforge/pkg/svgdom"
)

// Stage names reported while a request moves through the pipeline.
type Stage string

const (
	StageReceived         Stage = "received"
	StageSanitized        Stage = "sanitized"
	StageOptimized        Stage = "optimized"
	StageAnalyzed         Stage = "analyzed"
	StageProviderSelected Stage = "provider_selected"
	StageGenerated        Stage = "generated"
	StageCached           Stage = "cached"
	StageFailed           Stage = "failed"
)

// Reporter receives stage transitions. The websocket progress hub
// implements it; a nil reporter disables reporting.
type Reporter interface {
	ReportStage(stage string, detail string)
}

// Timing defaults merged under caller options.
const (
	defaultDurationMS = 1000
	defaultStaggerMS  = 100
)

// Retry policy for the provider invocation step only. Sanitize,
// optimize and analyze are deterministic and never retried; the
// fallback path is kept simple and never retried either.
const (
	providerAttempts = 2
	backoffStart     = 500 * time.Millisecond
	backoffFactor    = 1.5
	backoffCap       = 2 * time.Second
)

type pipelineOutput struct {
	svg           string
	warnings      []string
	regexFallback bool
}

// Service is the orchestrator behind the public animate boundary. It
// owns its caches; two Services share nothing, so tests can construct
// isolated instances.
type Service struct {
	registry *Registry
	reporter Reporter
	pipeline *cache.LRU[pipelineOutput]
	results  *cache.LRU[models.AnimationResponse]
}

// NewService builds a Service around a provider registry. reporter may
// be nil. cacheCapacity bounds each internal cache; zero or negative
// keeps the caches unbounded.
func NewService(registry *Registry, reporter Reporter, cacheCapacity int) *Service {
	return &Service{
		registry: registry,
		reporter: reporter,
		pipeline: cache.NewLRU[pipelineOutput](cacheCapacity),
		results:  cache.NewLRU[models.AnimationResponse](cacheCapacity),
	}
}

func (s *Service) report(stage Stage, detail string) {
	if s.reporter != nil {
		s.reporter.ReportStage(string(stage), detail)
	}
}

// Animate runs the full pipeline: validate, sanitize, optimize,
// analyze, merge defaults, select a provider, generate with bounded
// retry, cache. It never returns an error or panics across this
// boundary; failures come back as a structured response.
func (s *Service) Animate(ctx context.Context, svg string, opts models.AnimationOptions) (resp models.AnimationResponse) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[animation] recovered panic: %v", r)
			resp = s.fail(start, models.ErrCodeUnexpected, "animation generation failed", fmt.Sprint(r))
		}
	}()

	s.report(StageReceived, string(opts.Type))

	if strings.TrimSpace(svg) == "" {
		return s.fail(start, models.ErrCodeInvalidInput, "empty SVG input", "")
	}
	if !models.ValidAnimationType(string(opts.Type)) {
		return s.fail(start, models.ErrCodeInvalidInput, "unknown animation type", string(opts.Type))
	}

	merged := mergeDefaults(opts)

	key := fingerprint(svg, merged)
	if cached, ok := s.results.Get(key); ok {
		cached.ProcessingTimeMS = 0
		cached.FromCache = true
		return cached
	}

	pipe, failResp := s.runPipeline(start, svg)
	if failResp != nil {
		return *failResp
	}

	warnings := append([]string(nil), pipe.warnings...)

	analysis := analyze.Analyze(pipe.svg, merged.Type)
	if !analysis.Animatable {
		return s.fail(start, models.ErrCodeInvalidInput, "SVG cannot be animated",
			strings.Join(analysis.Issues, "; "))
	}
	for _, issue := range analysis.Issues {
		// Advisory only: generation proceeds even when the type's
		// structural prerequisite is missing.
		log.Printf("[animation] advisory: %s", issue)
		warnings = append(warnings, issue)
	}
	s.report(StageAnalyzed, string(analysis.Complexity))

	var result *models.AnimatedSVGLogo
	var err error

	provider := s.registry.BestFor(merged.Type)
	if provider == nil {
		s.report(StageProviderSelected, "fallback")
		result, err = fallbackAnimate(pipe.svg, merged)
		if err != nil {
			return s.fail(start, models.ErrCodeUnexpected, "fallback animation failed", err.Error())
		}
	} else {
		s.report(StageProviderSelected, provider.ID())
		result, err = s.invokeWithRetry(ctx, provider, pipe.svg, merged)
		if err != nil {
			return s.fail(start, models.ErrCodeProviderFailed,
				fmt.Sprintf("provider %s failed", provider.ID()), err.Error())
		}
	}

	result.OriginalSvg = svg
	s.report(StageGenerated, string(merged.Type))

	resp = models.AnimationResponse{
		Success:          true,
		Result:           result,
		Warnings:         warnings,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
	}
	s.results.Put(key, resp)
	s.report(StageCached, key)
	return resp
}

// runPipeline sanitizes and optimizes, memoized by content hash.
func (s *Service) runPipeline(start time.Time, svg string) (pipelineOutput, *models.AnimationResponse) {
	ck := contentHash(svg)
	if po, ok := s.pipeline.Get(ck); ok {
		return po, nil
	}

	san := sanitize.Sanitize(svg)
	if len(san.Errors) > 0 {
		resp := s.fail(start, models.ErrCodeInvalidInput, "invalid SVG input",
			strings.Join(san.Errors, "; "))
		return pipelineOutput{}, &resp
	}
	s.report(StageSanitized, fmt.Sprintf("%d modification(s)", len(san.Modifications)))

	po := pipelineOutput{svg: san.Svg}
	po.warnings = append(po.warnings, san.Warnings...)
	for _, w := range san.Warnings {
		if strings.Contains(w, "regex sanitizer") {
			po.regexFallback = true
		}
	}

	optimized, mods, err := optimize.Optimize(san.Svg)
	if err != nil {
		if !po.regexFallback {
			resp := s.fail(start, models.ErrCodeOptimizationFailed, "SVG optimization failed", err.Error())
			return pipelineOutput{}, &resp
		}
		// Regex-sanitized markup may not parse; keep it and let the
		// analyzer decide whether it is animatable at all.
		po.warnings = append(po.warnings, fmt.Sprintf("optimization skipped: %v", err))
	} else {
		po.svg = optimized
		s.report(StageOptimized, fmt.Sprintf("%d modification(s)", len(mods)))
	}

	s.pipeline.Put(ck, po)
	return po, nil
}

// invokeWithRetry calls the provider with exponential backoff between
// attempts. The backoff sleeps only this call's goroutine; no shared
// lock is held while waiting.
func (s *Service) invokeWithRetry(ctx context.Context, p Provider, svg string, opts models.AnimationOptions) (*models.AnimatedSVGLogo, error) {
	backoff := backoffStart
	var lastErr error
	for attempt := 1; attempt <= providerAttempts; attempt++ {
		out, err := p.Animate(ctx, svg, opts)
		if err == nil {
			return out, nil
		}
		lastErr = err
		log.Printf("[animation] provider %s attempt %d/%d failed: %v", p.ID(), attempt, providerAttempts, err)

		if attempt == providerAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = time.Duration(float64(backoff) * backoffFactor)
		if backoff > backoffCap {
			backoff = backoffCap
		}
	}
	return nil, lastErr
}

func (s *Service) fail(start time.Time, code, message, details string) models.AnimationResponse {
	s.report(StageFailed, code)
	return models.AnimationResponse{
		Success: false,
		Error: &models.AnimationError{
			Message: message,
			Details: details,
			Code:    code,
		},
		ProcessingTimeMS: time.Since(start).Milliseconds(),
	}
}

// mergeDefaults shallow-merges caller options over the documented
// defaults: duration 1000ms, delay 0, easing ease-out, one iteration.
func mergeDefaults(opts models.AnimationOptions) models.AnimationOptions {
	if opts.Timing.DurationMS <= 0 {
		opts.Timing.DurationMS = defaultDurationMS
	}
	if opts.Timing.DelayMS < 0 {
		opts.Timing.DelayMS = 0
	}
	if opts.Timing.Easing == "" {
		opts.Timing.Easing = models.EaseOut
	}
	if opts.Timing.Iterations == 0 {
		opts.Timing.Iterations = 1
	}
	if opts.Timing.Direction == "" {
		opts.Timing.Direction = models.DirectionNormal
	}
	if opts.Trigger == "" {
		opts.Trigger = models.TriggerLoad
	}
	if opts.StaggerMS <= 0 {
		opts.StaggerMS = defaultStaggerMS
	}
	return opts
}

// fallbackAnimate is the built-in minimal CSS generator used only when
// no registered provider supports the requested type. It knows the
// four basic effects; anything else renders as a fade.
func fallbackAnimate(svg string, opts models.AnimationOptions) (*models.AnimatedSVGLogo, error) {
	root, err := parseRoot(svg)
	if err != nil {
		return nil, err
	}

	token := newToken("lf_fallback")
	addClass(root, token)

	var body string
	switch opts.Type {
	case models.ZoomIn:
		body = "  from { transform: scale(0); }\n  to { transform: scale(1); }\n"
	case models.Spin:
		body = "  from { transform: rotate(0deg); }\n  to { transform: rotate(360deg); }\n"
	case models.Pulse:
		body = "  0% { transform: scale(1); }\n  50% { transform: scale(1.1); }\n  100% { transform: scale(1); }\n"
	default:
		body = "  from { opacity: 0; }\n  to { opacity: 1; }\n"
	}

	css := fmt.Sprintf("@keyframes %[1]s_kf {\n%[2]s}\n.%[1]s {\n  animation: %[1]s_kf %[3]dms %[4]s %[5]dms %[6]s;\n  animation-fill-mode: forwards;\n}\n",
		token, body, opts.Timing.DurationMS, cssTimingFunction(opts.Timing.Easing),
		opts.Timing.DelayMS, iterationCount(opts.Timing.Iterations))

	return &models.AnimatedSVGLogo{
		OriginalSvg:      svg,
		AnimatedSvg:      svgdom.Serialize(root),
		CSSCode:          css,
		AnimationOptions: opts,
	}, nil
}

// ClearCaches drops both memoization caches. Explicit operator action;
// nothing clears them implicitly.
func (s *Service) ClearCaches() {
	s.pipeline.Clear()
	s.results.Clear()
}

// CacheStats reports current cache sizes for the debug endpoint.
func (s *Service) CacheStats() (pipeline, results int) {
	return s.pipeline.Len(), s.results.Len()
}
