package animation

import (
	"fmt"
	"hash/fnv"

	"logoforge/pkg/models"
)

// fingerprint derives the cache key for a request: a full FNV-1a hash
// of the SVG content combined with the option fields that change the
// generated output. Hashing the whole content (instead of a truncated
// prefix/length/suffix summary) costs one linear pass and removes the
// collision risk of same-length same-edges documents.
func fingerprint(svg string, opts models.AnimationOptions) string {
	h := fnv.New64a()
	h.Write([]byte(svg))
	fmt.Fprintf(h, "|%s|%d|%s", opts.Type, opts.Timing.DurationMS, opts.Timing.Easing)
	return fmt.Sprintf("%016x", h.Sum64())
}

// contentHash keys the sanitize/optimize/analyze pipeline cache, which
// depends only on the SVG content, not the animation options.
func contentHash(svg string) string {
	h := fnv.New64a()
	h.Write([]byte(svg))
	return fmt.Sprintf("%016x", h.Sum64())
}
