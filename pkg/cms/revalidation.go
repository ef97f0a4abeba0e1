package cms

import (
	"time"
)

// Revalidation is a cache freshness hint attached to a single request.
//
// The zero value (NoRevalidation) carries no hint: the transport neither reads
// nor writes its response cache. RevalidateAfter allows a cached response to be
// served until it is older than the given window. RevalidateImmediately marks
// the response as always stale, so it is fetched fresh and never stored.
type Revalidation struct {
	after time.Duration
	set   bool
}

// NoRevalidation is the absence of a hint.
var NoRevalidation = Revalidation{}

// RevalidateAfter returns a hint that tolerates staleness up to window.
// A non-positive window is equivalent to RevalidateImmediately.
func RevalidateAfter(window time.Duration) Revalidation {
	if window < 0 {
		window = 0
	}

	return Revalidation{after: window, set: true}
}

// RevalidateImmediately returns a hint that treats every response as stale.
func RevalidateImmediately() Revalidation {
	return Revalidation{set: true}
}

// IsSet reports whether the hint was given at all.
func (r Revalidation) IsSet() bool {
	return r.set
}

// After returns the staleness window. It is zero for unset and immediate hints.
func (r Revalidation) After() time.Duration {
	return r.after
}

// Cacheable reports whether a response may be served from and stored in a cache.
func (r Revalidation) Cacheable() bool {
	return r.set && r.after > 0
}

// AlwaysStale reports whether the response must always be fetched fresh.
func (r Revalidation) AlwaysStale() bool {
	return r.set && r.after == 0
}

// String implements fmt.Stringer.
func (r Revalidation) String() string {
	switch {
	case !r.set:
		return "none"
	case r.after == 0:
		return "immediate"
	default:
		return "after " + r.after.String()
	}
}
