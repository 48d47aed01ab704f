package ratelimiter

import (
	"net/http"
	"strconv"
	"time"
)

const (
	HeaderLimit      = "X-RateLimit-Limit"
	HeaderRemaining  = "X-RateLimit-Remaining"
	HeaderUsed       = "X-RateLimit-Used"
	HeaderReset      = "X-RateLimit-Reset"
	HeaderRetryAfter = "Retry-After"

	unlimitedValue = "unlimited"
)

// SetHeaders writes the informational rate limit headers to h.
// Limit and remaining render as "unlimited" when no ceiling applies.
func (d Decision) SetHeaders(h http.Header, now time.Time) {
	h.Set(HeaderLimit, formatQuota(d.Limit))
	h.Set(HeaderRemaining, formatQuota(d.Remaining))
	h.Set(HeaderUsed, strconv.FormatInt(d.Used, 10))
	if !d.ResetAt.IsZero() {
		h.Set(HeaderReset, strconv.FormatInt(d.ResetAt.Unix(), 10))
	}

	if retry := d.RetryAfter(now); retry > 0 {
		// Round up so clients never retry a second early.
		h.Set(HeaderRetryAfter, strconv.FormatInt(int64((retry+time.Second-1)/time.Second), 10))
	}
}

func formatQuota(v int64) string {
	if v < 0 {
		return unlimitedValue
	}
	return strconv.FormatInt(v, 10)
}
