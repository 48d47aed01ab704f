package ratelimiter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/salonsuite/planguard/pkg/tenant"
)

// DeniedResponse is the JSON body of a 429 response.
type DeniedResponse struct {
	Error          string         `json:"error"`
	Limit          int64          `json:"limit"`
	Used           int64          `json:"used"`
	Remaining      int64          `json:"remaining"`
	ResetAt        time.Time      `json:"reset_at"`
	PlanID         string         `json:"plan_id"`
	Recommendation Recommendation `json:"recommendation"`
	UpgradePlanID  string         `json:"upgrade_plan_id,omitempty"`
}

// RequestFromContext builds the engine input from a resolved tenant context.
func RequestFromContext(tc tenant.Context) Request {
	return Request{TenantID: tc.TenantID, PlanID: tc.PlanID, Unlimited: tc.Unlimited}
}

// Middleware enforces the monthly API quota for the resolved tenant.
// It must run after tenant.Middleware. Requests without a tenant pass through.
func Middleware(engine *Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tc, ok := tenant.FromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			d := engine.Allow(r.Context(), RequestFromContext(tc))
			d.SetHeaders(w.Header(), engine.now())

			if !d.Allowed {
				writeJSON(w, http.StatusTooManyRequests, DeniedResponse{
					Error:          "rate_limit_exceeded",
					Limit:          d.Limit,
					Used:           d.Used,
					Remaining:      d.Remaining,
					ResetAt:        d.ResetAt,
					PlanID:         d.PlanID,
					Recommendation: d.Recommendation,
					UpgradePlanID:  d.UpgradePlanID,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// StatusHandler reports the resolved tenant's quota without counting a call.
func StatusHandler(engine *Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tc, ok := tenant.FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusBadRequest, tenant.ErrNoTenantInContext)
			return
		}

		d := engine.Status(r.Context(), RequestFromContext(tc))
		d.SetHeaders(w.Header(), engine.now())
		writeJSON(w, http.StatusOK, d)
	})
}

// ResetHandler zeroes the current period counter of the tenant returned by
// tenantID. Mount it only behind administrative authentication.
func ResetHandler(engine *Engine, tenantID func(r *http.Request) string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := tenantID(r)
		if !tenant.ValidID(id) {
			writeError(w, http.StatusBadRequest, tenant.ErrInvalidIdentifier)
			return
		}

		if err := engine.Reset(r.Context(), id); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrNoTenant) {
				status = http.StatusBadRequest
			}
			writeError(w, status, ErrResetFailed)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
