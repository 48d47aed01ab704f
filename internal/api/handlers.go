package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/salonsuite/planguard/pkg/limits"
	"github.com/salonsuite/planguard/pkg/logger"
	"github.com/salonsuite/planguard/pkg/plans"
	"github.com/salonsuite/planguard/pkg/ratelimiter"
	"github.com/salonsuite/planguard/pkg/tenant"
)

const maxBodyBytes = 1 << 16

type handlers struct {
	log      *slog.Logger
	catalog  *plans.Catalog
	resolver *tenant.ContextResolver
	engine   *ratelimiter.Engine
	guard    *limits.Guard
	tenants  TenantWriter
}

type planView struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Description  string                   `json:"description,omitempty"`
	PriceMonthly int64                    `json:"price_monthly"`
	Currency     string                   `json:"currency"`
	Rank         int                      `json:"rank"`
	TrialDays    int                      `json:"trial_days"`
	Features     []plans.Feature          `json:"features"`
	Limits       map[plans.LimitKey]int64 `json:"limits"`
}

func (h *handlers) listPlans(w http.ResponseWriter, _ *http.Request) {
	out := make([]planView, 0)
	for _, p := range h.catalog.Plans() {
		if !p.Public {
			continue
		}
		out = append(out, planView{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			PriceMonthly: p.PriceMonthly,
			Currency:     p.Currency,
			Rank:         p.Rank,
			TrialDays:    p.TrialDays,
			Features:     p.Features,
			Limits:       p.Limits,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": out})
}

type usageResponse struct {
	Tenant    tenant.Context                       `json:"tenant"`
	APICalls  ratelimiter.Decision                 `json:"api_calls"`
	Resources map[limits.Resource]limits.UsageInfo `json:"resources,omitempty"`
}

func (h *handlers) usage(w http.ResponseWriter, r *http.Request) {
	tc := tenant.MustFromContext(r.Context())

	resp := usageResponse{
		Tenant:   tc,
		APICalls: h.engine.Status(r.Context(), ratelimiter.RequestFromContext(tc)),
	}
	resources, err := h.guard.Usage(r.Context(), tc)
	if err != nil {
		h.log.WarnContext(r.Context(), "resource usage unavailable", logger.PlanID(tc.PlanID), logger.Error(err))
	}
	resp.Resources = resources

	writeJSON(w, http.StatusOK, resp)
}

type checkRequest struct {
	Current *int64 `json:"current"`
}

func (h *handlers) checkLimit(w http.ResponseWriter, r *http.Request) {
	tc := tenant.MustFromContext(r.Context())

	res := limits.Resource(chi.URLParam(r, "resource"))
	if !slices.Contains(limits.Resources(), res) {
		writeError(w, http.StatusNotFound, "unknown_resource")
		return
	}

	var req checkRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || req.Current == nil {
		writeError(w, http.StatusBadRequest, "current_required")
		return
	}

	var (
		result limits.Result
		err    error
	)
	if tc.Unlimited {
		result, err = h.guard.CanCreate(r.Context(), tc, res)
	} else {
		result, err = h.guard.Validator().Validate(tc.PlanID, res, *req.Current)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := http.StatusOK
	if !result.Allowed {
		status = http.StatusForbidden
		h.log.InfoContext(r.Context(), "resource limit reached",
			logger.TenantID(tc.TenantID), logger.PlanID(tc.PlanID), logger.Resource(string(res)))
	}
	writeJSON(w, status, result)
}

type upsertTenantRequest struct {
	PlanID    string        `json:"plan_id"`
	Unlimited bool          `json:"unlimited"`
	Status    tenant.Status `json:"status"`
}

func (h *handlers) upsertTenant(w http.ResponseWriter, r *http.Request) {
	id := tenantIDParam(r)
	if !tenant.ValidID(id) {
		writeError(w, http.StatusBadRequest, tenant.ErrInvalidIdentifier.Error())
		return
	}

	var req upsertTenantRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if req.PlanID != "" {
		if err := h.catalog.Verify(req.PlanID); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	rec := tenant.Record{ID: id, PlanID: req.PlanID, Unlimited: req.Unlimited, Status: req.Status}
	if err := h.tenants.Upsert(r.Context(), rec); err != nil {
		if errors.Is(err, tenant.ErrInvalidIdentifier) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.ErrorContext(r.Context(), "tenant upsert failed", logger.TenantID(id), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "tenant_store_failed")
		return
	}
	h.resolver.Invalidate(r.Context(), id)

	h.log.InfoContext(r.Context(), "tenant record saved", logger.TenantID(id), logger.PlanID(req.PlanID))
	writeJSON(w, http.StatusOK, rec)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
