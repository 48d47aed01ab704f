package tenant_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonsuite/planguard/pkg/tenant"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	cr := tenant.NewContextResolver(tenant.NewMemoryProvider(
		tenant.Record{ID: "acme", PlanID: "premium", Status: tenant.StatusActive},
	))

	var (
		got   tenant.Context
		found bool
	)
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = tenant.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := tenant.Middleware(cr, "/healthz")(capture)

	t.Run("attaches context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api", nil)
		req.Header.Set(tenant.DefaultHeader, "acme")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		require.True(t, found)
		assert.Equal(t, "acme", got.TenantID)
		assert.Equal(t, "premium", got.PlanID)
	})

	t.Run("skip paths bypass resolution", func(t *testing.T) {
		found = false
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(tenant.DefaultHeader, "acme")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.False(t, found)
	})

	t.Run("unresolved request still served", func(t *testing.T) {
		found = false
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, found)
	})
}

func TestRequireTenant(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects missing tenant", func(t *testing.T) {
		t.Parallel()

		rr := httptest.NewRecorder()
		tenant.RequireTenant(nil)(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()

		var gotErr error
		h := tenant.RequireTenant(func(w http.ResponseWriter, _ *http.Request, err error) {
			gotErr = err
			w.WriteHeader(http.StatusTeapot)
		})

		rr := httptest.NewRecorder()
		h(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.ErrorIs(t, gotErr, tenant.ErrNoTenantInContext)
	})

	t.Run("passes with tenant", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(tenant.WithContext(req.Context(), tenant.Context{TenantID: "acme"}))

		rr := httptest.NewRecorder()
		tenant.RequireTenant(nil)(ok).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
