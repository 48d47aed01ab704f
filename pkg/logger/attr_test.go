package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salonsuite/planguard/pkg/logger"
)

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)

	tests := []struct {
		attr slog.Attr
		key  string
		val  string
	}{
		{logger.TenantID("t1"), "tenant_id", "t1"},
		{logger.PlanID("basic"), "plan_id", "basic"},
		{logger.Resource("clients"), "resource", "clients"},
		{logger.Reason("store_unavailable"), "reason", "store_unavailable"},
		{logger.RequestID("r1"), "request_id", "r1"},
		{logger.Component("ratelimiter"), "component", "ratelimiter"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.key, tt.attr.Key)
		assert.Equal(t, tt.val, tt.attr.Value.String())
	}

	assert.Equal(t, 50*time.Millisecond, logger.Duration(50*time.Millisecond).Value.Duration())
}
