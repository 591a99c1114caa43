package prom

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/schemagen/pkg/contract"
)

func TestContractObserver(t *testing.T) {
	reg := NewRegistry()
	obs := NewContractObserver(reg)

	v, err := contract.New("abc", contract.WithObserver(obs))
	require.NoError(t, err)
	h := v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, checksum := range []string{"", "abc", "abc", "zzz"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if checksum != "" {
			req.Header.Set("Api-Checksum", checksum)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(obs.requestsTotal.WithLabelValues("forwarded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.requestsTotal.WithLabelValues("missing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.requestsTotal.WithLabelValues("mismatch")))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `schemagen_contract_requests_total{outcome="forwarded"} 2`))
}
