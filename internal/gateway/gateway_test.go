package gateway

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blimu-dev/schemagen/pkg/config"
	"github.com/blimu-dev/schemagen/pkg/errors"
	"github.com/blimu-dev/schemagen/pkg/schema"
)

const schemaDoc = `
version: 0.1.0
schema_diff: ''
structs:
  User:
    id: int
endpoints:
  get_user:
    uri: /user
    method: GET
    input: int
    returns: User
`

func setup(t *testing.T) (*Gateway, string) {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Upstream", "1")
		_, _ = io.WriteString(w, "Hello world")
	}))
	t.Cleanup(upstream.Close)

	path := filepath.Join(t.TempDir(), "schema.yml")
	require.NoError(t, os.WriteFile(path, []byte(schemaDoc), 0o644))
	s, err := schema.Load(path)
	require.NoError(t, err)

	g, err := New(&config.Server{
		Addr:        "127.0.0.1:0",
		Upstream:    upstream.URL,
		Schema:      path,
		Header:      config.DefaultHeader,
		MetricsPath: "/metrics",
	}, zap.NewNop().Sugar())
	require.NoError(t, err)
	return g, s.Checksum()
}

func serve(g *Gateway, path, checksum string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if checksum != "" {
		req.Header.Set(config.DefaultHeader, checksum)
	}
	rec := httptest.NewRecorder()
	g.Echo.ServeHTTP(rec, req)
	return rec
}

func TestGateway_Outcomes(t *testing.T) {
	g, sum := setup(t)

	rec := serve(g, "/user", sum)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello world", rec.Body.String())
	assert.Equal(t, "1", rec.Header().Get("X-Upstream"))

	rec = serve(g, "/user", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "contract_missing")

	rec = serve(g, "/user", "stale")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "contract_mismatch")

	rec = serve(g, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, outcome := range []string{"forwarded", "missing", "mismatch"} {
		assert.True(t, strings.Contains(body, `schemagen_contract_requests_total{outcome="`+outcome+`"} 1`), outcome)
	}
}

func TestNew_ChecksumSources(t *testing.T) {
	_, err := New(&config.Server{Upstream: "http://localhost:1"}, zap.NewNop().Sugar())
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))

	g, err := New(&config.Server{Upstream: "http://localhost:1", Checksum: "abc"}, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.Equal(t, "abc", g.Validator.Expected())

	path := filepath.Join(t.TempDir(), "schema.yml")
	require.NoError(t, os.WriteFile(path, []byte(schemaDoc), 0o644))
	_, err = New(&config.Server{Upstream: "http://localhost:1", Schema: path, Checksum: "abc"}, zap.NewNop().Sugar())
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))

	_, err = New(&config.Server{Upstream: "not a url", Checksum: "abc"}, zap.NewNop().Sugar())
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}
