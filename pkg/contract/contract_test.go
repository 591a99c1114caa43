package contract

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/schemagen/pkg/errors"
)

const sum = "3f1c0e5a"

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func (o *recordingObserver) Outcome(out Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, out)
}

func newValidator(t *testing.T, opts ...Option) *Validator {
	t.Helper()
	v, err := New(sum, opts...)
	require.NoError(t, err)
	return v
}

func TestNew_RequiresChecksum(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestCheck(t *testing.T) {
	v := newValidator(t)
	assert.Equal(t, "Api-Checksum", v.Header())
	assert.Equal(t, sum, v.Expected())

	tests := []struct {
		name     string
		header   map[string]string
		sentinel error
	}{
		{"absent", nil, errors.ErrContractMissing},
		{"match", map[string]string{"Api-Checksum": sum}, nil},
		{"lowercase header name", map[string]string{"api-checksum": sum}, nil},
		{"mismatch", map[string]string{"Api-Checksum": "deadbeef"}, errors.ErrContractMismatch},
		{"empty value", map[string]string{"Api-Checksum": ""}, errors.ErrContractMismatch},
		{"other header only", map[string]string{"Api-Schema-Checksum": sum}, errors.ErrContractMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, val := range tt.header {
				r.Header.Set(k, val)
			}
			err := v.Check(r)
			if tt.sentinel == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
		})
	}
}

func TestMiddleware(t *testing.T) {
	obs := &recordingObserver{}
	v := newValidator(t, WithHeader("api-schema-checksum"), WithObserver(obs))
	assert.Equal(t, "Api-Schema-Checksum", v.Header())

	calls := 0
	downstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("X-Downstream", "yes")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("Hello world"))
	})
	h := v.Middleware(downstream)

	// missing
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var rej Rejection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rej))
	assert.Equal(t, CodeMissing, rej.Error)
	assert.Equal(t, "Api-Schema-Checksum", rej.Header)
	assert.Equal(t, 0, calls)

	// mismatch
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/user", nil)
	req.Header.Set("Api-Schema-Checksum", "stale")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rej))
	assert.Equal(t, CodeMismatch, rej.Error)
	assert.Equal(t, 0, calls)

	// match: downstream response verbatim
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Api-Schema-Checksum", sum)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "Hello world", rec.Body.String())
	assert.Equal(t, "yes", rec.Header().Get("X-Downstream"))
	assert.Equal(t, 1, calls)

	assert.Equal(t, []Outcome{OutcomeMissing, OutcomeMismatch, OutcomeForwarded}, obs.outcomes)
}

func TestMiddleware_Concurrent(t *testing.T) {
	obs := &recordingObserver{}
	v := newValidator(t, WithObserver(obs))
	h := v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if i%2 == 0 {
				req.Header.Set("Api-Checksum", sum)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if i%2 == 0 {
				assert.Equal(t, http.StatusNoContent, rec.Code)
			} else {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
		}(i)
	}
	wg.Wait()
	assert.Len(t, obs.outcomes, 64)
}

func TestEcho(t *testing.T) {
	assert := assert.New(t)
	obs := &recordingObserver{}
	v := newValidator(t, WithObserver(obs))
	e := echo.New()

	downstreamErr := echo.NewHTTPError(http.StatusNotFound, "no such user")
	handler := v.Echo()(func(c echo.Context) error {
		if c.Request().URL.Path == "/fail" {
			return downstreamErr
		}
		return c.String(http.StatusOK, "Hello world")
	})

	// missing
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	assert.NoError(handler(e.NewContext(req, rec)))
	assert.Equal(http.StatusBadRequest, rec.Code)
	assert.Contains(rec.Body.String(), CodeMissing)

	// mismatch
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Api-Checksum", "old")
	rec = httptest.NewRecorder()
	assert.NoError(handler(e.NewContext(req, rec)))
	assert.Equal(http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(rec.Body.String(), CodeMismatch)

	// forwarded
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Api-Checksum", sum)
	rec = httptest.NewRecorder()
	assert.NoError(handler(e.NewContext(req, rec)))
	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal("Hello world", rec.Body.String())

	// downstream fault propagates verbatim
	req = httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set("Api-Checksum", sum)
	rec = httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))
	assert.Same(downstreamErr, err)

	assert.Equal([]Outcome{OutcomeMissing, OutcomeMismatch, OutcomeForwarded, OutcomeForwarded}, obs.outcomes)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(OutcomeMissing))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(OutcomeMismatch))
	assert.Equal(t, 0, StatusFor(OutcomeForwarded))
}
