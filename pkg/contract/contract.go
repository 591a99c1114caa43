// Package contract enforces the schema checksum contract on incoming
// requests. A Validator holds the checksum of the schema the server was built
// against and rejects requests whose clients were generated from anything
// else.
package contract

import (
	"encoding/json"
	"net/http"
	"net/textproto"

	"go.uber.org/zap"

	"github.com/blimu-dev/schemagen/pkg/config"
	"github.com/blimu-dev/schemagen/pkg/errors"
)

// Outcome is the single verdict reached for a request.
type Outcome string

const (
	OutcomeForwarded Outcome = "forwarded"
	OutcomeMissing   Outcome = "missing"
	OutcomeMismatch  Outcome = "mismatch"
)

// Rejection codes written in the JSON body of a rejected request.
const (
	CodeMissing  = "contract_missing"
	CodeMismatch = "contract_mismatch"
)

// Observer receives exactly one outcome per validated request. It must be
// safe for concurrent use and has no say in the outcome.
type Observer interface {
	Outcome(o Outcome)
}

// NoopObserver discards outcomes.
type NoopObserver struct{}

func (NoopObserver) Outcome(Outcome) {}

// Validator checks the checksum header. Its fields are set once by New and
// only read afterwards, so one Validator serves any number of concurrent
// requests.
type Validator struct {
	expected string
	header   string
	observer Observer
	log      *zap.SugaredLogger
}

// Option configures a Validator.
type Option func(*Validator)

// WithHeader overrides the header name (default config.DefaultHeader).
func WithHeader(name string) Option {
	return func(v *Validator) {
		if name != "" {
			v.header = textproto.CanonicalMIMEHeaderKey(name)
		}
	}
}

// WithObserver attaches an outcome observer.
func WithObserver(o Observer) Option {
	return func(v *Validator) {
		if o != nil {
			v.observer = o
		}
	}
}

// WithLogger logs rejections at debug level.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// New returns a Validator expecting checksum.
func New(checksum string, opts ...Option) (*Validator, error) {
	if checksum == "" {
		return nil, errors.Mark(errors.New("contract: expected checksum is empty"), errors.ErrInvalidConfig)
	}
	v := &Validator{
		expected: checksum,
		header:   textproto.CanonicalMIMEHeaderKey(config.DefaultHeader),
		observer: NoopObserver{},
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Expected returns the checksum requests must carry.
func (v *Validator) Expected() string { return v.expected }

// Header returns the canonical header name that is checked.
func (v *Validator) Header() string { return v.header }

// Check inspects r and returns nil, errors.ErrContractMissing or
// errors.ErrContractMismatch. A header that is present but empty counts as a
// mismatch. Only the first value of a repeated header is considered.
func (v *Validator) Check(r *http.Request) error {
	values, present := r.Header[v.header]
	if !present || len(values) == 0 {
		return errors.Wrapf(errors.ErrContractMissing, "header %s not set", v.header)
	}
	if values[0] != v.expected {
		return errors.Wrapf(errors.ErrContractMismatch, "header %s carries %q", v.header, values[0])
	}
	return nil
}

// decide runs Check and reports the outcome exactly once.
func (v *Validator) decide(r *http.Request) (Outcome, error) {
	err := v.Check(r)
	outcome := OutcomeForwarded
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrContractMissing):
		outcome = OutcomeMissing
	default:
		outcome = OutcomeMismatch
	}
	v.observer.Outcome(outcome)
	if err != nil {
		v.log.Debugw("contract rejected request",
			"outcome", string(outcome),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error())
	}
	return outcome, err
}

// Rejection is the JSON body of a rejected request.
type Rejection struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Header  string `json:"header"`
}

// StatusFor maps an outcome to its HTTP status. Forwarded maps to 0 since
// the status then belongs to the downstream handler.
func StatusFor(o Outcome) int {
	switch o {
	case OutcomeMissing:
		return http.StatusBadRequest
	case OutcomeMismatch:
		return http.StatusUnprocessableEntity
	}
	return 0
}

func (v *Validator) rejection(o Outcome) Rejection {
	if o == OutcomeMissing {
		return Rejection{
			Error:   CodeMissing,
			Message: "request does not carry a schema checksum",
			Header:  v.header,
		}
	}
	return Rejection{
		Error:   CodeMismatch,
		Message: "client was generated from a different schema revision",
		Header:  v.header,
	}
}

// Middleware wraps next. Verified requests reach next untouched and its
// response, whatever it is, goes back to the caller as written.
func (v *Validator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		outcome, err := v.decide(r)
		if err == nil {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(StatusFor(outcome))
		_ = json.NewEncoder(w).Encode(v.rejection(outcome))
	})
}
