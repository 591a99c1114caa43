package prom

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blimu-dev/schemagen/pkg/contract"
)

// NewRegistry returns a fresh Prometheus registry.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// Handler returns a Prometheus HTTP handler bound to the registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// ContractObserver exports contract outcomes to Prometheus.
type ContractObserver struct {
	requestsTotal *prometheus.CounterVec
}

// NewContractObserver registers contract metrics on the registry.
func NewContractObserver(reg *prometheus.Registry) *ContractObserver {
	o := &ContractObserver{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schemagen_contract_requests_total",
			Help: "Requests checked against the schema checksum, by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(o.requestsTotal)
	return o
}

func (o *ContractObserver) Outcome(outcome contract.Outcome) {
	o.requestsTotal.WithLabelValues(string(outcome)).Inc()
}
