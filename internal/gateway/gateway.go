// Package gateway is the contract gateway behind `schemagen serve`: an echo
// server that checks the schema checksum on every request and reverse-proxies
// verified ones to the real application.
package gateway

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/blimu-dev/schemagen/pkg/config"
	"github.com/blimu-dev/schemagen/pkg/contract"
	"github.com/blimu-dev/schemagen/pkg/contract/prom"
	"github.com/blimu-dev/schemagen/pkg/errors"
	"github.com/blimu-dev/schemagen/pkg/schema"
)

// Gateway bundles the echo server with the validator and metrics it uses.
type Gateway struct {
	Echo      *echo.Echo
	Validator *contract.Validator
	Registry  *prometheus.Registry

	addr string
	log  *zap.SugaredLogger
}

// New builds a gateway from cfg. The expected checksum is cfg.Checksum, or
// the checksum of the schema at cfg.Schema. When both are set they must agree.
func New(cfg *config.Server, log *zap.SugaredLogger) (*Gateway, error) {
	checksum, err := expectedChecksum(cfg)
	if err != nil {
		return nil, err
	}
	upstream, err := url.Parse(cfg.Upstream)
	if err != nil || upstream.Scheme == "" || upstream.Host == "" {
		return nil, errors.Mark(errors.Newf("invalid upstream url %q", cfg.Upstream), errors.ErrInvalidConfig)
	}

	reg := prom.NewRegistry()
	validator, err := contract.New(checksum,
		contract.WithHeader(cfg.Header),
		contract.WithObserver(prom.NewContractObserver(reg)),
		contract.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Infow("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency)
			return nil
		},
	}))

	if cfg.MetricsPath != "" {
		e.GET(cfg.MetricsPath, echo.WrapHandler(prom.Handler(reg)))
	}

	proxy := middleware.ProxyWithConfig(middleware.ProxyConfig{
		Balancer: middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{{URL: upstream}}),
	})
	e.Any("/*", proxy(echo.NotFoundHandler), validator.Echo())

	return &Gateway{
		Echo:      e,
		Validator: validator,
		Registry:  reg,
		addr:      cfg.Addr,
		log:       log,
	}, nil
}

func expectedChecksum(cfg *config.Server) (string, error) {
	if cfg.Schema == "" {
		if cfg.Checksum == "" {
			return "", errors.Mark(errors.New("gateway needs a schema or a checksum"), errors.ErrInvalidConfig)
		}
		return cfg.Checksum, nil
	}
	s, err := schema.Load(cfg.Schema)
	if err != nil {
		return "", err
	}
	sum := s.Checksum()
	if cfg.Checksum != "" && cfg.Checksum != sum {
		return "", errors.Mark(
			errors.WithHint(
				errors.Newf("configured checksum %s does not match schema %s (%s)", cfg.Checksum, cfg.Schema, sum),
				"drop --checksum or regenerate from the same schema"),
			errors.ErrInvalidConfig)
	}
	return sum, nil
}

// Run serves until ctx is done, then shuts down gracefully.
func (g *Gateway) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		g.log.Infow("gateway listening",
			"addr", g.addr,
			"header", g.Validator.Header(),
			"checksum", g.Validator.Expected())
		errCh <- g.Echo.Start(g.addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		g.log.Infow("gateway shutting down")
		return g.Echo.Shutdown(shutdownCtx)
	}
}
