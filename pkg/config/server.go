package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/blimu-dev/schemagen/pkg/errors"
)

// Server holds the settings of the contract gateway.
type Server struct {
	Addr        string `yaml:"addr"`
	Upstream    string `yaml:"upstream"`
	Schema      string `yaml:"schema"`
	Checksum    string `yaml:"checksum"`
	Header      string `yaml:"header"`
	MetricsPath string `yaml:"metricsPath"`
}

// Server config keys. Flags bind to these, env vars use the SCHEMAGEN_
// prefix with dots replaced by underscores (SCHEMAGEN_SERVER_ADDR).
const (
	KeyAddr        = "server.addr"
	KeyUpstream    = "server.upstream"
	KeySchema      = "server.schema"
	KeyChecksum    = "server.checksum"
	KeyHeader      = "server.header"
	KeyMetricsPath = "server.metricsPath"
)

// SetServerDefaults sets default values for the gateway.
func SetServerDefaults(v *viper.Viper) {
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyMetricsPath, "/metrics")
}

// NewServerViper returns a viper instance with defaults and env binding. When
// configFile is set it is read too; its top-level schema and header act as
// fallbacks for the server section.
func NewServerViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetServerDefaults(v)
	v.SetEnvPrefix("SCHEMAGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "read config %s", configFile), errors.ErrIO)
		}
	}
	return v, nil
}

// LoadServer reads gateway settings from v. Either a schema path or a literal
// checksum must be present.
func LoadServer(v *viper.Viper) (*Server, error) {
	s := &Server{
		Addr:        v.GetString(KeyAddr),
		Upstream:    v.GetString(KeyUpstream),
		Schema:      v.GetString(KeySchema),
		Checksum:    v.GetString(KeyChecksum),
		Header:      v.GetString(KeyHeader),
		MetricsPath: v.GetString(KeyMetricsPath),
	}
	if s.Schema == "" {
		s.Schema = v.GetString("schema")
	}
	if s.Header == "" {
		s.Header = v.GetString("header")
	}
	if s.Header == "" {
		s.Header = DefaultHeader
	}
	// relative schema paths in a config file are relative to that file, as in Load
	if cfgFile := v.ConfigFileUsed(); cfgFile != "" {
		s.Schema = resolve(filepath.Dir(cfgFile), s.Schema)
	}
	if s.Upstream == "" {
		return nil, invalid(errors.WithHint(errors.New("server.upstream is required"), "pass --upstream or set SCHEMAGEN_SERVER_UPSTREAM"))
	}
	if s.Schema == "" && s.Checksum == "" {
		return nil, invalid(errors.WithHint(errors.New("server needs a schema or a checksum"), "pass --schema or --checksum"))
	}
	return s, nil
}
