package myconn

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Profiles is a hierarchical configuration document holding named
// connection profiles plus document-level fallbacks. Timeouts resolve
// per key: profile value > document-level value > built-in default.
//
//	connect_timeout: 45s
//	rw_timeout: 10m
//	connections:
//	  reporting:
//	    host: db.example.com
//	    user: reports
//	    database: analytics
type Profiles struct {
	// Document-level timeout fallbacks, applied to every profile that
	// does not set its own. Accepts Go duration syntax ("45s", "10m")
	// or a bare number of seconds.
	ConnectTimeout string `yaml:"connect_timeout,omitempty"`
	RWTimeout      string `yaml:"rw_timeout,omitempty"`

	Connections map[string]Profile `yaml:"connections"`
}

// Profile is one named connection section.
type Profile struct {
	Host           string            `yaml:"host,omitempty"`
	Port           int               `yaml:"port,omitempty"`
	User           string            `yaml:"user,omitempty"`
	Password       string            `yaml:"password,omitempty"`
	Database       string            `yaml:"database,omitempty"`
	Socket         string            `yaml:"socket,omitempty"`
	ConnectTimeout string            `yaml:"connect_timeout,omitempty"`
	RWTimeout      string            `yaml:"rw_timeout,omitempty"`
	TLSMode        string            `yaml:"tls_mode,omitempty"`
	SSLCA          string            `yaml:"ssl_ca,omitempty"`
	SSLCert        string            `yaml:"ssl_cert,omitempty"`
	SSLKey         string            `yaml:"ssl_key,omitempty"`
	AppName        string            `yaml:"app_name,omitempty"`
	Params         map[string]string `yaml:"params,omitempty"`

	AuthMethod     string `yaml:"auth_method,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
}

// ParseProfiles decodes a YAML configuration document.
func ParseProfiles(data []byte) (*Profiles, error) {
	var p Profiles
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid profiles document: %w", err)
	}
	return &p, nil
}

// LoadProfiles reads and decodes a YAML configuration file.
func LoadProfiles(path string) (*Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseProfiles(data)
}

// Config resolves the named profile into a ConnectionConfig, applying the
// document-level timeout fallbacks.
func (p *Profiles) Config(name string) (*ConnectionConfig, error) {
	prof, ok := p.Connections[name]
	if !ok {
		return nil, fmt.Errorf("profile %q: %w", name, ErrProfileNotFound)
	}

	connectTimeout, err := resolveTimeout(prof.ConnectTimeout, p.ConnectTimeout, DefaultConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("profile %q: connect_timeout: %w", name, err)
	}
	rwTimeout, err := resolveTimeout(prof.RWTimeout, p.RWTimeout, DefaultReadWriteTimeout)
	if err != nil {
		return nil, fmt.Errorf("profile %q: rw_timeout: %w", name, err)
	}

	authMethod, err := parseAuthMethod(prof.AuthMethod)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}

	cfg := &ConnectionConfig{
		Host:             prof.Host,
		Port:             prof.Port,
		Username:         prof.User,
		Password:         prof.Password,
		Database:         prof.Database,
		Socket:           prof.Socket,
		ConnectTimeout:   connectTimeout,
		ReadWriteTimeout: rwTimeout,
		TLSMode:          TLSMode(prof.TLSMode),
		SSLCA:            prof.SSLCA,
		SSLCert:          prof.SSLCert,
		SSLKey:           prof.SSLKey,
		AppName:          prof.AppName,
		AuthMethod:       authMethod,
		AWSRegion:        prof.AWSRegion,
		GoogleInstance:   prof.GoogleInstance,
		AzureTenantID:    prof.AzureTenantID,
		AzureClientID:    prof.AzureClientID,
	}
	if len(prof.Params) > 0 {
		cfg.Params = make(map[string]string, len(prof.Params))
		for k, v := range prof.Params {
			cfg.Params[k] = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	return cfg, nil
}

// Names returns the profile names in no particular order.
func (p *Profiles) Names() []string {
	names := make([]string, 0, len(p.Connections))
	for name := range p.Connections {
		names = append(names, name)
	}
	return names
}

// resolveTimeout applies the profile > document > default chain.
// Values accept Go duration syntax or a bare number of seconds.
func resolveTimeout(profileValue, documentValue string, fallback time.Duration) (time.Duration, error) {
	for _, v := range []string{profileValue, documentValue} {
		if v == "" {
			continue
		}
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second, nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", v, ErrInvalidConfig)
		}
		return d, nil
	}
	return fallback, nil
}

// parseAuthMethod maps the YAML auth_method value onto an AuthMethod.
func parseAuthMethod(s string) (AuthMethod, error) {
	switch s {
	case "", "standard":
		return AuthMethodStandard, nil
	case "aws_iam":
		return AuthMethodAWSIAM, nil
	case "google_iam":
		return AuthMethodGoogleIAM, nil
	case "azure_entra_id":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("auth_method %q: %w", s, ErrUnsupportedAuthMethod)
	}
}
