package myconn

import (
	"errors"
	"fmt"
	"time"
)

// ConnectionConfig holds everything needed to reach a MySQL server.
// The zero value is not connectable; at minimum a Host or a Socket is
// required. All other fields fall back to package defaults.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string

	// Socket is the path to a unix domain socket. It is used instead of
	// TCP when Host is empty or "localhost", the same selection rule the
	// stock mysql client applies.
	Socket string

	// ConnectTimeout bounds the dial and handshake (default 60s).
	ConnectTimeout time.Duration

	// ReadWriteTimeout bounds individual socket reads and writes
	// (default 30m).
	ReadWriteTimeout time.Duration

	// TLSMode selects transport encryption (see TLSMode constants).
	// Empty means the driver default (no TLS unless the server forces it).
	TLSMode TLSMode

	// Certificate material for TLSModeVerifyCA / TLSModeVerifyIdentity
	// and for client certificate authentication.
	SSLCA   string
	SSLCert string
	SSLKey  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// AppName is reported to the server as the program_name connection
	// attribute (visible in performance_schema.session_connect_attrs).
	AppName string

	// Params are extra driver parameters passed through verbatim
	// (e.g. charset, collation, parseTime).
	Params map[string]string

	// AWS IAM authentication parameters (used when AuthMethod is AuthMethodAWSIAM)
	AWSRegion string

	// Google Cloud SQL instance in project:region:instance form
	// (used when AuthMethod is AuthMethodGoogleIAM)
	GoogleInstance string

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	// If all three are provided, Service Principal authentication is used.
	// If none are provided, DefaultAzureCredential chain is used (env vars, managed identity, CLI, etc.)
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// Clone returns a deep copy of the configuration. Connections keep their
// own copy so a later caller mutation cannot affect reconnects.
func (c *ConnectionConfig) Clone() *ConnectionConfig {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Params != nil {
		clone.Params = make(map[string]string, len(c.Params))
		for k, v := range c.Params {
			clone.Params[k] = v
		}
	}
	return &clone
}

// Validate checks that the configuration describes a reachable server.
// It returns a multi-error if multiple validation failures occur.
func (c *ConnectionConfig) Validate() error {
	var errs []error

	if c.AuthMethod == AuthMethodGoogleIAM {
		if c.GoogleInstance == "" {
			errs = append(errs, fmt.Errorf("Google IAM auth requires an instance (project:region:instance): %w", ErrInvalidConfig))
		}
	} else if c.Host == "" && c.Socket == "" {
		errs = append(errs, fmt.Errorf("either Host or Socket is required: %w", ErrInvalidConfig))
	}

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range: %w", c.Port, ErrInvalidConfig))
	}

	if c.ConnectTimeout < 0 {
		errs = append(errs, fmt.Errorf("connect timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if c.ReadWriteTimeout < 0 {
		errs = append(errs, fmt.Errorf("read/write timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if !c.TLSMode.IsValid() {
		errs = append(errs, fmt.Errorf("unknown TLS mode %q: %w", c.TLSMode, ErrInvalidConfig))
	}

	if !c.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("unknown auth method %v: %w", c.AuthMethod, ErrInvalidConfig))
	}

	if (c.SSLCert == "") != (c.SSLKey == "") {
		errs = append(errs, fmt.Errorf("ssl certificate and key must be provided together: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// Addr returns the effective network address, honouring the socket
// selection rule.
func (c *ConnectionConfig) Addr() string {
	if c.UseSocket() {
		return c.Socket
	}
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// UseSocket reports whether the connection goes over the unix socket:
// a socket path is set and the host is local (empty or "localhost").
func (c *ConnectionConfig) UseSocket() bool {
	return c.Socket != "" && (c.Host == "" || c.Host == "localhost")
}

// TLSMode selects how the client negotiates transport encryption.
type TLSMode string

const (
	// TLSModeDefault leaves the decision to the driver.
	TLSModeDefault TLSMode = ""
	// TLSModeDisabled never uses TLS.
	TLSModeDisabled TLSMode = "disabled"
	// TLSModePreferred uses TLS when the server advertises it.
	TLSModePreferred TLSMode = "preferred"
	// TLSModeRequired always encrypts but skips certificate verification.
	TLSModeRequired TLSMode = "required"
	// TLSModeVerifyCA encrypts and verifies the server certificate chain.
	TLSModeVerifyCA TLSMode = "verify-ca"
	// TLSModeVerifyIdentity additionally verifies the server hostname.
	TLSModeVerifyIdentity TLSMode = "verify-identity"
)

// IsValid returns true if the TLSMode is a defined value.
func (m TLSMode) IsValid() bool {
	switch m {
	case TLSModeDefault, TLSModeDisabled, TLSModePreferred,
		TLSModeRequired, TLSModeVerifyCA, TLSModeVerifyIdentity:
		return true
	}
	return false
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication (RDS/Aurora)
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}
