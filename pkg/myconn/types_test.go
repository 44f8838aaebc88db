package myconn

import (
	"errors"
	"testing"
	"time"
)

func TestConnectionConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ConnectionConfig
		wantErr bool
	}{
		{
			name: "host only is valid",
			cfg:  ConnectionConfig{Host: "db.example.com"},
		},
		{
			name: "socket only is valid",
			cfg:  ConnectionConfig{Socket: "/var/run/mysqld/mysqld.sock"},
		},
		{
			name:    "neither host nor socket",
			cfg:     ConnectionConfig{Username: "root"},
			wantErr: true,
		},
		{
			name:    "port out of range",
			cfg:     ConnectionConfig{Host: "localhost", Port: 70000},
			wantErr: true,
		},
		{
			name:    "negative connect timeout",
			cfg:     ConnectionConfig{Host: "localhost", ConnectTimeout: -time.Second},
			wantErr: true,
		},
		{
			name:    "negative rw timeout",
			cfg:     ConnectionConfig{Host: "localhost", ReadWriteTimeout: -time.Second},
			wantErr: true,
		},
		{
			name:    "unknown tls mode",
			cfg:     ConnectionConfig{Host: "localhost", TLSMode: "mandatory"},
			wantErr: true,
		},
		{
			name:    "cert without key",
			cfg:     ConnectionConfig{Host: "localhost", SSLCert: "client.pem"},
			wantErr: true,
		},
		{
			name: "cert with key",
			cfg:  ConnectionConfig{Host: "localhost", SSLCert: "client.pem", SSLKey: "client.key"},
		},
		{
			name:    "invalid auth method",
			cfg:     ConnectionConfig{Host: "localhost", AuthMethod: AuthMethod(99)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error should wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConnectionConfig_UseSocket(t *testing.T) {
	tests := []struct {
		name string
		cfg  ConnectionConfig
		want bool
	}{
		{"socket with empty host", ConnectionConfig{Socket: "/tmp/mysql.sock"}, true},
		{"socket with localhost", ConnectionConfig{Host: "localhost", Socket: "/tmp/mysql.sock"}, true},
		{"socket with remote host", ConnectionConfig{Host: "db.example.com", Socket: "/tmp/mysql.sock"}, false},
		{"socket with loopback IP", ConnectionConfig{Host: "127.0.0.1", Socket: "/tmp/mysql.sock"}, false},
		{"no socket", ConnectionConfig{Host: "localhost"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.UseSocket(); got != tt.want {
				t.Errorf("UseSocket() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConnectionConfig_Addr(t *testing.T) {
	tests := []struct {
		name string
		cfg  ConnectionConfig
		want string
	}{
		{"host and port", ConnectionConfig{Host: "db.example.com", Port: 3307}, "db.example.com:3307"},
		{"default port", ConnectionConfig{Host: "db.example.com"}, "db.example.com:3306"},
		{"default host and port", ConnectionConfig{}, "localhost:3306"},
		{"socket wins on localhost", ConnectionConfig{Host: "localhost", Socket: "/tmp/my.sock"}, "/tmp/my.sock"},
		{"tcp wins on remote host", ConnectionConfig{Host: "db.example.com", Socket: "/tmp/my.sock"}, "db.example.com:3306"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Addr(); got != tt.want {
				t.Errorf("Addr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConnectionConfig_Clone(t *testing.T) {
	orig := &ConnectionConfig{
		Host:   "db.example.com",
		Params: map[string]string{"charset": "utf8mb4"},
	}

	clone := orig.Clone()
	if clone == orig {
		t.Fatal("Clone() returned the same pointer")
	}

	clone.Params["charset"] = "latin1"
	if orig.Params["charset"] != "utf8mb4" {
		t.Error("mutating the clone's Params affected the original")
	}

	var nilCfg *ConnectionConfig
	if nilCfg.Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
}

func TestAuthMethod_String(t *testing.T) {
	tests := []struct {
		method AuthMethod
		want   string
	}{
		{AuthMethodStandard, "Standard"},
		{AuthMethodAWSIAM, "AWS IAM"},
		{AuthMethodGoogleIAM, "Google IAM"},
		{AuthMethodAzureEntraID, "Azure Entra ID"},
		{AuthMethod(42), "Unknown(42)"},
	}

	for _, tt := range tests {
		if got := tt.method.String(); got != tt.want {
			t.Errorf("AuthMethod(%d).String() = %q, want %q", tt.method, got, tt.want)
		}
	}
}

func TestAuthMethod_IsValid(t *testing.T) {
	for _, m := range []AuthMethod{AuthMethodStandard, AuthMethodAWSIAM, AuthMethodGoogleIAM, AuthMethodAzureEntraID} {
		if !m.IsValid() {
			t.Errorf("expected %v to be valid", m)
		}
	}
	if AuthMethod(-1).IsValid() || AuthMethod(99).IsValid() {
		t.Error("out-of-range auth methods should be invalid")
	}
}

func TestTLSMode_IsValid(t *testing.T) {
	valid := []TLSMode{TLSModeDefault, TLSModeDisabled, TLSModePreferred, TLSModeRequired, TLSModeVerifyCA, TLSModeVerifyIdentity}
	for _, m := range valid {
		if !m.IsValid() {
			t.Errorf("expected %q to be valid", m)
		}
	}
	if TLSMode("ssl").IsValid() {
		t.Error("unknown TLS mode should be invalid")
	}
}
