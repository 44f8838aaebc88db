package db

import (
	"errors"
	"testing"
	"time"

	"github.com/vvka-141/myconn/pkg/myconn"
)

func TestGranularConnFlags_IsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		flags GranularConnFlags
		want  bool
	}{
		{
			name:  "empty flags",
			flags: GranularConnFlags{},
			want:  true,
		},
		{
			name:  "only host set",
			flags: GranularConnFlags{Host: "localhost"},
			want:  false,
		},
		{
			name:  "only port set",
			flags: GranularConnFlags{Port: 3306},
			want:  false,
		},
		{
			name:  "only username set",
			flags: GranularConnFlags{Username: "testuser"},
			want:  false,
		},
		{
			name:  "only database set",
			flags: GranularConnFlags{Database: "testdb"},
			want:  true, // Database is excluded from IsEmpty() check (can be used with connection string)
		},
		{
			name:  "only socket set",
			flags: GranularConnFlags{Socket: "/tmp/mysql.sock"},
			want:  false,
		},
		{
			name:  "only tls mode set",
			flags: GranularConnFlags{TLSMode: "required"},
			want:  false,
		},
		{
			name:  "only connect timeout set",
			flags: GranularConnFlags{ConnectTimeout: 5 * time.Second},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.flags.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveConnectionParams_ConflictingFlags(t *testing.T) {
	_, err := ResolveConnectionParams(
		"mysql://app@db/x",
		&GranularConnFlags{Host: "other"},
		nil, nil, nil, nil,
		&EnvVars{}, nil, nil,
	)
	if !errors.Is(err, myconn.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestResolveConnectionParams_ConnectionString(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"mysql://app:pw@db.example.com:3307/orders",
		&GranularConnFlags{Database: "override"},
		nil, nil, nil, nil,
		&EnvVars{}, nil, nil,
	)
	if err != nil {
		t.Fatalf("ResolveConnectionParams() error = %v", err)
	}

	if cfg.Host != "db.example.com" || cfg.Port != 3307 || cfg.Username != "app" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Database != "override" {
		t.Errorf("Database = %q, want flag override to win", cfg.Database)
	}
}

func TestResolveConnectionParams_DatabaseURLFallback(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{},
		nil, nil, nil, nil,
		&EnvVars{DATABASE_URL: "mysql://svc@url-host:3306/urldb"},
		nil, nil,
	)
	if err != nil {
		t.Fatalf("ResolveConnectionParams() error = %v", err)
	}
	if cfg.Host != "url-host" || cfg.Database != "urldb" {
		t.Errorf("DATABASE_URL not used: %+v", cfg)
	}
}

func TestResolveConnectionParams_GranularFlagsIgnoreDatabaseURL(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{Host: "flag-host", Username: "flaguser"},
		nil, nil, nil, nil,
		&EnvVars{DATABASE_URL: "mysql://svc@url-host:3306/urldb"},
		nil, nil,
	)
	if err != nil {
		t.Fatalf("ResolveConnectionParams() error = %v", err)
	}
	if cfg.Host != "flag-host" {
		t.Errorf("Host = %q, want flag-host", cfg.Host)
	}
}

func TestResolveConnectionParams_Precedence(t *testing.T) {
	profile := &myconn.ConnectionConfig{
		Host:     "profile-host",
		Port:     3310,
		Username: "profile-user",
		Database: "profile-db",
	}
	cnf := &ClientConfig{
		Host:     "cnf-host",
		User:     "cnf-user",
		Password: "cnf-pass",
		Database: "cnf-db",
	}
	env := &EnvVars{
		MYSQL_HOST: "env-host",
		MYSQL_PWD:  "env-pass",
	}

	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{Username: "flag-user"},
		nil, nil, nil, nil,
		env, profile, cnf,
	)
	if err != nil {
		t.Fatalf("ResolveConnectionParams() error = %v", err)
	}

	if cfg.Username != "flag-user" {
		t.Errorf("Username = %q, want flag to win", cfg.Username)
	}
	if cfg.Host != "env-host" {
		t.Errorf("Host = %q, want env to beat profile", cfg.Host)
	}
	if cfg.Port != 3310 {
		t.Errorf("Port = %d, want profile value", cfg.Port)
	}
	if cfg.Password != "env-pass" {
		t.Errorf("Password = %q, want env to beat my.cnf", cfg.Password)
	}
	if cfg.Database != "profile-db" {
		t.Errorf("Database = %q, want profile to beat my.cnf", cfg.Database)
	}
}

func TestResolveConnectionParams_MyCnfFallback(t *testing.T) {
	cnf := &ClientConfig{
		Host:     "cnf-host",
		Port:     3311,
		User:     "cnf-user",
		Password: "cnf-pass",
	}

	cfg, err := ResolveConnectionParams(
		"", &GranularConnFlags{}, nil, nil, nil, nil,
		&EnvVars{}, nil, cnf,
	)
	if err != nil {
		t.Fatalf("ResolveConnectionParams() error = %v", err)
	}

	if cfg.Host != "cnf-host" || cfg.Port != 3311 || cfg.Username != "cnf-user" || cfg.Password != "cnf-pass" {
		t.Errorf("my.cnf values not applied: %+v", cfg)
	}
}

func TestResolveConnectionParams_InvalidEnvPort(t *testing.T) {
	_, err := ResolveConnectionParams(
		"", &GranularConnFlags{}, nil, nil, nil, nil,
		&EnvVars{MYSQL_TCP_PORT: "not-a-port"}, nil, nil,
	)
	if !errors.Is(err, myconn.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestResolveConnectionParams_DefaultHost(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"", &GranularConnFlags{Username: "u"}, nil, nil, nil, nil,
		&EnvVars{}, nil, nil,
	)
	if err != nil {
		t.Fatalf("ResolveConnectionParams() error = %v", err)
	}
	if cfg.Host != myconn.DefaultHost {
		t.Errorf("Host = %q, want %q", cfg.Host, myconn.DefaultHost)
	}
}

func TestResolveConnectionParams_SocketFromEnv(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"", &GranularConnFlags{Username: "u"}, nil, nil, nil, nil,
		&EnvVars{MYSQL_UNIX_PORT: "/tmp/mysql.sock"}, nil, nil,
	)
	if err != nil {
		t.Fatalf("ResolveConnectionParams() error = %v", err)
	}
	if cfg.Socket != "/tmp/mysql.sock" {
		t.Errorf("Socket = %q, want env value", cfg.Socket)
	}
	if !cfg.UseSocket() {
		t.Error("UseSocket() = false, want socket transport for a local host")
	}
}

func TestResolveConnectionParams_TLSFlagsImplyVerification(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"", &GranularConnFlags{Host: "db", Username: "u"},
		&TLSFlags{SSLCA: "/etc/ssl/ca.pem"},
		nil, nil, nil, &EnvVars{}, nil, nil,
	)
	if err != nil {
		t.Fatalf("ResolveConnectionParams() error = %v", err)
	}
	if cfg.SSLCA != "/etc/ssl/ca.pem" {
		t.Errorf("SSLCA = %q, want flag value", cfg.SSLCA)
	}
	if cfg.TLSMode != myconn.TLSModeVerifyCA {
		t.Errorf("TLSMode = %q, want verify-ca implied by certificate material", cfg.TLSMode)
	}
}

func TestResolveConnectionParams_AzureFromEnvironment(t *testing.T) {
	env := &EnvVars{
		AZURE_TENANT_ID:     "tenant-123",
		AZURE_CLIENT_ID:     "client-456",
		AZURE_CLIENT_SECRET: "secret-789",
	}

	cfg, err := ResolveConnectionParams(
		"", &GranularConnFlags{Host: "srv.mysql.database.azure.com", Username: "u"},
		nil, nil, nil, nil, env, nil, nil,
	)
	if err != nil {
		t.Fatalf("ResolveConnectionParams() error = %v", err)
	}

	if cfg.AuthMethod != myconn.AuthMethodAzureEntraID {
		t.Errorf("AuthMethod = %v, want Azure Entra ID", cfg.AuthMethod)
	}
	if cfg.AzureTenantID != "tenant-123" || cfg.AzureClientID != "client-456" || cfg.AzureClientSecret != "secret-789" {
		t.Errorf("Azure credentials not propagated: %+v", cfg)
	}
}

func TestResolveConnectionParams_AzureFlagsOverrideEnv(t *testing.T) {
	env := &EnvVars{AZURE_TENANT_ID: "env-tenant", AZURE_CLIENT_ID: "env-client"}
	azure := &AzureFlags{Enabled: true, TenantID: "flag-tenant"}

	cfg, err := ResolveConnectionParams(
		"", &GranularConnFlags{Host: "srv", Username: "u"},
		nil, azure, nil, nil, env, nil, nil,
	)
	if err != nil {
		t.Fatalf("ResolveConnectionParams() error = %v", err)
	}

	if cfg.AzureTenantID != "flag-tenant" {
		t.Errorf("AzureTenantID = %q, want flag to win", cfg.AzureTenantID)
	}
	if cfg.AzureClientID != "env-client" {
		t.Errorf("AzureClientID = %q, want env fallback", cfg.AzureClientID)
	}
}

func TestResolveConnectionParams_AWS(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"", &GranularConnFlags{Host: "db.cluster.us-west-2.rds.amazonaws.com", Username: "iamuser"},
		nil, nil, &AWSFlags{Enabled: true, Region: "us-west-2"}, nil,
		&EnvVars{}, nil, nil,
	)
	if err != nil {
		t.Fatalf("ResolveConnectionParams() error = %v", err)
	}

	if cfg.AuthMethod != myconn.AuthMethodAWSIAM {
		t.Errorf("AuthMethod = %v, want AWS IAM", cfg.AuthMethod)
	}
	if cfg.AWSRegion != "us-west-2" {
		t.Errorf("AWSRegion = %q", cfg.AWSRegion)
	}
}

func TestResolveConnectionParams_Google(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"", &GranularConnFlags{Username: "sa"},
		nil, nil, nil, &GoogleFlags{Enabled: true, Instance: "proj:region:inst"},
		&EnvVars{}, nil, nil,
	)
	if err != nil {
		t.Fatalf("ResolveConnectionParams() error = %v", err)
	}

	if cfg.AuthMethod != myconn.AuthMethodGoogleIAM {
		t.Errorf("AuthMethod = %v, want Google IAM", cfg.AuthMethod)
	}
	if cfg.GoogleInstance != "proj:region:inst" {
		t.Errorf("GoogleInstance = %q", cfg.GoogleInstance)
	}
}
