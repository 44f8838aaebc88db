package db

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/vvka-141/myconn/pkg/myconn"
)

// GranularConnFlags represents connection parameters from CLI flags.
// These follow the stock mysql client conventions (-h, -P, -u, -D, -S).
//
// Note: Password is NOT included as a CLI flag for security reasons.
// Use one of these methods instead:
//  1. $MYSQL_PWD environment variable
//  2. ~/.my.cnf [client] section (mysql client standard)
//  3. Connection string with embedded password
type GranularConnFlags struct {
	Host           string
	Port           int
	Username       string
	Database       string
	Socket         string
	TLSMode        string
	ConnectTimeout time.Duration
	RWTimeout      time.Duration
}

// IsEmpty returns true if no connection-related granular flags were provided.
// The Database flag is excluded from this check because it can be used to
// override the database in a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.Socket == "" &&
		g.TLSMode == "" && g.ConnectTimeout == 0 && g.RWTimeout == 0
}

// TLSFlags represents certificate material given on the command line.
type TLSFlags struct {
	SSLCA   string
	SSLCert string
	SSLKey  string
}

// IsEmpty returns true if no TLS flags were provided.
func (t *TLSFlags) IsEmpty() bool {
	return t == nil || (t.SSLCA == "" && t.SSLCert == "" && t.SSLKey == "")
}

// AzureFlags represents Azure Entra ID CLI flags.
// These override the corresponding AZURE_* environment variables.
// Note: Client secret is NOT included as a CLI flag for security reasons.
// Use the AZURE_CLIENT_SECRET environment variable instead.
type AzureFlags struct {
	Enabled  bool
	TenantID string // Overrides AZURE_TENANT_ID
	ClientID string // Overrides AZURE_CLIENT_ID
}

// AWSFlags represents AWS IAM database authentication CLI flags.
type AWSFlags struct {
	Enabled bool
	Region  string
}

// GoogleFlags represents Google Cloud SQL IAM CLI flags.
type GoogleFlags struct {
	Enabled  bool
	Instance string // project:region:instance
}

// EnvVars represents the environment variables the stock mysql client and
// common container images understand.
type EnvVars struct {
	MYSQL_HOST      string // Server host
	MYSQL_TCP_PORT  string // Server TCP port
	MYSQL_UNIX_PORT string // Unix socket path
	MYSQL_USER      string // Username (container image convention)
	MYSQL_PWD       string // Password (discouraged, use ~/.my.cnf instead)
	MYSQL_DATABASE  string // Default database name (container image convention)
	DATABASE_URL    string // Full connection string (Heroku/Rails convention)

	// Azure Entra ID environment variables (Azure SDK standard names)
	AZURE_TENANT_ID     string // Azure AD tenant/directory ID
	AZURE_CLIENT_ID     string // Azure AD application/client ID
	AZURE_CLIENT_SECRET string // Azure AD client secret (for Service Principal auth)
}

// LoadFromEnvironment loads MySQL and cloud provider environment variables.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		MYSQL_HOST:          os.Getenv("MYSQL_HOST"),
		MYSQL_TCP_PORT:      os.Getenv("MYSQL_TCP_PORT"),
		MYSQL_UNIX_PORT:     os.Getenv("MYSQL_UNIX_PORT"),
		MYSQL_USER:          os.Getenv("MYSQL_USER"),
		MYSQL_PWD:           os.Getenv("MYSQL_PWD"),
		MYSQL_DATABASE:      os.Getenv("MYSQL_DATABASE"),
		DATABASE_URL:        os.Getenv("DATABASE_URL"),
		AZURE_TENANT_ID:     os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:     os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET: os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

// HasAzureCredentials returns true if Azure Entra ID environment variables are set.
func (e *EnvVars) HasAzureCredentials() bool {
	return e.AZURE_TENANT_ID != "" || e.AZURE_CLIENT_ID != ""
}

// ResolveConnectionParams resolves connection parameters with mysql-client
// style precedence:
//
//  1. Connection string flag (--connection) - if provided, parse and use directly
//  2. Granular flags (-h, -P, -u, -D, -S) - if any provided, build config from flags
//  3. Environment variables (MYSQL_HOST, MYSQL_TCP_PORT, ...) - fallback if no flags
//  4. DATABASE_URL environment variable - fallback if no granular params
//  5. Named profile from myconn.yaml (--profile)
//  6. ~/.my.cnf [client] section
//  7. Defaults (localhost:3306)
//
// Cloud authentication:
// If Azure/AWS/Google flags are enabled OR Azure environment variables are
// set, the AuthMethod is switched accordingly and credentials are attached
// to the config. CLI flags take precedence over environment variables.
//
// Conflict Detection:
// Returns an error if BOTH the --connection flag AND granular flags are
// provided. This prevents ambiguity and ensures clear user intent.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	tlsFlags *TLSFlags,
	azureFlags *AzureFlags,
	awsFlags *AWSFlags,
	googleFlags *GoogleFlags,
	envVars *EnvVars,
	profile *myconn.ConnectionConfig,
	clientCnf *ClientConfig,
) (*myconn.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if azureFlags == nil {
		azureFlags = &AzureFlags{}
	}
	if awsFlags == nil {
		awsFlags = &AWSFlags{}
	}
	if googleFlags == nil {
		googleFlags = &GoogleFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}

	// Check for conflicts: connection string XOR granular flags
	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf(
			"cannot specify both --connection and granular flags (-h, -P, -u, -S)\n"+
				"Choose one approach:\n"+
				"  1. Connection string: --connection \"mysql://user@localhost:3306/mydb\"\n"+
				"  2. Granular flags: -h localhost -P 3306 -u myuser -D mydb\n"+
				"  3. Environment variables: export MYSQL_HOST=localhost MYSQL_TCP_PORT=3306: %w",
			myconn.ErrInvalidConfig,
		)
	}

	var config *myconn.ConnectionConfig
	var err error

	switch {
	case connStringFlag != "":
		// Path 1: Connection string provided via --connection flag
		config, err = resolveFromConnectionString(connStringFlag, granularFlags, envVars)
	case granularFlags.IsEmpty() && envVars.DATABASE_URL != "":
		// Path 2: DATABASE_URL environment variable (if no granular flags)
		config, err = resolveFromConnectionString(envVars.DATABASE_URL, granularFlags, envVars)
	default:
		// Path 3: Granular flags + environment + profile + my.cnf with precedence
		config, err = resolveFromGranularParams(granularFlags, envVars, profile, clientCnf)
	}
	if err != nil {
		return nil, err
	}

	applyTLSFlags(config, tlsFlags)
	applyCloudAuth(config, azureFlags, awsFlags, googleFlags, envVars)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// resolveFromConnectionString parses a connection string and applies the
// database override and environment password fallback.
func resolveFromConnectionString(connStr string, flags *GranularConnFlags, envVars *EnvVars) (*myconn.ConnectionConfig, error) {
	config, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}

	// The -D flag always overrides the connection string database.
	if flags.Database != "" {
		config.Database = flags.Database
	}

	// Environment variables serve as fallbacks for parameters the
	// connection string leaves out.
	if config.Password == "" && envVars.MYSQL_PWD != "" {
		config.Password = envVars.MYSQL_PWD
	}

	return config, nil
}

// resolveFromGranularParams builds a ConnectionConfig from granular flags,
// environment variables, an optional named profile and ~/.my.cnf.
//
// Precedence for each parameter:
//  1. CLI flag (highest priority)
//  2. Environment variable
//  3. myconn.yaml profile (--profile)
//  4. ~/.my.cnf [client]
//  5. Default value (lowest priority)
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	profile *myconn.ConnectionConfig,
	cnf *ClientConfig,
) (*myconn.ConnectionConfig, error) {
	cfg := &myconn.ConnectionConfig{AuthMethod: myconn.AuthMethodStandard}
	if profile != nil {
		cfg = profile.Clone()
	}
	if cnf == nil {
		cnf = &ClientConfig{}
	}

	// Host: flag > MYSQL_HOST > profile > my.cnf > default
	if flags.Host != "" {
		cfg.Host = flags.Host
	} else if envVars.MYSQL_HOST != "" {
		cfg.Host = envVars.MYSQL_HOST
	} else if cfg.Host == "" {
		cfg.Host = cnf.Host
	}
	if cfg.Host == "" && cfg.Socket == "" && cnf.Socket == "" {
		cfg.Host = myconn.DefaultHost
	}

	// Port: flag > MYSQL_TCP_PORT > profile > my.cnf
	if flags.Port != 0 {
		cfg.Port = flags.Port
	} else if envVars.MYSQL_TCP_PORT != "" {
		port, err := strconv.Atoi(envVars.MYSQL_TCP_PORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $MYSQL_TCP_PORT value '%s': must be an integer: %w",
				envVars.MYSQL_TCP_PORT, myconn.ErrInvalidConfig)
		}
		cfg.Port = port
	} else if cfg.Port == 0 {
		cfg.Port = cnf.Port
	}

	// Socket: flag > MYSQL_UNIX_PORT > profile > my.cnf
	if flags.Socket != "" {
		cfg.Socket = flags.Socket
	} else if envVars.MYSQL_UNIX_PORT != "" {
		cfg.Socket = envVars.MYSQL_UNIX_PORT
	} else if cfg.Socket == "" {
		cfg.Socket = cnf.Socket
	}

	// Username: flag > MYSQL_USER > profile > my.cnf > current OS user
	if flags.Username != "" {
		cfg.Username = flags.Username
	} else if envVars.MYSQL_USER != "" {
		cfg.Username = envVars.MYSQL_USER
	} else if cfg.Username == "" {
		cfg.Username = cnf.User
	}
	if cfg.Username == "" {
		if currentUser := os.Getenv("USER"); currentUser != "" {
			cfg.Username = currentUser
		} else if currentUser := os.Getenv("USERNAME"); currentUser != "" {
			cfg.Username = currentUser
		}
	}

	// Password: MYSQL_PWD > profile > my.cnf (never a flag)
	if envVars.MYSQL_PWD != "" {
		cfg.Password = envVars.MYSQL_PWD
	} else if cfg.Password == "" {
		cfg.Password = cnf.Password
	}

	// Database: flag > MYSQL_DATABASE > profile > my.cnf
	if flags.Database != "" {
		cfg.Database = flags.Database
	} else if envVars.MYSQL_DATABASE != "" {
		cfg.Database = envVars.MYSQL_DATABASE
	} else if cfg.Database == "" {
		cfg.Database = cnf.Database
	}

	// TLS material: profile > my.cnf (flags are applied later)
	if cfg.SSLCA == "" {
		cfg.SSLCA = cnf.SSLCA
	}
	if cfg.SSLCert == "" && cfg.SSLKey == "" {
		cfg.SSLCert = cnf.SSLCert
		cfg.SSLKey = cnf.SSLKey
	}

	// TLS mode and timeouts: flag > profile > default (applied later)
	if flags.TLSMode != "" {
		cfg.TLSMode = myconn.TLSMode(flags.TLSMode)
	}
	if flags.ConnectTimeout != 0 {
		cfg.ConnectTimeout = flags.ConnectTimeout
	}
	if flags.RWTimeout != 0 {
		cfg.ReadWriteTimeout = flags.RWTimeout
	}

	return cfg, nil
}

// applyTLSFlags attaches certificate material from the command line.
// When material is given without an explicit TLS mode, verification of the
// server chain is implied.
func applyTLSFlags(config *myconn.ConnectionConfig, flags *TLSFlags) {
	if flags.IsEmpty() {
		return
	}
	if flags.SSLCA != "" {
		config.SSLCA = flags.SSLCA
	}
	if flags.SSLCert != "" {
		config.SSLCert = flags.SSLCert
	}
	if flags.SSLKey != "" {
		config.SSLKey = flags.SSLKey
	}
	if config.TLSMode == myconn.TLSModeDefault {
		config.TLSMode = myconn.TLSModeVerifyCA
	}
}

// applyCloudAuth switches the config to cloud token authentication when the
// corresponding flags or environment variables are present.
// CLI flags take precedence over environment variables.
func applyCloudAuth(
	config *myconn.ConnectionConfig,
	azure *AzureFlags,
	aws *AWSFlags,
	google *GoogleFlags,
	env *EnvVars,
) {
	switch {
	case aws.Enabled:
		config.AuthMethod = myconn.AuthMethodAWSIAM
		if aws.Region != "" {
			config.AWSRegion = aws.Region
		}

	case google.Enabled:
		config.AuthMethod = myconn.AuthMethodGoogleIAM
		if google.Instance != "" {
			config.GoogleInstance = google.Instance
		}

	case azure.Enabled || env.HasAzureCredentials():
		tenantID := azure.TenantID
		if tenantID == "" {
			tenantID = env.AZURE_TENANT_ID
		}
		clientID := azure.ClientID
		if clientID == "" {
			clientID = env.AZURE_CLIENT_ID
		}

		config.AuthMethod = myconn.AuthMethodAzureEntraID
		config.AzureTenantID = tenantID
		config.AzureClientID = clientID
		// Client secret only comes from the environment (no flag for security)
		config.AzureClientSecret = env.AZURE_CLIENT_SECRET
	}
}
