package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/myconn/internal/config"
	"github.com/vvka-141/myconn/internal/db"
	"github.com/vvka-141/myconn/internal/params"
	"github.com/vvka-141/myconn/pkg/myconn"
)

// connectionFlags holds the common connection-related flag values.
type connectionFlags struct {
	connection     string
	profile        string
	configPath     string
	envFile        string
	host           string
	port           int
	username       string
	database       string
	socket         string
	tlsMode        string
	sslCA          string
	sslCert        string
	sslKey         string
	connectTimeout time.Duration
	rwTimeout      time.Duration
	azure          bool
	azureTenantID  string
	azureClientID  string
	aws            bool
	awsRegion      string
	google         bool
	googleInstance string
}

// registerConnectionFlags wires the shared connection flags onto a command.
// Shorthands follow the stock mysql client (-h, -P, -u, -D, -S).
func registerConnectionFlags(cmd *cobra.Command, flags *connectionFlags) {
	cmd.Flags().StringVar(&flags.connection, "connection", "", "Connection string (mysql://user@host:port/db or driver DSN)")
	cmd.Flags().StringVar(&flags.profile, "profile", "", "Named connection profile from myconn.yaml")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to myconn.yaml (default: ./myconn.yaml, then user config dir)")
	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Load environment variables from a .env file before resolving")
	cmd.Flags().StringVarP(&flags.host, "host", "h", "", "Server host")
	cmd.Flags().IntVarP(&flags.port, "port", "P", 0, "Server TCP port")
	cmd.Flags().StringVarP(&flags.username, "user", "u", "", "Username")
	cmd.Flags().StringVarP(&flags.database, "database", "D", "", "Database name")
	cmd.Flags().StringVarP(&flags.socket, "socket", "S", "", "Unix socket path (used when host is empty or localhost)")
	cmd.Flags().StringVar(&flags.tlsMode, "tls-mode", "", "TLS mode (disabled, preferred, required, verify-ca, verify-identity)")
	cmd.Flags().StringVar(&flags.sslCA, "ssl-ca", "", "CA certificate file (implies verify-ca)")
	cmd.Flags().StringVar(&flags.sslCert, "ssl-cert", "", "Client certificate file")
	cmd.Flags().StringVar(&flags.sslKey, "ssl-key", "", "Client private key file")
	cmd.Flags().DurationVar(&flags.connectTimeout, "connect-timeout", 0, "Dial and handshake timeout")
	cmd.Flags().DurationVar(&flags.rwTimeout, "rw-timeout", 0, "Socket read/write timeout")
	cmd.Flags().BoolVar(&flags.azure, "azure", false, "Use Azure Entra ID authentication")
	cmd.Flags().StringVar(&flags.azureTenantID, "azure-tenant-id", "", "Azure tenant ID (overrides AZURE_TENANT_ID)")
	cmd.Flags().StringVar(&flags.azureClientID, "azure-client-id", "", "Azure client ID (overrides AZURE_CLIENT_ID)")
	cmd.Flags().BoolVar(&flags.aws, "aws", false, "Use AWS IAM database authentication")
	cmd.Flags().StringVar(&flags.awsRegion, "aws-region", "", "AWS region of the RDS instance")
	cmd.Flags().BoolVar(&flags.google, "google", false, "Use Google Cloud SQL IAM authentication")
	cmd.Flags().StringVar(&flags.googleInstance, "google-instance", "", "Cloud SQL instance (project:region:instance)")

	registerTLSModeCompletion(cmd, "tls-mode")
	registerProfileCompletion(cmd, "profile")
}

// resolveConnectionFromFlags resolves the full connection configuration
// from flags, environment, profile, and ~/.my.cnf.
func resolveConnectionFromFlags(flags connectionFlags, verbose bool) (*myconn.ConnectionConfig, error) {
	if flags.envFile != "" {
		if err := params.Apply(flags.envFile); err != nil {
			return nil, err
		}
		if verbose {
			if vars, err := params.Read(flags.envFile); err == nil {
				fmt.Fprintf(os.Stderr, "[VERBOSE] Loaded %d variables from %s\n", len(vars), flags.envFile)
			}
		}
	}

	connString := flags.connection
	if connString == "" {
		connString = connectionStringFromEnv()
	}

	granularFlags := &db.GranularConnFlags{
		Host:           flags.host,
		Port:           flags.port,
		Username:       flags.username,
		Database:       flags.database,
		Socket:         flags.socket,
		TLSMode:        flags.tlsMode,
		ConnectTimeout: flags.connectTimeout,
		RWTimeout:      flags.rwTimeout,
	}

	tlsFlags := &db.TLSFlags{
		SSLCA:   flags.sslCA,
		SSLCert: flags.sslCert,
		SSLKey:  flags.sslKey,
	}

	azureFlags := &db.AzureFlags{
		Enabled:  flags.azure,
		TenantID: flags.azureTenantID,
		ClientID: flags.azureClientID,
	}

	awsFlags := &db.AWSFlags{
		Enabled: flags.aws,
		Region:  flags.awsRegion,
	}

	googleFlags := &db.GoogleFlags{
		Enabled:  flags.google,
		Instance: flags.googleInstance,
	}

	profileConfig, err := loadProfileConfig(flags.configPath, flags.profile, verbose)
	if err != nil {
		return nil, err
	}

	clientCnf, err := loadUserMyCnf(verbose)
	if err != nil {
		return nil, err
	}

	connConfig, err := db.ResolveConnectionParams(
		connString,
		granularFlags,
		tlsFlags,
		azureFlags,
		awsFlags,
		googleFlags,
		db.LoadFromEnvironment(),
		profileConfig,
		clientCnf,
	)
	if err != nil {
		return nil, err
	}

	if verbose {
		logConnectionVerbose(connConfig)
	}
	return connConfig, nil
}

// loadProfileConfig loads the named profile from myconn.yaml.
// A missing config file is only an error when a profile was requested.
func loadProfileConfig(configPath, profileName string, verbose bool) (*myconn.ConnectionConfig, error) {
	if profileName == "" {
		return nil, nil
	}

	profiles, path, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("profile %q requested but no %s found: %w",
				profileName, config.ConfigFileName, err)
		}
		return nil, err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Using profile %q from %s\n", profileName, path)
	}
	return profiles.Config(profileName)
}

// loadUserMyCnf reads ~/.my.cnf, treating a missing file as no config.
func loadUserMyCnf(verbose bool) (*db.ClientConfig, error) {
	path, err := db.DefaultMyCnfPath()
	if err != nil {
		return nil, nil
	}

	clientCnf, err := db.LoadClientConfig(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if verbose && !clientCnf.IsEmpty() {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Loaded [client] defaults from %s\n", path)
	}
	return clientCnf, nil
}

// logConnectionVerbose logs resolved connection details when verbose mode
// is enabled. The password never appears here.
func logConnectionVerbose(connConfig *myconn.ConnectionConfig) {
	fmt.Fprintf(os.Stderr, "[VERBOSE] Connection resolved:\n")
	if connConfig.UseSocket() {
		fmt.Fprintf(os.Stderr, "  Socket: %s\n", connConfig.Socket)
	} else {
		fmt.Fprintf(os.Stderr, "  Host: %s\n", connConfig.Host)
		fmt.Fprintf(os.Stderr, "  Port: %d\n", connConfig.Port)
	}
	fmt.Fprintf(os.Stderr, "  User: %s\n", connConfig.Username)
	fmt.Fprintf(os.Stderr, "  Database: %s\n", connConfig.Database)
	if connConfig.TLSMode != myconn.TLSModeDefault {
		fmt.Fprintf(os.Stderr, "  TLS Mode: %s\n", connConfig.TLSMode)
	}
	if connConfig.SSLCA != "" {
		fmt.Fprintf(os.Stderr, "  SSL CA: %s\n", connConfig.SSLCA)
	}
	if connConfig.SSLCert != "" {
		fmt.Fprintf(os.Stderr, "  SSL Cert: %s\n", connConfig.SSLCert)
	}
	fmt.Fprintf(os.Stderr, "  Auth Method: %s\n", connConfig.AuthMethod)
	fmt.Fprintf(os.Stderr, "  DSN: %s\n", db.RedactedDSN(connConfig))
}
