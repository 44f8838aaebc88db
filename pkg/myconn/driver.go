package myconn

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"

	"github.com/go-sql-driver/mysql"
)

// DriverConfig maps the ConnectionConfig onto the native driver's parameter
// shape. The socket selection rule, timeout defaults and TLS material are
// all resolved here; the returned config is ready for mysql.NewConnector.
func (c *ConnectionConfig) DriverConfig() (*mysql.Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg := mysql.NewConfig()
	cfg.User = c.Username
	cfg.Passwd = c.Password
	cfg.DBName = c.Database

	switch {
	case c.AuthMethod == AuthMethodGoogleIAM:
		// Dialing goes through the Cloud SQL connector, registered under a
		// dedicated network name (see internal/db). The connector owns
		// transport security, so no TLS settings apply here.
		cfg.Net = GoogleCloudSQLNetwork
		cfg.Addr = c.GoogleInstance
	case c.UseSocket():
		cfg.Net = "unix"
		cfg.Addr = c.Socket
	default:
		cfg.Net = "tcp"
		cfg.Addr = c.Addr()
	}

	cfg.Timeout = c.ConnectTimeout
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConnectTimeout
	}
	cfg.ReadTimeout = c.ReadWriteTimeout
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadWriteTimeout
	}
	cfg.WriteTimeout = cfg.ReadTimeout

	if c.AuthMethod != AuthMethodGoogleIAM {
		if err := c.applyTLS(cfg); err != nil {
			return nil, err
		}
	}

	// Cloud token auth sends the token as a cleartext password over the
	// encrypted channel.
	if c.AuthMethod != AuthMethodStandard {
		cfg.AllowCleartextPasswords = true
	}

	appName := c.AppName
	if appName == "" {
		appName = "myconn"
	}
	cfg.ConnectionAttributes = "program_name:" + appName

	for k, v := range c.Params {
		if cfg.Params == nil {
			cfg.Params = make(map[string]string, len(c.Params))
		}
		cfg.Params[k] = v
	}

	return cfg, nil
}

// applyTLS translates TLSMode and certificate material into driver settings.
func (c *ConnectionConfig) applyTLS(cfg *mysql.Config) error {
	switch c.TLSMode {
	case TLSModeDefault:
		return nil

	case TLSModeDisabled:
		cfg.TLSConfig = "false"
		return nil

	case TLSModePreferred:
		cfg.TLSConfig = "preferred"
		return nil

	case TLSModeRequired:
		if c.SSLCA == "" && c.SSLCert == "" {
			cfg.TLSConfig = "skip-verify"
			return nil
		}
		tlsCfg, err := c.clientTLS()
		if err != nil {
			return err
		}
		tlsCfg.InsecureSkipVerify = true
		cfg.TLS = tlsCfg
		return nil

	case TLSModeVerifyCA:
		tlsCfg, err := c.clientTLS()
		if err != nil {
			return err
		}
		// Verify the chain ourselves so the hostname is NOT checked.
		roots := tlsCfg.RootCAs
		tlsCfg.InsecureSkipVerify = true
		tlsCfg.VerifyConnection = func(cs tls.ConnectionState) error {
			if len(cs.PeerCertificates) == 0 {
				return fmt.Errorf("server presented no certificate: %w", ErrConnectionFailed)
			}
			opts := x509.VerifyOptions{
				Roots:         roots,
				Intermediates: x509.NewCertPool(),
			}
			for _, cert := range cs.PeerCertificates[1:] {
				opts.Intermediates.AddCert(cert)
			}
			_, err := cs.PeerCertificates[0].Verify(opts)
			return err
		}
		cfg.TLS = tlsCfg
		return nil

	case TLSModeVerifyIdentity:
		tlsCfg, err := c.clientTLS()
		if err != nil {
			return err
		}
		if c.Host != "" {
			tlsCfg.ServerName = c.Host
		}
		cfg.TLS = tlsCfg
		return nil

	default:
		return fmt.Errorf("unknown TLS mode %q: %w", c.TLSMode, ErrInvalidConfig)
	}
}

// clientTLS loads CA and client certificate material from disk.
func (c *ConnectionConfig) clientTLS() (*tls.Config, error) {
	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if c.SSLCA != "" {
		pem, err := os.ReadFile(c.SSLCA)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate %s: %w", c.SSLCA, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s: %w", c.SSLCA, ErrInvalidConfig)
		}
		tlsCfg.RootCAs = pool
	}

	if c.SSLCert != "" && c.SSLKey != "" {
		cert, err := tls.LoadX509KeyPair(c.SSLCert, c.SSLKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	return tlsCfg, nil
}

// The native driver keeps a single process-wide logger for protocol-level
// complaints. Route it through the first connection's Logger exactly once.
var driverLogOnce sync.Once

func initDriverLogging(logger Logger) {
	if logger == nil {
		return
	}
	driverLogOnce.Do(func() {
		_ = mysql.SetLogger(driverLogAdapter{logger: logger})
	})
}

// driverLogAdapter adapts myconn.Logger to the driver's Logger interface.
type driverLogAdapter struct {
	logger Logger
}

func (a driverLogAdapter) Print(v ...interface{}) {
	a.logger.Verbose("mysql driver: %s", fmt.Sprint(v...))
}
