// Package myconn is a thin connection-management layer over the native
// MySQL driver (github.com/go-sql-driver/mysql). It covers constructing and
// configuring a connection, connecting, disconnecting, reconnecting, and
// producing query objects bound to that connection. Everything below that
// line (wire protocol, authentication handshake, query execution, result
// decoding) is the driver's job.
//
// Immediate connection:
//
//	conn, err := myconn.Open(ctx, &myconn.ConnectionConfig{
//	    Host:     "127.0.0.1",
//	    Username: "root",
//	    Password: "qwerty",
//	    Database: "test",
//	})
//
// Deferred connection:
//
//	conn := myconn.New()
//	// ... later
//	err := conn.Connect(ctx, cfg)
//
// From a named profile in a YAML configuration file:
//
//	profiles, err := myconn.LoadProfiles("myconn.yaml")
//	conn := myconn.New()
//	err = conn.ConnectProfile(ctx, profiles, "reporting")
//
// Over a unix socket (used when the host is local and a socket is given):
//
//	conn, err := myconn.Open(ctx, &myconn.ConnectionConfig{
//	    Host:     "localhost",
//	    Socket:   "/var/run/mysqld/mysqld.sock",
//	    Username: "root",
//	})
package myconn
