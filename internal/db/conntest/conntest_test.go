//go:build conntest

// Package conntest holds integration tests that exercise real connections
// against a MySQL server in a container. Run with:
//
//	go test -tags conntest ./internal/db/conntest/
package conntest

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/vvka-141/myconn/internal/db"
	"github.com/vvka-141/myconn/internal/db/manager"
	"github.com/vvka-141/myconn/pkg/myconn"
)

const (
	testUser     = "tester"
	testPassword = "tester-pw"
	testDatabase = "conntest"
)

var (
	serverHost string
	serverPort int
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	ctr, err := tcmysql.Run(ctx, "mysql:8.4",
		tcmysql.WithDatabase(testDatabase),
		tcmysql.WithUsername(testUser),
		tcmysql.WithPassword(testPassword),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start mysql: %v\n", err)
		os.Exit(1)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "container host: %v\n", err)
		_ = ctr.Terminate(ctx)
		os.Exit(1)
	}
	port, err := ctr.MappedPort(ctx, "3306/tcp")
	if err != nil {
		fmt.Fprintf(os.Stderr, "container port: %v\n", err)
		_ = ctr.Terminate(ctx)
		os.Exit(1)
	}

	serverHost = host
	serverPort, _ = strconv.Atoi(port.Port())

	code := m.Run()

	_ = ctr.Terminate(ctx)
	os.Exit(code)
}

func serverConfig() *myconn.ConnectionConfig {
	return &myconn.ConnectionConfig{
		Host:           serverHost,
		Port:           serverPort,
		Username:       testUser,
		Password:       testPassword,
		Database:       testDatabase,
		ConnectTimeout: 30 * time.Second,
	}
}

func TestStandardConnector_Connect(t *testing.T) {
	ctx := context.Background()

	connector, err := db.NewConnector(serverConfig(), nil)
	require.NoError(t, err)

	conn, err := connector.Connect(ctx)
	require.NoError(t, err)
	defer conn.Disconnect()

	assert.True(t, conn.Connected())
	assert.NotEmpty(t, conn.SessionID())

	row, err := conn.Query("SELECT VERSION()").Row(ctx)
	require.NoError(t, err)

	var version string
	require.NoError(t, row.Scan(&version))
	assert.NotEmpty(t, version)
}

func TestConnection_DeferredThenPing(t *testing.T) {
	ctx := context.Background()

	conn := myconn.New()
	require.NoError(t, conn.Connect(ctx, serverConfig()))
	defer conn.Disconnect()

	require.NoError(t, conn.Disconnect())
	assert.False(t, conn.Connected())

	// Ping re-establishes a dropped link from the remembered config.
	require.NoError(t, conn.Ping(ctx))
	assert.True(t, conn.Connected())
}

func TestConnection_ReconnectGetsNewSession(t *testing.T) {
	ctx := context.Background()

	conn, err := myconn.Open(ctx, serverConfig())
	require.NoError(t, err)
	defer conn.Disconnect()

	first := conn.SessionID()
	require.NoError(t, conn.Connect(ctx, serverConfig()))
	assert.NotEqual(t, first, conn.SessionID())
}

func TestConnection_WrongPassword(t *testing.T) {
	cfg := serverConfig()
	cfg.Password = "wrong"

	_, err := myconn.Open(context.Background(), cfg)
	require.Error(t, err)
}

func TestQuery_ExecAndRows(t *testing.T) {
	ctx := context.Background()

	conn, err := myconn.Open(ctx, serverConfig())
	require.NoError(t, err)
	defer conn.Disconnect()

	_, err = conn.Query("CREATE TABLE IF NOT EXISTS kv (k VARCHAR(32) PRIMARY KEY, v INT)").Exec(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = conn.Query("DROP TABLE IF EXISTS kv").Exec(ctx)
	})

	q := conn.Query("INSERT INTO kv (k, v) VALUES (?, ?)")
	q.Bind("a", 1)
	_, err = q.Exec(ctx)
	require.NoError(t, err)

	row, err := conn.Query("SELECT v FROM kv WHERE k = ?").Bind("a").Row(ctx)
	require.NoError(t, err)

	var v int
	require.NoError(t, row.Scan(&v))
	assert.Equal(t, 1, v)
}

func TestProfiles_ConnectProfile(t *testing.T) {
	ctx := context.Background()

	doc := fmt.Sprintf(`
connect_timeout: 30
connections:
  ct:
    host: %s
    port: %d
    user: %s
    password: %s
    database: %s
`, serverHost, serverPort, testUser, testPassword, testDatabase)

	profiles, err := myconn.ParseProfiles([]byte(doc))
	require.NoError(t, err)

	conn := myconn.New()
	require.NoError(t, conn.ConnectProfile(ctx, profiles, "ct"))
	defer conn.Disconnect()

	assert.True(t, conn.Connected())
}

func TestManager_Lifecycle(t *testing.T) {
	ctx := context.Background()

	cfg := serverConfig()
	cfg.Username = "root"
	cfg.Password = testPassword
	cfg.Database = ""

	conn, err := myconn.Open(ctx, cfg)
	require.NoError(t, err)
	defer conn.Disconnect()

	adapter := db.NewDBAdapter(conn.Driver())
	mgr := manager.New()

	const name = "conntest_lifecycle"

	exists, err := mgr.Exists(ctx, adapter, name)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, mgr.Create(ctx, adapter, name))
	t.Cleanup(func() {
		_ = mgr.Drop(ctx, adapter, name)
	})

	exists, err = mgr.Exists(ctx, adapter, name)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, mgr.TerminateConnections(ctx, adapter, name))
	require.NoError(t, mgr.Drop(ctx, adapter, name))

	exists, err = mgr.Exists(ctx, adapter, name)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestResolver_EnvironmentPrecedence(t *testing.T) {
	t.Setenv("MYSQL_HOST", serverHost)
	t.Setenv("MYSQL_TCP_PORT", strconv.Itoa(serverPort))
	t.Setenv("MYSQL_PWD", testPassword)

	cfg, err := db.ResolveConnectionParams(
		"", &db.GranularConnFlags{Username: testUser, Database: testDatabase},
		nil, nil, nil, nil,
		db.LoadFromEnvironment(), nil, nil,
	)
	require.NoError(t, err)

	conn, err := myconn.Open(context.Background(), cfg)
	require.NoError(t, err)
	defer conn.Disconnect()

	assert.True(t, conn.Connected())
}
