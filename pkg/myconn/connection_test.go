package myconn

import (
	"context"
	"errors"
	"testing"
)

func TestNew_Deferred(t *testing.T) {
	conn := New()

	if conn.Connected() {
		t.Error("deferred connection should not be connected")
	}
	if conn.Driver() != nil {
		t.Error("deferred connection should have no driver handle")
	}
	if conn.Config() != nil {
		t.Error("deferred connection should have no config")
	}
	if conn.SessionID() != "" {
		t.Error("deferred connection should have no session id")
	}
}

func TestConnection_PingUnconfigured(t *testing.T) {
	conn := New()

	err := conn.Ping(context.Background())
	if !errors.Is(err, ErrNotConnected) {
		t.Fatalf("Ping() on unconfigured connection = %v, want ErrNotConnected", err)
	}
}

func TestConnection_ConnectNilConfig(t *testing.T) {
	conn := New()

	err := conn.Connect(context.Background(), nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Connect(nil) = %v, want ErrInvalidConfig", err)
	}
}

func TestConnection_ConnectInvalidConfig(t *testing.T) {
	conn := New()

	// Missing host and socket fails validation before any dialing.
	err := conn.Connect(context.Background(), &ConnectionConfig{Username: "root"})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Connect() = %v, want ErrInvalidConfig", err)
	}
	if conn.Connected() {
		t.Error("failed connect should leave the connection disconnected")
	}
}

func TestConnection_DisconnectIdempotent(t *testing.T) {
	conn := New()

	if err := conn.Disconnect(); err != nil {
		t.Fatalf("Disconnect() on unconnected = %v, want nil", err)
	}
	if err := conn.Disconnect(); err != nil {
		t.Fatalf("second Disconnect() = %v, want nil", err)
	}
}

func TestConnection_ConnectProfileUnknown(t *testing.T) {
	profiles := &Profiles{Connections: map[string]Profile{}}
	conn := New()

	err := conn.ConnectProfile(context.Background(), profiles, "missing")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("ConnectProfile() = %v, want ErrProfileNotFound", err)
	}
}

func TestConnection_QueryFactory(t *testing.T) {
	conn := New()

	q := conn.Query("SELECT 1")
	if q.String() != "SELECT 1" {
		t.Errorf("Query text = %q, want SELECT 1", q.String())
	}

	empty := conn.Query("")
	empty.SetSQL("SELECT NOW()").Bind(1, "two")
	if empty.String() != "SELECT NOW()" {
		t.Errorf("SetSQL did not update text: %q", empty.String())
	}
}
