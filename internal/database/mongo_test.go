package database

import (
	"context"
	"testing"
	"time"
)

// TestConnect_ValidURI_ReturnsClient はmongo.Connectが接続を確立せずに
// クライアントを返すことを検証する。実際の接続確認にはPingが必要。
func TestConnect_ValidURI_ReturnsClient(t *testing.T) {
	client, err := Connect("mongodb://localhost:27017")
	if err != nil {
		t.Fatalf("Connect returned unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected non-nil client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = client.Disconnect(ctx)
}

func TestConnect_MalformedURI_ReturnsError(t *testing.T) {
	if _, err := Connect("not-a-mongodb-uri"); err == nil {
		t.Fatal("expected error for malformed URI")
	}
}

func TestNewMigrator_MalformedURL_ReturnsError(t *testing.T) {
	if _, err := NewMigrator("not-a-url"); err == nil {
		t.Fatal("expected error for malformed database URL")
	}
}
