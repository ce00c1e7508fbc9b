package app

import (
	"bytes"
	"testing"
)

// TestRun_ServeCommand_AttemptsStoreConnection はserveコマンドがストア接続を試みることを検証する。
// テスト環境ではストア接続が失敗するため、エラーが返ることを許容する。
func TestRun_ServeCommand_AttemptsStoreConnection(t *testing.T) {
	setTestEnv(t)

	var buf bytes.Buffer
	err := Run(&buf, []string{"serve"})
	if err == nil {
		// CI/ローカルにMongoDBがある場合はサーバーが即時終了しないため、ここに到達する可能性がある。
		// しかし通常テスト環境ではストア接続が失敗する。
		t.Log("Run(serve) succeeded - store is available in test environment")
	}
}

// TestRun_MigrateCommand_AttemptsStoreConnection はmigrateコマンドがストア接続を試みることを検証する。
func TestRun_MigrateCommand_AttemptsStoreConnection(t *testing.T) {
	setTestEnv(t)

	var buf bytes.Buffer
	err := Run(&buf, []string{"migrate"})
	if err == nil {
		t.Log("Run(migrate) succeeded - store is available in test environment")
	}
}

func TestRun_WithMissingEnv_ReturnsError(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	var buf bytes.Buffer
	err := Run(&buf, []string{"serve"})
	if err == nil {
		t.Fatal("Run with missing env should return error")
	}
}

// TestRun_Healthcheck_NoServer_ReturnsError はサーバー不在時にhealthcheckが失敗することを検証する。
func TestRun_Healthcheck_NoServer_ReturnsError(t *testing.T) {
	t.Setenv("SERVER_PORT", "59999")

	var buf bytes.Buffer
	err := Run(&buf, []string{"healthcheck"})
	if err == nil {
		t.Fatal("healthcheck without a running server should return error")
	}
}

func setTestEnv(t *testing.T) {
	t.Helper()
	// serverSelectionTimeoutMSを短くして、ストア不在時のテストを高速に失敗させる
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/?serverSelectionTimeoutMS=500")
	t.Setenv("ACCESS_TOKEN_SECRET", "test-token-secret")
}
