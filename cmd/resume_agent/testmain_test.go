package main

import (
	"os"
	"testing"

	"go.uber.org/zap"
)

// TestMain runs the CLI tests with a silent logger and without ambient
// credentials, so a developer's .env never reaches a real service
func TestMain(m *testing.M) {
	logger = zap.NewNop()
	_ = os.Unsetenv("GEMINI_API_KEY")
	_ = os.Unsetenv("DATABASE_URL")

	os.Exit(m.Run())
}
