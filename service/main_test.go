// file: service/main_test.go

package service

import (
	"os"
	"testing"
	"vidtube-api/config"
	"vidtube-api/logger"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()

	config.AppConfig.JWT.AccessSecret = "test-access-secret"
	config.AppConfig.JWT.RefreshSecret = "test-refresh-secret"
	config.AppConfig.JWT.AccessExpiryMinutes = 60
	config.AppConfig.JWT.RefreshExpiryDays = 10

	os.Exit(m.Run())
}
