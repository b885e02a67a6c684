package report_test

import (
	"testing"
	"time"

	"rahmet_export/internal/choco"
	"rahmet_export/internal/choco/chocotest"
	"rahmet_export/internal/config"

	"go.uber.org/zap"
)

func newFixtureClient(t *testing.T) (*choco.Client, *chocotest.Server) {
	t.Helper()
	srv := chocotest.NewFixtureServer()
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.BaseURL = srv.URL
	cfg.Timeout = 5 * time.Second
	cfg.ListPause = 0
	cfg.CustomerPause = 0
	cfg.PagePause = 0
	cfg.BranchPause = 0
	cfg.BranchJitterMin = 0
	cfg.BranchJitterMax = 0

	client, err := choco.NewClient(cfg, "opaque-test-token", zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, srv
}
