// ABOUTME: Shared fixtures for MCP handler tests
// ABOUTME: Handlers run against in-memory stores with a quiet logger and fixed clock
package handlers

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/crmview/repository"
	"github.com/harperreed/crmview/resolve"
	"github.com/harperreed/crmview/store"
)

// Saturday 2024-06-15 10:00 UTC
var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func setupDeps(t *testing.T) Deps {
	t.Helper()
	return Deps{
		Repos:  repository.NewSet(store.NewMemorySet()),
		Labels: resolve.DefaultLabels(),
		Logger: log.New(io.Discard),
		Now:    func() time.Time { return fixedNow },
	}
}
