package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classdex/classdex/internal/scan"
)

func TestBuildOrchestrator_ScansWorkspace(t *testing.T) {
	rootDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(rootDir, "index.html"),
		[]byte(`<div class="hero banner"></div>`), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(rootDir, "node_modules", "pkg"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(rootDir, "node_modules", "pkg", "x.html"),
		[]byte(`<div class="vendor"></div>`), 0644))

	orchestrator, err := buildOrchestrator(rootDir, scan.NoOpNotifier{})
	require.NoError(t, err)

	stats, err := orchestrator.RunScan(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, 1, stats.FilesDiscovered)
	snap := orchestrator.Store().Read()
	assert.True(t, snap.Contains("hero"))
	assert.True(t, snap.Contains("banner"))
	assert.False(t, snap.Contains("vendor"))
}

func TestBuildOrchestrator_InvalidConfigFails(t *testing.T) {
	rootDir := t.TempDir()
	configDir := filepath.Join(rootDir, ".classdex")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"),
		[]byte("scan:\n  concurrency: -2\n"), 0644))

	_, err := buildOrchestrator(rootDir, scan.NoOpNotifier{})
	require.Error(t, err)
}

func TestProgressNotifier_QuietSuppressesOutput(t *testing.T) {
	t.Parallel()

	n := NewProgressNotifier(true)
	require.NotPanics(t, func() {
		n.Started()
		n.Progress(1, 2, 50)
		n.Progress(2, 2, 100)
		n.Finished(scan.Stats{FilesDiscovered: 2, UniqueDefinitions: 3})
		n.Idle()
	})
}
