package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbs(t *testing.T) {
	assert.Equal(t, 5, Abs(5))
	assert.Equal(t, 5, Abs(-5))
	assert.Equal(t, 0, Abs(0))
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 3, Min(3, 7))
	assert.Equal(t, 7, Max(3, 7))
}

func TestNpsToleratesZeroDuration(t *testing.T) {
	nps := Nps(1000, 0)
	assert.Greater(t, nps, uint64(0))
}

func TestResolveFileFindsAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "probe.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	resolved, err := ResolveFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(path), resolved)
}

func TestResolveFileMissingReturnsError(t *testing.T) {
	_, err := ResolveFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestMemStatAndGcWithStatsProduceNonEmptyStrings(t *testing.T) {
	assert.NotEmpty(t, MemStat())
	assert.NotEmpty(t, GcWithStats())
}

func TestTimeTrackDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { TimeTrack(time.Now(), "probe") })
}
