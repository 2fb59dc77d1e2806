package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupAppliesDefaultsWhenNoConfigFile(t *testing.T) {
	ConfFile = "./this-file-does-not-exist.toml"
	Setup()
	assert.True(t, Settings.Search.UseTT)
	assert.Equal(t, 128, Settings.Search.TTSizeMB)
	assert.True(t, Settings.Eval.UseMobility)
	assert.Equal(t, 3, Settings.Parallel.SplitMaxSlaves)
}

func TestSetupIsIdempotent(t *testing.T) {
	ConfFile = "./this-file-does-not-exist.toml"
	initialized = false
	Setup()
	Settings.Search.TTSizeMB = 999
	Setup()
	assert.Equal(t, 999, Settings.Search.TTSizeMB)
}

func TestStringRendersAllSections(t *testing.T) {
	Setup()
	out := Settings.String()
	assert.Contains(t, out, "Search Config")
	assert.Contains(t, out, "Evaluation Config")
	assert.Contains(t, out, "Parallel Config")
}

func TestLogLevelsMapKnownNames(t *testing.T) {
	assert.Equal(t, 5, LogLevels["debug"])
	assert.Equal(t, -1, LogLevels["off"])
}
