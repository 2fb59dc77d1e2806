package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLogReturnsUsableLogger(t *testing.T) {
	log := GetLog()
	assert.NotNil(t, log)
	assert.NotPanics(t, func() { log.Info("probe") })
}

func TestGetSearchLogIsDistinctFromStandardLog(t *testing.T) {
	assert.NotSame(t, GetLog(), GetSearchLog())
}

func TestGetTestLogReturnsUsableLogger(t *testing.T) {
	log := GetTestLog()
	assert.NotNil(t, log)
	assert.NotPanics(t, func() { log.Debug("probe") })
}
