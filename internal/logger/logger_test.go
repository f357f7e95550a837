package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerParsesLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewLogger("warn").GetLevel())
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	assert.Equal(t, logrus.InfoLevel, NewLogger("loud").GetLevel())
}

func TestWithComponentTagsEntries(t *testing.T) {
	entry := WithComponent(NewLogger("info"), "selector")
	assert.Equal(t, "selector", entry.Data["component"])
}
