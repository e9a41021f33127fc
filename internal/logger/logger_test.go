package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.TraceLevel, ParseLevel("verbose"))
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("nonsense"))
}

func TestInitWithConfigFiltersByLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surface.log")
	require.NoError(t, InitWithConfig("WARN", path))
	assert.Equal(t, "warn", Level())

	Info.Printf("hidden info line")
	Warn.Printf("visible warn line")
	Always.Printf("always line")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden info line")
	assert.Contains(t, string(data), "visible warn line")
	assert.Contains(t, string(data), "always line")
}

func TestInitWithConfigBadPath(t *testing.T) {
	err := InitWithConfig("info", filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
}

func TestLevelIsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surface.log")
	require.NoError(t, InitWithConfig("VERBOSE", path))
	assert.Equal(t, "verbose", Level())

	Verbose.Printf("trace line")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "trace line")
}
