package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thryce/site/pkg/config"
)

func testConfig() config.LoggerConfig {
	return config.LoggerConfig{Level: "debug", Format: "json", ServiceName: "thryce"}
}

func TestNew_JSONConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := New(testConfig(), WriterSyncer(&buf))
	logger.Named("ParticleField").Info("initialized")
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "thryce.ParticleField", entry["logger"])
	assert.Equal(t, "initialized", entry["msg"])
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.Level = "warn"
	logger := New(cfg, WriterSyncer(&buf))
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.Level = "loud"
	logger := New(cfg, WriterSyncer(&buf))
	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.Format = "console"
	New(cfg, WriterSyncer(&buf)).Named("Backdrop").Info("mounted")

	out := buf.String()
	assert.Contains(t, out, "[thryce.Backdrop]")
	assert.Contains(t, out, "mounted")
}

func TestNew_FileOutput(t *testing.T) {
	cfg := testConfig()
	cfg.File = filepath.Join(t.TempDir(), "site.log")
	cfg.MaxSize = 1

	logger := New(cfg, nil)
	logger.Info("to file")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"to file"`))
}

func TestNew_NoOutputs(t *testing.T) {
	logger := New(testConfig(), nil)
	assert.NotPanics(t, func() { logger.Info("nowhere") })
}

func TestInitialize_Once(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var first, second bytes.Buffer
	l1 := Initialize(testConfig(), WriterSyncer(&first))
	l2 := Initialize(testConfig(), WriterSyncer(&second))
	assert.Same(t, l1, l2)

	GetLogger().Info("global")
	assert.Contains(t, first.String(), "global")
	assert.Empty(t, second.String())
}

func TestGetLogger_BeforeInitialize(t *testing.T) {
	ResetForTest()
	assert.NotNil(t, GetLogger())
	assert.NotPanics(t, Sync)
}
