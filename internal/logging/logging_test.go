package logging

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-board/internal/config"
)

func TestSetupLevels(t *testing.T) {
	log := logrus.New()
	c := config.Default()
	require.NoError(t, Setup(log, &c))
	require.Equal(t, logrus.DebugLevel, log.GetLevel())

	c.Mode = "production"
	require.NoError(t, Setup(log, &c))
	require.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestSetupLogFile(t *testing.T) {
	var (
		log = logrus.New()
		c   = config.Default()
	)
	log.SetOutput(io.Discard)
	c.Log.File = filepath.Join(t.TempDir(), "mines.log")
	require.NoError(t, Setup(log, &c))

	log.WithField("index", 7).Info("revealed")

	b, err := os.ReadFile(c.Log.File)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(b, &entry))
	require.Equal(t, "revealed", entry["msg"])
	require.Equal(t, float64(7), entry["index"])
}
