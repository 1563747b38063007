package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	configFs := afero.NewBasePathFs(afero.NewOsFs(), tempDir)
	if err := Initialize(configFs, log.New(ioutil.Discard)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("LoadConfigFile", func(t *testing.T) {
		_, err := Load(filepath.Join(tempDir, ConfigurationName))
		assert.Nil(t, err)
	})

	t.Run("NoOverwrite", func(t *testing.T) {
		assert.Error(t, Initialize(configFs, log.New(ioutil.Discard)))
	})

	t.Run("OpenHistoryLog", func(t *testing.T) {
		fd, err := cfg.OpenHistoryLog()
		assert.Nil(t, err)
		_, err = fd.Write([]byte("{}\n"))
		assert.Nil(t, err)
		fd.Close()

		_, err = os.Stat(filepath.Join(tempDir, HistoryLogName))
		assert.Nil(t, err)
	})

	t.Run("ReadHistoryLog", func(t *testing.T) {
		fd, err := cfg.ReadHistoryLog()
		assert.Nil(t, err)
		fd.Close()
	})
}

func TestDefault_InMemory(t *testing.T) {
	cfg := Default()

	fd, err := cfg.OpenHistoryLog()
	assert.Nil(t, err)
	fd.Close()

	// A fresh default configuration has its own filesystem.
	_, err = Default().ReadHistoryLog()
	assert.Error(t, err)
}
