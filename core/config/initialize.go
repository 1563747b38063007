package config

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Initialize writes the default configuration to the root of configFs. It
// refuses to overwrite an existing configuration.
func Initialize(configFs afero.Fs, logger *log.Logger) error {
	exists, err := afero.Exists(configFs, ConfigurationName)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s already exists", ConfigurationName)
	}

	logger.Info("Writing configuration", "file", ConfigurationName)
	return afero.WriteFile(configFs, ConfigurationName, defaultConfigData, 0600)
}
