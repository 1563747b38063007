package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	HistoryLogName    = "history.log"
)

const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs

	// DefaultLPort is the listener port used when LPORT is omitted.
	DefaultLPort int `json:"default_lport" validate:"gte=0,lte=65536"`
	// ListWidth is the column the payload summaries start at.
	ListWidth int `json:"list_width" validate:"gte=0"`
	// Color controls colored output (always|auto|never).
	Color string `json:"color" validate:"oneof=always auto never"`
	// RecordHistory appends every rendered payload to the history log.
	RecordHistory bool `json:"record_history"`

	// Interfaces holds address aliases consulted before local interfaces.
	Interfaces map[string]string `json:"interfaces" validate:"dive,ipv4"`

	// PayloadDefaults holds KEY=VALUE assignments applied to a payload before
	// the ones given on the command line.
	PayloadDefaults map[string][]string `json:"payload_defaults" validate:"dive,dive,required"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = afero.NewMemMapFs()
	}
	return c.configFs
}

// OpenHistoryLog opens the history log in an append only state.
func (c *Configuration) OpenHistoryLog() (afero.File, error) {
	return c.fs().OpenFile(HistoryLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadHistoryLog() (afero.File, error) {
	return c.fs().OpenFile(HistoryLogName, os.O_RDONLY, 0600)
}

// Assignments returns the configured assignments for a payload.
func (c *Configuration) Assignments(payloadID string) []string {
	return c.PayloadDefaults[payloadID]
}

// Default returns the built-in configuration backed by an in-memory
// filesystem, so nothing it writes is persisted.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewMemMapFs()
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
