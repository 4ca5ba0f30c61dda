package utils

import (
	"bytes"
	"fmt"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	configurationNameConstant                       = "config"
	configurationTypeConstant                       = "yaml"
	environmentKeySeparatorOldConstant              = "."
	environmentKeySeparatorNewConstant              = "_"
	configurationReadErrorTemplateConstant          = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant     = "failed to parse configuration: %w"
	embeddedConfigurationMergeErrorTemplateConstant = "failed to merge embedded configuration: %w"
)

// ConfigurationLoader wraps Viper to load the YAML configuration, layering
// embedded defaults, a config.yaml file, and prefixed environment variables.
type ConfigurationLoader struct {
	environmentPrefix     string
	searchDirectory       string
	embeddedConfiguration []byte
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// NewConfigurationLoader creates a loader looking for config.yaml in searchDirectory.
// The embedded YAML document is merged beneath any file found.
func NewConfigurationLoader(environmentPrefix string, searchDirectory string, embeddedConfiguration []byte) *ConfigurationLoader {
	return &ConfigurationLoader{
		environmentPrefix:     environmentPrefix,
		searchDirectory:       searchDirectory,
		embeddedConfiguration: append([]byte(nil), embeddedConfiguration...),
	}
}

// LoadConfiguration populates targetConfiguration using embedded defaults,
// default values, the configuration file, and environment variables, in that
// order of increasing precedence. An explicit configurationFilePath replaces the
// search and must exist. String values are decoded into fields implementing
// encoding.TextUnmarshaler, so invalid enumerated values fail the load.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigName(configurationNameConstant)
	viperInstance.SetConfigType(configurationTypeConstant)

	if len(loader.embeddedConfiguration) > 0 {
		if mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.embeddedConfiguration)); mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationMergeErrorTemplateConstant, mergeError)
		}
	}

	if len(loader.searchDirectory) > 0 {
		viperInstance.AddConfigPath(loader.searchDirectory)
	}

	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(environmentKeySeparatorOldConstant, environmentKeySeparatorNewConstant))
	viperInstance.AutomaticEnv()

	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	}

	readError := viperInstance.MergeInConfig()
	if readError != nil {
		if _, isNotFound := readError.(viper.ConfigFileNotFoundError); !isNotFound {
			return LoadedConfiguration{}, fmt.Errorf(configurationReadErrorTemplateConstant, readError)
		}
	}

	unmarshalError := viperInstance.Unmarshal(targetConfiguration, viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc()))
	if unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}
