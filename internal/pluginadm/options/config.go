package options

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/kiosk404/pluginadm/pkg/logger"
	"github.com/kiosk404/pluginadm/pkg/utils/homedir"
)

const (
	// FlagConfig is the flag naming an explicit configuration file.
	FlagConfig = "config"

	// RecommendedHomeDir holds the configuration file and the metadata cache.
	RecommendedHomeDir = ".pluginadm"

	// RecommendedEnvPrefix prefixes every environment override, e.g.
	// PLUGINADM_GRAPHQL_ENDPOINT.
	RecommendedEnvPrefix = "PLUGINADM"
)

// LoadConfig points v at the configuration file and the environment and reads
// the file. A missing default file is not an error; a missing explicit one is.
func LoadConfig(v *viper.Viper, cfgFile, defaultName string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(homedir.HomeDir(), RecommendedHomeDir))
		v.SetConfigName(defaultName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(RecommendedEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			logger.Debug("[Config] no configuration file found, using flags and environment")
			return nil
		}
		return err
	}
	logger.Debug("[Config] using configuration file %s", v.ConfigFileUsed())
	return nil
}

// WatchLogLevel re-applies log.level whenever the configuration file changes.
func WatchLogLevel(v *viper.Viper) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		level := v.GetString("log.level")
		if err := logger.SetLevel(level); err != nil {
			logger.Warn("[Config] ignoring log.level %q from %s: %v", level, e.Name, err)
			return
		}
		logger.Info("[Config] %s changed, log level is now %s", e.Name, level)
	})
	v.WatchConfig()
}
