package am

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/hiero/errors"
)

// EnvPrefix prefixes every environment override, e.g. HIERO_SERVER_PORT.
const EnvPrefix = "HIERO"

// SystemConfigPath is the lowest-precedence config file.
var SystemConfigPath = "/etc/hiero/" + ConfigFileName

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper
	// ConfigSources records which file last set each key, filled while
	// merging the cascade.
	ConfigSources = map[string]SourceInfo{}
)

// Load reads the hiero configuration using Viper. The result is cached until
// Reset.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	config, err := LoadWithViper(initViper())
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	mu.Lock()
	defer mu.Unlock()
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path on top of the
// defaults, without the cascade or environment.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	ConfigSources = map[string]SourceInfo{}
}

// initViper initializes Viper with configuration sources and defaults.
// Callers hold mu.
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindEnvVars(v)

	SetDefaults(v)

	// Merge configs in precedence order: system -> user -> project -> env vars
	mergeConfigFiles(v)

	viperInstance = v
	return v
}

// UserConfigPath returns ~/.hiero/am.toml, or "" without a home directory.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hiero", ConfigFileName)
}

// findProjectConfig searches for am.toml by walking up the directory tree
// Returns the path to the first config file found, or empty string if none found
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// ProjectConfigPath returns the project config in use, or ./am.toml when
// there is none yet.
func ProjectConfigPath() string {
	if path := findProjectConfig(); path != "" {
		return path
	}
	return ConfigFileName
}

type cascadeFile struct {
	path   string
	source ConfigSource
}

// configCascade lists candidate files, lowest precedence first.
func configCascade() []cascadeFile {
	files := []cascadeFile{{SystemConfigPath, SourceSystem}}
	if user := UserConfigPath(); user != "" {
		files = append(files, cascadeFile{user, SourceUser})
	}
	if project := findProjectConfig(); project != "" {
		files = append(files, cascadeFile{project, SourceProject})
	}
	return files
}

// mergeConfigFiles merges configuration files in the correct precedence order.
// Precedence (lowest to highest): system < user < project < env vars
func mergeConfigFiles(v *viper.Viper) {
	var used string
	for _, f := range configCascade() {
		if _, err := os.Stat(f.path); err != nil {
			continue
		}

		fileViper := viper.New()
		fileViper.SetConfigFile(f.path)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			continue
		}

		// MergeConfigMap merges nested tables key by key, so a later file
		// only overrides the keys it sets.
		settings := fileViper.AllSettings()
		if err := v.MergeConfigMap(settings); err != nil {
			continue
		}
		trackSources(settings, "", SourceInfo{Source: f.source, Path: f.path})
		used = f.path
	}
	if used != "" {
		v.SetConfigFile(used)
	}
}

func trackSources(settings map[string]interface{}, prefix string, info SourceInfo) {
	for key, value := range settings {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			trackSources(nested, fullKey, info)
			continue
		}
		ConfigSources[fullKey] = info
	}
}

// Get returns the effective value of a dotted key, environment overrides
// included.
func Get(key string) interface{} {
	return GetViper().Get(key)
}
