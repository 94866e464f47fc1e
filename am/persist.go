package am

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/logger"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	back1 := configPath + ".back1"
	back2 := configPath + ".back2"
	back3 := configPath + ".back3"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old config backup", logger.FieldFile, back3, logger.FieldError, err)
	}
	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

// DefaultSettings returns the built-in defaults as nested tables.
func DefaultSettings() map[string]interface{} {
	v := viper.New()
	SetDefaults(v)
	return v.AllSettings()
}

// WriteDefaults writes a config file holding every default. It refuses to
// overwrite an existing file.
func WriteDefaults(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"edit it directly or use `hiero am set`")
	}
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return errors.Wrap(err, "failed to marshal default config")
	}
	return writeConfig(path, data)
}

// SetValue sets one dotted key in the TOML file at path, creating the file
// if needed. raw is parsed according to the type of the key's default.
func SetValue(path, key, raw string) error {
	value, err := coerce(key, raw)
	if err != nil {
		return err
	}

	config := map[string]interface{}{}
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &config); err != nil {
			return errors.Wrapf(err, "failed to parse %s", path)
		}
	}

	parts := strings.Split(key, ".")
	table := config
	for _, part := range parts[:len(parts)-1] {
		next, ok := table[part].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			table[part] = next
		}
		table = next
	}
	table[parts[len(parts)-1]] = value

	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}
	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	return writeConfig(path, data)
}

func writeConfig(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	// Mark this as our own write to prevent reload loops
	if w := GetGlobalWatcher(); w != nil {
		w.MarkOwnWrite()
	}

	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// coerce converts raw to the type of key's default value.
func coerce(key, raw string) (interface{}, error) {
	v := viper.New()
	SetDefaults(v)
	if !v.IsSet(key) {
		return nil, errors.WithHint(
			errors.Newf("unknown config key %q", key),
			"run `hiero am show` to list keys")
	}

	switch v.Get(key).(type) {
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "%s expects true or false", key)
		}
		return b, nil
	case int, int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s expects an integer", key)
		}
		return n, nil
	case float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s expects a number", key)
		}
		return f, nil
	case []string:
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	case map[string]interface{}:
		return nil, errors.Newf("%s is a section, not a setting", key)
	default:
		return raw, nil
	}
}
