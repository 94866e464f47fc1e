// Package batchfile reads batch conversion inputs from files.
//
// The format follows the file extension:
//
//	.txt          one text per line, blank lines skipped
//	.json         array of values
//	.yaml, .yml   sequence of values
//	.toml         texts = ["...", ...]
//
// JSON and YAML values are returned as decoded so that non-text elements
// reach translit.BatchConvert and fail there with ErrInvalidInputKind.
package batchfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/hiero/errors"
)

// Manifest is the TOML batch file layout.
type Manifest struct {
	Texts []string `toml:"texts"`
}

// Load reads the batch values stored at path.
func Load(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "batch file %s", path)
		}
		return nil, errors.Wrapf(err, "failed to read batch file %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	values, err := Parse(ext, data)
	if err != nil {
		return nil, errors.Wrapf(err, "batch file %s", path)
	}
	return values, nil
}

// Parse decodes data in the format named by ext (".json", ".toml", ...).
func Parse(ext string, data []byte) ([]any, error) {
	switch ext {
	case ".txt", "":
		return parseLines(data)
	case ".json":
		var values []any
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, errors.Wrap(err, "invalid JSON batch, expected an array")
		}
		return values, nil
	case ".yaml", ".yml":
		var values []any
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, errors.Wrap(err, "invalid YAML batch, expected a sequence")
		}
		return values, nil
	case ".toml":
		var m Manifest
		md, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, errors.Wrap(err, "invalid TOML batch")
		}
		if !md.IsDefined("texts") {
			return nil, errors.WithHint(
				errors.NewInvalidRequestError("TOML batch has no texts key"),
				`add texts = ["hello", "egypt"]`,
			)
		}
		values := make([]any, len(m.Texts))
		for i, t := range m.Texts {
			values[i] = t
		}
		return values, nil
	default:
		return nil, errors.WithHint(
			errors.NewUnsupportedFormatError("unknown batch file extension %q", ext),
			"use .txt, .json, .yaml, .yml or .toml",
		)
	}
}

func parseLines(data []byte) ([]any, error) {
	var values []any
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		values = append(values, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read lines")
	}
	return values, nil
}
