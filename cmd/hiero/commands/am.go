package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/hiero/am"
	"github.com/teranos/hiero/display"
	"github.com/teranos/hiero/errors"
)

// NewAmCmd creates the am (configuration) command
func NewAmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "am",
		Short: "Manage hiero configuration",
		Long: `am - Manage hiero configuration ("as meant")

Configuration sources (later overrides earlier):
1. Default values
2. System config (/etc/hiero/am.toml)
3. User config (~/.hiero/am.toml)
4. Project config (./am.toml, searched upward)
5. Environment variables (HIERO_* prefix, e.g. HIERO_SERVER_PORT)

Examples:
  hiero am show                       # Show current configuration
  hiero am show --format json         # Show configuration in JSON format
  hiero am get server.port            # Get a value and where it came from
  hiero am set history.limit 50       # Write ./am.toml
  hiero am set --user server.port 9000
  hiero am init                       # Write ./am.toml with every default
  hiero am validate                   # Validate current configuration`,
	}
	cmd.AddCommand(newAmShowCmd(), newAmGetCmd(), newAmSetCmd(), newAmInitCmd(), newAmValidateCmd(), newAmWhereCmd())
	return cmd
}

func newAmShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := am.Load(); err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			settings := am.GetViper().AllSettings()
			if display.ShouldOutputJSON(cmd) {
				format = "json"
			}
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				data, err := json.MarshalIndent(settings, "", "  ")
				if err != nil {
					return errors.Wrap(err, "failed to marshal config to JSON")
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(settings)
				if err != nil {
					return errors.Wrap(err, "failed to marshal config to YAML")
				}
				fmt.Fprintf(out, "# hiero configuration\n%s", data)
			case "toml":
				data, err := toml.Marshal(settings)
				if err != nil {
					return errors.Wrap(err, "failed to marshal config to TOML")
				}
				fmt.Fprintf(out, "# hiero configuration\n%s", data)
			default:
				return errors.WithHint(
					errors.NewUnsupportedFormatError("unsupported format: %s", format),
					"use toml, json or yaml")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "Output format: toml, json, yaml")
	return cmd
}

func newAmGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value and its source",
		Long:  "Get a configuration value using dot notation (e.g. server.port, history.path)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setting, err := am.Lookup(args[0])
			if err != nil {
				return err
			}
			if display.ShouldOutputJSON(cmd) {
				return printJSON(cmd, setting)
			}
			fmt.Fprintln(cmd.OutOrStdout(), setting.Value)
			if verbosity(cmd) > 0 {
				source := string(setting.Source)
				if setting.SourcePath != "" {
					source += " (" + setting.SourcePath + ")"
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "source: %s, env: %s\n", source, am.EnvVarName(setting.Key))
			}
			return nil
		},
	}
}

func configTarget(user bool) (string, error) {
	if !user {
		return am.ProjectConfigPath(), nil
	}
	path := am.UserConfigPath()
	if path == "" {
		return "", errors.New("cannot locate home directory for user config")
	}
	return path, nil
}

func newAmSetCmd() *cobra.Command {
	var user bool
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value in am.toml",
		Long: `Set one value in the project am.toml (or ~/.hiero/am.toml with --user).
The value is parsed according to the key's type; lists are comma separated.
The previous file is kept as a .back1 backup.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configTarget(user)
			if err != nil {
				return err
			}
			if w := am.GetGlobalWatcher(); w != nil {
				w.MarkOwnWrite()
			}
			if err := am.SetValue(path, args[0], args[1]); err != nil {
				return err
			}
			am.Reset()
			fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintfln("%s = %s (%s)", args[0], args[1], path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&user, "user", false, "Write ~/.hiero/am.toml instead of the project config")
	return cmd
}

func newAmInitCmd() *cobra.Command {
	var user bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write am.toml with every default value",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configTarget(user)
			if err != nil {
				return err
			}
			if err := am.WriteDefaults(path); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintfln("Wrote %s", path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&user, "user", false, "Write ~/.hiero/am.toml instead of ./am.toml")
	return cmd
}

func newAmValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := am.Load()
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			if err := cfg.Validate(); err != nil {
				return errors.Wrap(err, "configuration validation failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
			return nil
		},
	}
}

func newAmWhereCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Show where each setting comes from",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := am.Introspect()
			if err != nil {
				return err
			}
			if display.ShouldOutputJSON(cmd) {
				return printJSON(cmd, settings)
			}
			data := pterm.TableData{{"Key", "Value", "Source", "Override"}}
			for _, s := range settings {
				source := string(s.Source)
				if s.SourcePath != "" {
					source += " " + s.SourcePath
				}
				data = append(data, []string{s.Key, fmt.Sprint(s.Value), source, am.EnvVarName(s.Key)})
			}
			return renderTable(cmd.OutOrStdout(), data)
		},
	}
}
