package display

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/hiero/errors"
)

// OutputEnvVar selects the default output format ("json" or "text") when
// no --json flag is given.
const OutputEnvVar = "HIERO_OUTPUT"

// IsJSONEnvironment reports whether HIERO_OUTPUT asks for JSON.
func IsJSONEnvironment() bool {
	return strings.EqualFold(os.Getenv(OutputEnvVar), "json")
}

// ShouldOutputJSON determines if a command should output JSON based on
// flags and the environment
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return IsJSONEnvironment()
	}

	// An explicit --json or --json=false wins
	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	if globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json"); globalFlag {
		return true
	}

	return IsJSONEnvironment()
}

// OutputJSON marshals v with MarshalJSON and writes it to w
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "failed to write JSON")
	}
	return nil
}
