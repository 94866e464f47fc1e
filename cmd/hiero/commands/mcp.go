package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/hiero/am"
	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/logger"
	"github.com/teranos/hiero/mcpserver"
)

// NewMCPCmd creates the mcp command
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the Model Context Protocol over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout so assistants can
call the converter. Tools: hiero_convert, hiero_trace, hiero_describe,
hiero_validate, hiero_alphabet, hiero_batch.

Logs go to stderr; stdout carries only protocol messages.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := am.Load()
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			store, closeStore, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			log := logger.ComponentLogger("mcp")
			log.Infow("Serving MCP over stdio", "name", cfg.GetMCPName())
			return mcpserver.New(cfg.GetMCPName(), store, log).Serve()
		},
	}
}
