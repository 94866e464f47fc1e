package commands

import (
	"fmt"
	"io"

	"github.com/teranos/hiero/am"
	"github.com/teranos/hiero/logger"
	"github.com/teranos/hiero/sym"
	"github.com/teranos/hiero/version"
)

// printStartupBanner prints the user-friendly startup message for serve
func printStartupBanner(w io.Writer, cfg *am.Config, verbosity int) {
	green := "\033[32m"
	yellow := "\033[33m"
	blue := "\033[34m"
	bold := "\033[1m"
	reset := "\033[0m"

	versionInfo := version.Get()

	fmt.Fprintf(w, "\n%s%s   %s %s %s %s %s  hiero%s\n\n", yellow, bold,
		sym.Shelter, sym.Reed, sym.Mouth, sym.QuailChick, sym.Stroke, reset)

	fmt.Fprintf(w, "%s%s┌─ hiero server ──────────────────────────────────────┐%s\n", green, bold, reset)
	fmt.Fprintf(w, "%s│%s Version:   %s (commit %s)\n", green, reset, versionInfo.Version, versionInfo.Short())
	fmt.Fprintf(w, "%s│%s Tables:    %s\n", green, reset, versionInfo.TableVersion)
	fmt.Fprintf(w, "%s│%s Verbosity: %s\n", green, reset, logger.LevelName(verbosity))
	fmt.Fprintf(w, "%s│%s Address:   http://localhost:%d\n", green, reset, cfg.GetServerPort())
	if cfg.History.Enabled {
		fmt.Fprintf(w, "%s│%s History:   %s\n", green, reset, cfg.GetHistoryPath())
	}
	if cfg.Server.RequestsPerSecond > 0 {
		fmt.Fprintf(w, "%s│%s Limit:     %.0f req/s per client (burst %d)\n", green, reset,
			cfg.Server.RequestsPerSecond, cfg.Server.Burst)
	}
	fmt.Fprintf(w, "%s└─────────────────────────────────────────────────────┘%s\n", green, reset)

	fmt.Fprintf(w, "\n%sPOST /api/convert, GET /ws for live conversion%s\n", blue, reset)
	fmt.Fprintf(w, "%sPress Ctrl+C to stop%s\n\n", blue, reset)
}
