package logger

// OutputCategory is a kind of CLI output that can be switched on by
// verbosity. Log levels filter by severity; categories filter by what the
// text is about.
//
//	0 (default) - conversion results, unsupported-character warnings, errors
//	1 (-v)      - + batch progress, server startup, history writes
//	2 (-vv)     - + timing, loaded config, character breakdowns for long text
//	3 (-vvv)    - + SQL statements, raw request bodies
type OutputCategory int

const (
	OutputResults OutputCategory = iota
	OutputErrors
	OutputUnsupported

	OutputProgress
	OutputStartup
	OutputHistory

	OutputTiming
	OutputConfig
	OutputLongBreakdown

	OutputSQL
	OutputRequestBody
)

type outputInfo struct {
	name  string
	level int
}

var outputCategories = map[OutputCategory]outputInfo{
	OutputResults:       {"results", VerbosityUser},
	OutputErrors:        {"errors", VerbosityUser},
	OutputUnsupported:   {"unsupported", VerbosityUser},
	OutputProgress:      {"progress", VerbosityInfo},
	OutputStartup:       {"startup", VerbosityInfo},
	OutputHistory:       {"history", VerbosityInfo},
	OutputTiming:        {"timing", VerbosityDebug},
	OutputConfig:        {"config", VerbosityDebug},
	OutputLongBreakdown: {"long-breakdown", VerbosityDebug},
	OutputSQL:           {"sql", VerbosityTrace},
	OutputRequestBody:   {"request-body", VerbosityTrace},
}

// ShouldOutput reports whether category is shown at verbosity.
// Unknown categories need the highest verbosity.
func ShouldOutput(verbosity int, category OutputCategory) bool {
	info, ok := outputCategories[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= info.level
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if info, ok := outputCategories[category]; ok {
		return info.name
	}
	return "unknown"
}
