package cmd

import (
	"github.com/spf13/cobra"
)

// CommandContext holds the flags of one audit invocation so the run does not
// depend on package-level state.
type CommandContext struct {
	// Output control
	Verbose bool
	JSON    bool
	Format  string
	NoColor bool

	// Evaluation
	Parallel bool

	// Locations
	StateDir    string
	ConfigFile  string
	MetricsFile string

	// Logging
	LogLevel  string
	LogFormat string
}

// NewCommandContext extracts command context from cobra.Command flags.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	flags := cmd.Flags()
	cc := &CommandContext{}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"verbose", &cc.Verbose},
		{"json", &cc.JSON},
		{"no-color", &cc.NoColor},
		{"parallel", &cc.Parallel},
	}
	for _, b := range bools {
		v, err := flags.GetBool(b.name)
		if err != nil {
			return nil, err
		}
		*b.dst = v
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"format", &cc.Format},
		{"state-dir", &cc.StateDir},
		{"config", &cc.ConfigFile},
		{"metrics-file", &cc.MetricsFile},
		{"log-level", &cc.LogLevel},
		{"log-format", &cc.LogFormat},
	}
	for _, s := range strs {
		v, err := flags.GetString(s.name)
		if err != nil {
			return nil, err
		}
		*s.dst = v
	}

	return cc, nil
}
