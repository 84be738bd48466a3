package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/qflow/internal/branding"
	"github.com/agentx-labs/qflow/internal/config"
	"github.com/agentx-labs/qflow/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	logLevelFlag string
	settings     config.Settings
	logger       = logging.NewNop()
)

// ErrCanceled is returned when the user cancels a questionnaire.
var ErrCanceled = errors.New("canceled")

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error); overrides the log_level setting")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` walks conditional questionnaires: trees of questions whose branches
open or close depending on earlier answers, with back navigation and
automatic answers for single-choice questions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		s, err := config.Current()
		if err != nil {
			return err
		}
		settings = s

		levelName := settings.LogLevel
		if logLevelFlag != "" {
			levelName = logLevelFlag
		}
		level, err := logging.ParseLevel(levelName)
		if err != nil {
			return err
		}
		logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrCanceled):
		return 130
	default:
		return 1
	}
}
