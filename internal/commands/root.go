package commands

import (
	"github.com/spf13/cobra"

	"github.com/dersalik/fibscope/internal/buildinfo"
	"github.com/dersalik/fibscope/internal/config"
	"github.com/dersalik/fibscope/internal/logger"
)

// dotEnvFile is loaded from the working directory before the config.
const dotEnvFile = ".env"

// settings is shared by all subcommands. It is filled in before any RunE.
type settings struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	s := &settings{}

	rootCmd := &cobra.Command{
		Use:     "fibscope",
		Short:   "Analyze First Iraqi Bank transaction exports",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&s.configPath, "config", config.FileName, "config file")
	flags.StringVar(&s.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&s.logFormat, "log-format", "", "log format (console, json)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAnalyzeCommand(s))
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newHistoryCommand(s))

	return rootCmd
}

// load resolves configuration (file, then .env and environment, then flags)
// and installs the logger in the command context.
func (s *settings) load(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = s.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = s.logFormat
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Out:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	log.Debug().Str("config", s.configPath).Msg("configuration loaded")

	s.cfg = cfg
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	return nil
}
