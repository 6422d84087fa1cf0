package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/csheth/calc/internal/clipboard"
	"github.com/csheth/calc/internal/evalclient"
	"github.com/csheth/calc/internal/logging"
	"github.com/csheth/calc/internal/tui"
)

const (
	logFileEnvVar  = "CALC_LOG_FILE"
	logLevelEnvVar = "CALC_LOG_LEVEL"
)

var (
	evaluatorURL string
	noAltScreen  bool
	logFile      string
	logLevel     string
)

func Execute() error {
	root := &cobra.Command{
		Use:          "calc",
		Short:        "Keypad calculator for the terminal",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}

	root.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file (env "+logFileEnvVar+")")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (env "+logLevelEnvVar+")")
	root.PersistentFlags().StringVar(&evaluatorURL, "evaluator-url", "", "remote evaluator base URL (env "+evalclient.EndpointEnvVar+")")
	root.Flags().BoolVar(&noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")

	root.AddCommand(serveCmd(), evalCmd())
	return root.Execute()
}

func runTUI(cmd *cobra.Command) error {
	// the TUI owns the terminal
	logger, closeLog, err := openLogger(nil)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := evalclient.NewFromEnv(evalclient.Config{Endpoint: evaluatorURL})
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "evaluator unavailable:", err)
		return err
	}

	opts := []tea.ProgramOption{}
	if !noAltScreen {
		opts = append(opts, tea.WithAltScreen(), tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Evaluator:     client,
			EvaluatorName: client.Name(),
			Clipboard:     clipboard.New(nil, logger),
			Logger:        logger,
			AltScreen:     !noAltScreen,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "program error:", err)
		return err
	}
	return nil
}

// openLogger builds the process logger. Without a log file it writes text
// to fallback, or discards everything when fallback is nil.
func openLogger(fallback io.Writer) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(firstNonEmpty(logLevel, os.Getenv(logLevelEnvVar)))
	if err != nil {
		return nil, nil, err
	}
	path := firstNonEmpty(logFile, os.Getenv(logFileEnvVar))
	if path == "" {
		if fallback == nil {
			return logging.Discard(), func() {}, nil
		}
		return logging.NewTextLogger(fallback, level), func() {}, nil
	}
	f, err := tea.LogToFile(path, "calc")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.NewStructuredLogger(f, level), func() { _ = f.Close() }, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
