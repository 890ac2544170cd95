// Package cli implements the scribe command line tool.
package cli

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/app"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
	"github.com/johnquangdev/meeting-scribe/pkg/logger"
)

// Exit codes
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfiguration = 2
)

type rootOptions struct {
	verbose bool
}

// NewRootCmd creates the scribe root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "scribe",
		Short: "Transcribe meeting recordings and turn them into minutes",
		Long: `Transcribe meeting recordings and turn them into minutes.

Model and response format compatibility:
  gpt-4o-transcribe, gpt-4o-mini-transcribe: json or text
  whisper-1: json, text, verbose_json, srt, vtt`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newTranscribeCmd(opts))
	rootCmd.AddCommand(newSummarizeCmd(opts))
	rootCmd.AddCommand(newFollowUpCmd(opts))
	rootCmd.AddCommand(newMigrateCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadApp reads the configuration and builds the services. The returned
// cleanup must be called once the command is done.
func loadApp(ctx context.Context, opts *rootOptions) (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, errors.ErrConfiguration(err.Error()).
			WithHint("check the environment variables or the .env file")
	}

	log := logger.NewCLI(opts.verbose)
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Sync()
		var appErr errors.AppError
		if stdErrors.As(err, &appErr) {
			return nil, nil, appErr
		}
		return nil, nil, errors.ErrConfiguration(err.Error())
	}

	cleanup := func() {
		if err := a.Close(); err != nil {
			log.Warn("failed to close backends", zap.Error(err))
		}
		log.Sync()
	}
	return a, cleanup, nil
}

// ExitCode maps a command error to the process exit status: 2 for
// configuration problems such as a missing API key, 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) && appErr.Code == errors.ErrorCode_CONFIGURATION {
		return ExitConfiguration
	}
	return ExitFailure
}

// PrintError writes err and its hint, if any
func PrintError(w io.Writer, err error) {
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		fmt.Fprintf(w, "%s %v\n", errorStyle.Render("Error:"), err)
		return
	}

	fmt.Fprintf(w, "%s %s\n", errorStyle.Render("Error:"), appErr.Message)
	if appErr.Raw != nil {
		fmt.Fprintf(w, "  %s %v\n", labelStyle.Render("cause:"), appErr.Raw)
	}
	if hint := appErr.Hint(); hint != "" {
		fmt.Fprintf(w, "  %s %s\n", hintStyle.Render("hint:"), hint)
	}
}
