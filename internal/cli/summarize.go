package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-scribe/internal/app"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/archive"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/summary"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/transcription"
)

type summarizeOptions struct {
	model       string
	temperature float64
	context     string
	language    string
	output      string
	archive     bool
}

func newSummarizeCmd(root *rootOptions) *cobra.Command {
	opts := &summarizeOptions{}

	cmd := &cobra.Command{
		Use:   "summarize <transcript.json|transcript.txt|audio>",
		Short: "Generate meeting minutes from a transcript, transcribing audio first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := loadApp(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer cleanup()

			var temperature *float64
			if cmd.Flags().Changed("temperature") {
				temperature = &opts.temperature
			}
			return runSummarize(cmd.Context(), a, args[0], opts, temperature, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Summary model (e.g. gpt-4o-mini)")
	cmd.Flags().Float64VarP(&opts.temperature, "temperature", "t", 0, "Sampling temperature (0.0 to 1.0)")
	cmd.Flags().StringVarP(&opts.context, "context", "c", "", "Additional context (participants, meeting goal)")
	cmd.Flags().StringVar(&opts.language, "language", "", "Language the minutes are written in")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (.json, or .md for Markdown)")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "Also store the summary in the output archive")

	return cmd
}

func runSummarize(ctx context.Context, a *app.App, input string, opts *summarizeOptions, temperature *float64, stdout, stderr io.Writer) error {
	t, err := loadInput(ctx, a, input)
	if err != nil {
		return err
	}

	res, err := a.Summary.SummarizeTranscript(ctx, t, summary.Options{
		Model:        opts.model,
		Temperature:  temperature,
		ExtraContext: opts.context,
		Language:     opts.language,
	})
	if err != nil {
		return err
	}
	printWarnings(stderr, res.Warnings)
	if res.Degraded() {
		fmt.Fprintln(stderr, warnStyle.Render("the model reply could not be parsed; the minutes below are a preview of the transcript"))
	}

	switch {
	case opts.output == "":
		data, err := summary.MarshalSummary(res.Summary)
		if err != nil {
			return errors.ErrInternal(err)
		}
		printHeader(stdout, "Minutes:")
		stdout.Write(data)
	case strings.EqualFold(filepath.Ext(opts.output), ".md"):
		if err := writeFile(opts.output, []byte(presenter.SummaryMarkdown(res.Summary))); err != nil {
			return err
		}
		printSaved(stderr, "Minutes", opts.output)
	default:
		if err := summary.SaveSummary(res.Summary, opts.output); err != nil {
			return err
		}
		printSaved(stderr, "Minutes", opts.output)
	}

	if opts.archive {
		data, err := summary.MarshalSummary(res.Summary)
		if err != nil {
			return errors.ErrInternal(err)
		}
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		name, err := a.Archive.Store(ctx, a.Archive.ObjectName(archive.PrefixSummaries, base+".summary.json"), "application/json", data)
		if err != nil {
			return err
		}
		printSaved(stderr, "Minutes archived, object", name)
	}
	return nil
}

// loadInput reads a saved transcript, or transcribes input when it is an
// audio file
func loadInput(ctx context.Context, a *app.App, input string) (entities.Transcript, error) {
	if !transcription.IsAudioPath(input) {
		return transcription.LoadTranscript(input, a.Config.Transcribe.Language)
	}
	res, err := a.Transcription.TranscribeFile(ctx, input, transcription.Options{
		Language: a.Config.Transcribe.Language,
	})
	if err != nil {
		return entities.Transcript{}, err
	}
	return res.Transcript, nil
}
