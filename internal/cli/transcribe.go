package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-scribe/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-scribe/internal/app"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/archive"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/transcription"
)

// previewRunes caps the transcript printed when no output file is given
const previewRunes = 4000

type transcribeOptions struct {
	model    string
	language string
	format   string
	prompt   string
	output   string
	saveJSON bool
	archive  bool
}

func newTranscribeCmd(root *rootOptions) *cobra.Command {
	opts := &transcribeOptions{}

	cmd := &cobra.Command{
		Use:   "transcribe <audio>",
		Short: "Transcribe an audio file (mp3, wav, m4a, ogg, webm)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := loadApp(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer cleanup()
			return runTranscribe(cmd.Context(), a, args[0], opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Transcription model (e.g. gpt-4o-transcribe, whisper-1)")
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "ISO 639-1 language code; defaults to TRANSCRIBE_LANGUAGE")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "API response format: text, json, verbose_json, srt, vtt")
	cmd.Flags().StringVar(&opts.prompt, "prompt", "", "Context hint (names, technical terms)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "File to save the transcript to")
	cmd.Flags().BoolVar(&opts.saveJSON, "save-json", false, "Save the transcript as JSON instead of plain text")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "Also store the transcript in the output archive")

	return cmd
}

func runTranscribe(ctx context.Context, a *app.App, audio string, opts *transcribeOptions, stdout, stderr io.Writer) error {
	res, err := a.Transcription.TranscribeFile(ctx, audio, transcription.Options{
		Model:    opts.model,
		Language: opts.language,
		Format:   opts.format,
		Prompt:   opts.prompt,
	})
	if err != nil {
		return err
	}
	printWarnings(stderr, res.Warnings)

	if opts.output != "" {
		format := transcription.OutputText
		if opts.saveJSON {
			format = transcription.OutputJSON
		}
		if err := transcription.SaveTranscript(res.Transcript, opts.output, format); err != nil {
			return err
		}
		printSaved(stderr, "Transcript", opts.output)
	} else {
		printHeader(stdout, "Transcript:")
		fmt.Fprintln(stdout, preview(presenter.TranscriptText(res.Transcript), previewRunes))
	}

	if opts.archive {
		return archiveTranscript(ctx, a, audio, res.Transcript, stderr)
	}
	return nil
}

func archiveTranscript(ctx context.Context, a *app.App, audio string, t entities.Transcript, stderr io.Writer) error {
	data, err := transcription.MarshalTranscript(t)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(audio), filepath.Ext(audio))
	name, err := a.Archive.Store(ctx, a.Archive.ObjectName(archive.PrefixTranscripts, base+".json"), "application/json", data)
	if err != nil {
		return err
	}
	printSaved(stderr, "Transcript archived, object", name)
	return nil
}

func preview(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "..."
}
