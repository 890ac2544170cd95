package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/app"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/followup"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/summary"
)

type followUpOptions struct {
	date    string
	sender  string
	company string
	context string
	output  string
	asJSON  bool
}

func newFollowUpCmd(root *rootOptions) *cobra.Command {
	opts := &followUpOptions{}

	cmd := &cobra.Command{
		Use:   "followup <summary.json>",
		Short: "Draft a follow-up e-mail from saved minutes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := loadApp(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer cleanup()
			return runFollowUp(cmd.Context(), a, args[0], opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "Meeting date as it should appear in the e-mail")
	cmd.Flags().StringVar(&opts.sender, "sender", "", "Name used to sign the e-mail")
	cmd.Flags().StringVar(&opts.company, "company", "", "Company name")
	cmd.Flags().StringVarP(&opts.context, "context", "c", "", "Additional context for the e-mail")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "File to save the e-mail to")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Write the e-mail as JSON instead of plain text")

	return cmd
}

func runFollowUp(ctx context.Context, a *app.App, input string, opts *followUpOptions, stdout, stderr io.Writer) error {
	sum, err := summary.LoadSummary(input)
	if err != nil {
		return err
	}

	email, err := a.FollowUp.Generate(ctx, sum, followup.Meta{
		MeetingDate: opts.date,
		SenderName:  opts.sender,
		CompanyName: opts.company,
		Context:     opts.context,
	})
	if err != nil {
		return err
	}

	data := []byte(followup.Text(email))
	if opts.asJSON {
		if data, err = json.MarshalIndent(email, "", "  "); err != nil {
			return errors.ErrInternal(err)
		}
		data = append(data, '\n')
	}

	if opts.output != "" {
		if err := writeFile(opts.output, data); err != nil {
			return err
		}
		printSaved(stderr, "Follow-up e-mail", opts.output)
		return nil
	}

	printHeader(stdout, "Follow-up e-mail:")
	_, err = stdout.Write(data)
	return err
}

// writeFile writes data to path, creating parent directories
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.ErrStorageFailed("create output directory", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.ErrStorageFailed(fmt.Sprintf("write %s", path), err)
	}
	return nil
}
