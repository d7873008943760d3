package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/voice-minutes/internal/processor"
	"github.com/nguyentantai21042004/voice-minutes/internal/speech"
)

func NewGenerateCmd(deps *Dependencies) *cobra.Command {
	var (
		file string
		date string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate minutes from recognized text in a file (or - for stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if file == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("read transcript: %w", err)
			}

			if date == "" {
				date = time.Now().Format(speech.DateLayout)
			} else if _, err := time.Parse(speech.DateLayout, date); err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}

			proc, err := deps.newProcessor()
			if err != nil {
				return err
			}

			res, err := proc.Process(cmd.Context(), processor.Request{Text: string(data), StartDate: date})
			if err != nil {
				return err
			}
			deps.Logger.Debug(cmd.Context(), "Generated %s", res.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "transcript file to summarize")
	cmd.Flags().StringVarP(&date, "date", "d", "", "meeting date, YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
