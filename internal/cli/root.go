package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/voice-minutes/internal/config"
	"github.com/nguyentantai21042004/voice-minutes/internal/document"
	"github.com/nguyentantai21042004/voice-minutes/internal/logger"
	"github.com/nguyentantai21042004/voice-minutes/internal/notify"
	"github.com/nguyentantai21042004/voice-minutes/internal/processor"
	"github.com/nguyentantai21042004/voice-minutes/internal/recognizer"
	"github.com/nguyentantai21042004/voice-minutes/internal/speech"
	"github.com/nguyentantai21042004/voice-minutes/internal/summarizer"
	"github.com/nguyentantai21042004/voice-minutes/pkg/executor"
)

const defaultConfigPath = "config.yaml"

// Dependencies are built once the config is loaded.
type Dependencies struct {
	Config   *config.Config
	Logger   logger.Logger
	Notifier notify.Notifier
}

func NewRootCmd() *cobra.Command {
	deps := &Dependencies{}
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "minutes",
		Short:         "Capture speech and turn it into meeting minutes",
		Long:          "Listens through a speech recognizer, summarizes the recognized text into structured minutes with an LLM, and saves them as a paginated document.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			deps.Config = cfg
			deps.Logger = logger.NewWithWriter(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
			deps.Notifier = notify.NewConsole(cmd.OutOrStdout())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the YAML config file")

	rootCmd.AddCommand(NewListenCmd(deps))
	rootCmd.AddCommand(NewGenerateCmd(deps))
	rootCmd.AddCommand(NewWatchCmd(deps))

	return rootCmd
}

// loadConfig tolerates a missing default config file but not an explicit one.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !explicit {
		return config.Default()
	}
	return config.Load(path)
}

// newProcessor fails fast when no API key is configured.
func (d *Dependencies) newProcessor() (processor.Processor, error) {
	sum, err := summarizer.New(d.Config, d.Logger)
	if errors.Is(err, summarizer.ErrMissingCredential) {
		return nil, fmt.Errorf("%w: set MINUTES_ANTHROPIC_API_KEY / MINUTES_GEMINI_API_KEY or the api_key in the config", err)
	}
	if err != nil {
		return nil, err
	}

	rend, err := document.New(d.Config, d.Logger)
	if err != nil {
		return nil, err
	}

	return processor.New(d.Config, sum, rend, d.Notifier, d.Logger), nil
}

// newRecognizer returns the configured engine and a channel closed when its
// input is exhausted (nil when it never is).
func (d *Dependencies) newRecognizer(stdin io.Reader) (speech.Recognizer, <-chan struct{}) {
	if len(d.Config.Speech.Command) > 0 {
		return recognizer.NewCommand(executor.New(), d.Config.Speech.Command, d.Config.Speech.WorkDir, d.Logger), nil
	}
	lines := recognizer.NewLines(stdin)
	return lines, lines.Done()
}
