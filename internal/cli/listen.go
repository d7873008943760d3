package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/voice-minutes/internal/notify"
	"github.com/nguyentantai21042004/voice-minutes/internal/processor"
	"github.com/nguyentantai21042004/voice-minutes/internal/speech"
)

func NewListenCmd(deps *Dependencies) *cobra.Command {
	var generate bool

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Capture speech until stopped or the session time limit",
		RunE: func(cmd *cobra.Command, args []string) error {
			parent := cmd.Context()
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			var proc processor.Processor
			if generate {
				var err error
				if proc, err = deps.newProcessor(); err != nil {
					return err
				}
			}

			rec, exhausted := deps.newRecognizer(cmd.InOrStdin())
			mgr := speech.New(speech.Config{
				Language:       deps.Config.Speech.Language,
				SessionTimeout: deps.Config.Speech.SessionTimeout,
			}, rec, deps.Logger)

			sess, err := mgr.Start(ctx)
			if err != nil {
				deps.Notifier.Notify(parent, notify.Error("音声認識を利用できません"))
				return err
			}
			deps.Notifier.Notify(parent, notify.Info(fmt.Sprintf("聞き取り中... 最長 %s (Ctrl+C で終了)", deps.Config.Speech.SessionTimeout)))

			select {
			case <-sess.Done():
			case <-ctx.Done():
			case <-exhausted:
			}
			mgr.Stop()

			text := mgr.Text()
			if text == "" {
				deps.Notifier.Notify(parent, notify.Info("認識されたテキストがありません"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)

			if !generate {
				return nil
			}
			// Generation runs in the background like the on-screen trigger;
			// it is not cancellable once started.
			if err := proc.Submit(parent, processor.Request{Text: text, StartDate: mgr.StartDate()}); err != nil {
				return err
			}
			deps.Notifier.Notify(parent, notify.Info("議事録を作成中..."))
			return proc.Wait()
		},
	}

	cmd.Flags().BoolVarP(&generate, "generate", "g", false, "generate the minutes document when listening ends")
	return cmd
}
