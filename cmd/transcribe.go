package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tvph1996/Kuiche/internal/config"
	"github.com/tvph1996/Kuiche/internal/worker"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>...",
	Short: "Transcribe audio files to paragraph-formatted text",
	Long: `Transcribe one or more audio files into plain-text transcripts. Words are
grouped into sentences on punctuation and pauses, and sentences into
paragraphs separated by blank lines. Output is written next to each input
with a .txt extension.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranscribe,
}

var (
	transcribeLanguage string
	transcribeOutput   string
	transcribeServer   string
	transcribeModel    string
	sentencePause      float64
	perParagraph       int
)

func init() {
	defaults := config.Default()

	transcribeCmd.Flags().StringVarP(&transcribeLanguage, "language", "l", defaults.ASR.Language, "spoken language code, or auto")
	transcribeCmd.Flags().StringVarP(&transcribeOutput, "output", "o", "", "output path (single input only; default: <input>.txt)")
	transcribeCmd.Flags().StringVar(&transcribeServer, "server", "", "transcription server URL")
	transcribeCmd.Flags().StringVar(&transcribeModel, "model", defaults.ASR.Model, "recognition model size")
	transcribeCmd.Flags().Float64Var(&sentencePause, "pause", defaults.Segment.SentencePause, "pause in seconds that ends a sentence")
	transcribeCmd.Flags().IntVar(&perParagraph, "sentences-per-paragraph", defaults.Segment.SentencesPerParagraph, "sentences grouped into one paragraph")

	rootCmd.AddCommand(transcribeCmd)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Explicit flags override config-file values.
	if cmd.Flags().Changed("language") {
		cfg.ASR.Language = transcribeLanguage
	}
	if cmd.Flags().Changed("server") {
		cfg.ASR.ServerURL = transcribeServer
	}
	if cmd.Flags().Changed("model") {
		cfg.ASR.Model = transcribeModel
	}
	if cmd.Flags().Changed("pause") {
		cfg.Segment.SentencePause = sentencePause
	}
	if cmd.Flags().Changed("sentences-per-paragraph") {
		cfg.Segment.SentencesPerParagraph = perParagraph
	}

	if transcribeOutput != "" && len(args) > 1 {
		return fmt.Errorf("--output cannot be combined with multiple inputs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return worker.Transcribe(ctx, worker.Options{
		Inputs:     args,
		OutputPath: transcribeOutput,
		Config:     cfg,
	})
}
