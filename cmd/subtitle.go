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

var subtitleCmd = &cobra.Command{
	Use:   "subtitle <video-file>...",
	Short: "Generate SRT subtitles from video files",
	Long: `Generate word-synchronized SRT subtitles for one or more video files. The
audio track is extracted to a scratch mono 16kHz waveform, transcribed with
word timestamps, and segmented into display-length-bounded cues. Output is
written next to each input with a .srt extension.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSubtitle,
}

var (
	subtitleLanguage string
	subtitleOutput   string
	subtitleServer   string
	subtitleModel    string
	cuePause         float64
	maxCueChars      int
)

func init() {
	defaults := config.Default()

	subtitleCmd.Flags().StringVarP(&subtitleLanguage, "language", "l", defaults.ASR.Language, "spoken language code, or auto")
	subtitleCmd.Flags().StringVarP(&subtitleOutput, "output", "o", "", "output path (single input only; default: <input>.srt)")
	subtitleCmd.Flags().StringVar(&subtitleServer, "server", "", "transcription server URL")
	subtitleCmd.Flags().StringVar(&subtitleModel, "model", defaults.ASR.Model, "recognition model size")
	subtitleCmd.Flags().Float64Var(&cuePause, "pause", defaults.Segment.CuePause, "pause in seconds that ends a cue")
	subtitleCmd.Flags().IntVar(&maxCueChars, "max-chars", defaults.Segment.MaxCueChars, "maximum characters per cue")

	rootCmd.AddCommand(subtitleCmd)
}

func runSubtitle(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("language") {
		cfg.ASR.Language = subtitleLanguage
	}
	if cmd.Flags().Changed("server") {
		cfg.ASR.ServerURL = subtitleServer
	}
	if cmd.Flags().Changed("model") {
		cfg.ASR.Model = subtitleModel
	}
	if cmd.Flags().Changed("pause") {
		cfg.Segment.CuePause = cuePause
	}
	if cmd.Flags().Changed("max-chars") {
		cfg.Segment.MaxCueChars = maxCueChars
	}

	if subtitleOutput != "" && len(args) > 1 {
		return fmt.Errorf("--output cannot be combined with multiple inputs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return worker.Subtitle(ctx, worker.Options{
		Inputs:     args,
		OutputPath: subtitleOutput,
		Config:     cfg,
	})
}
