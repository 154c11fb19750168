package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "kuiche",
	Short: "Turn speech in audio and video files into transcripts and subtitles",
	Long: `Kuiche transcribes audio files into paragraph-formatted text, generates
word-synchronized SRT subtitles from videos, and translates existing SRT
files through free web translation engines with batch fallback.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a TOML config file")
}
