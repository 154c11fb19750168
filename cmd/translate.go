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

var translateCmd = &cobra.Command{
	Use:   "translate <srt-file>...",
	Short: "Translate SRT subtitle files",
	Long: `Translate one or more SRT files through free web translation engines.
Entries are sent in numbered batches; a batch that fails with every engine
is retried entry by entry, and entries that still fail keep their original
text. Output is written next to each input as <input>_<lang>.srt.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranslate,
}

var (
	targetLang      string
	translateOutput string
	batchSize       int
	engineNames     []string
	fallbackEngine  string
)

func init() {
	defaults := config.Default()

	translateCmd.Flags().StringVar(&targetLang, "to", "vi", "target language code")
	translateCmd.Flags().StringVarP(&translateOutput, "output", "o", "", "output path (single input only)")
	translateCmd.Flags().IntVar(&batchSize, "batch-size", defaults.Translate.BatchSize, "entries per translation call")
	translateCmd.Flags().StringSliceVar(&engineNames, "engines", defaults.Translate.Engines, "translation engines, in fallback order")
	translateCmd.Flags().StringVar(&fallbackEngine, "fallback-engine", defaults.Translate.FallbackEngine, "engine for per-entry fallback")

	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("batch-size") {
		cfg.Translate.BatchSize = batchSize
	}
	if cmd.Flags().Changed("engines") {
		cfg.Translate.Engines = engineNames
	}
	if cmd.Flags().Changed("fallback-engine") {
		cfg.Translate.FallbackEngine = fallbackEngine
	}

	if translateOutput != "" && len(args) > 1 {
		return fmt.Errorf("--output cannot be combined with multiple inputs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return worker.Translate(ctx, worker.Options{
		Inputs:     args,
		OutputPath: translateOutput,
		TargetLang: targetLang,
		Config:     cfg,
	})
}
