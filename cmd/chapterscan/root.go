package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagemill/chapterscan/internal/config"
	"github.com/pagemill/chapterscan/internal/home"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool

	cfgManager *config.Manager
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chapterscan",
	Short: "Chapter and table-of-contents discovery for page-image ebooks",
	Long: `Chapterscan extracts the page images from an image-only ebook,
recognizes their text with Tesseract, and locates the book's chapters.

The pipeline includes:
  - Page image extraction from EPUB archives
  - Cached per-page text recognition with optional image cleanup
  - Contents-page and chapter-start classification
  - Chapter title extraction and normalization`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.chapterscan/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "chapterscan home directory (default: ~/.chapterscan)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		cfgManager, err = config.NewManager(cfgFile, h.Path())
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	}

	rootCmd.AddCommand(versionCmd)
}
