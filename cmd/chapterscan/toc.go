package main

import (
	"github.com/spf13/cobra"
)

var tocNoFallback bool

var tocCmd = &cobra.Command{
	Use:   "toc <book.epub>",
	Short: "Find chapter titles on the book's contents pages",
	Long: `Scan the book's opening pages for a printed table of contents and
collect the chapter titles listed there.

Books without a usable contents page fall back to a full scan that
locates each chapter's opening page instead. Recognized text is cached
per page, so an interrupted or repeated scan only pays for pages it has
not seen before.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(args[0])
		if err != nil {
			return err
		}
		scanner, err := newScanner(args[0], store)
		if err != nil {
			return err
		}

		result, err := scanner.TOCScan(ctx)
		if err != nil {
			return err
		}
		if len(result.Chapters) == 0 && !tocNoFallback {
			logger.Info("no contents page found, scanning the whole book")
			result, err = scanner.FullScan(ctx)
			if err != nil {
				return err
			}
		}

		return printResult(result)
	},
}

func init() {
	tocCmd.Flags().BoolVar(
		&tocNoFallback, "no-fallback", false, "do not fall back to a full scan when no contents page is found",
	)
	rootCmd.AddCommand(tocCmd)
}
