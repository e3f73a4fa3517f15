package main

import (
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan <book.epub>",
	Short: "Scan the whole book for chapter-start pages",
	Long: `Recognize every page of the book and record each page that opens a
chapter, anchored to its page number. This is slower than the toc scan
but works for books whose contents pages are missing or unreadable.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(args[0])
		if err != nil {
			return err
		}
		scanner, err := newScanner(args[0], store)
		if err != nil {
			return err
		}

		result, err := scanner.FullScan(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(result)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
