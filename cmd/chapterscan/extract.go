package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <book.epub>",
	Short: "Extract a book's page images into the chapterscan home",
	Long: `Extract the page images from an image-only EPUB into
~/.chapterscan/books/<book>/images, named page_0001.png and so on by
their embedded page markers. Extraction is skipped when the book's
images are already present.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%d pages in %s\n", store.Len(), store.Dir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
