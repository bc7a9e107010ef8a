package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List topic categories, or the documents of one category",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().Int("id", 0, "list the documents of this category instead")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	id, _ := cmd.Flags().GetInt("id")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()
	client := newBackend(cfg, logger)

	if id > 0 {
		docs, err := client.DocumentsByCategory(ctx, id)
		if err != nil {
			return fmt.Errorf("listing documents: %w", err)
		}
		headingColor.Fprintf(os.Stdout, "%s\n\n", client.CategoryName(ctx, id))
		printDocuments(os.Stdout, docs)
		return nil
	}

	cats, err := client.Categories(ctx)
	if err != nil {
		return fmt.Errorf("listing categories: %w", err)
	}
	printCategories(os.Stdout, cats)
	return nil
}
