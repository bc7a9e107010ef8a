package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/research-reader/internal/backend"
	"github.com/ziadkadry99/research-reader/internal/chat"
	"github.com/ziadkadry99/research-reader/internal/progress"
)

var articleCmd = &cobra.Command{
	Use:   "article [url]",
	Short: "Print the structured summary of an article",
	Long: `Fetches the AI-generated summary of the article at the given URL and prints
it section by section. Summarization can take up to a minute. With --ask,
a question about the article is answered after the summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runArticle,
}

func init() {
	articleCmd.Flags().String("ask", "", "question to ask about the article")
	rootCmd.AddCommand(articleCmd)
}

func runArticle(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	articleURL := strings.TrimSpace(args[0])
	if articleURL == "" {
		return fmt.Errorf("no URL provided")
	}
	question, _ := cmd.Flags().GetString("ask")

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

	reporter := progress.NewReporter()
	reporter.Start("Analyzing article...")
	article, err := client.ArticleSummary(ctx, articleURL)
	reporter.Finish()
	if err != nil {
		return fmt.Errorf("loading article: %w", err)
	}
	printArticle(os.Stdout, article)

	if strings.TrimSpace(question) == "" {
		return nil
	}

	reporter.Start("Thinking...")
	answer, err := client.AskArticle(ctx, backend.ChatRequest{
		Question:       strings.TrimSpace(question),
		ArticleTitle:   article.Title,
		ArticleContext: article.Context(),
	})
	reporter.Finish()
	switch {
	case err != nil:
		logger.Error("asking about article", zap.Error(err))
		answer = chat.FailureReply
	case strings.TrimSpace(answer) == "":
		answer = chat.EmptyAnswer
	}
	fmt.Fprintln(os.Stdout)
	labelColor.Fprintln(os.Stdout, "Article Assistant")
	fmt.Fprintln(os.Stdout, answer)
	return nil
}
