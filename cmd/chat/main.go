package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"ai-tutor-be/internal/bootstrap"
	"ai-tutor-be/internal/config"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/pkg/serverutils"
	"ai-tutor-be/pkg/database"
	"ai-tutor-be/pkg/events"
)

var (
	docsDir   string
	sessionID string
	plain     bool
	noWatch   bool
)

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive study assistant",
	Long: `Answers questions from the course documents, offers a web search when
the documents have no answer, and handles calculations, weather, a todo
list and e-mailing the last answer.`,
	SilenceUsage: true,
	RunE:         runShell,
}

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var tokenCmd = &cobra.Command{
	Use:   "token [subject]",
	Short: "Print an admin JWT for the corpus endpoints of the REST server",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if cfg.App.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is not set")
		}
		subject := "cli"
		if len(args) == 1 {
			subject = args[0]
		}
		token, err := serverutils.SignToken(cfg.App.JWTSecret, subject, serverutils.RoleAdmin)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&docsDir, "docs", "", "documents directory (overrides DOCS_DIR)")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session", "", "resume this session id")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "print replies without markdown rendering")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reindex when documents change")

	rootCmd.AddCommand(askCmd, tokenCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// setup builds the container and the first index
func setup(ctx context.Context, watch bool) (*bootstrap.Container, logger.ILogger, error) {
	cfg := config.Load()
	if docsDir != "" {
		cfg.Corpus.DocsDir = docsDir
	}
	cfg.Corpus.Watch = cfg.Corpus.Watch && watch

	// the shell owns the terminal, logs go to the file only
	log := logger.NewFileLogger(cfg.App.LogFilePath)

	var db *gorm.DB
	if cfg.Database.Connection != "" {
		conn, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		db = conn
	}

	container, err := bootstrap.NewContainer(db, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	if _, err := container.ReindexService.Reindex(ctx, events.ReasonStartup); err != nil {
		warn("Indexation impossible : %v", err)
	}
	if err := container.ReindexService.Consume(ctx); err != nil {
		container.Close()
		return nil, nil, err
	}
	return container, log, nil
}
