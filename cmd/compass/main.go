package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Sahilkukreja30/campus-compass/cmd/compass/chat"
	"github.com/Sahilkukreja30/campus-compass/cmd/compass/ui"
	"github.com/Sahilkukreja30/campus-compass/internal/config"
	"github.com/Sahilkukreja30/campus-compass/internal/conversation"
	"github.com/Sahilkukreja30/campus-compass/internal/qa"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool

	logger *zap.Logger
)

// rootCmd launches the interactive chat when run without arguments.
var rootCmd = &cobra.Command{
	Use:   "compass",
	Short: "Campus Compass - terminal chat for your campus assistant",
	Long: `Campus Compass is a chat client for a campus question-answering service.

Run without arguments to start the interactive chat interface, or use
"compass ask" for a single scripted question.

Configuration comes from COMPASS_* environment variables (a local .env file
is honored): COMPASS_BASE_URL, COMPASS_COLLEGE_ID, COMPASS_TIMEOUT,
COMPASS_DARK_MODE.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive UI owns the terminal; no logger there.
		if cmd.Name() == "compass" {
			return nil
		}

		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractiveChat()
	},
}

// askCmd runs a single turn without the TUI.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(askCmd)
}

func newLoop(cfg config.Config, log *zap.Logger) *conversation.Loop {
	opts := []qa.Option{qa.WithTimeout(cfg.RequestTimeout)}
	if log != nil {
		opts = append(opts, qa.WithLogger(log))
	}
	client := qa.NewClient(cfg.BaseURL, cfg.CollegeID, opts...)
	return conversation.NewLoop(conversation.New(), client)
}

func runInteractiveChat() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	styles := ui.DefaultStyles()
	if cfg.DarkMode {
		styles = ui.NewStyles(ui.DarkTheme())
	}

	m := chat.New(newLoop(cfg, nil), styles)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat interface failed: %w", err)
	}
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	loop := newLoop(cfg, logger)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	if !loop.Send(ctx, question) {
		return fmt.Errorf("nothing to ask")
	}

	conv := loop.Conversation()
	if errText := conv.Error(); errText != "" {
		return fmt.Errorf("%s", errText)
	}

	msgs := conv.Messages()
	fmt.Println(strings.TrimSpace(msgs[len(msgs)-1].Text))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
