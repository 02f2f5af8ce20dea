package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"commitgen/internal/config"
	"commitgen/internal/core"
	"commitgen/internal/git"
	"commitgen/internal/llm"
	"commitgen/internal/match"
	"commitgen/internal/tui"
	"commitgen/internal/utils"
)

const version = "1.2.0"

// generationTimeout bounds one generation call, retries included.
const generationTimeout = 60 * time.Second

var (
	excludeFlags []string
	stagedFlag   bool
	subjectFlag  string
	forceFlag    bool
	prefixFlag   string
)

var rootCmd = &cobra.Command{
	Use:     "commitgen [directory]",
	Short:   "Generate a commit message from pending changes using an LLM",
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    run,
}

func init() {
	rootCmd.Flags().StringArrayVarP(&excludeFlags, "exclude", "e", nil,
		"glob patterns to exclude (e.g. '*.log', 'target/**'); repeatable, commas split")
	rootCmd.Flags().BoolVar(&stagedFlag, "staged", false, "analyze staged changes instead of unstaged ones")
	rootCmd.Flags().StringVarP(&subjectFlag, "subject", "s", "", "focus hint forwarded into the prompt")
	rootCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "commit without confirmation")
	rootCmd.Flags().StringVarP(&prefixFlag, "prefix", "p", "", "string prepended to the generated title")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if utils.IsDebug() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to generate commit message")
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("directory does not exist: %s", dir)
	}

	matcher, err := match.Compile(excludeFlags)
	if err != nil {
		return err
	}
	if patterns := matcher.Patterns(); len(patterns) > 0 {
		log.Debug().Str("patterns", strings.Join(patterns, ", ")).Msg("Excluding patterns")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode := core.Unstaged
	if stagedFlag {
		mode = core.Staged
	}

	changes, err := git.Collect(ctx, dir, mode)
	if err != nil {
		return err
	}
	if len(changes.Files) == 0 && mode == core.Unstaged {
		log.Debug().Msg("No unstaged changes, trying the staged set")
		changes, err = git.Collect(ctx, dir, core.Staged)
		if err != nil {
			return err
		}
	}
	if len(changes.Files) == 0 {
		fmt.Println("No changes to commit. Make some changes and try again.")
		return nil
	}

	filtered, err := core.Filter(changes, matcher)
	if err != nil {
		if errors.Is(err, core.ErrNothingToAnalyze) {
			fmt.Println("No relevant changes left after applying exclusions.")
			return nil
		}
		return err
	}

	provider, err := llm.NewProvider(config.Load())
	if err != nil {
		return err
	}

	c := core.NewCore(provider)

	generate := func(ctx context.Context) (*core.CommitMessage, error) {
		gctx, cancel := context.WithTimeout(ctx, generationTimeout)
		defer cancel()

		spinner := tui.NewSpinner()
		spinner.Start("Generating commit message...")
		msg, err := c.GenerateCommit(gctx, core.GenerateOptions{Diff: filtered, Subject: subjectFlag})
		spinner.Stop()
		if err != nil {
			return nil, err
		}
		if prefixFlag != "" {
			msg.Title = prefixFlag + " " + msg.Title
		}
		return msg, nil
	}

	msg, err := generate(ctx)
	if err != nil {
		return err
	}

	if forceFlag {
		if err := git.Stage(ctx, dir); err != nil {
			return err
		}
		if err := git.Commit(ctx, dir, msg.Title, msg.Body); err != nil {
			return err
		}
		fmt.Printf("Commit applied: %s\n", msg.Title)
		return nil
	}

	return tui.Confirm(ctx, dir, msg, generate)
}
