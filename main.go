// chatfxt - A terminal client for the ChatFXT AI chatbot service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openfxt/chatfxt-tui/internal/cli"
	"github.com/openfxt/chatfxt-tui/internal/config"
	"github.com/openfxt/chatfxt-tui/internal/logging"
	"github.com/openfxt/chatfxt-tui/internal/model"
	"github.com/openfxt/chatfxt-tui/internal/remote"
	"github.com/openfxt/chatfxt-tui/internal/session"
	"github.com/openfxt/chatfxt-tui/internal/ui/chat"
	"github.com/openfxt/chatfxt-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd, args, err := cli.Parse(argv)
	if err != nil {
		cli.DisplayError(stderr, err)
		fmt.Fprintln(stderr, "Run 'chatfxt help' for usage.")
		return cli.GetExitCode(err)
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(stdout)
		return cli.ExitSuccess
	case cli.CmdVersion:
		cli.PrintVersion(stdout)
		return cli.ExitSuccess
	}

	cfg, err := cli.LoadConfig(args)
	if err != nil {
		cli.DisplayError(stderr, err)
		return cli.GetExitCode(err)
	}

	if cmd == cli.CmdConfig {
		env := &cli.Env{Config: cfg, Stdout: stdout, Stderr: stderr}
		if err := cli.HandleConfig(env, args); err != nil {
			cli.DisplayError(stderr, err)
			return cli.GetExitCode(err)
		}
		return cli.ExitSuccess
	}

	logger, logErr := logging.Init(cfg.Log)
	if logErr != nil {
		fmt.Fprintf(stderr, "warning: logging disabled: %v\n", logErr)
	}
	logger.Info("starting", "command", cmd.String(), "version", Version, "endpoint", cfg.Remote.ChatURL)

	client := newClient(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case cli.CmdAsk, cli.CmdChat:
		env := &cli.Env{
			Config:   cfg,
			Sender:   client,
			Logger:   logger,
			Stdout:   stdout,
			Stderr:   stderr,
			Markdown: cli.IsStdoutTTY() && cli.ColorsEnabled(),
			Width:    cli.WrapWidth(),
		}
		if !cli.IsTTY() {
			env.Stdin = stdin
		}

		if cmd == cli.CmdAsk {
			err = cli.HandleAsk(ctx, env, args)
		} else {
			err = cli.HandleChat(ctx, env)
		}

	default:
		err = runTUI(ctx, cfg, client, logger)
	}

	if err != nil {
		logger.Error("command failed", "command", cmd.String(), "error", err)
		cli.DisplayError(stderr, err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

// newClient builds the remote client from config.
func newClient(cfg *config.Config, logger *slog.Logger) *remote.Client {
	pingURL := cfg.Remote.PingURL
	if !cfg.Remote.PingEnabled {
		pingURL = ""
	}

	return remote.NewClientWithConfig(&remote.ClientConfig{
		ChatURL:   cfg.Remote.ChatURL,
		PingURL:   pingURL,
		Timeout:   cfg.Remote.Timeout.Duration,
		UserAgent: "chatfxt/" + Version,
		Logger:    logger,
	})
}

// runTUI starts the full-screen chat.
func runTUI(ctx context.Context, cfg *config.Config, client *remote.Client, logger *slog.Logger) error {
	theme := styles.ThemeFor(cfg.UI.Theme)
	theme.Apply()

	opts := chat.Options{
		Session: session.New(session.Options{
			Greeting: cfg.UI.Greeting,
			Logger:   logger,
		}),
		Sender:        client,
		Theme:         theme,
		MarkdownStyle: markdownStyle(cfg.UI.Theme, theme),
		MaxInput:      cfg.UI.MaxInput,
		Logger:        logger,
		Links: chat.Links{
			Home:    cli.HomeURL,
			APIDocs: cli.APIDocsURL,
			GitHub:  cli.GitHubURL,
		},
		OnPair: func(p model.HistoryPair) {
			logger.Debug("history pair", "prompt_len", len(p.Prompt), "reply_len", len(p.Reply))
		},
	}
	if cfg.Remote.PingEnabled {
		opts.Pinger = client
	}

	p := tea.NewProgram(
		chat.New(opts),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse wheel scrolling
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running chatfxt: %w", err)
	}
	return nil
}

// markdownStyle maps the configured theme onto a glamour style name.
func markdownStyle(name string, theme *styles.Theme) string {
	if name == "" || name == "auto" {
		return theme.MarkdownStyle()
	}
	return name
}
