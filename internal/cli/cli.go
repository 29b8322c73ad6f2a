// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/openfxt/chatfxt-tui/internal/config"
	"github.com/openfxt/chatfxt-tui/internal/remote"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Project links shown by help and version.
const (
	HomeURL    = "https://openfxt.vercel.app"
	APIDocsURL = "https://docs.google.com/document/d/1A0ANoUM_keDWTeRyVES9GM8aMbNq5GVncUklsRIBNic/edit?usp=sharing"
	GitHubURL  = "https://github.com/Protocol404N?tab=repositories"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name as typed.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdAsk:
		return "ask"
	case CmdChat:
		return "chat"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string
	Endpoint   string
	Timeout    string
	NoPing     bool
	LogLevel   string

	// Command-specific
	Query      string // ask: the question
	Subcommand string // config: show, init or path
	Force      bool   // config init: overwrite

	// Raw args as given
	Raw []string
}

// Env carries what command handlers need from main.
type Env struct {
	Config *config.Config
	Sender remote.Sender
	Logger *slog.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Markdown renders replies with glamour; false prints raw text.
	Markdown bool
	// Width is the markdown wrap width.
	Width int
}

const usageText = `chatfxt - terminal client for the ChatFXT AI chatbot service

Usage:
  chatfxt                      Start the full-screen chat (default)
  chatfxt tui                  Same as above
  chatfxt ask <question...>    Ask one question and print the reply
  chatfxt chat                 Line-mode chat for simple terminals
  chatfxt config [show|init|path]
                               Show, create or locate the config file
  chatfxt version              Show version information
  chatfxt help                 Show this help

Global flags:
  -c, --config PATH      Config file (default ~/.chatfxt/config.toml)
  --endpoint URL         Chat endpoint URL
  --timeout DURATION     Request timeout, e.g. 30s or 45 (0 disables)
  --no-ping              Skip the startup analytics request
  --log-level LEVEL      debug, info, warn or error

Config flags:
  --force                Overwrite an existing file with "config init"

Keys (full-screen chat):
  enter                  Send
  alt+enter, ctrl+j      Newline
  pgup, pgdn             Scroll
  esc, ctrl+c            Quit

Environment:
  CHATFXT_ENDPOINT, CHATFXT_PING_URL, CHATFXT_TIMEOUT,
  CHATFXT_NO_PING, CHATFXT_LOG_LEVEL, NO_COLOR

Examples:
  chatfxt ask "What is OpenFXT?"
  echo "Summarise this" | chatfxt ask
  chatfxt --timeout 60s chat
`

// boolFlagNames never consume the following argument.
var boolFlagNames = []string{"no-ping", "force", "help", "h", "version", "v"}

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// PrintVersion writes version and build information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "chatfxt %s\n", Version)
	fmt.Fprintf(w, "  commit:  %s\n", GitCommit)
	fmt.Fprintf(w, "  built:   %s\n", BuildDate)
	fmt.Fprintf(w, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "  home:    %s\n", HomeURL)
	fmt.Fprintf(w, "  api:     %s\n", APIDocsURL)
	fmt.Fprintf(w, "  github:  %s\n", GitHubURL)
}

// Parse parses argv (without the program name).
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlagNames...)

	args := Args{
		ConfigPath: p.Flag("config", "c"),
		Endpoint:   p.Flag("endpoint"),
		Timeout:    p.Flag("timeout"),
		NoPing:     p.BoolFlag("no-ping"),
		LogLevel:   p.Flag("log-level"),
		Force:      p.BoolFlag("force"),
		Raw:        argv,
	}

	if p.BoolFlag("help", "h") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version", "v") {
		return CmdVersion, args, nil
	}

	switch p.Subcommand() {
	case "", "tui":
		return CmdTUI, args, nil

	case "ask", "a":
		args.Query = JoinPositionalArgs(p, 1)
		return CmdAsk, args, nil

	case "chat":
		return CmdChat, args, nil

	case "config":
		args.Subcommand = p.Positional(1)
		if args.Subcommand == "" {
			args.Subcommand = "show"
		}
		switch args.Subcommand {
		case "show", "init", "path":
		default:
			return CmdConfig, args, NewValidationErrorWithExample(
				"config subcommand", args.Subcommand,
				"must be one of: show, init, path", "chatfxt config init")
		}
		return CmdConfig, args, nil

	case "version":
		return CmdVersion, args, nil

	case "help":
		return CmdHelp, args, nil

	default:
		return CmdHelp, args, NewValidationErrorWithExample(
			"command", p.Subcommand(), "unknown command", "chatfxt help")
	}
}

// LoadConfig loads the config file named by --config, or the default
// locations, then applies flag overrides and validates.
func LoadConfig(args Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if err := ApplyFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyFlags overrides cfg with command-line flags and revalidates.
func ApplyFlags(cfg *config.Config, args Args) error {
	if args.Endpoint != "" {
		cfg.Remote.ChatURL = args.Endpoint
	}
	if args.Timeout != "" {
		d, err := config.ParseTimeout(args.Timeout)
		if err != nil {
			return NewValidationErrorWithExample("--timeout", args.Timeout,
				"must be a duration or a number of seconds", "--timeout 45s")
		}
		cfg.Remote.Timeout = config.Duration{Duration: d}
	}
	if args.NoPing {
		cfg.Remote.PingEnabled = false
	}
	if args.LogLevel != "" {
		cfg.Log.Level = args.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ConfigPath returns the file "config" subcommands operate on.
func ConfigPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	return config.PathTOML()
}
