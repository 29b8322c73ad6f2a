// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/openfxt/chatfxt-tui/internal/config"
)

// HandleConfig runs "config show", "config init" and "config path".
func HandleConfig(env *Env, args Args) error {
	path, err := ConfigPath(args)
	if err != nil {
		return NewCommandError("config", args.Subcommand, "could not resolve config path", err)
	}

	switch args.Subcommand {
	case "path":
		fmt.Fprintln(env.Stdout, path)
		return nil

	case "init":
		if _, statErr := os.Stat(path); statErr == nil && !args.Force {
			return NewCommandError("config", "init", "file exists (use --force to overwrite)",
				fs.ErrExist)
		} else if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
			return NewCommandError("config", "init", "could not check file", statErr)
		}
		if err := config.Save(config.Default(), path); err != nil {
			return NewCommandError("config", "init", "could not write file", err)
		}
		fmt.Fprintf(env.Stdout, "%s wrote %s\n", RenderConditional(SuccessStyle, "[OK]"), path)
		return nil

	default:
		fmt.Fprint(env.Stdout, env.Config.String())
		return nil
	}
}
