// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// searchCommand queries the catalog and prints the results as cards or JSON.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the pack catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "Exclude packs whose games match this text",
			},
			&cli.StringFlag{
				Name:  "min",
				Usage: "Minimum price (blank or non-numeric means no bound)",
			},
			&cli.StringFlag{
				Name:  "max",
				Usage: "Maximum price (blank or non-numeric means no bound)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Search,
	}
}

// statusCommand reports backend connectivity once or on a poll loop.
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Check backend connectivity and cached pack count",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Keep polling on the configured interval",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Status,
	}
}

// refreshCommand asks the backend to rescan source messages.
func refreshCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "refresh",
		Usage: "Rescan source messages and rebuild the pack list",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"c"},
				Usage:   "How many messages to scan",
			},
			&cli.BoolFlag{
				Name:    "quick",
				Aliases: []string{"q"},
				Usage:   "Quick scan (configured quick_refresh count)",
			},
		},
		Action: r.Refresh,
	}
}

// coversCommand manages manual pack covers.
func coversCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "covers",
		Usage: "Manage manual pack covers",
		Commands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Set a manual cover for a pack",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "url"},
				},
				Action: r.CoverSet,
			},
			{
				Name:  "clear",
				Usage: "Remove a manual cover and restore the automatic one",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.CoverClear,
			},
			{
				Name:  "bulk",
				Usage: "Apply many covers from an 'ID URL' per-line file (stdin with -)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "file"},
				},
				Action: r.CoverBulk,
			},
		},
	}
}

// packsCommand holds destructive pack operations.
func packsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "packs",
		Usage: "Pack administration",
		Commands: []*cli.Command{
			{
				Name:  "delete",
				Usage: "Delete a pack from the catalog",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.PackDelete,
			},
		},
	}
}

// copyCommand copies a pack's formatted text to the system clipboard.
func copyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "copy",
		Usage: "Copy a pack's formatted text to the clipboard",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Action: r.Copy,
	}
}

// shareCommand builds the WhatsApp deep link for a pack.
func shareCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "share",
		Usage: "Print the WhatsApp link for a pack",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "open",
				Aliases: []string{"o"},
				Usage:   "Open the link in the default browser",
			},
		},
		Action: r.Share,
	}
}

// configCommand writes the example configuration file.
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write config.toml with default settings",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Destination path",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for both front ends.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive catalog (customer) or admin console",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "Front end to launch: catalog or admin",
				Value:   "catalog",
			},
		},
		Action: r.TUI,
	}
}
