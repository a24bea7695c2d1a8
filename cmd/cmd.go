package main

import (
	"github.com/urfave/cli/v3"
)

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and the report database",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a starter config.toml in the current directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Path for the new configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Create the report database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage YouTube account authorization",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authorize via browser and cache the granted token",
				Action: r.AuthLogin,
			},
			{
				Name:  "status",
				Usage: "Show whether a cached token exists",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
				},
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Delete the cached token",
				Action: r.AuthLogout,
			},
		},
	}
}

func analyzeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "List your videos and aggregate tag frequencies",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
			&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output", Value: true},
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Show only the top N tags (0 for all)"},
			&cli.BoolFlag{Name: "save", Usage: "Save the report to the database"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write the report to a file"},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "File format for --output (json, csv, markdown, text)",
				Value:   "json",
			},
		},
		Action: r.Analyze,
	}
}

func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playlist",
		Usage: "Build playlists from tagged videos",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a playlist from every video carrying a tag",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tag", Aliases: []string{"t"}, Usage: "Tag to collect videos by (exact match)", Required: true},
					&cli.StringFlag{Name: "title", Usage: "Playlist title (defaults to a title derived from the tag)"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Playlist description"},
					&cli.StringFlag{
						Name:  "visibility",
						Usage: "Playlist privacy status (private, public, unlisted)",
						Value: "private",
					},
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output", Value: true},
				},
				Action: r.PlaylistCreate,
			},
		},
	}
}

func reportsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "reports",
		Usage: "Browse saved analysis reports",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved reports",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
				},
				Action: r.ReportsList,
			},
			{
				Name:      "show",
				Usage:     "Show a saved report by number or ID",
				ArgsUsage: "<number|id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Show only the top N tags (0 for all)"},
				},
				Action: r.ReportsShow,
			},
			{
				Name:      "delete",
				Usage:     "Delete a saved report by number or ID",
				ArgsUsage: "<number|id>",
				Action:    r.ReportsDelete,
			},
		},
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Interactive terminal UI: browse tags and build playlists",
		Action: r.TUI,
	}
}
