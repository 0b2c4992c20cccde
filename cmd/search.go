package cmd

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raesene/slackdump-searcher/pkg/archive"
	"github.com/raesene/slackdump-searcher/pkg/config"
	"github.com/raesene/slackdump-searcher/pkg/permalink"
	"github.com/raesene/slackdump-searcher/pkg/report"
	"github.com/raesene/slackdump-searcher/pkg/searcher"
)

func runSearch(cmd *cobra.Command, args []string) error {
	input, dir, pattern := args[0], args[1], args[2]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	setupLogging(cfg.LogLevel)

	links := permalink.New(cfg.BaseURL)
	s, err := searcher.New(pattern, cfg.Zgrep, links)
	if err != nil {
		return err
	}

	slog.Info("searching archives", "input", input, "pattern", pattern)
	matches, err := s.Run(input)
	if err != nil {
		return err
	}
	slog.Info("scan complete", "matches", len(matches))

	users, err := archive.UserLookup(filepath.Join(dir, archive.UsersFile))
	if err != nil {
		return err
	}
	channels, err := archive.ChannelLookup(dir, users)
	if err != nil {
		return err
	}
	slog.Debug("identities resolved", "users", len(users), "channels", len(channels))

	lookups := report.Lookups{Users: users, Channels: channels}
	fragment, err := report.Render(matches, lookups, links, flagLimit)
	if err != nil {
		return err
	}
	if err := report.WriteFile(cfg.Output, fragment); err != nil {
		return err
	}
	slog.Info("report written", "path", cfg.Output)

	if cfg.OpenBrowser {
		if err := report.Open(cfg.Output); err != nil {
			slog.Warn("failed to open report in browser", "error", err)
		}
	}
	return nil
}

// applyFlags lets explicitly set flags override the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("output") {
		cfg.Output = flagOutput
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = flagBaseURL
	}
	if flagNoBrowser {
		cfg.OpenBrowser = false
	}
}
