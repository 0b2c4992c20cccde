package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagOutput    string
	flagBaseURL   string
	flagLimit     int
	flagNoBrowser bool
)

// NewRootCmd assembles the slackdump-searcher command tree. The root
// command itself performs the search, keeping the tool's plain
// three-argument surface.
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "slackdump-searcher <input> <archive-folder> <pattern>",
		Short: "Search slackdump archives and render the matches as HTML",
		Long: `Search locally archived Slack data for messages matching a
case-insensitive regular expression, render the matches as an HTML report,
and open the report in the default browser.

The input is a folder of slackdump *.json.gz chunk files (pre-filtered with
zgrep when available), "-" to read chunk lines from standard input, or a
single archive file. The archive folder supplies users.json.gz and the
channel metadata used to resolve display names.`,
		Example: `  slackdump-searcher slackdump_20240807_214838 slackdump_20240807_214838 "deploy failed"
  zgrep -ih "incident" dump/*.json.gz | slackdump-searcher - dump "incident"`,
		Args: cobra.ExactArgs(3),
		RunE: runSearch,
	}

	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "",
		"Report file path (default results.html)")
	rootCmd.Flags().StringVar(&flagBaseURL, "base-url", "",
		"Base URL permalinks point at (default http://localhost:8080)")
	rootCmd.Flags().IntVarP(&flagLimit, "limit", "l", 0,
		"Maximum number of matches to render, 0 renders all")
	rootCmd.Flags().BoolVar(&flagNoBrowser, "no-browser", false,
		"Write the report without opening a browser")

	rootCmd.AddCommand(newChannelsCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// setupLogging points the default slog logger at stderr so log lines never
// mix into anything piped through stdout.
func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
