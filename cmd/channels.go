package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/raesene/slackdump-searcher/pkg/archive"
	"github.com/raesene/slackdump-searcher/pkg/config"
)

func newChannelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "channels <archive-folder>",
		Short: "List channels found in an archive folder",
		Long: `List every channel the archive folder carries metadata for, with
direct messages resolved to @names through users.json.gz.`,
		Args: cobra.ExactArgs(1),
		RunE: runChannels,
	}
}

func runChannels(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel)

	users, err := archive.UserLookup(filepath.Join(dir, archive.UsersFile))
	if err != nil {
		return err
	}
	channels, err := archive.ChannelLookup(dir, users)
	if err != nil {
		return err
	}

	if len(channels) == 0 {
		fmt.Println("No channel metadata found.")
		return nil
	}

	ids := make([]string, 0, len(channels))
	for id := range channels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("Channels (%d):\n\n", len(channels))
	for _, id := range ids {
		fmt.Printf("  %-12s %s\n", id, channels[id])
	}

	return nil
}
