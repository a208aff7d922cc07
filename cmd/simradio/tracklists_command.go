package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"simradio/internal/catalog"
)

func newTrackListsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tracklists <id>...",
		Short: "Show the tracks of one or more track lists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cat, err := catalog.Load(cfg.Paths.Catalog)
			if err != nil {
				return err
			}
			summaries := cat.Summaries(args)
			if len(summaries) == 0 {
				return fmt.Errorf("no track list matches %s", strings.Join(args, ", "))
			}
			if jsonOutput {
				return writeJSON(cmd, summaries)
			}
			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, []string{s.ID, strconv.Itoa(s.TrackCount), strings.Join(s.TrackIDs, "\n")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]tableColumn{
				{Header: "Track List"},
				{Header: "Tracks", Align: alignRight},
				{Header: "Entries", MaxWidth: 60},
			}, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit summaries as JSON")
	return cmd
}
