package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"simradio/internal/audiohash"
)

func newHashCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "hash <name>...",
		Short:       "Print the audio asset hash of each name",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range args {
				fmt.Fprintf(out, "'%s': %s\n", name, audiohash.Name(name))
			}
			return nil
		},
	}
}
