package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "simradio",
		Short:         "Resolve, convert, and measure GTA V radio tracks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newDurationsCommand(ctx))
	rootCmd.AddCommand(newTrackListsCommand(ctx))
	rootCmd.AddCommand(newHashCommand())
	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
