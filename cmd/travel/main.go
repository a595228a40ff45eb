package main

import (
	"fmt"
	"os"

	"github.com/beetlebot/travel-options/cmd/travel/commands"
	"github.com/spf13/cobra"
)

func main() {
	if err := commands.Root(versionCmd()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print travel CLI version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "travel v0.2.0")
		},
	}
}
