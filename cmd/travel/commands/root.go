package commands

import (
	"github.com/spf13/cobra"
)

// Root assembles the travel command tree. Extra commands are attached last.
func Root(extra ...*cobra.Command) *cobra.Command {
	root := &cobra.Command{
		Use:           "travel",
		Short:         "Beetlebot travel options – flight resolution and fare expansion",
		Long:          "Resolves direct, one-stop and filler flight options from leg snapshots and expands them into fares, as compact JSON or over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("mode", "", "Provider mode: mock, live, hybrid (default from config/env)")
	root.PersistentFlags().Bool("compact", false, "Print single-line JSON")

	root.AddCommand(FlightsCmd())
	root.AddCommand(FaresCmd())
	root.AddCommand(ServeCmd())
	root.AddCommand(ProvidersCmd())
	root.AddCommand(DoctorCmd())
	root.AddCommand(CacheCmd())
	root.AddCommand(extra...)

	return root
}
