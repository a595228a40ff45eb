package commands

import (
	"github.com/spf13/cobra"
)

func ProvidersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List and inspect leg providers",
	}
	cmd.AddCommand(providersListCmd())
	return cmd
}

func providersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all registered leg providers and their status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := loadApp(cmd)
			defer a.Close()

			return printer(cmd).JSON(a.router.ProviderInfos())
		},
	}
	return cmd
}
