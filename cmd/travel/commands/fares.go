package commands

import (
	"fmt"

	"github.com/beetlebot/travel-options/internal/core"
	"github.com/spf13/cobra"
)

func FaresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fares",
		Short: "Expand a flight price into purchasable fares",
	}
	cmd.AddCommand(faresExpandCmd())
	return cmd
}

func faresExpandCmd() *cobra.Command {
	var (
		class string
		price float64
	)

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "List the Light and Flex fares for a travel class",
		Example: `  travel fares expand --class economy --price 450
  travel fares expand --class first --price 2000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("price") {
				return fmt.Errorf("--price is required")
			}
			c, err := core.ParseCabinClass(class)
			if err != nil {
				return fmt.Errorf("--class %q: %w", class, err)
			}

			fares, err := core.ExpandFares(price, c)
			if err != nil {
				return fmt.Errorf("expand fares: %w", err)
			}
			return printer(cmd).JSON(fares)
		},
	}

	cmd.Flags().StringVar(&class, "class", "economy", "Travel class: economy, business, first")
	cmd.Flags().Float64Var(&price, "price", 0, "Base price for the class (required)")

	return cmd
}
