package commands

import (
	"github.com/spf13/cobra"
)

func CacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local leg snapshot cache",
	}
	cmd.AddCommand(cacheClearCmd())
	return cmd
}

func cacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached leg snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := loadApp(cmd)
			defer a.Close()

			c, err := a.openCache()
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Clear(); err != nil {
				return err
			}
			return printer(cmd).JSON(map[string]string{"status": "cleared"})
		},
	}
}
