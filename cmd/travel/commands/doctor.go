package commands

import (
	"fmt"
	"strings"

	"github.com/beetlebot/travel-options/internal/core"
	"github.com/spf13/cobra"
)

func DoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration, credentials, and leg provider health",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := loadApp(cmd)
			defer a.Close()

			return printer(cmd).JSON(doctorReport(a.router))
		},
	}
	return cmd
}

func doctorReport(router *core.Router) core.DoctorReport {
	infos := router.ProviderInfos()

	active := 0
	var issues []string
	for _, p := range infos {
		switch p.Status {
		case "active":
			active++
		case "no_credentials":
			issues = append(issues, fmt.Sprintf("%s: %s", p.Name, p.Reason))
		}
	}

	summary := fmt.Sprintf("%d/%d providers active (mode=%s)", active, len(infos), router.Mode())
	if len(issues) > 0 {
		summary += " | issues: " + strings.Join(issues, "; ")
	}

	return core.DoctorReport{
		Mode:      router.Mode(),
		Providers: infos,
		Healthy:   active > 0,
		Summary:   summary,
	}
}
