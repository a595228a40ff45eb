package commands

import (
	"fmt"
	"time"

	"github.com/beetlebot/travel-options/internal/adapters/live"
	"github.com/beetlebot/travel-options/internal/core"
	"github.com/spf13/cobra"
)

func FlightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flights",
		Short: "Resolve flight options between two cities",
	}
	cmd.AddCommand(flightsResolveCmd())
	return cmd
}

func flightsResolveCmd() *cobra.Command {
	var (
		q          core.Query
		seed       int64
		minOptions int
		legsFile   string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve direct, one-stop and filler options for a route",
		Example: `  travel flights resolve --from Paris --to Tokyo --date 2026-06-12
  travel flights resolve --from Paris --to Tokyo --seed 42 --min 8
  travel flights resolve --legs ./legs.yaml
  travel flights resolve --from Paris --to London --mode live`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := loadApp(cmd)
			defer a.Close()

			var opts []core.ResolverOption
			if cmd.Flags().Changed("seed") {
				opts = append(opts, core.WithSeed(seed))
			}
			if minOptions > 0 {
				opts = append(opts, core.WithMinOptions(minOptions))
			}
			resolver := a.buildResolver(opts...)
			out := printer(cmd)

			if legsFile != "" {
				p := live.NewFileLegsProvider(legsFile)
				legs, err := p.Legs(cmd.Context(), q)
				if err != nil {
					return fmt.Errorf("resolve against %s: %w", legsFile, err)
				}
				options := resolver.Resolve(core.DedupeLegs(legs), q)
				return out.JSON(core.SearchResult{
					Query:      q,
					Mode:       a.cfg.Mode,
					Providers:  []string{p.Name()},
					Options:    options,
					TotalFound: len(options),
					FetchedAt:  time.Now().UTC(),
				})
			}

			result, err := a.buildOrchestrator(resolver).Resolve(cmd.Context(), q)
			if err != nil {
				out.Error("search failed", err.Error())
				return nil
			}
			return out.JSON(result)
		},
	}

	cmd.Flags().StringVar(&q.Origin, "from", "", "Origin city (empty with --to empty lists every leg)")
	cmd.Flags().StringVar(&q.Destination, "to", "", "Destination city")
	cmd.Flags().StringVar(&q.Date, "date", "", "Travel date YYYY-MM-DD for filler options (default today)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for filler options, makes output reproducible")
	cmd.Flags().IntVar(&minOptions, "min", 0, "Minimum options per search (default from config)")
	cmd.Flags().StringVar(&legsFile, "legs", "", "Resolve against a JSON or YAML legs file instead of providers")

	return cmd
}
