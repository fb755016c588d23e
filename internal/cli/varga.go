package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/ephem"
	"github.com/grahalabs/jataka/pkg/pipeline"
	"github.com/grahalabs/jataka/pkg/varga"
)

// vargaCommand creates the varga command for divisional charts.
func (c *CLI) vargaCommand() *cobra.Command {
	var (
		in       birthInput
		harmonic int
	)

	cmd := &cobra.Command{
		Use:   "varga",
		Short: "Compute a divisional chart",
		Long: `Compute a single divisional chart (varga). The harmonic selects the
division: 1 = rashi, 9 = navamsa, 10 = dasamsa, and so on through D60.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := in.options()
			if err != nil {
				return err
			}
			return c.runVarga(cmd.Context(), opts, harmonic)
		},
	}

	in.register(cmd)
	cmd.Flags().IntVarP(&harmonic, "harmonic", "n", 9, "divisional chart harmonic (e.g. 9 for navamsa)")

	return cmd
}

// runVarga computes one harmonic from the sidereal positions.
func (c *CLI) runVarga(ctx context.Context, opts pipeline.Options, harmonic int) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	jd, err := opts.Instant.JulianDay()
	if err != nil {
		return err
	}
	ayanamsa, err := ephem.Ayanamsa(opts.Ayanamsa, jd)
	if err != nil {
		return err
	}

	adapter := ephem.NewAdapter(opts.Provider)
	positions := chart.Positions(adapter.Longitudes(jd), ayanamsa)

	ch, err := varga.Compute(harmonic, positions)
	if err != nil {
		return err
	}

	printTitle(fmt.Sprintf("D%d", ch.Harmonic))
	for _, p := range ch.Positions {
		if !p.Defined {
			printDetail("%-8s undefined", p.Body)
			continue
		}
		fmt.Printf("  %-8s %-12s %6.2f°\n", p.Body, p.Sign, p.Degree)
	}
	return nil
}
