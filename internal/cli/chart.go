package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grahalabs/jataka/pkg/bala"
	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/chartio"
	"github.com/grahalabs/jataka/pkg/pipeline"
)

// chartCommand creates the chart command for computing a full birth chart.
func (c *CLI) chartCommand() *cobra.Command {
	var (
		in     birthInput
		output string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute a full birth chart",
		Long: `Compute a full birth chart for a birth instant and location.

The chart includes planet positions, ascendant and houses, panchanga,
all divisional charts, strength scores, ashtakavarga, the vimsottari
dasha tree, and detected yogas.

Birth data comes from the --date/--time/--lat/--lon flags or from a
saved profile (--profile). Results are cached locally for faster
subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := in.options()
			if err != nil {
				return err
			}
			return c.runChart(cmd.Context(), opts, in.noCache, output, asJSON)
		},
	}

	in.register(cmd)
	cmd.Flags().IntVar(&in.dashaDepth, "dasha-depth", 0, "dasha expansion depth 1-3 (default 3)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the full chart as JSON to a file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the full chart as JSON to stdout")

	return cmd
}

// runChart computes the chart and prints or exports it.
func (c *CLI) runChart(ctx context.Context, opts pipeline.Options, noCache bool, output string, asJSON bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing chart...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Chart computation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if asJSON {
		return chartio.WriteJSON(opts, result, os.Stdout)
	}

	printChartSummary(result)

	if output != "" {
		if err := chartio.ExportJSON(opts, result, output); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printFile(output)
	}

	defined := 0
	for _, p := range result.Positions {
		if p.Defined {
			defined++
		}
	}
	printChartStats(defined, len(result.Positions), len(result.Errors), result.CacheHit)
	return nil
}

// printChartSummary prints the human-readable chart overview.
func printChartSummary(result *pipeline.Result) {
	printTitle("Birth Chart")
	printKeyValue("Julian day", fmt.Sprintf("%.5f", result.JulianDay))
	printKeyValue("Ayanamsa", fmt.Sprintf("%.4f° (%s)", result.Ayanamsa, result.AyanamsaModel))
	printKeyValue("Ascendant", fmt.Sprintf("%s %.2f°", result.AscendantSign, result.Ascendant))
	printNewline()

	printTitle("Positions")
	for _, p := range result.Positions {
		if !p.Defined {
			printDetail("%-8s undefined (%s)", p.Body, p.Error)
			continue
		}
		house := chart.HouseOf(p.Sidereal, result.Ascendant, result.HouseSystem)
		fmt.Printf("  %-8s %-12s %6.2f°  H%-2d %-12s %s pada %d\n",
			p.Body, p.Sign, p.Degree, house, bala.DignityOf(p.Body, p.Sign),
			chart.NakshatraNames[p.Nakshatra], p.Pada)
	}
	printNewline()

	if len(result.Strengths) > 0 {
		printTitle("Shadbala")
		fmt.Printf("  %-8s %7s %7s %7s %7s %7s %8s\n",
			"", "sthana", "dig", "kala", "drik", "naisarg", "total")
		for _, s := range result.Strengths {
			if !s.Defined {
				continue
			}
			fmt.Printf("  %-8s %7.3f %7.3f %7.3f %+7.3f %7.3f %+8.3f\n",
				s.Body, s.Sthana, s.Dig, s.Kala, s.Drik, s.Naisargika, s.Total)
		}
		printNewline()

		occupants := make(map[int][]string)
		for _, p := range result.Positions {
			if !p.Defined {
				continue
			}
			h := chart.HouseOf(p.Sidereal, result.Ascendant, result.HouseSystem)
			occupants[h] = append(occupants[h], string(p.Body))
		}

		printTitle("Houses")
		for _, h := range result.Houses {
			marker := ""
			if h.Significator > 0 {
				marker = " ·k"
			}
			fmt.Printf("  H%-2d %+7.3f%-4s %s\n",
				h.House, h.Strength, marker, strings.Join(occupants[h.House], ", "))
		}
		printNewline()
	}

	if result.Panchanga.TithiName != "" {
		printTitle("Panchanga")
		printKeyValue("Tithi", fmt.Sprintf("%s (%s)", result.Panchanga.TithiName, result.Panchanga.Paksha))
		printKeyValue("Vara", result.Panchanga.VaraName)
		printKeyValue("Nakshatra", result.Panchanga.NakshatraName)
		printKeyValue("Yoga", result.Panchanga.YogaName)
		printKeyValue("Karana", result.Panchanga.KaranaName)
		printNewline()
	}

	if len(result.Yogas) > 0 {
		printTitle("Yogas")
		for _, m := range result.Yogas {
			bodies := make([]string, len(m.Bodies))
			for i, b := range m.Bodies {
				bodies[i] = string(b)
			}
			fmt.Printf("  %-16s %.2f  %s\n", m.Name, m.Strength, strings.Join(bodies, ", "))
		}
		printNewline()
	}

	if active := result.Dasha.Active(result.JulianDay); len(active) > 0 {
		chain := make([]string, len(active))
		for i, p := range active {
			chain[i] = string(p.Lord)
		}
		printKeyValue("Dasha", strings.Join(chain, " / "))
		printNewline()
	}

	if result.Partial() {
		modules := make([]string, 0, len(result.Errors))
		for m := range result.Errors {
			modules = append(modules, m)
		}
		sort.Strings(modules)
		for _, m := range modules {
			printWarning("%s failed: %s", m, result.Errors[m])
		}
	}
}
