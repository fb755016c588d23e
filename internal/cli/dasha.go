package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/dasha"
	"github.com/grahalabs/jataka/pkg/ephem"
	"github.com/grahalabs/jataka/pkg/pipeline"
	"github.com/grahalabs/jataka/pkg/render"
)

// dashaCommand creates the dasha command for vimsottari period trees.
func (c *CLI) dashaCommand() *cobra.Command {
	var (
		in          birthInput
		svgOut      string
		dotOut      string
		detailed    bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "dasha",
		Short: "Compute the vimsottari dasha tree",
		Long: `Compute the vimsottari dasha tree from the Moon's nakshatra at
birth. The tree covers one full 120-year cycle; --depth controls how far
sub-periods are expanded (1 = maha only, 3 = down to pratyantara).

With --svg or --dot the tree is also written as a Graphviz rendering
with the currently active chain highlighted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := in.options()
			if err != nil {
				return err
			}
			return c.runDasha(cmd.Context(), opts, svgOut, dotOut, detailed, interactive)
		},
	}

	in.register(cmd)
	cmd.Flags().IntVar(&in.dashaDepth, "depth", 0, "expansion depth 1-3 (default 3)")
	cmd.Flags().StringVar(&svgOut, "svg", "", "write the tree as SVG to a file")
	cmd.Flags().StringVar(&dotOut, "dot", "", "write the tree as Graphviz DOT to a file")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include period spans in rendered labels")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the tree interactively")

	return cmd
}

// runDasha computes the tree directly from the Moon's longitude.
func (c *CLI) runDasha(ctx context.Context, opts pipeline.Options, svgOut, dotOut string, detailed, interactive bool) error {
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
	moon := chart.Find(positions, ephem.Moon)
	if !moon.Defined {
		return fmt.Errorf("dasha requires a defined Moon position")
	}

	tree, err := dasha.Compute(moon.Sidereal, jd, opts.DashaDepth)
	if err != nil {
		return err
	}

	if interactive {
		return browseDasha(tree, jd)
	}

	printTitle("Vimsottari Dasha")
	printKeyValue("Balance", fmt.Sprintf("%.2f years of %s", tree.BalanceYears, tree.Periods[0].Lord))
	printNewline()

	for _, p := range tree.Periods {
		fmt.Printf("  %-8s %s – %s  (%.0fy)\n",
			p.Lord, fmtJD(p.Start), fmtJD(p.End), p.Years)
	}
	printNewline()

	if active := tree.Active(jd); len(active) > 0 {
		chain := make([]string, len(active))
		for i, p := range active {
			chain[i] = string(p.Lord)
		}
		printKeyValue("Active", strings.Join(chain, " / "))
	}

	if dotOut == "" && svgOut == "" {
		return nil
	}

	dot := render.ToDOT(tree, render.Options{Detailed: detailed, ActiveJD: jd})
	if dotOut != "" {
		if err := os.WriteFile(dotOut, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dotOut, err)
		}
		printFile(dotOut)
	}
	if svgOut != "" {
		svg, err := render.RenderSVG(dot)
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
		if err := os.WriteFile(svgOut, svg, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", svgOut, err)
		}
		printFile(svgOut)
	}
	return nil
}

// fmtJD formats a Julian Day as a UTC calendar date.
func fmtJD(jd float64) string {
	const unixEpochJD = 2440587.5
	t := time.Unix(int64((jd-unixEpochJD)*86400), 0).UTC()
	return t.Format("2006-01-02")
}
