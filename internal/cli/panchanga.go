package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/ephem"
	"github.com/grahalabs/jataka/pkg/panchanga"
	"github.com/grahalabs/jataka/pkg/pipeline"
)

// panchangaCommand creates the panchanga command for the five limbs of
// the day.
func (c *CLI) panchangaCommand() *cobra.Command {
	var in birthInput

	cmd := &cobra.Command{
		Use:   "panchanga",
		Short: "Compute the panchanga for an instant",
		Long: `Compute the five limbs of the day (tithi, vara, nakshatra, yoga,
karana) for an instant. Only the Sun and Moon positions are needed, so
this is faster than a full chart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := in.options()
			if err != nil {
				return err
			}
			return c.runPanchanga(cmd.Context(), opts)
		},
	}

	in.register(cmd)
	return cmd
}

// runPanchanga computes the panchanga directly from the Sun and Moon
// longitudes, skipping the downstream fan-out.
func (c *CLI) runPanchanga(ctx context.Context, opts pipeline.Options) error {
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

	track := newProgress(c.Logger)
	adapter := ephem.NewAdapter(opts.Provider)
	positions := chart.Positions(adapter.Longitudes(jd), ayanamsa)

	sun := chart.Find(positions, ephem.Sun)
	moon := chart.Find(positions, ephem.Moon)
	if !sun.Defined || !moon.Defined {
		return fmt.Errorf("panchanga requires defined Sun and Moon positions")
	}

	p := panchanga.Compute(sun.Sidereal, moon.Sidereal, jd)
	track.done("Computed panchanga")

	printTitle("Panchanga")
	printKeyValue("Tithi", fmt.Sprintf("%s (%d, %s)", p.TithiName, p.Tithi, p.Paksha))
	printKeyValue("Vara", fmt.Sprintf("%s (lord %s)", p.VaraName, p.VaraLord))
	printKeyValue("Nakshatra", fmt.Sprintf("%s pada %d", p.NakshatraName, p.Pada))
	printKeyValue("Yoga", fmt.Sprintf("%s (%d)", p.YogaName, p.Yoga))
	printKeyValue("Karana", fmt.Sprintf("%s (%d)", p.KaranaName, p.Karana))
	return nil
}
