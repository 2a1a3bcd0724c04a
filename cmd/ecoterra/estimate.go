package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhaysingh-22/EcoTerra/internal/emission"
	"github.com/abhaysingh-22/EcoTerra/internal/tripstats"
)

// 输出格式
const (
	formatText            = "text"
	formatNative          = "native"
	formatCarbonInterface = "carbon-interface"
)

type estimateOptions struct {
	Mode       string
	Distance   float64
	Unit       string
	Passengers int
	Vehicle    string
	Format     string
}

func newEstimateCmd() *cobra.Command {
	var opts estimateOptions

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the carbon footprint of a trip",
		Example: `  ecoterra estimate --mode flight --distance 1000
  ecoterra estimate --mode car --distance 120 --unit mi --passengers 2 --vehicle hybrid --format native`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd.OutOrStdout(), opts, time.Now())
		},
	}

	cmd.Flags().StringVar(&opts.Mode, "mode", "", "transport mode (flight, car, train, bus, ship)")
	cmd.Flags().Float64Var(&opts.Distance, "distance", 0, "trip distance")
	cmd.Flags().StringVar(&opts.Unit, "unit", string(emission.UnitKm), "distance unit (km, mi)")
	cmd.Flags().IntVar(&opts.Passengers, "passengers", 1, "number of passengers")
	cmd.Flags().StringVar(&opts.Vehicle, "vehicle", "", "car power type (gasoline, electric, hybrid)")
	cmd.Flags().StringVar(&opts.Format, "format", formatText, "output format (text, native, carbon-interface)")
	_ = cmd.MarkFlagRequired("mode")
	_ = cmd.MarkFlagRequired("distance")

	return cmd
}

func runEstimate(w io.Writer, opts estimateOptions, now time.Time) error {
	p := float64(opts.Passengers)
	passengers, err := emission.PassengerCount(&p)
	if err != nil {
		return err
	}

	mode, ok := emission.ParseMode(opts.Mode)
	if !ok {
		mode = emission.Mode(opts.Mode)
	}
	est, err := emission.Calculate(emission.TripInput{
		Mode:          mode,
		DistanceValue: opts.Distance,
		DistanceUnit:  emission.Unit(strings.ToLower(opts.Unit)),
		Passengers:    passengers,
		VehicleType:   emission.VehicleType(strings.ToLower(opts.Vehicle)),
	})
	if err != nil {
		return err
	}

	switch opts.Format {
	case formatText:
		return writeEstimateText(w, est)
	case formatNative:
		return writeJSON(w, est)
	case formatCarbonInterface:
		return writeJSON(w, emission.ToCarbonInterface(est, now))
	}
	return fmt.Errorf("unknown format %q", opts.Format)
}

func writeEstimateText(w io.Writer, est emission.Estimate) error {
	mode := string(est.Mode)
	if est.VehicleType != "" {
		mode = fmt.Sprintf("%s (%s)", mode, est.VehicleType)
	}

	if _, err := fmt.Fprintf(w, "%s, %.2f km, %d passenger(s): %s (%.2f lb)\n",
		mode, est.DistanceKm, est.Passengers, tripstats.FormatKg(est.CarbonKg), est.CarbonLb); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, tripstats.Equivalencies(est.CarbonKg).Text)
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
