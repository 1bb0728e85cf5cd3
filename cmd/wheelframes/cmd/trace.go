package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/progresswheel/pkg/wheel"
)

func newTraceCommand(opts *options) *cobra.Command {
	s := &script{}
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print frame geometry as tab-separated values",
		Example: `wheelframes trace --spin --duration 3s --stop-at 1s
wheelframes trace --progress 0.75 --animated`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "t_ms\tstart\tsweep\tarrow\tgrowth\tprogress")
			return s.play(cfg, func(now float64, e *wheel.Engine, f wheel.Frame) error {
				arrow := 0
				if f.ShowArrow {
					arrow = 1
				}
				_, err := fmt.Fprintf(out, "%.1f\t%.3f\t%.3f\t%d\t%.3f\t%.2f\n",
					now, f.StartAngle, f.SweepAngle, arrow, f.ArrowGrowthFraction, e.NormalizedProgress())
				return err
			})
		},
	}
	s.bindFlags(cmd)
	return cmd
}
