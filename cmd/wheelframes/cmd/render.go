package cmd

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-drift/progresswheel/pkg/graphics"
	"github.com/go-drift/progresswheel/pkg/raster"
	"github.com/go-drift/progresswheel/pkg/wheel"
)

type renderOptions struct {
	outDir     string
	size       int
	label      bool
	background string
}

func newRenderCommand(opts *options) *cobra.Command {
	s := &script{}
	ro := &renderOptions{}
	cmd := &cobra.Command{
		Use:     "render",
		Short:   "Render frames to numbered PNG files",
		Example: `wheelframes render --spin --duration 1s --out frames --size 128`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return ro.run(cmd, s, cfg)
		},
	}
	s.bindFlags(cmd)
	cmd.Flags().StringVarP(&ro.outDir, "out", "o", "frames", "output directory")
	cmd.Flags().IntVar(&ro.size, "size", 96, "image width and height in pixels")
	cmd.Flags().BoolVar(&ro.label, "label", false, "draw the percentage label on determinate frames")
	cmd.Flags().StringVar(&ro.background, "background", "", "background color (#RRGGBB or #AARRGGBB)")
	return cmd
}

func (ro *renderOptions) run(cmd *cobra.Command, s *script, cfg wheel.Config) error {
	p := &raster.Painter{Label: ro.label}
	if ro.background != "" {
		bg, err := graphics.ParseHex(ro.background)
		if err != nil {
			return fmt.Errorf("--background: %w", err)
		}
		p.Background = bg
	}
	if err := os.MkdirAll(ro.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", ro.outDir, err)
	}

	n := 0
	err := s.play(cfg, func(_ float64, e *wheel.Engine, f wheel.Frame) error {
		img, err := p.Render(e, f, ro.size, ro.size)
		if err != nil {
			return err
		}
		path := filepath.Join(ro.outDir, fmt.Sprintf("frame_%04d.png", n))
		if err := writePNG(path, img); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", n, ro.outDir)
	return nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
