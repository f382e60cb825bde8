package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/fanchart/internal/fan"
	"github.com/papapumpkin/fanchart/internal/render"
	"github.com/papapumpkin/fanchart/internal/telemetry"
	"github.com/papapumpkin/fanchart/internal/textfit"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Export a fan chart as PNG or SVG",
	Long: `Draws the ancestor fan of --root and writes it to --out. The image format
follows the file extension: .png for a raster image scaled by --scale, .svg
for a vector image.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	addChartFlags(renderCmd)
	renderCmd.Flags().StringP("out", "o", "", "output file, .png or .svg")
	renderCmd.Flags().Float64("scale", 0, "pixel scale of PNG output (default render.scale)")
	renderCmd.Flags().Float64("rotate", 0, "extra rotation in degrees, clockwise")
	_ = renderCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	out, _ := cmd.Flags().GetString("out")
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(out), "."))
	if format != "png" && format != "svg" {
		return fmt.Errorf("render: %s: unsupported format %q (want .png or .svg)", out, filepath.Ext(out))
	}

	applyChartFlags(cmd)
	if f := cmd.Flags().Lookup("scale"); f.Changed {
		viper.Set("render.scale", f.Value.String())
	}
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	events, err := openEmitter(e.cfg.TelemetryPath)
	if err != nil {
		return err
	}
	defer events.Close()

	chart, err := buildChart(cmd, e, events)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if deg, _ := cmd.Flags().GetFloat64("rotate"); deg != 0 {
		chart.Rotate(deg * math.Pi / 180)
	}

	fonts, err := textfit.NewFontSet(e.cfg.Chart.FontFamily)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	w, h, err := writeChart(out, format, chart, fonts, e.cfg.Chart.FontFamily, e.cfg.Render.Scale)
	if err != nil {
		return err
	}

	info, err := os.Stat(out)
	if err != nil {
		return fmt.Errorf("render: stat %s: %w", out, err)
	}
	_ = events.Record(telemetry.KindExported, string(chart.Options().Root), "", map[string]any{
		"path":   out,
		"format": format,
		"width":  w,
		"height": h,
	})
	e.printer.Rendered(out, w, h, info.Size())
	return nil
}

// writeChart draws chart into the file at path and returns the image size.
func writeChart(path, format string, chart *fan.Chart, fonts *textfit.FontSet, family string, scale float64) (w, h int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, 0, fmt.Errorf("render: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("render: close %s: %w", path, cerr)
		}
	}()

	cw, ch := chart.Size()
	painter := render.NewPainter(fonts)
	switch format {
	case "svg":
		svg := render.NewSVG(cw, ch, family)
		if err := painter.Draw(svg, chart, 1, false); err != nil {
			return 0, 0, fmt.Errorf("render: draw: %w", err)
		}
		if _, err := svg.WriteTo(f); err != nil {
			return 0, 0, fmt.Errorf("render: write %s: %w", path, err)
		}
		return int(math.Ceil(cw)), int(math.Ceil(ch)), nil
	default:
		w, h = int(cw*scale), int(ch*scale)
		raster := render.NewRaster(w, h, fonts)
		if err := painter.Draw(raster, chart, scale, false); err != nil {
			return 0, 0, fmt.Errorf("render: draw: %w", err)
		}
		if err := raster.EncodePNG(f); err != nil {
			return 0, 0, fmt.Errorf("render: encode %s: %w", path, err)
		}
		return w, h, nil
	}
}
