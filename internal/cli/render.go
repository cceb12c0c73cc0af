package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/pipeline"
)

// renderFlags holds the flags shared by render and inspect.
type renderFlags struct {
	formats    string
	output     string
	specFormat string
	unit       string
	title      string
	noAnnotate bool
	strict     bool
	margin     float64
	pixelScale float64
	noCache    bool
	refresh    bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.specFormat, "spec-format", "", "spec file format: toml, json (default: from extension)")
	cmd.Flags().StringVar(&f.unit, "unit", "", "display unit for captions: mm, cm, in (default: the spec's unit)")
	cmd.Flags().StringVar(&f.title, "title", "", "diagram title (default: the spec's title or \"Module W × H unit\")")
	cmd.Flags().BoolVar(&f.noAnnotate, "no-annotations", false, "omit captions, dimension lines and title")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail when panels and gaps do not fill the frame")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

func (f *renderFlags) options(input string) pipeline.Options {
	return pipeline.Options{
		SpecPath:      input,
		SpecFormat:    f.specFormat,
		Unit:          f.unit,
		Title:         f.title,
		NoAnnotations: f.noAnnotate,
		Strict:        f.strict,
		Formats:       pipeline.ParseFormats(f.formats),
		Margin:        f.margin,
		PixelScale:    f.pixelScale,
		Refresh:       f.refresh,
	}
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [spec]",
		Short: "Render a panel spec to SVG, PNG, PDF or JSON",
		Long: `Render a panel spec (TOML or JSON) to one or more output formats.

With a single format, --output names the file. With several formats,
--output is a base path and each format gets its own extension.`,
		Example: `  fencedraw render gate.toml
  fencedraw render gate.toml -f svg,pdf -o out/gate
  fencedraw render gate.json --unit cm --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.formats, "format", "f", pipeline.DefaultFormat, "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64Var(&flags.margin, "margin", pipeline.DefaultMargin, "blank border around the drawing")
	cmd.Flags().Float64Var(&flags.pixelScale, "pixel-scale", pipeline.DefaultPixelScale, "PNG pixels per drawing unit")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, flags renderFlags) error {
	opts := flags.options(input)
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if flags.output != "" {
		if err := errors.ValidateOutputPath(flags.output); err != nil {
			return err
		}
	}

	paths := outputPaths(input, flags.output, opts.Formats)
	if err := checkOutputPaths(input, paths); err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Rendering "+filepath.Base(input)+"...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Rendered %s", input)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats.Panels, result.Stats.Primitives, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	for _, w := range result.Diagram.Warnings {
		printWarning("%s", w)
	}
	return nil
}

// outputPaths maps each format to its output file. A single format writes
// to output verbatim; otherwise output (or the input path) is a base path.
// A path derived from the input that would name the input itself gets a
// ".diagram" infix instead.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		p := base + "." + f
		if output == "" && samePath(p, input) {
			p = base + ".diagram." + f
		}
		paths[f] = p
	}
	return paths
}

// checkOutputPaths rejects any output path that names the input spec.
func checkOutputPaths(input string, paths map[string]string) error {
	for _, p := range paths {
		if samePath(p, input) {
			return errors.New(errors.ErrCodeInvalidPath, "output %s would overwrite the input spec; choose another --output", p)
		}
	}
	return nil
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	aa, errA := filepath.Abs(a)
	bb, errB := filepath.Abs(b)
	return errA == nil && errB == nil && aa == bb
}

// basePath strips a known format extension from output, or derives a base
// from the input file when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if slices.Contains([]string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON}, ext) {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
