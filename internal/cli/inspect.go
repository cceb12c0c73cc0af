package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fencedraw/pkg/fence"
	"github.com/matzehuels/fencedraw/pkg/fence/layout"
	"github.com/matzehuels/fencedraw/pkg/fence/sink"
	"github.com/matzehuels/fencedraw/pkg/numfmt"
	"github.com/matzehuels/fencedraw/pkg/pipeline"
	"github.com/matzehuels/fencedraw/pkg/spec"
	"github.com/matzehuels/fencedraw/pkg/units"
)

// inspectCommand creates the inspect command, which prints derived
// quantities and the computed primitive list without rendering.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags renderFlags
	var showPrims, asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect [spec]",
		Short: "Show derived dimensions and the computed primitives of a spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], flags, showPrims, asJSON)
		},
	}

	cmd.Flags().BoolVarP(&showPrims, "primitives", "p", false, "list every primitive in drawing order")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the diagram as JSON")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, w io.Writer, input string, flags renderFlags, showPrims, asJSON bool) error {
	opts := flags.options(input)
	opts.Logger = c.Logger

	res, err := pipeline.Decode(ctx, opts)
	if err != nil {
		return err
	}
	d, check, err := pipeline.Layout(ctx, res, opts)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := sink.RenderJSON(d, sink.WithJSONUnit(string(res.Unit)), sink.WithJSONTitle(res.Title))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	printSummary(w, res, d, check)
	if showPrims {
		fmt.Fprintln(w)
		fmt.Fprintln(w, primitiveTable(d.Primitives))
	}
	return nil
}

func printSummary(w io.Writer, res *spec.Resolved, d layout.Diagram, check fence.StackCheck) {
	s := res.Spec
	u := res.Unit
	length := func(mm float64) string { return fmtLength(mm, u) }

	if res.Title != "" {
		fmt.Fprintln(w, StyleTitle.Render(res.Title))
	}
	fmt.Fprintln(w, keyValue("outer", length(s.OuterW)+" × "+length(s.OuterH)))
	if s.WithFrame {
		fmt.Fprintln(w, keyValue("frame", length(s.FrameT())))
		fmt.Fprintln(w, keyValue("inner", length(s.InnerWidth())+" × "+length(s.InnerHeight())))
	} else {
		fmt.Fprintln(w, keyValue("frame", "none"))
	}
	fmt.Fprintln(w, keyValue("panels", joinLengths(s.Panels, u)))
	fmt.Fprintln(w, keyValue("gaps", joinLengths(s.Gaps, u)))
	if s.HasAttachments() {
		fmt.Fprintln(w, keyValue("attachments", fmt.Sprintf("A %s · B %s · Ω %s",
			length(s.BracketsHeight()), length(s.ProfileHeight()), length(s.OmegaHeight()))))
	}
	fmt.Fprintln(w, keyValue("total", length(s.TotalHeight())))
	fmt.Fprintln(w, keyValue("scale", numfmt.Fmt2(s.Scale)))
	fmt.Fprintln(w, keyValue("primitives", strconv.Itoa(len(d.Primitives))))

	if check.Balanced() {
		fmt.Fprintln(w, keyValue("stack", StyleSuccess.Render("balanced")))
	} else {
		fmt.Fprintln(w, keyValue("stack", StyleWarning.Render(
			fmt.Sprintf("off by %s (%d/%d gaps)", length(check.Delta()), check.GotGaps, check.WantGaps))))
	}
	for _, warn := range d.Warnings {
		fmt.Fprintln(w, keyValue("warning", StyleWarning.Render(warn)))
	}
}

// primitiveTable renders prims as a table in drawing units.
func primitiveTable(prims []layout.Primitive) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(prims))
	for i, p := range prims {
		rows = append(rows, []string{
			strconv.Itoa(i),
			string(p.Kind),
			string(p.Role),
			geometry(p),
			p.Label,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Kind", "Role", "Geometry", "Label").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return cell.Foreground(colorDim)
			}
			return cell
		}).
		String()
}

func geometry(p layout.Primitive) string {
	f := numfmt.Fmt2
	switch p.Kind {
	case layout.KindRect:
		return fmt.Sprintf("(%s, %s) %s × %s", f(p.X), f(p.Y), f(p.W), f(p.H))
	case layout.KindBand:
		return fmt.Sprintf("(%s, %s) → (%s, %s) t=%s", f(p.From.X), f(p.From.Y), f(p.To.X), f(p.To.Y), f(p.Thickness))
	case layout.KindLine:
		return fmt.Sprintf("(%s, %s) → (%s, %s)", f(p.From.X), f(p.From.Y), f(p.To.X), f(p.To.Y))
	default:
		return fmt.Sprintf("(%s, %s) %s", f(p.X), f(p.Y), p.Anchor)
	}
}

func fmtLength(mm float64, u units.Unit) string {
	return numfmt.Fmt2(units.FromMM(mm, u)) + " " + string(u)
}

func joinLengths(vs []float64, u units.Unit) string {
	if len(vs) == 0 {
		return "—"
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = numfmt.Fmt2(units.FromMM(v, u))
	}
	return strings.Join(parts, ", ") + " " + string(u)
}
