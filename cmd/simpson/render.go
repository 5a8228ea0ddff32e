package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"go-chi-simpson/internal/expr"
	"go-chi-simpson/internal/simpson"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// writeTrace prints one row per sample point.
func writeTrace(out io.Writer, steps []simpson.Step) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "i\tx\tf(x)\tcoef\tterm\t")
	for _, s := range steps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t\n",
			s.I,
			expr.FormatFloat(s.X),
			expr.FormatFloat(s.FX),
			s.Coefficient,
			expr.FormatFloat(s.Term),
		)
	}
	return w.Flush()
}

func renderResult(p simpson.Params, res *simpson.Result) string {
	label := fmt.Sprintf("integral of %s over [%s, %s], n=%d, h=%s:",
		p.Expression, expr.FormatFloat(p.A), expr.FormatFloat(p.B), p.N, expr.FormatFloat(res.H))
	return labelStyle.Render(label) + " " + resultStyle.Render(expr.FormatFloat(res.Value))
}

func plotSamples(steps []simpson.Step) string {
	data := make([]float64, len(steps))
	for i, s := range steps {
		data[i] = s.FX
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("f(x) at x_0 .. x_n"),
	)
}
