package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"go-chi-simpson/internal/config"
	"go-chi-simpson/internal/expr"
	"go-chi-simpson/internal/simpson"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// report is the JSON form of one integration.
type report struct {
	A          float64        `json:"a"`
	B          float64        `json:"b"`
	N          int            `json:"n"`
	Expression string         `json:"expression"`
	H          float64        `json:"h"`
	Result     float64        `json:"result"`
	Steps      []simpson.Step `json:"steps"`
}

func (a *app) integrateCmd() *cobra.Command {
	p := simpson.DefaultParams()
	var (
		output string
		plot   bool
	)

	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Integrate an expression in x over [a, b]",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "table" && output != "json" {
				return fmt.Errorf("unknown output format %q, want table or json", output)
			}

			res, err := a.integrate(p)
			if err != nil {
				return kindError(err)
			}

			out := cmd.OutOrStdout()
			if output == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report{
					A:          p.A,
					B:          p.B,
					N:          p.N,
					Expression: p.Expression,
					H:          res.H,
					Result:     res.Value,
					Steps:      res.Steps,
				})
			}

			if err := writeTrace(out, res.Steps); err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderResult(p, res))
			if plot {
				fmt.Fprintln(out)
				fmt.Fprintln(out, plotSamples(res.Steps))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&p.A, "a", p.A, "lower bound")
	cmd.Flags().Float64Var(&p.B, "b", p.B, "upper bound")
	cmd.Flags().IntVar(&p.N, "n", p.N, "number of intervals (even, at least 2)")
	cmd.Flags().StringVar(&p.Expression, "expr", p.Expression, "expression in x")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	cmd.Flags().BoolVar(&plot, "plot", false, "plot f(x) at the sample points")

	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <expression>",
		Short: "Check an expression without integrating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := expr.Check(args[0])
			a.log.Debug("expression checked",
				zap.String("expression", args[0]),
				zap.Bool("valid", v.Valid),
			)

			out := cmd.OutOrStdout()
			if !v.Valid {
				return fmt.Errorf("%s", v.Message)
			}

			fmt.Fprintln(out, okStyle.Render("valid")+" "+v.Canonical)
			if v.Constant {
				fmt.Fprintln(out, noteStyle.Render(v.Message))
			}
			return nil
		},
	}
}

func (a *app) batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file.yaml>",
		Short: "Run every job in a YAML batch file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := config.LoadJobs(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "JOB\tA\tB\tN\tEXPRESSION\tRESULT")

			failed := 0
			for _, job := range jobs {
				p := job.Params()
				res, err := a.integrate(p)
				if err != nil {
					failed++
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
						job.Name, expr.FormatFloat(p.A), expr.FormatFloat(p.B), p.N, p.Expression,
						kindError(err))
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
					job.Name, expr.FormatFloat(p.A), expr.FormatFloat(p.B), p.N, p.Expression,
					expr.FormatFloat(res.Value))
			}

			if err := w.Flush(); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", failed, len(jobs))
			}
			return nil
		},
	}
}

func (a *app) integrate(p simpson.Params) (*simpson.Result, error) {
	start := time.Now()
	res, err := simpson.Integrate(p)
	if err != nil {
		a.log.Debug("integration failed",
			zap.String("expression", p.Expression),
			zap.Stringer("kind", simpson.KindOf(err)),
			zap.Error(err),
		)
		return nil, err
	}

	a.log.Debug("integration completed",
		zap.Float64("a", p.A),
		zap.Float64("b", p.B),
		zap.Int("n", p.N),
		zap.String("expression", p.Expression),
		zap.Float64("result", res.Value),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

// kindError prefixes an engine error with its wire tag.
func kindError(err error) error {
	k := simpson.KindOf(err)
	if k == 0 {
		return err
	}
	return fmt.Errorf("%s: %w", k, err)
}
