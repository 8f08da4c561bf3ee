package diagnostic

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/tbscreen/internal/features"
)

// Input is one evaluation request with every categorical answer as a label.
type Input struct {
	Patient  features.RawProfile    `json:"patient"`
	Symptoms features.RawAssessment `json:"symptoms"`
}

// Outcome pairs a batch input with its result. Both may be set when the
// classifier was unavailable.
type Outcome struct {
	Index  int
	Result *Result
	Err    error
}

// EvaluateBatch evaluates inputs with at most parallel evaluations in
// flight. Outcomes are in input order; a failing input never stops the
// others.
func (p *Pipeline) EvaluateBatch(ctx context.Context, inputs []Input, parallel int) []Outcome {
	if parallel < 1 {
		parallel = 1
	}
	out := make([]Outcome, len(inputs))

	var g errgroup.Group
	g.SetLimit(parallel)
	for i, in := range inputs {
		g.Go(func() error {
			out[i].Index = i
			if err := ctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			out[i].Result, out[i].Err = p.EvaluateLabels(ctx, in.Patient, in.Symptoms)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range out {
		if o.Result == nil {
			failed++
		}
	}
	p.logger.Info("Batch evaluation complete",
		zap.Int("inputs", len(inputs)),
		zap.Int("failed", failed),
		zap.Int("parallel", parallel),
	)
	return out
}
