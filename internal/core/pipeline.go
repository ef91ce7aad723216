package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/equipcheck/validator/internal/core/compare"
	"github.com/equipcheck/validator/internal/core/model"
	"github.com/equipcheck/validator/internal/core/parser"
	"github.com/equipcheck/validator/internal/core/report"
	"github.com/equipcheck/validator/internal/core/verify"
	"github.com/equipcheck/validator/internal/llm"
)

// Options tunes one pipeline run. Zero values take the defaults
// (verify=false, maxChunkSize=75, maxConcurrency=3).
type Options struct {
	Verify         bool
	MaxChunkSize   int
	MaxConcurrency int
}

// Pipeline sequences parse -> compare -> optional verify -> report for
// one validation run. It holds no cross-run state; every invocation is a
// pure function of the two row sets given the injected completion client.
type Pipeline struct {
	LLM    llm.LLMClient
	Logger *zap.Logger
}

func NewPipeline(llmClient llm.LLMClient, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{LLM: llmClient, Logger: logger}
}

// Run validates equipmentRows against specRows and returns the external
// report. Stage-1 parsing never fails; stage-2 failures surface as
// llm.Error or compare.ParseError; stage-3 failures degrade silently to
// the stage-2 result.
func (p *Pipeline) Run(ctx context.Context, equipmentRows, specRows []map[string]any, opts Options) (*model.ValidationReport, error) {
	equipment := parser.ParseRows(equipmentRows, "equipment")
	spec := parser.ParseRows(specRows, "spec")
	p.Logger.Info("parsed inputs",
		zap.Int("equipment_items", len(equipment.Items)),
		zap.Int("spec_items", len(spec.Items)),
		zap.Strings("warnings", append(append([]string{}, equipment.Warnings...), spec.Warnings...)))

	comparator := compare.NewComparator(p.LLM, p.Logger)
	if opts.MaxChunkSize > 0 {
		comparator.MaxChunkSize = opts.MaxChunkSize
	}
	if opts.MaxConcurrency > 0 {
		comparator.MaxConcurrency = opts.MaxConcurrency
	}

	comparison, err := comparator.Compare(ctx, equipment, spec)
	if err != nil {
		return nil, err
	}

	verificationStatus := model.VerificationNotRequested
	var verification *model.VerificationResult
	if opts.Verify {
		verifier := verify.NewVerifier(p.LLM, p.Logger)
		var verr error
		comparison, verification, verr = verifier.Verify(ctx, comparison, equipment, spec)
		if verr != nil {
			verificationStatus = model.VerificationFailed
		} else {
			verificationStatus = model.VerificationCompleted
		}
	}

	return report.Map(comparison, verification, equipment, spec, verificationStatus), nil
}
