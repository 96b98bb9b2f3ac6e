package core

import (
	"context"
	"encoding/json"

	"github.com/huangsam/cruxaudit/core/algo"
	"github.com/huangsam/cruxaudit/internal/contract"
	"github.com/huangsam/cruxaudit/internal/prompts"
	"github.com/huangsam/cruxaudit/schema"
)

// ProjectForSynthesis reduces an AnalysisResult to what the report synthesizer
// needs. Trend arrays and distributions are dropped; the trend length is kept.
func ProjectForSynthesis(r schema.AnalysisResult) schema.SynthesisInput {
	return schema.SynthesisInput{
		Domain:  r.Domain,
		Phone:   projectFormFactor(r.Phone),
		Desktop: projectFormFactor(r.Desktop),
	}
}

func projectFormFactor(f schema.FormFactorAnalysis) schema.SynthesisFormFactor {
	regressions := make([]string, len(f.Regressions))
	copy(regressions, f.Regressions)
	return schema.SynthesisFormFactor{
		LCP:              schema.SynthesisMetric{Value: f.LCP.Value, Rating: f.LCP.Rating},
		CLS:              schema.SynthesisMetric{Value: f.CLS.Value, Rating: f.CLS.Rating},
		INP:              schema.SynthesisMetric{Value: f.INP.Value, Rating: f.INP.Rating},
		Regressions:      regressions,
		CollectionPeriod: f.CollectionPeriod,
		TrendPoints:      len(f.History.LCP.Values),
	}
}

// Synthesizer writes the final per-domain report and the batch comparison.
type Synthesizer struct {
	gen     contract.TextGenerator
	prompts *prompts.Loader
}

// NewSynthesizer creates a Synthesizer. gen may be nil, in which case every call
// returns the unavailable placeholder.
func NewSynthesizer(gen contract.TextGenerator, loader *prompts.Loader) *Synthesizer {
	return &Synthesizer{gen: gen, prompts: loader}
}

// Synthesize writes the report for one domain from its reduced projection and the
// narrator's trend notes. It never fails.
func (s *Synthesizer) Synthesize(ctx context.Context, domain string, input schema.SynthesisInput, trendNotes string) Narrative {
	return generate(ctx, s.gen, "Report", func() (prompts.Prompt, error) {
		data, err := json.MarshalIndent(input, "", "  ")
		if err != nil {
			return prompts.Prompt{}, err
		}
		return s.prompts.BuildSynthesizerPrompt(prompts.SynthesizerData{
			Domain:     domain,
			InputJSON:  string(data),
			TrendNotes: trendNotes,
		})
	})
}

// Compare builds the batch comparison of results. The scoreboard and verdict are
// computed here so every domain is present whatever the model answers; the
// model only contributes the narrative. It never fails.
func (s *Synthesizer) Compare(ctx context.Context, results []schema.AnalysisResult) (*schema.ComparisonReport, Narrative) {
	board := algo.BuildScoreboard(results)
	narrative := generate(ctx, s.gen, "Comparison", func() (prompts.Prompt, error) {
		projections := make([]schema.SynthesisInput, len(results))
		for i, r := range results {
			projections[i] = ProjectForSynthesis(r)
		}
		data, err := json.MarshalIndent(projections, "", "  ")
		if err != nil {
			return prompts.Prompt{}, err
		}
		return s.prompts.BuildComparisonPrompt(prompts.ComparisonData{
			Count:       len(results),
			Scoreboard:  FormatScoreboardMarkdown(board),
			ResultsJSON: string(data),
		})
	})
	return &schema.ComparisonReport{
		Scoreboard: board,
		Verdict:    Verdict(board),
		Narrative:  narrative.Text,
	}, narrative
}
