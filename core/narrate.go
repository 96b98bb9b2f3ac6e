package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/huangsam/cruxaudit/internal/contract"
	"github.com/huangsam/cruxaudit/internal/prompts"
	"github.com/huangsam/cruxaudit/schema"
)

// errNoGenerator is the degradation reason when no language model is configured.
var errNoGenerator = errors.New("no language model configured")

// Narrative is generated text. When generation was unavailable or failed, Text
// holds a labeled placeholder and Degraded says why.
type Narrative struct {
	Text     string
	Degraded error
}

// placeholder builds the labeled stand-in text for a narrative stage.
func placeholder(stage string, reason error) Narrative {
	label := "failed"
	if errors.Is(reason, errNoGenerator) {
		label = "unavailable"
	}
	return Narrative{
		Text:     fmt.Sprintf("[%s %s: %v]", stage, label, reason),
		Degraded: reason,
	}
}

// generate sends the prompt from build to gen and maps every failure to a placeholder.
func generate(ctx context.Context, gen contract.TextGenerator, stage string, build func() (prompts.Prompt, error)) Narrative {
	if gen == nil {
		return placeholder(stage, errNoGenerator)
	}
	p, err := build()
	if err != nil {
		return placeholder(stage, fmt.Errorf("build prompt: %w", err))
	}
	text, err := gen.Generate(ctx, p.Text, p.Temperature)
	if err != nil {
		return placeholder(stage, err)
	}
	return Narrative{Text: text}
}

// Narrator comments on the trend stability of one domain.
type Narrator struct {
	gen     contract.TextGenerator
	prompts *prompts.Loader
}

// NewNarrator creates a Narrator. gen may be nil, in which case every call
// returns the unavailable placeholder.
func NewNarrator(gen contract.TextGenerator, loader *prompts.Loader) *Narrator {
	return &Narrator{gen: gen, prompts: loader}
}

// Narrate asks the model to classify each metric trend as flat, volatile or
// degrading on both form factors. It never fails.
func (n *Narrator) Narrate(ctx context.Context, domain string, result *schema.AnalysisResult) Narrative {
	return generate(ctx, n.gen, "Trend analysis", func() (prompts.Prompt, error) {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return prompts.Prompt{}, err
		}
		return n.prompts.BuildNarratorPrompt(prompts.NarratorData{
			Domain:           domain,
			AnalysisJSON:     string(data),
			JumpThresholdPct: schema.JumpThresholdPct,
		})
	})
}
