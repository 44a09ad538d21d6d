package ai

import (
	"time"

	"github.com/sashabaranov/go-openai"
)

// USD per 1k tokens.
type price struct{ input, output float64 }

var pricing = map[string]price{
	"gpt-4o-mini": {input: 0.00015, output: 0.0006},
	"gpt-4o":      {input: 0.003, output: 0.01},
}

const defaultPriceModel = "gpt-4o-mini"

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Duration         time.Duration
	Cost             float64
}

func NewUsage(model string, u openai.Usage, d time.Duration) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
		Duration:         d,
		Cost:             Cost(model, u.PromptTokens, u.CompletionTokens),
	}
}

// Cost estimates the price of one call. Unknown models are priced as
// gpt-4o-mini.
func Cost(model string, promptTokens, completionTokens int) float64 {
	p, ok := pricing[model]
	if !ok {
		p = pricing[defaultPriceModel]
	}
	return float64(promptTokens)/1000*p.input + float64(completionTokens)/1000*p.output
}
