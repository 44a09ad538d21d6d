package usecase

import (
	"encoding/json"
	"strings"
	"time"

	"resume-builder/internal/extract"
	"resume-builder/pkg/ai/agents"
)

// Strategy names how an agent's input was chosen.
type Strategy string

const (
	StrategyChunkedSection     Strategy = "chunked_section"
	StrategyChunkedWithContext Strategy = "chunked_with_context"
	StrategyFullAlways         Strategy = "full_resume_always"
	StrategyFullFallback       Strategy = "full_resume_fallback"
)

func (s Strategy) Summary() string {
	switch s {
	case StrategyChunkedSection:
		return "Using chunked section"
	case StrategyChunkedWithContext:
		return "Using chunked section + context"
	case StrategyFullAlways:
		return "Using full resume (certification rule)"
	case StrategyFullFallback:
		return "Using full resume (section missing)"
	}
	return string(s)
}

// headerContext is how much of the resume start the header agent sees in
// front of its own chunk.
const headerContext = 1000

type AgentInput struct {
	Agent    agents.Agent
	Text     string
	Strategy Strategy
}

type AgentResult struct {
	Agent    agents.Name
	Data     json.RawMessage
	Err      error
	Duration time.Duration
	// Violations lists stage validation failures. They are reported only.
	Violations []string
}

func (r AgentResult) OK() bool { return r.Err == nil }

// PrepareInputs picks the text every agent works on. Certifications are
// often scattered across a resume, so that agent always reads everything.
func PrepareInputs(raw string, chunks extract.Chunks) []AgentInput {
	all := agents.All()
	out := make([]AgentInput, 0, len(all))
	for _, a := range all {
		in := AgentInput{Agent: a}
		section := strings.TrimSpace(chunks.Get(string(a.Name)))
		switch {
		case a.Name == agents.Certifications:
			in.Text, in.Strategy = raw, StrategyFullAlways
		case section == "":
			in.Text, in.Strategy = raw, StrategyFullFallback
		case a.Name == agents.Header:
			in.Text = firstRunes(raw, headerContext) + "\n\n--- HEADER SECTION ---\n" + section
			in.Strategy = StrategyChunkedWithContext
		default:
			in.Text, in.Strategy = section, StrategyChunkedSection
		}
		out = append(out, in)
	}
	return out
}

func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// strategyMap is the processing_strategy event payload.
func strategyMap(inputs []AgentInput) map[string]string {
	m := make(map[string]string, len(inputs))
	for _, in := range inputs {
		m[string(in.Agent.Name)] = string(in.Strategy)
	}
	return m
}
