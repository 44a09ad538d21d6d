package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"resume-builder/internal/extract"
	"resume-builder/internal/model"
	"resume-builder/internal/stream"
	"resume-builder/pkg/ai"
	"resume-builder/pkg/logger"
)

var ErrNoAgentSucceeded = errors.New("no extraction agent succeeded")

// Emit delivers one progress event. An error aborts processing; it usually
// means the client went away.
type Emit func(stream.Event) error

// Processor turns an uploaded resume file into sanitized ResumeData,
// reporting progress as stream events.
type Processor struct {
	extractor    ai.Extractor
	agentTimeout time.Duration
}

func NewProcessor(x ai.Extractor, agentTimeout time.Duration) *Processor {
	return &Processor{extractor: x, agentTimeout: agentTimeout}
}

// agent_processing events are spread over this progress range.
const (
	agentProgressStart = 30
	agentProgressEnd   = 75
)

// Process runs the whole upload pipeline. Every failure is reported as a
// single error event before it is returned; success ends with final_data.
func (p *Processor) Process(ctx context.Context, fileName string, data []byte, emit Emit) (model.ResumeData, error) {
	log := logger.FromContext(ctx).With("file", fileName)

	if err := emit(stream.NewEvent(stream.EventConnection, 0, "Connected to resume processing stream")); err != nil {
		return model.Empty(), err
	}

	r, err := p.process(ctx, fileName, data, emit)
	if err != nil {
		log.Error("resume processing failed", "error", err)
		if ctx.Err() == nil {
			ev := stream.NewEvent(stream.EventError, 0, "Resume processing error: "+err.Error())
			ev.Error = err.Error()
			_ = emit(ev)
		}
		return model.Empty(), err
	}
	return r, nil
}

func (p *Processor) process(ctx context.Context, fileName string, data []byte, emit Emit) (model.ResumeData, error) {
	log := logger.FromContext(ctx)

	text, err := extract.Text(fileName, data)
	if err != nil {
		return model.Empty(), err
	}
	if strings.TrimSpace(text) == "" {
		return model.Empty(), errors.New("no text could be extracted from the file")
	}
	if err := emit(stream.NewEvent(stream.EventProgress, 10, fmt.Sprintf("Text extracted (%d characters)", len([]rune(text))))); err != nil {
		return model.Empty(), err
	}

	chunks := extract.Chunk(text)
	detected := chunks.Detected()
	ev := stream.NewEvent(stream.EventSectionsDetected, 20, fmt.Sprintf("Resume chunked into %d sections", len(detected)))
	ev.Sections = detected
	if err := emit(ev); err != nil {
		return model.Empty(), err
	}

	inputs := PrepareInputs(text, chunks)
	if err := emit(stream.NewEvent(stream.EventProcessingStart, 25, fmt.Sprintf("Starting %d specialized agents", len(inputs)))); err != nil {
		return model.Empty(), err
	}

	ev = stream.NewEvent(stream.EventProcessingStrategy, 28, "Agent inputs prepared")
	ev.Strategy = strategyMap(inputs)
	for _, in := range inputs {
		log.Info("agent input", "agent", in.Agent.Name, "strategy", in.Strategy, "summary", in.Strategy.Summary(), "chars", len(in.Text))
	}
	if err := emit(ev); err != nil {
		return model.Empty(), err
	}

	results, err := p.runAgents(ctx, inputs, emit)
	if err != nil {
		return model.Empty(), err
	}

	var failed []string
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, string(r.Agent))
		}
	}
	if len(failed) == len(results) {
		return model.Empty(), fmt.Errorf("%w: %v", ErrNoAgentSucceeded, results[0].Err)
	}

	msg := "All agents completed. Combining results..."
	if len(failed) > 0 {
		msg = fmt.Sprintf("%d of %d agents failed (%s), processing continued", len(failed), len(results), strings.Join(failed, ", "))
		log.Warn("partial extraction", "failed_agents", failed)
	}
	if err := emit(stream.NewEvent(stream.EventComplete, 90, msg)); err != nil {
		return model.Empty(), err
	}

	resume, err := Assemble(results)
	if err != nil {
		return model.Empty(), err
	}
	payload, err := json.Marshal(resume)
	if err != nil {
		return model.Empty(), err
	}
	ev = stream.NewEvent(stream.EventFinalData, 100, "Resume processed successfully")
	ev.Data = payload
	if err := emit(ev); err != nil {
		return model.Empty(), err
	}
	return resume, nil
}

// runAgents runs every agent concurrently. Events are emitted from the
// calling goroutine only, in completion order. Results are returned in input
// order.
func (p *Processor) runAgents(ctx context.Context, inputs []AgentInput, emit Emit) ([]AgentResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type done struct {
		idx int
		res AgentResult
	}
	finished := make(chan done, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		g.Go(func() error {
			finished <- done{idx: i, res: p.runAgent(gctx, in)}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(finished)
	}()

	results := make([]AgentResult, len(inputs))
	var emitErr error
	n := 0
	for d := range finished {
		results[d.idx] = d.res
		n++
		if emitErr != nil {
			continue
		}
		progress := agentProgressStart + n*(agentProgressEnd-agentProgressStart)/len(inputs)
		msg := fmt.Sprintf("%s agent finished", d.res.Agent)
		if !d.res.OK() {
			msg = fmt.Sprintf("%s agent failed: %v", d.res.Agent, d.res.Err)
		}
		ev := stream.NewEvent(stream.EventAgentProcessing, progress, msg)
		ev.Agent = string(d.res.Agent)
		ev.Failed = !d.res.OK()
		if err := emit(ev); err != nil {
			emitErr = err
			cancel()
		}
	}
	if emitErr != nil {
		return nil, emitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Processor) runAgent(ctx context.Context, in AgentInput) AgentResult {
	log := logger.FromContext(ctx).With("agent", in.Agent.Name)
	start := time.Now()
	res := AgentResult{Agent: in.Agent.Name}

	actx, cancel := context.WithTimeout(ctx, p.agentTimeout)
	defer cancel()

	data, err := p.extractor.Extract(actx, in.Agent, in.Text)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		log.Warn("agent failed", "error", err, "duration", res.Duration)
		return res
	}

	if res.Violations, err = ValidateStage(in.Agent, data); err != nil {
		log.Warn("stage validation unavailable", "error", err)
	} else if len(res.Violations) > 0 {
		log.Warn("stage validation", "violations", res.Violations)
	}

	if res.Data, err = CleanBullets(in.Agent.Name, data); err != nil {
		res.Err = err
		return res
	}
	log.Info("agent finished", "duration", res.Duration, "bytes", len(res.Data))
	return res
}
