package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"resume-builder/internal/model"
	"resume-builder/pkg/logger"
)

type State int32

const (
	StateConnecting State = iota
	StateReceiving
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReceiving:
		return "receiving"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

var (
	// ErrIncomplete means the stream ended without a terminal event.
	ErrIncomplete = errors.New("stream ended before final data")
	// ErrStreamFailed wraps transport and read failures.
	ErrStreamFailed = errors.New("stream failed")
)

// RemoteError is the message of an error event.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// maxFrame bounds a single frame; final_data carries a whole resume.
const maxFrame = 8 << 20

// Consumer reads one progress stream. Events are delivered on Events in
// transmission order; the result is available from Wait once the stream
// has ended.
type Consumer struct {
	state  atomic.Int32
	events chan Event
	done   chan struct{}

	result model.ResumeData
	err    error

	closeOnce sync.Once
	body      io.ReadCloser
}

// Consume starts reading body. Cancelling ctx closes body and fails the
// stream without delivering further events.
func Consume(ctx context.Context, body io.ReadCloser) *Consumer {
	c := &Consumer{
		events: make(chan Event),
		done:   make(chan struct{}),
		body:   body,
	}
	c.state.Store(int32(StateConnecting))
	go c.run(ctx)
	return c
}

func (c *Consumer) State() State { return State(c.state.Load()) }

// Events is closed when the stream ends.
func (c *Consumer) Events() <-chan Event { return c.events }

// Wait blocks until the stream ends and returns the sanitized resume of the
// final_data event. Events not yet received are discarded.
func (c *Consumer) Wait() (model.ResumeData, error) {
	for range c.events {
	}
	<-c.done
	return c.result, c.err
}

func (c *Consumer) close() {
	c.closeOnce.Do(func() { _ = c.body.Close() })
}

func (c *Consumer) fail(err error) {
	c.state.Store(int32(StateFailed))
	c.err = err
}

func (c *Consumer) run(ctx context.Context) {
	log := logger.FromContext(ctx)
	defer close(c.done)
	defer close(c.events)
	defer c.close()

	stop := context.AfterFunc(ctx, c.close)
	defer stop()

	sc := bufio.NewScanner(c.body)
	sc.Buffer(make([]byte, 0, 64<<10), maxFrame)
	sc.Split(SplitFrames)

	c.state.Store(int32(StateReceiving))
	for sc.Scan() {
		if ctx.Err() != nil {
			break
		}
		e, ok, err := ParseFrame(sc.Bytes())
		if err != nil {
			log.Warn("skipping malformed stream frame", "error", err, "frame", truncate(sc.Text(), 200))
			continue
		}
		if !ok {
			continue
		}

		var result model.ResumeData
		if e.Type == EventFinalData {
			result = model.SanitizeJSON(e.Data)
		}

		select {
		case c.events <- e:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}

		switch e.Type {
		case EventFinalData:
			c.result = result
			c.state.Store(int32(StateComplete))
			log.Info("stream complete", "progress", e.Progress)
			return
		case EventError:
			msg := e.Message
			if msg == "" {
				msg = e.Error
			}
			c.fail(&RemoteError{Message: msg})
			log.Warn("stream reported error", "message", msg)
			return
		}
	}

	if err := ctx.Err(); err != nil {
		c.fail(err)
		return
	}
	if err := sc.Err(); err != nil {
		c.fail(fmt.Errorf("%w: %v", ErrStreamFailed, err))
		return
	}
	c.fail(ErrIncomplete)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
