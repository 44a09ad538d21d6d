package stream

import (
	"io"
	"time"
)

// Writer is the producing side of a progress stream.
type Writer struct {
	w     io.Writer
	flush func() error
}

type errFlusher interface{ Flush() error }
type flusher interface{ Flush() }

// NewWriter writes frames to w, flushing after each one when w can flush.
func NewWriter(w io.Writer) *Writer {
	sw := &Writer{w: w, flush: func() error { return nil }}
	switch f := w.(type) {
	case errFlusher:
		sw.flush = f.Flush
	case flusher:
		sw.flush = func() error { f.Flush(); return nil }
	}
	return sw
}

// Send writes e, stamping it with the current time if it has none.
func (w *Writer) Send(e Event) error {
	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	b, err := EncodeFrame(e)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.flush()
}

// Done writes the closing sentinel frame.
func (w *Writer) Done() error {
	if _, err := io.WriteString(w.w, "data: "+Done+"\n\n"); err != nil {
		return err
	}
	return w.flush()
}
