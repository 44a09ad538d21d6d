package stream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var frameDelim = []byte("\n\n")

// SplitFrames is a bufio.SplitFunc yielding one event frame per token. A
// partial frame stays buffered until its delimiter arrives; whatever is
// left at EOF is returned as a last frame.
func SplitFrames(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.Index(data, frameDelim); i >= 0 {
		return i + len(frameDelim), data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var errNoData = errors.New("frame has no data field")

// ParseFrame decodes one frame. ok is false for frames that carry no event:
// blank frames, comments and the Done sentinel.
func ParseFrame(frame []byte) (e Event, ok bool, err error) {
	var data [][]byte
	for _, line := range bytes.Split(frame, []byte("\n")) {
		line = bytes.TrimSuffix(line, []byte("\r"))
		switch {
		case len(line) == 0, line[0] == ':':
			continue
		case bytes.HasPrefix(line, []byte("data:")):
			v := bytes.TrimPrefix(line, []byte("data:"))
			data = append(data, bytes.TrimPrefix(v, []byte(" ")))
		}
	}
	if len(data) == 0 {
		if len(bytes.TrimSpace(frame)) == 0 || bytes.HasPrefix(bytes.TrimSpace(frame), []byte(":")) {
			return Event{}, false, nil
		}
		return Event{}, false, errNoData
	}

	payload := bytes.TrimSpace(bytes.Join(data, []byte("\n")))
	if string(payload) == Done {
		return Event{}, false, nil
	}
	if err := json.Unmarshal(payload, &e); err != nil {
		return Event{}, false, fmt.Errorf("decode event: %w", err)
	}
	if e.Type == "" {
		return Event{}, false, errors.New("event has no type")
	}
	return e, true, nil
}

// EncodeFrame renders e as a single frame.
func EncodeFrame(e Event) ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(b)+8)
	out = append(out, "data: "...)
	out = append(out, b...)
	return append(out, frameDelim...), nil
}
