package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// UploadPath is the endpoint that turns a resume file into a progress
// stream.
const UploadPath = "/api/stream-resume-processing"

// Client uploads resume files and consumes the resulting stream.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{http: resty.New().SetBaseURL(strings.TrimRight(baseURL, "/"))}
}

// NewClientWith uses an existing resty client, e.g. one with custom
// transport settings.
func NewClientWith(rc *resty.Client) *Client { return &Client{http: rc} }

// Upload posts r as the multipart field "file" and returns a Consumer over
// the response stream. No retry is attempted.
func (c *Client) Upload(ctx context.Context, fileName string, r io.Reader) (*Consumer, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "text/event-stream").
		SetFileReader("file", fileName, r).
		Post(UploadPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStreamFailed, err)
	}

	body := resp.RawBody()
	if resp.StatusCode() != http.StatusOK {
		defer body.Close()
		return nil, fmt.Errorf("%w: %s", ErrStreamFailed, errorMessage(resp.StatusCode(), body))
	}
	return Consume(ctx, body), nil
}

// errorMessage pulls a readable message out of a non-200 response.
func errorMessage(status int, body io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(body, 64<<10))
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(b, &payload) == nil {
		for _, s := range []string{payload.Message, payload.Detail, payload.Error} {
			if s != "" {
				return fmt.Sprintf("status %d: %s", status, s)
			}
		}
	}
	if s := strings.TrimSpace(string(b)); s != "" {
		return fmt.Sprintf("status %d: %s", status, truncate(s, 200))
	}
	return fmt.Sprintf("status %d", status)
}
