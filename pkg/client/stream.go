package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
)

// SummarizeStream requests an AI summary for the given content and invokes
// onFragment for every chunk as it arrives. It returns the fully
// accumulated summary. On a mid-stream transport failure the fragments
// received so far are still returned together with the error, so a caller
// can keep the partial text on screen.
func (c *Client) SummarizeStream(ctx context.Context, content string, onFragment func(string)) (string, error) {
	payload := map[string]string{"content": content}
	req, err := c.newRequest(ctx, http.MethodPost, "/notes/summarize", payload)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", decodeAPIError(resp)
	}

	var summary strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			fragment := string(buf[:n])
			summary.WriteString(fragment)
			if onFragment != nil {
				onFragment(fragment)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return summary.String(), nil
			}
			return summary.String(), err
		}
	}
}
