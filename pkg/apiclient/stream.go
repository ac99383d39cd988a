package apiclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

const (
	ssePrefix   = "data: "
	sseDone     = "[DONE]"
	maxSSELine  = 1024 * 1024
	acceptEvent = "text/event-stream"
)

// StreamHandlers receive the events of a stream. Any of them may be nil.
type StreamHandlers struct {
	OnMessage  func(message string)
	OnError    func(err error)
	OnComplete func()
}

func (h StreamHandlers) message(msg string) {
	if h.OnMessage != nil {
		h.OnMessage(msg)
	}
}

func (h StreamHandlers) fail(err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}

func (h StreamHandlers) complete() {
	if h.OnComplete != nil {
		h.OnComplete()
	}
}

// streamChunk is the JSON payload of a data line.
type streamChunk struct {
	Content *string `json:"content"`
	Message *string `json:"message"`
}

// Stream POSTs data to endpoint and consumes the Server-Sent-Events
// response, blocking until it ends. It never returns an error: failures go
// to OnError and a clean end of stream calls OnComplete. Cancel ctx to stop
// mid-flight.
func (c *Client) Stream(ctx context.Context, endpoint string, data any, h StreamHandlers) {
	if err := c.stream(ctx, endpoint, data, h); err != nil {
		c.logger.Debug("stream failed", "endpoint", endpoint, "error", err)
		h.fail(err)
		return
	}
	h.complete()
}

func (c *Client) stream(ctx context.Context, endpoint string, data any, h StreamHandlers) error {
	var body io.Reader
	if data != nil {
		bodyBytes, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(bodyBytes)
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, body, WithHeader("Accept", acceptEvent))
	if err != nil {
		return err
	}

	resp, err := c.do(req, c.target(endpoint))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return httpError(resp, respBody)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), maxSSELine)

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if !strings.HasPrefix(line, ssePrefix) {
			continue
		}

		payload := strings.TrimPrefix(line, ssePrefix)
		if payload == sseDone {
			continue
		}

		msg, ok := parseChunk(payload)
		if !ok {
			continue
		}
		c.metrics.StreamMessage()
		h.message(msg)
	}

	if err := scanner.Err(); err != nil {
		return networkError(fmt.Errorf("failed to read stream: %w", err))
	}

	// A cancelled request can end the body without a read error.
	if err := ctx.Err(); err != nil {
		return networkError(err)
	}

	return nil
}

// parseChunk extracts the text to forward from a data payload. Payloads that
// are not JSON objects are forwarded as is; objects without content or
// message are skipped.
func parseChunk(payload string) (string, bool) {
	var chunk streamChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return payload, true
	}

	switch {
	case chunk.Content != nil:
		return *chunk.Content, true
	case chunk.Message != nil:
		return *chunk.Message, true
	default:
		return "", false
	}
}

// StreamHandle controls a stream started with StartStream.
type StreamHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartStream runs Stream in its own goroutine.
func (c *Client) StartStream(ctx context.Context, endpoint string, data any, h StreamHandlers) *StreamHandle {
	ctx, cancel := context.WithCancel(ctx)
	handle := &StreamHandle{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(handle.done)
		defer cancel()
		c.Stream(ctx, endpoint, data, h)
	}()

	return handle
}

// Stop cancels the stream. It is safe to call more than once.
func (s *StreamHandle) Stop() {
	s.once.Do(s.cancel)
}

// Done is closed once the stream has finished and its last callback returned.
func (s *StreamHandle) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the stream has finished.
func (s *StreamHandle) Wait() {
	<-s.done
}
