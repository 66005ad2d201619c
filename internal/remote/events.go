package remote

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/logger"
)

// Event is one message read from the server's event stream
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Notification decodes the payload as a progression notification
func (e Event) Notification() (domain.Notification, error) {
	var n domain.Notification
	if err := json.Unmarshal(e.Payload, &n); err != nil {
		return n, fmt.Errorf(ErrMsgStreamDecode, e.Type, err)
	}
	return n, nil
}

// EventHandler receives every non-keepalive event
type EventHandler func(Event) error

// Watch streams the user's notifications until ctx is cancelled, reconnecting
// with exponential backoff when the connection drops.
func (c *Client) Watch(ctx context.Context, userID string, handler EventHandler) error {
	// The API client timeout would cut long-lived streams short
	stream := &http.Client{Transport: c.Client.Transport}
	backoff := streamInitialBackoff

	for {
		connected, err := c.stream(ctx, stream, userID, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if connected {
			backoff = streamInitialBackoff
		}
		logger.FromContext(ctx).Warn(LogMsgStreamLost, "error", err, "backoff", backoff)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= streamBackoffMultiplier
		if backoff > streamMaxBackoff {
			backoff = streamMaxBackoff
		}
	}
}

func (c *Client) stream(ctx context.Context, hc *http.Client, userID string, handler EventHandler) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+PathEvents, nil)
	if err != nil {
		return false, fmt.Errorf(ErrMsgRequestFailed, err)
	}
	req.Header.Set(HeaderAccept, ContentTypeEventStream)
	req.Header.Set("Cache-Control", "no-cache")
	if c.APIKey != "" {
		req.Header.Set(HeaderAPIKey, c.APIKey)
	}
	req.Header.Set(HeaderUserID, userID)

	resp, err := hc.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf(ErrMsgStreamStatus, resp.StatusCode)
	}
	logger.FromContext(ctx).Info(LogMsgStreamConnected, "url", c.BaseURL+PathEvents)

	return true, readEvents(ctx, bufio.NewScanner(resp.Body), handler)
}

// readEvents parses "id:", "event:" and "data:" lines; a blank line ends an event.
func readEvents(ctx context.Context, scanner *bufio.Scanner, handler EventHandler) error {
	scanner.Buffer(make([]byte, 0, 4096), streamMaxLineBytes)

	var eventType, data string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if data != "" {
				dispatch(ctx, eventType, data, handler)
			}
			eventType, data = "", ""
		case strings.HasPrefix(line, "event: "):
			eventType = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
	return scanner.Err()
}

func dispatch(ctx context.Context, eventType, data string, handler EventHandler) {
	if eventType == EventTypeKeepalive || eventType == EventTypeConnected {
		return
	}
	var ev Event
	if err := json.Unmarshal([]byte(data), &ev); err != nil {
		logger.FromContext(ctx).Warn(LogMsgStreamHandlerFail, "event_type", eventType, "error", err)
		return
	}
	if ev.Type == "" {
		ev.Type = eventType
	}
	if err := handler(ev); err != nil {
		logger.FromContext(ctx).Warn(LogMsgStreamHandlerFail, "event_type", ev.Type, "error", err)
	}
}
