package walletclient

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fonarev/gopherwallet.git/internal/models"
)

// EventSource is one open push connection. Recv blocks until the next
// event arrives or the connection dies.
type EventSource interface {
	Recv() (models.WalletEvent, error)
	Close() error
}

// StreamDialer opens push connections; a successful Dial is the
// state-machine "open" transition.
type StreamDialer interface {
	Dial(ctx context.Context) (EventSource, error)
}

// SSEDialer connects to the wallet events endpoint over Server-Sent
// Events. No third-party SSE consumer exists in the stack, so the frame
// parsing is done here: data lines accumulate until a blank line.
type SSEDialer struct {
	base  string
	token string
	hc    *http.Client
}

func NewSSEDialer(baseURL, token string) *SSEDialer {
	// no client timeout: the stream stays open indefinitely
	return &SSEDialer{base: baseURL, token: token, hc: &http.Client{}}
}

func (d *SSEDialer) Dial(ctx context.Context) (EventSource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.base+"/api/user/wallet/events", nil)
	if err != nil {
		return nil, fmt.Errorf("stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	if d.token != "" {
		req.AddCookie(&http.Cookie{Name: authCookieName, Value: d.token})
	}

	resp, err := d.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stream connect: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("stream connect: unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		resp.Body.Close()
		return nil, fmt.Errorf("stream connect: unexpected content type %q", ct)
	}
	return &sseSource{body: resp.Body, br: bufio.NewReader(resp.Body)}, nil
}

type sseSource struct {
	body io.ReadCloser
	br   *bufio.Reader
}

func (s *sseSource) Recv() (models.WalletEvent, error) {
	var data strings.Builder
	for {
		line, err := s.br.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			if data.Len() > 0 {
				return models.DecodeEvent([]byte(data.String()))
			}
		case strings.HasPrefix(line, ":"):
			// heartbeat comment
		case strings.HasPrefix(line, "data:"):
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
}

func (s *sseSource) Close() error {
	return s.body.Close()
}
