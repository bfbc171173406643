package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/yeshlogin/internal/common"
)

// ProfileTransport performs one profile lookup and returns the raw status
// and body. A non-nil error means no response was obtained.
type ProfileTransport interface {
	Lookup(ctx context.Context, hc *http.Client, token, endpoint string) (int, []byte, error)
}

// DirectTransport issues GET <base><endpoint> with the bearer token.
type DirectTransport struct {
	baseURL string
}

func NewDirectTransport(baseURL string) *DirectTransport {
	return &DirectTransport{baseURL: strings.TrimRight(baseURL, "/")}
}

func (t *DirectTransport) Lookup(ctx context.Context, hc *http.Client, token, endpoint string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	return do(hc, req)
}

// ForwardTransport posts {token, endpoint} to the forwarding server, which
// performs the lookup on the client's behalf.
type ForwardTransport struct {
	forwarderURL string
}

func NewForwardTransport(forwarderURL string) *ForwardTransport {
	return &ForwardTransport{forwarderURL: strings.TrimRight(forwarderURL, "/")}
}

type forwardRequest struct {
	Token    string `json:"token"`
	Endpoint string `json:"endpoint,omitempty"`
}

func (t *ForwardTransport) Lookup(ctx context.Context, hc *http.Client, token, endpoint string) (int, []byte, error) {
	fr := forwardRequest{Token: token}
	if endpoint != common.DefaultProfileEndpoint {
		fr.Endpoint = endpoint
	}
	payload, err := json.Marshal(fr)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal forward request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.forwarderURL+common.ForwardPath, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return do(hc, req)
}

func do(hc *http.Client, req *http.Request) (int, []byte, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
