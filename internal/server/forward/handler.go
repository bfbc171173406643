package forward

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/dmitrijs2005/yeshlogin/internal/common"
	"github.com/dmitrijs2005/yeshlogin/internal/logging"
)

// rawPreviewLen bounds the remote body echoed back when it is not JSON.
const rawPreviewLen = 200

var errInvalidEndpoint = errors.New("invalid endpoint")

// Request is the forwarding endpoint's body.
type Request struct {
	Token    string `json:"token"`
	Endpoint string `json:"endpoint,omitempty"`
}

// Bind implements render.Binder.
func (r *Request) Bind(_ *http.Request) error {
	r.Token = strings.TrimSpace(r.Token)
	if r.Endpoint == "" {
		r.Endpoint = common.DefaultProfileEndpoint
	}
	if !strings.HasPrefix(r.Endpoint, "/") || strings.HasPrefix(r.Endpoint, "//") || strings.Contains(r.Endpoint, "://") {
		return errInvalidEndpoint
	}
	return nil
}

type Handler struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
	redact  logging.Redactor
}

func NewHandler(baseURL string, client *http.Client, logger logging.Logger, redact logging.Redactor) *Handler {
	return &Handler{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger.With("module", "forward"),
		redact:  redact,
	}
}

// Routes mounts the endpoint on r. Every method is routed to the handler so
// that non-POST requests get the JSON 405 body. Bodies are decoded as JSON
// whatever Content-Type the caller sent.
func (h *Handler) Routes(r chi.Router) {
	r.With(render.SetContentType(render.ContentTypeJSON)).HandleFunc(common.ForwardPath, h.UserInfo)
}

// UserInfo forwards one profile lookup.
func (h *Handler) UserInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, r, http.StatusMethodNotAllowed, map[string]any{"error": "Method not allowed"})
		return
	}

	req := &Request{}
	if err := render.Bind(r, req); err != nil {
		if errors.Is(err, errInvalidEndpoint) {
			writeJSON(w, r, http.StatusBadRequest, map[string]any{"error": "Invalid endpoint"})
			return
		}
		// An unreadable body carries no token either.
		writeJSON(w, r, http.StatusBadRequest, map[string]any{"error": "Missing token"})
		return
	}
	if req.Token == "" {
		writeJSON(w, r, http.StatusBadRequest, map[string]any{"error": "Missing token"})
		return
	}

	h.logger.Debug(ctx, "forwarding user info request", "endpoint", req.Endpoint, "token", h.redact.Token(req.Token))

	status, body, err := h.fetch(ctx, req.Token, req.Endpoint)
	if err != nil {
		h.logger.Error(ctx, "forwarding failed", "endpoint", req.Endpoint, "error", err)
		writeJSON(w, r, http.StatusInternalServerError, map[string]any{
			"error":   "Proxy failed to fetch user info",
			"message": err.Error(),
		})
		return
	}

	h.logger.Debug(ctx, "remote responded", "endpoint", req.Endpoint, "status", status)

	var data any = map[string]any{}
	blank := len(strings.TrimSpace(string(body))) == 0
	if !blank {
		if err := json.Unmarshal(body, &data); err != nil {
			h.logger.Warn(ctx, "remote returned non-JSON body", "endpoint", req.Endpoint, "status", status)
			writeJSON(w, r, http.StatusInternalServerError, map[string]any{
				"error": "Invalid JSON response from API",
				"raw":   truncate(string(body), rawPreviewLen),
			})
			return
		}
	}

	if status < 200 || status > 299 {
		writeJSON(w, r, status, map[string]any{
			"error":    remoteErrorMessage(status),
			"details":  data,
			"status":   status,
			"endpoint": req.Endpoint,
		})
		return
	}

	if blank {
		writeJSON(w, r, http.StatusOK, data)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) fetch(ctx context.Context, token, endpoint string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+endpoint, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func remoteErrorMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "unauthorized: token is invalid or expired"
	case http.StatusForbidden:
		return "forbidden: token is not allowed to access this resource"
	default:
		return "API request failed"
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
