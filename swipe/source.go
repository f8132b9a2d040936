package swipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"mingl_server/models"
)

// CandidateSource is the engine's only backend boundary. The viewer and the
// event context (empty for the classic pool) are bound at construction, so
// one deck instance serves exactly one (viewer, context) pair.
type CandidateSource interface {
	FetchPage(ctx context.Context, offset, limit int) (models.CandidatePage, error)
	SubmitDecision(ctx context.Context, targetID string, kind models.DecisionKind) error
	RefreshQuota(ctx context.Context) (int, error)
	CheckMatch(ctx context.Context, targetID string) (matched bool, matchID string, err error)
}

// HTTPSource implements CandidateSource against the mingl_server routes.
type HTTPSource struct {
	BaseURL  string
	ViewerID string
	EventID  string
	Client   *http.Client
}

// NewHTTPSource builds a source for one viewer and context.
func NewHTTPSource(baseURL, viewerID, eventID string) *HTTPSource {
	return &HTTPSource{
		BaseURL:  baseURL,
		ViewerID: viewerID,
		EventID:  eventID,
		Client:   http.DefaultClient,
	}
}

// FetchPage requests one ranked candidate page.
func (s *HTTPSource) FetchPage(ctx context.Context, offset, limit int) (models.CandidatePage, error) {
	body := map[string]interface{}{
		"userId":  s.ViewerID,
		"eventId": s.EventID,
		"offset":  offset,
		"limit":   limit,
	}
	var page models.CandidatePage
	if err := s.postJSON(ctx, "/api/candidates", body, &page); err != nil {
		return models.CandidatePage{}, err
	}
	return page, nil
}

// SubmitDecision records a decision upstream. Quota refusals surface as
// ErrQuotaExceeded.
func (s *HTTPSource) SubmitDecision(ctx context.Context, targetID string, kind models.DecisionKind) error {
	body := map[string]interface{}{
		"actorId":  s.ViewerID,
		"targetId": targetID,
		"kind":     string(kind),
		"eventId":  s.EventID,
	}
	return s.postJSON(ctx, "/api/decisions", body, nil)
}

// RefreshQuota fetches the remaining daily superlike count.
func (s *HTTPSource) RefreshQuota(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/api/decisions/quota/"+s.ViewerID, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.client().Do(req)
	if err != nil {
		return 0, fmt.Errorf("quota request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quota request returned status %d", resp.StatusCode)
	}
	var out struct {
		Remaining int `json:"remaining"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode quota response: %w", err)
	}
	return out.Remaining, nil
}

// CheckMatch runs the upstream mutual-match consistency check.
func (s *HTTPSource) CheckMatch(ctx context.Context, targetID string) (bool, string, error) {
	body := map[string]interface{}{
		"actorId":  s.ViewerID,
		"targetId": targetID,
	}
	var out struct {
		Matched bool   `json:"matched"`
		MatchID string `json:"matchId"`
	}
	if err := s.postJSON(ctx, "/api/decisions/matchCheck", body, &out); err != nil {
		return false, "", err
	}
	return out.Matched, out.MatchID, nil
}

func (s *HTTPSource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

func (s *HTTPSource) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client().Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeFailure(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// decodeFailure maps the server's reason codes onto the engine's sentinel
// errors so callers can branch without parsing response bodies.
func decodeFailure(resp *http.Response) error {
	var failure struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&failure)
	switch failure.Reason {
	case "quotaExceeded":
		return ErrQuotaExceeded
	case "locationRequired":
		return ErrLocationRequired
	default:
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
}
