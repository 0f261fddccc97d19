package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AnswerAPI implements Provider against an answer-style HTTP endpoint that
// accepts a query plus optional recency filter and returns synthesized text
// with consulted sources.
type AnswerAPI struct {
	BaseURL    string
	APIKey     string // optional bearer token
	HTTPClient *http.Client
	UserAgent  string // optional custom UA
}

func (a *AnswerAPI) Name() string { return "answerapi" }

func (a *AnswerAPI) Search(ctx context.Context, query string, recency Recency) (Answer, error) {
	if a.BaseURL == "" {
		return Answer{}, fmt.Errorf("missing research base url")
	}
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return Answer{}, err
	}
	if !strings.HasSuffix(u.Path, "/answer") {
		u.Path = strings.TrimRight(u.Path, "/") + "/answer"
	}

	payload := map[string]string{"query": query}
	if recency != RecencyNone {
		payload["recency_filter"] = string(recency)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Answer{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return Answer{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.APIKey)
	}
	if a.UserAgent != "" {
		req.Header.Set("User-Agent", a.UserAgent)
	}

	hc := a.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return Answer{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Answer{}, fmt.Errorf("research status: %d", resp.StatusCode)
	}

	var ar answerResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return Answer{}, err
	}
	out := Answer{Text: strings.TrimSpace(ar.Answer)}
	for _, s := range ar.Sources {
		if v := strings.TrimSpace(s.URL); v != "" {
			out.Sources = append(out.Sources, v)
		}
	}
	return out, nil
}

type answerResponse struct {
	Answer  string `json:"answer"`
	Sources []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"sources"`
}
