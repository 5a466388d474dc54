package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/synapse-edit/synapse/internal/lang"
	"github.com/synapse-edit/synapse/internal/model"
)

// SynonymClient calls the remote synonym service.
type SynonymClient struct {
	url    string
	client *http.Client
}

// NewSynonymClient returns a client for the given endpoint.
func NewSynonymClient(url string, timeout time.Duration) *SynonymClient {
	return &SynonymClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type synonymRequest struct {
	Word    string `json:"word"`
	Context string `json:"context"`
	Lang    string `json:"lang"`
}

type synonymResponse struct {
	Word     string          `json:"word"`
	Language string          `json:"language"`
	Synonyms []model.Synonym `json:"synonyms"`
	Count    int             `json:"count"`
}

// Lookup posts the word with its surrounding context and returns candidates
// in service order. When the request carries no language hint, the word's
// script decides.
func (c *SynonymClient) Lookup(ctx context.Context, req model.LookupRequest) ([]model.Synonym, error) {
	word := strings.ToLower(strings.TrimSpace(req.Word))
	if word == "" {
		return nil, fmt.Errorf("word is required")
	}
	hint := req.Lang
	if hint == "" {
		hint = lang.Detect(word)
	}

	body, err := json.Marshal(synonymRequest{Word: word, Context: req.Context, Lang: hint})
	if err != nil {
		return nil, fmt.Errorf("failed to encode lookup request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("lookup request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected lookup status: %s", resp.Status)
	}

	var payload synonymResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response: %w", err)
	}
	return payload.Synonyms, nil
}
