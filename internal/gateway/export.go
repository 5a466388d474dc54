package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/synapse-edit/synapse/internal/model"
)

const exportTimestampLayout = "2006-01-02 15:04:05"

// ExportClient calls the remote document export service.
type ExportClient struct {
	url    string
	client *http.Client
}

// NewExportClient returns a client for the given endpoint.
func NewExportClient(url string, timeout time.Duration) *ExportClient {
	return &ExportClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type exportReplacement struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Timestamp   string `json:"timestamp"`
}

type exportRequest struct {
	Text         string              `json:"text"`
	Replacements []exportReplacement `json:"replacements"`
	Format       string              `json:"format"`
}

type exportResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
	Size        int    `json:"size"`
}

// Export renders the document with its replacement history through the
// service and returns the decoded payload. The document and history are only
// read, never mutated. A decode failure counts as an export failure so no
// partial file reaches the caller.
func (c *ExportClient) Export(ctx context.Context, req model.ExportRequest) (model.ExportFile, error) {
	if req.Text == "" {
		return model.ExportFile{}, fmt.Errorf("document is empty")
	}
	if req.Format != "pdf" && req.Format != "docx" {
		return model.ExportFile{}, fmt.Errorf("unsupported format %q (use pdf or docx)", req.Format)
	}

	replacements := make([]exportReplacement, 0, len(req.Replacements))
	for _, rec := range req.Replacements {
		replacements = append(replacements, exportReplacement{
			Original:    rec.Original,
			Replacement: rec.Replacement,
			Timestamp:   rec.Timestamp.Format(exportTimestampLayout),
		})
	}

	body, err := json.Marshal(exportRequest{Text: req.Text, Replacements: replacements, Format: req.Format})
	if err != nil {
		return model.ExportFile{}, fmt.Errorf("failed to encode export request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return model.ExportFile{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return model.ExportFile{}, fmt.Errorf("export request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return model.ExportFile{}, fmt.Errorf("unexpected export status: %s", resp.Status)
	}

	var payload exportResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.ExportFile{}, fmt.Errorf("failed to decode export response: %w", err)
	}
	if payload.Filename == "" {
		return model.ExportFile{}, fmt.Errorf("export response has no filename")
	}
	content, err := base64.StdEncoding.DecodeString(payload.Content)
	if err != nil {
		return model.ExportFile{}, fmt.Errorf("failed to decode export payload: %w", err)
	}
	return model.ExportFile{
		Filename:    payload.Filename,
		ContentType: payload.ContentType,
		Content:     content,
	}, nil
}

// SaveFile writes an export payload into dir via a temp file and rename, and
// returns the final path.
func SaveFile(dir string, file model.ExportFile) (string, error) {
	if file.Filename == "" {
		return "", fmt.Errorf("export file has no name")
	}
	path := filepath.Join(dir, filepath.Base(file.Filename))
	tmpFile, err := os.CreateTemp(dir, "synapse-export-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(file.Content); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("failed to move export file: %w", err)
	}
	return path, nil
}
