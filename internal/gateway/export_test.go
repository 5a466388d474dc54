package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/synapse-edit/synapse/internal/model"
)

func TestExportClientDecodesPayload(t *testing.T) {
	var got exportRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		response := exportResponse{
			Filename:    "synapse-export-20250314-150926.pdf",
			ContentType: "application/pdf",
			Content:     base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake")),
			Size:        13,
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewExportClient(server.URL, 5*time.Second)
	stamp := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	file, err := client.Export(context.Background(), model.ExportRequest{
		Text: "the quick fox",
		Replacements: []model.Replacement{
			{Original: "fast", Replacement: "quick", Timestamp: stamp},
		},
		Format: "pdf",
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if file.Filename != "synapse-export-20250314-150926.pdf" {
		t.Fatalf("unexpected filename: %q", file.Filename)
	}
	if string(file.Content) != "%PDF-1.4 fake" {
		t.Fatalf("unexpected content: %q", file.Content)
	}
	if len(got.Replacements) != 1 || got.Replacements[0].Timestamp != "2025-03-14 15:09:26" {
		t.Fatalf("expected human-readable timestamps, got %+v", got.Replacements)
	}
}

func TestExportClientRejectsEmptyDocument(t *testing.T) {
	client := NewExportClient("http://unused.invalid", 5*time.Second)
	if _, err := client.Export(context.Background(), model.ExportRequest{Text: "", Format: "pdf"}); err == nil {
		t.Fatalf("expected an error for an empty document")
	}
}

func TestExportClientRejectsUnknownFormat(t *testing.T) {
	client := NewExportClient("http://unused.invalid", 5*time.Second)
	if _, err := client.Export(context.Background(), model.ExportRequest{Text: "x", Format: "odt"}); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}

func TestExportClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewExportClient(server.URL, 5*time.Second)
	if _, err := client.Export(context.Background(), model.ExportRequest{Text: "x", Format: "pdf"}); err == nil {
		t.Fatalf("expected an error for a non-success status")
	}
}

func TestExportClientBadBase64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte(`{"filename":"a.pdf","contentType":"application/pdf","content":"%%%"}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewExportClient(server.URL, 5*time.Second)
	if _, err := client.Export(context.Background(), model.ExportRequest{Text: "x", Format: "pdf"}); err == nil {
		t.Fatalf("expected a decode failure to fail the export")
	}
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveFile(dir, model.ExportFile{
		Filename: "../escape.pdf",
		Content:  []byte("payload"),
	})
	if err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected file inside %s, got %s", dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected contents: %q", data)
	}
}
