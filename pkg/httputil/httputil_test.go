package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

func TestDecodeJSON(t *testing.T) {
	var payload struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "cloud"}`))
	w := httptest.NewRecorder()
	if err := DecodeJSON(w, r, &payload); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if payload.Name != "cloud" {
		t.Errorf("Name = %q, want cloud", payload.Name)
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var payload struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"bogus": true}`))
	w := httptest.NewRecorder()
	err := DecodeJSON(w, r, &payload)
	if err == nil {
		t.Fatal("unknown fields should be rejected")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("code = %v, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]string{"id": "abc"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["id"] != "abc" {
		t.Errorf("body = %v", body)
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", errors.New(errors.ErrCodeInvalidInput, "bad words"), http.StatusBadRequest},
		{"invalid format", errors.New(errors.ErrCodeInvalidFormat, "gif"), http.StatusBadRequest},
		{"not found", errors.New(errors.ErrCodeNotFound, "no such cloud"), http.StatusNotFound},
		{"store failure", errors.New(errors.ErrCodeStore, "mongo down"), http.StatusBadGateway},
		{"unsupported", errors.New(errors.ErrCodeUnsupported, "nope"), http.StatusNotImplemented},
		{"plain error", http.ErrBodyNotAllowed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal body: %v", err)
			}
			if resp.Error == "" {
				t.Error("error message should not be empty")
			}
		})
	}
}

func TestWriteErrorf(t *testing.T) {
	w := httptest.NewRecorder()
	WriteErrorf(w, errors.ErrCodeNotFound, "cloud %s not found", "abc")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if resp.Error != "cloud abc not found" {
		t.Errorf("error = %q", resp.Error)
	}
	if resp.Code != errors.ErrCodeNotFound {
		t.Errorf("code = %v", resp.Code)
	}
}
