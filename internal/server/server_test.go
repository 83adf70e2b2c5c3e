package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const testConfigYAML = `gold:
  pricePerGram: "596"
  grams: "1"
holdingYears: 5
model:
  purchaseFeePerGram: "0.1575"
  purchaseFeePct: "0.021"
  custodyFeePct: "0.00315"
  redemptionFeePct: "0.00525"
`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(zap.NewNop(), 0, "test")
}

func postEditor(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/editor/schedule", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func yamlToJSON(t *testing.T) string {
	t.Helper()
	// Mirror of testConfigYAML as the editor JSON payload.
	payload := map[string]interface{}{
		"gold":         map[string]interface{}{"pricePerGram": "596", "grams": "1"},
		"holdingYears": 5,
		"model": map[string]interface{}{
			"purchaseFeePerGram": "0.1575",
			"purchaseFeePct":     "0.021",
			"custodyFeePct":      "0.00315",
			"redemptionFeePct":   "0.00525",
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return string(data)
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["version"] != "test" {
		t.Errorf("version = %q, expected test", body["version"])
	}
}

func TestHandleRateCard(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ratecard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusOK)
	}
	var body struct {
		RateCard []struct {
			FeeType string `json:"feeType"`
		} `json:"rateCard"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.RateCard) != 5 {
		t.Errorf("rate card has %d entries, expected 5", len(body.RateCard))
	}
}

func TestHandleScheduleEditor(t *testing.T) {
	handler := newTestHandler(t)

	rec := postEditor(t, handler, yamlToJSON(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d, body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		Results []struct {
			Name    string `json:"name"`
			Years   []json.RawMessage
			Summary struct {
				Total string `json:"total"`
			} `json:"summary"`
		} `json:"results"`
		Comparison struct {
			BenchmarkYears int    `json:"benchmarkYears"`
			Difference     string `json:"difference"`
		} `json:"comparison"`
		CSV string `json:"csv"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(body.Results) != 3 {
		t.Fatalf("got %d results, expected benchmark x2 + model", len(body.Results))
	}
	if body.Results[0].Summary.Total != "25.19" {
		t.Errorf("scenario 1 total = %q, expected 25.19", body.Results[0].Summary.Total)
	}
	if body.Results[1].Summary.Total != "56.48" {
		t.Errorf("scenario 2 total = %q, expected 56.48", body.Results[1].Summary.Total)
	}
	if body.Comparison.BenchmarkYears != 5 {
		t.Errorf("comparison benchmark years = %d, expected 5", body.Comparison.BenchmarkYears)
	}
	// Model matches the benchmark tier-1 rates over 5 years.
	if body.Comparison.Difference != "0.00" {
		t.Errorf("comparison difference = %q, expected 0.00", body.Comparison.Difference)
	}
	if body.CSV == "" {
		t.Error("response CSV is empty")
	}
}

func TestHandleScheduleEditorRejectsBadPayloads(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", "{not json"},
		{"malformed rate", `{"model":{"custodyFeePct":"abc"}}`},
		{"unknown timing", `{"model":{"custodyTiming":"weekly"}}`},
		{"negative holding period", `{"gold":{"pricePerGram":"596","grams":"1"},"holdingYears":-3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postEditor(t, handler, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, expected %d, body: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
		})
	}
}

func TestHandleScheduleUpload(t *testing.T) {
	handler := newTestHandler(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "config.yaml")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(testConfigYAML)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/schedule", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d, body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"csv"`) {
		t.Error("response missing CSV field")
	}
}

func TestHandleScheduleMissingFile(t *testing.T) {
	handler := newTestHandler(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/schedule", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected %d", rec.Code, http.StatusBadRequest)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/schedule"},
		{http.MethodGet, "/api/editor/schedule"},
		{http.MethodPost, "/api/version"},
		{http.MethodPost, "/api/ratecard"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, expected %d", rec.Code, http.StatusMethodNotAllowed)
			}
		})
	}
}
