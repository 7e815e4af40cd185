package smile

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/llm"
	"triage-backend/internal/shared/server/respond"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

type fakeLLM struct {
	resp   string
	prompt llm.Prompt
}

func (f *fakeLLM) CompleteJSON(ctx context.Context, prompt llm.Prompt) (json.RawMessage, error) {
	f.prompt = prompt
	return json.RawMessage(f.resp), nil
}

func TestParsePhoto(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		wantErr error
		mime    string
	}{
		{name: "png", uri: dataURI("image/png", pngHeader), mime: "image/png"},
		{name: "jpeg sniffed despite label", uri: dataURI("image/png", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")), mime: "image/jpeg"},
		{name: "empty", uri: "  ", wantErr: ErrNoPhoto},
		{name: "empty payload", uri: "data:image/png;base64,", wantErr: ErrNoPhoto},
		{name: "not data uri", uri: "https://example.com/a.png", wantErr: ErrInvalidPhoto},
		{name: "not base64 uri", uri: "data:image/png,abc", wantErr: ErrInvalidPhoto},
		{name: "bad base64", uri: "data:image/png;base64,!!!", wantErr: ErrInvalidPhoto},
		{name: "gif", uri: dataURI("image/gif", []byte("GIF89a\x01\x00\x01\x00")), wantErr: ErrUnsupportedPhoto},
		{name: "text", uri: dataURI("image/png", []byte("hello world")), wantErr: ErrUnsupportedPhoto},
		{name: "too large", uri: dataURI("image/png", append(pngHeader, make([]byte, MaxPhotoBytes)...)), wantErr: ErrPhotoTooLarge},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			photo, err := ParsePhoto(tt.uri)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if UserMessage(err) == "" {
					t.Fatalf("expected user message for %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePhoto: %v", err)
			}
			if photo.MimeType != tt.mime {
				t.Fatalf("expected %s, got %s", tt.mime, photo.MimeType)
			}
		})
	}
}

func TestAnalyzeClampsPercentage(t *testing.T) {
	tests := []struct {
		resp string
		want int
	}{
		{resp: `{"smilingPercentage": 72.6, "reason": " Big grin! "}`, want: 73},
		{resp: `{"smilingPercentage": 140, "reason": "x"}`, want: 100},
		{resp: `{"smilingPercentage": -3, "reason": "x"}`, want: 0},
	}
	for _, tt := range tests {
		fake := &fakeLLM{resp: tt.resp}
		svc := &Service{LLM: fake, VisionModel: "gpt-4o"}
		res, err := svc.Analyze(context.Background(), "guest:a", dataURI("image/png", pngHeader))
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if res.SmilingPercentage != tt.want {
			t.Fatalf("expected %d, got %d", tt.want, res.SmilingPercentage)
		}
	}
}

func TestAnalyzeSendsImageToVisionModel(t *testing.T) {
	fake := &fakeLLM{resp: `{"smilingPercentage": 50, "reason": "subtle smile"}`}
	svc := &Service{LLM: fake, VisionModel: "gpt-4o"}
	uri := dataURI("image/png", pngHeader)

	res, err := svc.Analyze(context.Background(), "guest:a", uri)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Reason != "subtle smile" {
		t.Fatalf("unexpected reason %q", res.Reason)
	}
	if fake.prompt.Model != "gpt-4o" || fake.prompt.ImageDataURI != uri {
		t.Fatalf("unexpected prompt %+v", fake.prompt)
	}
	if fake.prompt.Name != llm.TemplateSmile || fake.prompt.User == "" {
		t.Fatalf("expected smile template, got %+v", fake.prompt)
	}
}

func TestAnalyzeRequiresPercentage(t *testing.T) {
	fake := &fakeLLM{resp: `{"reason": "no number"}`}
	svc := &Service{LLM: fake}
	_, err := svc.Analyze(context.Background(), "guest:a", dataURI("image/png", pngHeader))
	var upstreamErr *llm.UpstreamServiceError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestHandlerRejectsMissingPhoto(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(&Service{LLM: &fakeLLM{}}).RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/smile", bytes.NewBufferString(`{"photoDataUri":""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var payload respond.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error != "No photo data provided." {
		t.Fatalf("unexpected message %q", payload.Error)
	}
}
