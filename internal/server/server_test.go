package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smallbiznis/paperpress/internal/cache"
	"github.com/smallbiznis/paperpress/internal/config"
	"github.com/smallbiznis/paperpress/internal/design"
	"github.com/smallbiznis/paperpress/internal/render/export"
	"github.com/smallbiznis/paperpress/internal/render/preview"
	templatedomain "github.com/smallbiznis/paperpress/internal/template/domain"
)

type stubTemplateService struct {
	getByID   func(ctx context.Context, id string) (*templatedomain.Response, error)
	update    func(ctx context.Context, req templatedomain.UpdateRequest) (*templatedomain.Response, error)
	deleteErr error
}

func (s *stubTemplateService) List(ctx context.Context, req templatedomain.ListRequest) (templatedomain.ListResponse, error) {
	return templatedomain.ListResponse{}, nil
}

func (s *stubTemplateService) GetByID(ctx context.Context, id string) (*templatedomain.Response, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, templatedomain.ErrNotFound
}

func (s *stubTemplateService) Create(ctx context.Context, req templatedomain.CreateRequest) (*templatedomain.Response, error) {
	return nil, templatedomain.ErrInvalidName
}

func (s *stubTemplateService) Update(ctx context.Context, req templatedomain.UpdateRequest) (*templatedomain.Response, error) {
	if s.update != nil {
		return s.update(ctx, req)
	}
	return nil, templatedomain.ErrNotFound
}

func (s *stubTemplateService) Delete(ctx context.Context, id string) error {
	return s.deleteErr
}

func (s *stubTemplateService) Duplicate(ctx context.Context, id string) (*templatedomain.Response, error) {
	return nil, templatedomain.ErrNotFound
}

func (s *stubTemplateService) SetDefault(ctx context.Context, id string) (*templatedomain.Response, error) {
	return nil, templatedomain.ErrNotFound
}

func (s *stubTemplateService) RecordUse(ctx context.Context, id string) (*templatedomain.Response, error) {
	return nil, templatedomain.ErrNotFound
}

func newTestServer(t *testing.T, svc templatedomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	s := &Server{
		cfg:         config.Default(),
		log:         zap.NewNop(),
		engine:      engine,
		templateSvc: svc,
		previewer:   preview.NewCachingRenderer(preview.NewHTMLRenderer(), cache.NewTTLCache[string, string]()),
		exporter:    export.NewPDFRenderer(),
		previewRate: newRateLimiter(1000, time.Minute),
	}
	s.RegisterRoutes()
	return s
}

func doRequest(s *Server, method, path string, body []byte, orgID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if orgID != "" {
		req.Header.Set("X-Org-ID", orgID)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestOrgHeaderRequired(t *testing.T) {
	s := newTestServer(t, &stubTemplateService{})

	w := doRequest(s, http.MethodGet, "/api/templates", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without org header, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "X-Org-ID") {
		t.Fatalf("expected field-scoped error, got %s", w.Body.String())
	}
}

func TestPreviewReturnsHTML(t *testing.T) {
	s := newTestServer(t, &stubTemplateService{})

	payload := map[string]any{
		"design": design.Default(),
		"document": map[string]any{
			"invoice_number": "INV-100",
			"items": []map[string]any{
				{"description": "Design work", "quantity": 2, "unit_price_cents": 150000},
			},
		},
		"zoom_percent": 150,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	w := doRequest(s, http.MethodPost, "/api/templates/preview", body, "12345")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "INV-100") {
		t.Fatalf("expected invoice number in preview")
	}
	if !strings.Contains(w.Body.String(), "scale(1.50)") {
		t.Fatalf("expected zoom transform in preview")
	}
	if w.Header().Get("ETag") == "" {
		t.Fatalf("expected content fingerprint ETag on preview response")
	}
}

func TestPreviewInvalidDesignReturnsFieldErrors(t *testing.T) {
	s := newTestServer(t, &stubTemplateService{})

	cfg := design.Default()
	cfg.Colors.Primary = "not-a-color"
	payload := map[string]any{"design": cfg}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	w := doRequest(s, http.MethodPost, "/api/templates/preview", body, "12345")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp struct {
		Error  string                   `json:"error"`
		Fields []design.ValidationError `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error != "validation_error" {
		t.Fatalf("expected validation_error, got %q", resp.Error)
	}
	if len(resp.Fields) == 0 || resp.Fields[0].Field != "colors.primary" {
		t.Fatalf("expected colors.primary field error, got %+v", resp.Fields)
	}
}

func TestSystemTemplateUpdateMapsTo403(t *testing.T) {
	s := newTestServer(t, &stubTemplateService{
		update: func(ctx context.Context, req templatedomain.UpdateRequest) (*templatedomain.Response, error) {
			return nil, templatedomain.ErrSystemTemplateImmutable
		},
	})

	w := doRequest(s, http.MethodPatch, "/api/templates/123", []byte(`{"name":"x"}`), "12345")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestDefaultDeletionMapsTo409(t *testing.T) {
	s := newTestServer(t, &stubTemplateService{deleteErr: templatedomain.ErrDefaultDeletionConflict})

	w := doRequest(s, http.MethodDelete, "/api/templates/123", nil, "12345")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestExportReturnsPDF(t *testing.T) {
	defaultDesign := design.Default()
	s := newTestServer(t, &stubTemplateService{
		getByID: func(ctx context.Context, id string) (*templatedomain.Response, error) {
			return &templatedomain.Response{ID: id, Name: "Classic", Design: defaultDesign}, nil
		},
	})

	body := []byte(`{"document":{"invoice_number":"INV-7","items":[{"description":"Work","quantity":1,"unit_price_cents":5000}]}}`)
	w := doRequest(s, http.MethodPost, "/api/templates/123/export", body, "12345")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf content type, got %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected pdf magic bytes")
	}
}

func TestPreviewRateLimited(t *testing.T) {
	s := newTestServer(t, &stubTemplateService{})
	s.previewRate = newRateLimiter(1, time.Minute)

	payload, err := json.Marshal(map[string]any{"design": design.Default()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	first := doRequest(s, http.MethodPost, "/api/templates/preview", payload, "12345")
	if first.Code != http.StatusOK {
		t.Fatalf("expected first preview to pass, got %d", first.Code)
	}
	second := doRequest(s, http.MethodPost, "/api/templates/preview", payload, "12345")
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
}
