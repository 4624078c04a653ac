package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"simon-jot/internal/service"
	"simon-jot/internal/service/mocks"
)

type pinger struct {
	err error
}

func (p pinger) PingContext(context.Context) error { return p.err }
func (p pinger) Ping(context.Context) error        { return p.err }

func newTestDeps(t *testing.T) (*Deps, *mocks.MockJotService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockJotService := mocks.NewMockJotService(ctrl)

	return &Deps{
		JotService: mockJotService,
		DB:         pinger{},
		Backend:    pinger{},
		IndexHTML:  "<html><body>Test</body></html>",
	}, mockJotService
}

func TestNewRouter(t *testing.T) {
	deps, _ := newTestDeps(t)

	router := NewRouter(deps)

	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	deps, mockJotService := newTestDeps(t)
	mockJotService.EXPECT().GetJot(gomock.Any(), "jot-1").Return(service.Jot{ID: "jot-1"}, nil)
	mockJotService.EXPECT().CloseJot(gomock.Any(), "jot-1").Return(nil)

	router := NewRouter(deps)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "GET root serves HTML",
			method:     http.MethodGet,
			path:       "/",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /api/health",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /api/jots/{id} mounted",
			method:     http.MethodGet,
			path:       "/api/jots/jot-1",
			wantStatus: http.StatusOK,
		},
		{
			name:       "PUT /api/jots/{id}/content exists",
			method:     http.MethodPut,
			path:       "/api/jots/jot-1/content",
			wantStatus: http.StatusBadRequest, // Bad request due to empty body, but route exists
		},
		{
			name:       "DELETE /api/jots/{id}/editor",
			method:     http.MethodDelete,
			path:       "/api/jots/jot-1/editor",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "GET /api/jots/{id}/query method not allowed",
			method:     http.MethodGet,
			path:       "/api/jots/jot-1/query",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "OPTIONS preflight",
			method:     http.MethodOptions,
			path:       "/api/jots",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_RootServesHTML(t *testing.T) {
	deps, _ := newTestDeps(t)
	htmlContent := "<html><body>Test HTML</body></html>"
	deps.IndexHTML = htmlContent

	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Router GET / status = %v, want %v", w.Code, http.StatusOK)
	}
	if w.Body.String() != htmlContent {
		t.Errorf("Router GET / body = %v, want %v", w.Body.String(), htmlContent)
	}
	if w.Header().Get("Content-Type") != "text/html; charset=utf-8" {
		t.Errorf("Router GET / Content-Type = %v, want text/html; charset=utf-8", w.Header().Get("Content-Type"))
	}
}

func TestRouter_HealthReflectsDependencies(t *testing.T) {
	tests := []struct {
		name       string
		db         error
		backend    error
		wantStatus int
	}{
		{name: "healthy", wantStatus: http.StatusOK},
		{name: "backend down", backend: errors.New("refused"), wantStatus: http.StatusServiceUnavailable},
		{name: "database down", db: errors.New("closed"), wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _ := newTestDeps(t)
			deps.DB = pinger{err: tt.db}
			deps.Backend = pinger{err: tt.backend}

			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			w := httptest.NewRecorder()
			NewRouter(deps).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("GET /api/health status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	deps, _ := newTestDeps(t)

	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}
