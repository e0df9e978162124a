package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/boddenberg/digtecnico-client-go/internal/config"
	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/handler"
	"github.com/boddenberg/digtecnico-client-go/internal/infra/observability"

	"go.uber.org/zap"
)

func mockConfig(shape string) config.MockConfig {
	return config.MockConfig{
		JWTSecret:  "test-secret",
		LoginShape: shape,
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}
}

func newRouter(t *testing.T, shape string) (http.Handler, *observability.Metrics) {
	t.Helper()
	b, err := handler.NewBackend(mockConfig(shape), zap.NewNop())
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	t.Cleanup(b.Close)
	metrics := observability.NewMetrics()
	return handler.NewRouter(b, metrics, zap.NewNop()), metrics
}

func serve(router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router, _ := newRouter(t, handler.ShapeCamel)

	rec := serve(router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	router, _ := newRouter(t, handler.ShapeCamel)

	rec := serve(router, http.MethodGet, "/readyz", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	router, _ := newRouter(t, handler.ShapeCamel)

	serve(router, http.MethodPost, "/api/mobile/auth/login", "", domain.Credential{Identifier: "ana", Secret: "wrong"})
	rec := serve(router, http.MethodGet, "/metrics", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `digtec_logins_total{result="failure"} 1`) {
		t.Errorf("expected failed login counter in metrics output")
	}
}

func TestNewBackend_RejectsUnknownShape(t *testing.T) {
	if _, err := handler.NewBackend(mockConfig("xml"), zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown login shape")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	router, metrics := newRouter(t, handler.ShapeCamel)

	rec := serve(router, http.MethodPost, "/api/mobile/auth/login", "", domain.Credential{Identifier: "ana", Secret: "nope"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] == "" || body["message"] != "Usuário ou senha inválidos" {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}
	if got := metrics.LoginCount("failure"); got != 1 {
		t.Errorf("expected 1 failed login, got %v", got)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	router, _ := newRouter(t, handler.ShapeCamel)

	rec := serve(router, http.MethodPost, "/api/mobile/auth/login", "", domain.Credential{Identifier: "ana"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestLogin_Shapes(t *testing.T) {
	tests := []struct {
		shape      string
		tokenField string
		enveloped  bool
		branchKey  string
	}{
		{handler.ShapeCamel, "accessToken", true, "organization"},
		{handler.ShapeSnake, "access_token", false, "filial"},
		{handler.ShapeFilial, "access_token", false, "filia"},
	}

	for _, tt := range tests {
		t.Run(tt.shape, func(t *testing.T) {
			router, _ := newRouter(t, tt.shape)

			rec := serve(router, http.MethodPost, "/api/mobile/auth/login", "", domain.Credential{Identifier: "joao", Secret: "tecnico123"})
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}

			var body map[string]json.RawMessage
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			payload := body
			if tt.enveloped {
				if string(body["success"]) != "true" {
					t.Fatalf("expected envelope, got %s", rec.Body.String())
				}
				if err := json.Unmarshal(body["data"], &payload); err != nil {
					t.Fatal(err)
				}
			}
			if _, ok := payload[tt.tokenField]; !ok {
				t.Errorf("expected %s in payload", tt.tokenField)
			}
			if _, ok := payload[tt.branchKey]; !ok {
				t.Errorf("expected %s in payload", tt.branchKey)
			}
		})
	}
}

func TestProtectedRoutes_RequireBearer(t *testing.T) {
	router, _ := newRouter(t, handler.ShapeCamel)

	paths := []string{
		"/api/mobile/orders",
		"/api/mobile/customers?search=silva",
		"/api/mobile/dashboard/stats",
		"/api/organizations/1/branches/1",
	}
	for _, p := range paths {
		rec := serve(router, http.MethodGet, p, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", p, rec.Code)
		}
		rec = serve(router, http.MethodGet, p, "not-a-jwt", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s with bad token: expected 401, got %d", p, rec.Code)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	router, _ := newRouter(t, handler.ShapeCamel)

	rec := serve(router, http.MethodGet, "/api/mobile/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
