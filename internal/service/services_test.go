package service_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/service"

	"go.uber.org/zap"
)

func TestSearchCustomers_BareArray(t *testing.T) {
	h := newHarness(t, reply(http.StatusOK, `[{"id":1,"nome":"Maria Silva","plano":"200MB"}]`))
	svc := service.NewCustomerService(h.client, zap.NewNop())

	customers, err := svc.SearchCustomers(context.Background(), "silva")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(customers))
	}
	if customers[0].ID != "1" || customers[0].Nome != "Maria Silva" {
		t.Errorf("unexpected customer: %+v", customers[0])
	}

	req := h.rec.all()[0]
	if req.Path != "/api/mobile/customers" || req.Query != "search=silva" {
		t.Errorf("unexpected request %s?%s", req.Path, req.Query)
	}
}

func TestSearchCustomers_PropagatesAPIError(t *testing.T) {
	h := newHarness(t, reply(http.StatusBadGateway, `{"error":"upstream","message":"ERP indisponível"}`))
	svc := service.NewCustomerService(h.client, zap.NewNop())

	_, err := svc.SearchCustomers(context.Background(), "silva")
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "ERP indisponível" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListOrders_QueryString(t *testing.T) {
	h := newHarness(t, reply(http.StatusOK,
		`{"success":true,"data":{"data":[{"id":"1","numero":"OS-1","status":"aberta"}],"total":1,"page":2,"pageSize":5,"totalPages":1}}`))
	svc := service.NewOrderService(h.client, zap.NewNop())

	page, err := svc.ListOrders(context.Background(), domain.OrderFilter{Page: 2, PageSize: 5, Status: "aberta"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 1 || len(page.Data) != 1 || page.Data[0].Numero != "OS-1" {
		t.Errorf("unexpected page: %+v", page)
	}

	req := h.rec.all()[0]
	if req.Path != "/api/mobile/orders" || req.Query != "page=2&pageSize=5&status=aberta" {
		t.Errorf("unexpected request %s?%s", req.Path, req.Query)
	}
}

func TestOrderService_Endpoints(t *testing.T) {
	h := newHarness(t, reply(http.StatusOK, `{"success":true,"data":{"id":"42"}}`))
	svc := service.NewOrderService(h.client, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.GetOrderDetail(ctx, "42"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateOrder(ctx, "42", map[string]any{"status": "em_andamento"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CloseOrder(ctx, "42", domain.CloseOrderRequest{Observacoes: "ok"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateOrder(ctx, domain.Order{Descricao: "nova"}); err != nil {
		t.Fatal(err)
	}

	want := []captured{
		{Method: http.MethodGet, Path: "/api/mobile/orders/42"},
		{Method: http.MethodPut, Path: "/api/mobile/orders/42"},
		{Method: http.MethodPost, Path: "/api/mobile/orders/42/close"},
		{Method: http.MethodPost, Path: "/api/mobile/orders"},
	}
	got := h.rec.all()
	if len(got) != len(want) {
		t.Fatalf("expected %d requests, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Method != w.Method || got[i].Path != w.Path {
			t.Errorf("request %d: expected %s %s, got %s %s", i, w.Method, w.Path, got[i].Method, got[i].Path)
		}
	}
	if !strings.Contains(got[1].Body, `"status":"em_andamento"`) {
		t.Errorf("unexpected update body %s", got[1].Body)
	}
}

func TestGetClosedOrders_NoFiltersOmitsQuery(t *testing.T) {
	h := newHarness(t, reply(http.StatusOK, `[]`))
	svc := service.NewOrderService(h.client, zap.NewNop())

	orders, err := svc.GetClosedOrders(context.Background(), domain.ClosedOrderFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected empty list, got %d", len(orders))
	}
	if req := h.rec.all()[0]; req.Path != "/api/mobile/orders/closed" || req.Query != "" {
		t.Errorf("unexpected request %s?%s", req.Path, req.Query)
	}
}

func TestDomainService_WrongShapeIsInvalidResponse(t *testing.T) {
	h := newHarness(t, reply(http.StatusOK, `{"success":true,"data":"not-a-list"}`))
	svc := service.NewOrderService(h.client, zap.NewNop())

	_, err := svc.GetOpenOrders(context.Background())
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.Kind != domain.KindInvalidResponse {
		t.Fatalf("expected invalid_response, got %v", err)
	}
}

func TestClientService_Search(t *testing.T) {
	h := newHarness(t, reply(http.StatusOK, `[{"id":"c1","nome":"Padaria Central"}]`))
	svc := service.NewClientService(h.client, zap.NewNop())

	clients, err := svc.SearchClients(context.Background(), "padaria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 1 || clients[0].Nome != "Padaria Central" {
		t.Errorf("unexpected clients: %+v", clients)
	}
	if req := h.rec.all()[0]; req.Path != "/api/mobile/clients/search" || req.Query != "q=padaria" {
		t.Errorf("unexpected request %s?%s", req.Path, req.Query)
	}
}

func TestWarehouseService_UpdateStockUsesPut(t *testing.T) {
	h := newHarness(t, reply(http.StatusOK, `{"id":"m1","nome":"Conector RJ45","quantidade":40}`))
	svc := service.NewWarehouseService(h.client, zap.NewNop())

	m, err := svc.UpdateStock(context.Background(), domain.StockUpdateRequest{MaterialID: "m1", Quantity: 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Quantidade != 40 {
		t.Errorf("unexpected material: %+v", m)
	}

	req := h.rec.all()[0]
	if req.Method != http.MethodPut || req.Path != "/api/mobile/warehouse/stock/update" {
		t.Errorf("unexpected request %s %s", req.Method, req.Path)
	}
	if !strings.Contains(req.Body, `"materialId":"m1"`) {
		t.Errorf("unexpected body %s", req.Body)
	}
}

func TestWarehouseService_GetStockFilters(t *testing.T) {
	h := newHarness(t, reply(http.StatusOK, `[]`))
	svc := service.NewWarehouseService(h.client, zap.NewNop())

	if _, err := svc.GetStock(context.Background(), domain.StockFilter{Category: "cabos"}); err != nil {
		t.Fatal(err)
	}
	if req := h.rec.all()[0]; req.Query != "category=cabos" {
		t.Errorf("unexpected query %q", req.Query)
	}
}

func TestDashboard_RecentOrdersDefaultLimit(t *testing.T) {
	h := newHarness(t, reply(http.StatusOK, `[]`))
	svc := service.NewDashboardService(h.client, zap.NewNop())

	if _, err := svc.GetRecentOrders(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	if req := h.rec.all()[0]; req.Path != "/api/mobile/dashboard/recent-orders" || req.Query != "limit=10" {
		t.Errorf("unexpected request %s?%s", req.Path, req.Query)
	}
}

func TestDashboard_Overview(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/mobile/dashboard/stats":
			reply(http.StatusOK, `{"ordensAbertas":3,"ordensDesignadas":5}`)(w, r)
		case "/api/mobile/dashboard/recent-orders":
			reply(http.StatusOK, `{"success":true,"data":[{"id":"1"},{"id":"2"}]}`)(w, r)
		default:
			http.NotFound(w, r)
		}
	})
	svc := service.NewDashboardService(h.client, zap.NewNop())

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overview.Stats.OrdensAbertas != 3 || len(overview.RecentOrders) != 2 {
		t.Errorf("unexpected overview: %+v", overview)
	}
}

func TestDashboard_OverviewFailure(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/mobile/dashboard/stats" {
			reply(http.StatusServiceUnavailable, `{"error":"maintenance"}`)(w, r)
			return
		}
		reply(http.StatusOK, `[]`)(w, r)
	})
	svc := service.NewDashboardService(h.client, zap.NewNop())

	if _, err := svc.Overview(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestCompanyService_UsesRootURL(t *testing.T) {
	h := newHarness(t, reply(http.StatusOK, `{"id":7,"organizationId":1,"nome":"Filial Centro"}`))
	svc := service.NewCompanyService(h.client, zap.NewNop())

	b, err := svc.GetBranchInfo(context.Background(), "1", "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != "7" || b.Nome != "Filial Centro" {
		t.Errorf("unexpected branch: %+v", b)
	}
	if req := h.rec.all()[0]; req.Path != "/api/organizations/1/branches/7" {
		t.Errorf("expected root API path, got %s", req.Path)
	}
}

func TestUserService_Profile(t *testing.T) {
	h := newHarness(t, reply(http.StatusOK, `{"id":"1","name":"Ana","role":"technician"}`))
	svc := service.NewUserService(h.client, zap.NewNop())
	ctx := context.Background()

	u, err := svc.GetProfile(ctx)
	if err != nil || u.Name != "Ana" {
		t.Fatalf("unexpected profile %+v, err %v", u, err)
	}
	if _, err := svc.UpdateProfile(ctx, domain.ProfileUpdate{Phone: "11988887777"}); err != nil {
		t.Fatal(err)
	}

	reqs := h.rec.all()
	if reqs[1].Method != http.MethodPut || reqs[1].Path != "/api/mobile/users/profile/update" {
		t.Errorf("unexpected update request %s %s", reqs[1].Method, reqs[1].Path)
	}
	if reqs[1].Body != `{"phone":"11988887777"}` {
		t.Errorf("unexpected update body %s", reqs[1].Body)
	}
}
