package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sj23z/Puzur-Cataloge/api/middleware"
	"github.com/sj23z/Puzur-Cataloge/internal/orders"
	"github.com/sj23z/Puzur-Cataloge/pkg/enums"
	pkgerrors "github.com/sj23z/Puzur-Cataloge/pkg/errors"
	"github.com/sj23z/Puzur-Cataloge/pkg/types"
)

type stubOrderService struct {
	created   orders.CreateInput
	createErr error
	listByID  string
}

func (s *stubOrderService) List(_ context.Context, forUserID string) ([]types.OrderRequest, error) {
	s.listByID = forUserID
	return []types.OrderRequest{}, nil
}

func (s *stubOrderService) Create(_ context.Context, input orders.CreateInput) (types.OrderRequest, error) {
	if s.createErr != nil {
		return types.OrderRequest{}, s.createErr
	}
	s.created = input
	return types.OrderRequest{ID: "o-1", UserID: input.RequesterID, Status: enums.OrderStatusPending}, nil
}

func (s *stubOrderService) UpdateStatus(_ context.Context, orderID string, next enums.OrderStatus) (types.OrderRequest, error) {
	if orderID == "missing" {
		return types.OrderRequest{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return types.OrderRequest{ID: orderID, Status: next}, nil
}

func authedRequest(method, path, body string, ident types.Identity) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	return req.WithContext(middleware.WithIdentity(req.Context(), ident))
}

func clinicIdentity() types.Identity {
	return types.Identity{ID: "u-1", Role: enums.RoleStandard, FullName: "Dr. Sarah Smith"}
}

func TestCreateOrderRejectsUnauthenticated(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"items":[{"productId":"p-1","quantity":1}]}`))

	CreateOrder(&stubOrderService{}, nil)(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestCreateOrderRejectsUnknownFields(t *testing.T) {
	svc := &stubOrderService{}
	w := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/orders",
		`{"items":[{"productId":"p-1","quantity":1}],"unitPrice":1}`, clinicIdentity())

	CreateOrder(svc, nil)(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	w := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/orders", `{"items":[]}`, clinicIdentity())

	CreateOrder(&stubOrderService{}, nil)(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateOrderUsesCallerIdentity(t *testing.T) {
	svc := &stubOrderService{}
	w := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/orders",
		`{"items":[{"productId":"p-1","quantity":3}],"notes":"rush"}`, clinicIdentity())

	CreateOrder(svc, nil)(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	if svc.created.RequesterID != "u-1" {
		t.Fatalf("requester id = %q, want the authenticated account", svc.created.RequesterID)
	}
	if len(svc.created.Items) != 1 || svc.created.Items[0].Quantity != 3 {
		t.Fatalf("unexpected items %+v", svc.created.Items)
	}
	if svc.created.Notes != "rush" {
		t.Fatalf("notes = %q", svc.created.Notes)
	}
}

func TestListOrdersScopesByRole(t *testing.T) {
	svc := &stubOrderService{}
	w := httptest.NewRecorder()
	ListOrders(svc, nil)(w, authedRequest(http.MethodGet, "/orders", "", clinicIdentity()))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.listByID != "u-1" {
		t.Fatalf("standard account should only see its own orders, filter = %q", svc.listByID)
	}

	w = httptest.NewRecorder()
	admin := types.Identity{ID: "admin-1", Role: enums.RoleAdmin}
	ListOrders(svc, nil)(w, authedRequest(http.MethodGet, "/orders", "", admin))
	if svc.listByID != "" {
		t.Fatalf("admin should see all orders, filter = %q", svc.listByID)
	}
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	router := chi.NewRouter()
	router.Patch("/orders/{id}/status", UpdateOrderStatus(&stubOrderService{}, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/orders/o-1/status", strings.NewReader(`{"status":"TELEPORTED"}`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUpdateOrderStatusMissingOrder(t *testing.T) {
	router := chi.NewRouter()
	router.Patch("/orders/{id}/status", UpdateOrderStatus(&stubOrderService{}, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/orders/missing/status", strings.NewReader(`{"status":"APPROVED"}`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
