package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	plan "github.com/arjunmehta/rechargehub-backend/internal/plans"
	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
	pkgerrors "github.com/arjunmehta/rechargehub-backend/pkg/errors"
)

type stubPlanService struct {
	plans   []models.Plan
	plan    *models.Plan
	err     error
	updates []plan.UpdatePlanInput
}

func (s *stubPlanService) ListActive(ctx context.Context) ([]models.Plan, error) {
	return s.plans, s.err
}

func (s *stubPlanService) ListAll(ctx context.Context) ([]models.Plan, error) {
	return s.plans, s.err
}

func (s *stubPlanService) Get(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	return s.plan, s.err
}

func (s *stubPlanService) Create(ctx context.Context, input plan.CreatePlanInput) (*models.Plan, error) {
	return s.plan, s.err
}

func (s *stubPlanService) Update(ctx context.Context, id uuid.UUID, input plan.UpdatePlanInput) (*models.Plan, error) {
	s.updates = append(s.updates, input)
	return s.plan, s.err
}

func (s *stubPlanService) Deactivate(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	return s.plan, s.err
}

func (s *stubPlanService) Count(ctx context.Context) (int64, error) {
	return int64(len(s.plans)), s.err
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

func TestPlansListReturnsCatalog(t *testing.T) {
	svc := &stubPlanService{plans: []models.Plan{
		{ID: uuid.New(), Name: "Smart Saver", Price: 299, Validity: "28 days", Data: "2GB/day", IsActive: true},
		{ID: uuid.New(), Name: "Annual Max", Price: 2999, Validity: "365 days", Data: "2.5GB/day", IsActive: true},
	}}
	handler := PlansList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/plans", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			Plans []plan.PlanDTO `json:"plans"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Plans) != 2 {
		t.Fatalf("expected 2 plans got %d", len(envelope.Data.Plans))
	}
	if envelope.Data.Plans[0].Name != "Smart Saver" {
		t.Fatalf("catalog order not preserved: %q first", envelope.Data.Plans[0].Name)
	}
}

func TestAdminPlansCreateReturns201(t *testing.T) {
	created := &models.Plan{ID: uuid.New(), Name: "Weekend Pack", Price: 49, Validity: "2 days", Data: "3GB", IsActive: true}
	handler := AdminPlansCreate(&stubPlanService{plan: created}, nil)

	body := []byte(`{"name":"Weekend Pack","price":49,"validity":"2 days","data":"3GB"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/plans", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
}

func TestAdminPlansCreatePropagatesValidation(t *testing.T) {
	handler := AdminPlansCreate(&stubPlanService{err: pkgerrors.New(pkgerrors.CodeValidation, "missing required fields")}, nil)

	body := []byte(`{"name":"Incomplete"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/plans", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAdminPlansUpdateForwardsPartialInput(t *testing.T) {
	id := uuid.New()
	svc := &stubPlanService{plan: &models.Plan{ID: id, Name: "Smart Saver", Price: 349}}
	handler := AdminPlansUpdate(svc, nil)

	body := []byte(`{"price":349}`)
	req := httptest.NewRequest(http.MethodPut, "/api/plans/"+id.String(), bytes.NewReader(body))
	req = withURLParam(req, "id", id.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if len(svc.updates) != 1 {
		t.Fatalf("expected one update call, got %d", len(svc.updates))
	}
	input := svc.updates[0]
	if input.Price == nil || *input.Price != 349 {
		t.Fatalf("price not forwarded: %+v", input)
	}
	if input.Name != nil {
		t.Fatal("untouched fields must stay nil")
	}
}

func TestAdminPlansUpdateRejectsBadID(t *testing.T) {
	handler := AdminPlansUpdate(&stubPlanService{}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/plans/not-a-uuid", bytes.NewReader([]byte(`{}`)))
	req = withURLParam(req, "id", "not-a-uuid")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAdminPlansDeleteReturnsDeactivatedPlan(t *testing.T) {
	id := uuid.New()
	svc := &stubPlanService{plan: &models.Plan{ID: id, Name: "Smart Saver", IsActive: false}}
	handler := AdminPlansDelete(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/plans/"+id.String(), nil)
	req = withURLParam(req, "id", id.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			Plan plan.PlanDTO `json:"plan"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Plan.IsActive {
		t.Fatal("expected plan to be inactive")
	}
}

func TestAdminPlansDeleteNotFound(t *testing.T) {
	handler := AdminPlansDelete(&stubPlanService{err: pkgerrors.New(pkgerrors.CodeNotFound, "plan not found")}, nil)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/api/plans/"+id, nil)
	req = withURLParam(req, "id", id)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
