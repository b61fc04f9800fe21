package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/arjunmehta/rechargehub-backend/api/middleware"
	recharge "github.com/arjunmehta/rechargehub-backend/internal/recharges"
	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
	"github.com/arjunmehta/rechargehub-backend/pkg/enums"
	pkgerrors "github.com/arjunmehta/rechargehub-backend/pkg/errors"
	"github.com/arjunmehta/rechargehub-backend/pkg/pagination"
)

type stubRechargeService struct {
	created  *models.Recharge
	recs     []models.Recharge
	opStats  []recharge.OperatorStat
	stats    *recharge.AdminStats
	err      error
	creates  []recharge.CreateRechargeInput
	byUserID []uuid.UUID
}

func (s *stubRechargeService) Create(ctx context.Context, input recharge.CreateRechargeInput) (*models.Recharge, error) {
	s.creates = append(s.creates, input)
	return s.created, s.err
}

func (s *stubRechargeService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Recharge, error) {
	s.byUserID = append(s.byUserID, userID)
	return s.recs, s.err
}

func (s *stubRechargeService) ListAll(ctx context.Context, params pagination.Params) ([]models.Recharge, error) {
	return s.recs, s.err
}

func (s *stubRechargeService) OperatorStats(ctx context.Context) ([]recharge.OperatorStat, error) {
	return s.opStats, s.err
}

func (s *stubRechargeService) Stats(ctx context.Context) (*recharge.AdminStats, error) {
	return s.stats, s.err
}

type stubUserLister struct {
	users []models.User
	err   error
}

func (s stubUserLister) ListAll(ctx context.Context, params pagination.Params) ([]models.User, error) {
	return s.users, s.err
}

func asUser(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithRole(ctx, enums.UserRoleUser.String())
	return req.WithContext(ctx)
}

func asAdmin(req *http.Request) *http.Request {
	ctx := middleware.WithUserID(req.Context(), uuid.NewString())
	ctx = middleware.WithRole(ctx, enums.UserRoleAdmin.String())
	return req.WithContext(ctx)
}

func TestRechargeCreateReturns201(t *testing.T) {
	userID := uuid.New()
	planID := uuid.New()
	svc := &stubRechargeService{created: &models.Recharge{
		ID:            uuid.New(),
		UserID:        userID,
		PlanID:        planID,
		PhoneNumber:   "9876543210",
		Operator:      enums.OperatorJio,
		Amount:        249,
		Status:        enums.RechargeStatusCompleted,
		TransactionID: "TXN1700000000000ab12c",
	}}
	handler := RechargeCreate(svc, nil)

	body, _ := json.Marshal(createRechargeRequest{
		UserID:      userID,
		PlanID:      planID,
		PhoneNumber: "9876543210",
		Operator:    "Jio",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/recharge", bytes.NewReader(body))
	req = asUser(req, userID)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			Recharge recharge.RechargeDTO `json:"recharge"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Recharge.Status != "completed" {
		t.Fatalf("expected completed status got %q", envelope.Data.Recharge.Status)
	}
	if envelope.Data.Recharge.TransactionID == "" {
		t.Fatal("expected transaction id in response")
	}
}

func TestRechargeCreateForbiddenForOtherAccount(t *testing.T) {
	svc := &stubRechargeService{}
	handler := RechargeCreate(svc, nil)

	body, _ := json.Marshal(createRechargeRequest{
		UserID:      uuid.New(),
		PlanID:      uuid.New(),
		PhoneNumber: "9876543210",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/recharge", bytes.NewReader(body))
	req = asUser(req, uuid.New())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
	if len(svc.creates) != 0 {
		t.Fatal("service must not be called for a forbidden request")
	}
}

func TestRechargeCreateAdminMayRechargeAnyAccount(t *testing.T) {
	svc := &stubRechargeService{created: &models.Recharge{ID: uuid.New(), Status: enums.RechargeStatusCompleted}}
	handler := RechargeCreate(svc, nil)

	body, _ := json.Marshal(createRechargeRequest{
		UserID:      uuid.New(),
		PlanID:      uuid.New(),
		PhoneNumber: "9876543210",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/recharge", bytes.NewReader(body))
	req = asAdmin(req)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
}

func TestRechargeCreatePropagatesConflict(t *testing.T) {
	userID := uuid.New()
	svc := &stubRechargeService{err: pkgerrors.New(pkgerrors.CodeConflict, "duplicate transaction id")}
	handler := RechargeCreate(svc, nil)

	body, _ := json.Marshal(createRechargeRequest{UserID: userID, PlanID: uuid.New(), PhoneNumber: "9876543210"})
	req := httptest.NewRequest(http.MethodPost, "/api/recharge", bytes.NewReader(body))
	req = asUser(req, userID)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}

func TestRechargeHistoryOwnAccount(t *testing.T) {
	userID := uuid.New()
	svc := &stubRechargeService{recs: []models.Recharge{
		{ID: uuid.New(), UserID: userID, TransactionID: "TXN2"},
		{ID: uuid.New(), UserID: userID, TransactionID: "TXN1"},
	}}
	handler := RechargeHistory(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/recharges/"+userID.String(), nil)
	req = withURLParam(req, "userId", userID.String())
	req = asUser(req, userID)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if len(svc.byUserID) != 1 || svc.byUserID[0] != userID {
		t.Fatalf("expected lookup for %s, got %v", userID, svc.byUserID)
	}
}

func TestRechargeHistoryForbiddenForOtherAccount(t *testing.T) {
	handler := RechargeHistory(&stubRechargeService{}, nil)

	target := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/recharges/"+target.String(), nil)
	req = withURLParam(req, "userId", target.String())
	req = asUser(req, uuid.New())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestRechargeHistoryAdminReadsAnyAccount(t *testing.T) {
	target := uuid.New()
	handler := RechargeHistory(&stubRechargeService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/recharges/"+target.String(), nil)
	req = withURLParam(req, "userId", target.String())
	req = asAdmin(req)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestAdminOperatorStatsPayload(t *testing.T) {
	handler := AdminOperatorStats(&stubRechargeService{opStats: []recharge.OperatorStat{
		{Operator: enums.OperatorJio, Count: 5, Revenue: 1245},
		{Operator: enums.OperatorAirtel, Count: 2, Revenue: 598},
	}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/operator-stats", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			OperatorStats []recharge.OperatorStat `json:"operatorStats"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.OperatorStats) != 2 || envelope.Data.OperatorStats[0].Operator != enums.OperatorJio {
		t.Fatalf("unexpected stats %+v", envelope.Data.OperatorStats)
	}
}

func TestAdminStatsPayload(t *testing.T) {
	handler := AdminStats(&stubRechargeService{stats: &recharge.AdminStats{
		TotalUsers:     10,
		TotalPlans:     20,
		TotalRecharges: 50,
		TotalRevenue:   12450,
	}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			Stats recharge.AdminStats `json:"stats"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Stats.TotalRevenue != 12450 {
		t.Fatalf("unexpected revenue %d", envelope.Data.Stats.TotalRevenue)
	}
}

func TestAdminUsersOmitsPasswordHash(t *testing.T) {
	handler := AdminUsers(stubUserLister{users: []models.User{
		{ID: uuid.New(), Name: "Priya", Email: "priya@example.com", Role: enums.UserRoleUser, PasswordHash: "$argon2id$v=19$..."},
	}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("argon2id")) {
		t.Fatal("response leaked password hash")
	}
}
