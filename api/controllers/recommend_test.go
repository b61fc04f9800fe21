package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/arjunmehta/rechargehub-backend/internal/recommend"
	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
)

type stubRecommendService struct {
	scored  []recommend.ScoredPlan
	err     error
	queries []recommend.Query
}

func (s *stubRecommendService) Recommend(ctx context.Context, q recommend.Query) ([]recommend.ScoredPlan, error) {
	s.queries = append(s.queries, q)
	return s.scored, s.err
}

func TestRecommendReturnsScoredPlans(t *testing.T) {
	svc := &stubRecommendService{scored: []recommend.ScoredPlan{
		{
			Plan:   models.Plan{ID: uuid.New(), Name: "Smart Saver", Price: 299, Validity: "28 days", Data: "2GB/day", IsActive: true},
			Score:  65,
			Reason: "great value for money and ideal for regular usage",
		},
	}}
	handler := Recommend(svc, nil)

	body := []byte(`{"budget":"medium","usage":"moderate","priority":"data","validity":"medium","dataNeeds":"medium"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/ai-recommend", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			Recommendations []recommendationDTO `json:"recommendations"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Recommendations) != 1 {
		t.Fatalf("expected 1 recommendation got %d", len(envelope.Data.Recommendations))
	}
	got := envelope.Data.Recommendations[0]
	if got.Score != 65 || got.Reason == "" {
		t.Fatalf("unexpected recommendation %+v", got)
	}

	if len(svc.queries) != 1 || svc.queries[0].Priority != "data" {
		t.Fatalf("query not forwarded: %+v", svc.queries)
	}
}

func TestRecommendForwardsUnknownTier(t *testing.T) {
	svc := &stubRecommendService{}
	handler := Recommend(svc, nil)

	body := []byte(`{"budget":"extreme","usage":"moderate"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/ai-recommend", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if len(svc.queries) != 1 || svc.queries[0].Budget != "extreme" || svc.queries[0].Usage != "moderate" {
		t.Fatalf("query not forwarded as-is: %+v", svc.queries)
	}
}

func TestRecommendEmptyQueryAllowed(t *testing.T) {
	handler := Recommend(&stubRecommendService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ai-recommend", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
