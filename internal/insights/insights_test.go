package insights

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestConditionBreakdownSumsToHundred(t *testing.T) {
	total := 0.0
	for _, c := range Data().ConditionBreakdown {
		total += c.Value
	}
	if math.Abs(total-100) > 0.01 {
		t.Fatalf("expected 100, got %v", total)
	}
}

func TestPrevalenceYearsAscending(t *testing.T) {
	years := Data().PrevalenceOverTime
	for i := 1; i < len(years); i++ {
		if years[i].Year <= years[i-1].Year {
			t.Fatalf("years out of order at %d", i)
		}
	}
}

func TestDataReturnsCopy(t *testing.T) {
	d := Data()
	d.ConditionBreakdown[0].Value = 0
	if Data().ConditionBreakdown[0].Value == 0 {
		t.Fatalf("expected Data to return an independent copy")
	}
}

func TestInsightsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/insights", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload struct {
		Data Dataset `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Data.TreatmentSeeking.ReceivedTreatment != 47.2 {
		t.Fatalf("unexpected payload %+v", payload.Data)
	}
	if len(payload.Data.PrevalenceOverTime) != 10 {
		t.Fatalf("expected 10 years, got %d", len(payload.Data.PrevalenceOverTime))
	}
}
