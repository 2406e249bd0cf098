package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solvency-engine/domain"
	"solvency-engine/repository"
	"solvency-engine/service"
)

const tcsBody = `{
	"company": "TCS",
	"total_assets": 175219,
	"total_liabilities": 68804,
	"retained_earnings": 106053,
	"ebit": 64716,
	"market_cap": 1500000,
	"sales": 260802
}`

func newTestRouter(t *testing.T, capacity int) http.Handler {
	t.Helper()

	scorer := service.NewZScoreService(repository.NewScoreRepositoryMemory(0), repository.NewMemoryCache(0), nil)
	explainer := service.NewAIService("")
	batch := service.NewBatchService(scorer, explainer, nil, service.BatchOptions{MaxSize: 3})

	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(RouterConfig{
		ScoreHandler: NewScoreHandler(scorer, explainer),
		BatchHandler: NewBatchHandler(batch),
		RateLimiter:  limiter,
	})
}

func postJSON(handler http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestScoreHandler_OK(t *testing.T) {
	router := newTestRouter(t, 10)

	w := postJSON(router, "/zscore/score", tcsBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp scoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "TCS", resp.Company)
	assert.Equal(t, 17.36, resp.ZScore)
	assert.Equal(t, 0.61, resp.RetainedEarningsRatio)
	assert.Equal(t, domain.TierSafe, resp.Tier)
	assert.InDelta(t, 21.80, resp.Ratios.X4, 0.01)
	assert.Equal(t, "market value of equity to total liabilities", resp.KeyDriver)
	assert.Empty(t, resp.Explanation)
}

func TestScoreHandler_Explain(t *testing.T) {
	router := newTestRouter(t, 10)

	body := `{"company":"Acme","total_assets":1000,"total_liabilities":500,"retained_earnings":50,"ebit":20,"market_cap":200,"sales":300,"explain":true}`
	w := postJSON(router, "/zscore/score", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp scoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Explanation, "Acme scores 1.28")
}

func TestScoreHandler_DivisionByZero(t *testing.T) {
	router := newTestRouter(t, 10)

	w := postJSON(router, "/zscore/score", `{"company":"Empty","total_assets":0,"total_liabilities":10}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "division by zero")
}

func TestScoreHandler_InvalidRecord(t *testing.T) {
	router := newTestRouter(t, 10)

	w := postJSON(router, "/zscore/score", `{"total_assets":10,"total_liabilities":10,"sales":-5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScoreHandler_UnknownField(t *testing.T) {
	router := newTestRouter(t, 10)

	w := postJSON(router, "/zscore/score", `{"total_assets":1000,"total_liabilities":500,"ebitda":20}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestScoreHandler_RatioOverflow(t *testing.T) {
	router := newTestRouter(t, 10)

	w := postJSON(router, "/zscore/score", `{"total_assets":1000,"total_liabilities":1e-300,"market_cap":1e300,"sales":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid financial record")
}

func TestScoreHandler_BadRequest(t *testing.T) {
	router := newTestRouter(t, 10)

	w := postJSON(router, "/zscore/score", `{invalid-json}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScoreHandler_UnsupportedMediaType(t *testing.T) {
	router := newTestRouter(t, 10)

	req := httptest.NewRequest(http.MethodPost, "/zscore/score", bytes.NewBufferString(tcsBody))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestScoreHandler_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, 10)

	req := httptest.NewRequest(http.MethodGet, "/zscore/score", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHistoryHandler(t *testing.T) {
	router := newTestRouter(t, 10)

	require.Equal(t, http.StatusOK, postJSON(router, "/zscore/score", tcsBody).Code)
	require.Equal(t, http.StatusOK, postJSON(router, "/zscore/score", tcsBody).Code)

	req := httptest.NewRequest(http.MethodGet, "/zscore/history?limit=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var records []domain.ScoreRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "TCS", records[0].Company)
	assert.Equal(t, domain.TierSafe, records[0].Result.Tier)

	req = httptest.NewRequest(http.MethodGet, "/zscore/history?limit=zero", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, 10)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
