package http

import (
	"net/http"
	"strconv"

	"solvency-engine/domain"
	"solvency-engine/service"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type scoreRequest struct {
	Company string `json:"company"`
	domain.FinancialRecord
	Explain bool `json:"explain"`
}

type scoreResponse struct {
	Company string `json:"company,omitempty"`
	domain.ScoreResult
	Ratios      domain.Ratios `json:"ratios"`
	KeyDriver   string        `json:"key_driver"`
	Explanation string        `json:"explanation,omitempty"`
}

type ScoreHandler struct {
	service   *service.ZScoreService
	explainer *service.AIService
}

func NewScoreHandler(svc *service.ZScoreService, explainer *service.AIService) *ScoreHandler {
	return &ScoreHandler{service: svc, explainer: explainer}
}

// Score handles POST /zscore/score.
func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	result, err := h.service.ScoreCompany(r.Context(), req.Company, req.FinancialRecord)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	// ScoreCompany succeeded, so the divisors are non-zero.
	ratios, _ := service.ComputeRatios(req.FinancialRecord)
	strongest, _ := service.KeyDrivers(ratios)

	resp := scoreResponse{
		Company:     req.Company,
		ScoreResult: result,
		Ratios:      ratios,
		KeyDriver:   service.RatioName(strongest),
	}
	if req.Explain && h.explainer != nil {
		resp.Explanation = h.explainer.ExplainScore(r.Context(), req.Company, ratios, result)
	}

	writeJSON(w, http.StatusOK, resp)
}

// History handles GET /zscore/history?limit=N.
func (h *ScoreHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if records == nil {
		records = []domain.ScoreRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}
