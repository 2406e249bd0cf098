package http

import (
	"net/http"

	"solvency-engine/domain"
	"solvency-engine/service"
)

type batchEntry struct {
	Company string `json:"company"`
	domain.FinancialRecord
}

type batchRequest struct {
	Companies []batchEntry `json:"companies"`
	Explain   bool         `json:"explain"`
}

type BatchHandler struct {
	service *service.BatchService
}

func NewBatchHandler(svc *service.BatchService) *BatchHandler {
	return &BatchHandler{service: svc}
}

// ScoreBatch handles POST /zscore/batch. Rows that fail carry their own
// error; the response is 200 as long as the batch itself was accepted.
func (h *BatchHandler) ScoreBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	companies := make([]domain.CompanyRecord, len(req.Companies))
	for i, e := range req.Companies {
		companies[i] = domain.CompanyRecord{Company: e.Company, Record: e.FinancialRecord}
	}

	result, err := h.service.ScoreBatch(r.Context(), companies, req.Explain)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
