package main

import (
	"net/http"

	"github.com/paolocjunior/im-vel-gestor-sub001/internal/report"
	"github.com/paolocjunior/im-vel-gestor-sub001/internal/response"
)

type PortfolioSummaryResponse = response.APIResponse[*report.Summary]

func (app *application) handleGetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserIDQuery(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid user_id parameter")
		return
	}

	ctx := r.Context()
	summary, err := app.studies.PortfolioSummary(ctx, userID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to build portfolio summary: "+err.Error())
		return
	}

	response := &PortfolioSummaryResponse{
		Success: true,
		Data:    summary,
		Message: "Successfully built portfolio summary",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
