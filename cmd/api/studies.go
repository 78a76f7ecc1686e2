package main

import (
	"errors"
	"net/http"

	"github.com/paolocjunior/im-vel-gestor-sub001/internal/response"
	"github.com/paolocjunior/im-vel-gestor-sub001/internal/store"
)

type GetStudyResultResponse = response.APIResponse[*store.StudyResult]

// @Summary		Get study result
// @Description	Returns the stored computed result of a study.
// @Tags			Studies
// @Produce		json
// @Success		200	{object}	GetStudyResultResponse	"Stored computed result"
// @Failure		404	{object}	response.ErrorResponse	"Study never computed"
// @Router			/studies/{id}/result [get]
func (app *application) handleGetStudyResult(w http.ResponseWriter, r *http.Request) {
	studyID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid study id")
		return
	}

	ctx := r.Context()
	result, err := app.store.Studies.GetResult(ctx, studyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "study has no computed result")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to get study result: "+err.Error())
		return
	}

	response := &GetStudyResultResponse{
		Success: true,
		Data:    result,
		Message: "Successfully retrieved study result",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Recompute study
// @Description	Recomputes and persists the derived totals of a study.
// @Tags			Studies
// @Produce		json
// @Success		200	{object}	GetStudyResultResponse	"Freshly computed result"
// @Failure		404	{object}	response.ErrorResponse	"Study not found"
// @Router			/studies/{id}/recompute [post]
func (app *application) handleRecomputeStudy(w http.ResponseWriter, r *http.Request) {
	studyID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid study id")
		return
	}

	ctx := r.Context()
	result, err := app.studies.Recompute(ctx, studyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "study not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to recompute study: "+err.Error())
		return
	}

	response := &GetStudyResultResponse{
		Success: true,
		Data:    result,
		Message: "Study recomputed",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
