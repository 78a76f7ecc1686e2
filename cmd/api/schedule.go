package main

import (
	"net/http"

	"github.com/paolocjunior/im-vel-gestor-sub001/internal/response"
	"github.com/paolocjunior/im-vel-gestor-sub001/internal/store"
)

type GetScheduleResponse = response.APIResponse[[]store.PlannedValue]

type SyncScheduleResult struct {
	Synced bool                 `json:"synced"`
	Rows   []store.PlannedValue `json:"rows"`
}

type SyncScheduleResponse = response.APIResponse[SyncScheduleResult]

func (app *application) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	studyID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid study id")
		return
	}

	ctx := r.Context()
	rows, err := app.store.PlannedValues.ListByStudy(ctx, studyID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list planned values: "+err.Error())
		return
	}

	response := &GetScheduleResponse{
		Success: true,
		Data:    rows,
		Message: "Successfully retrieved planned value schedule",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Sync planned values
// @Description	Regenerates the planned-value rows of a study when its stage tree changed since the last sync.
// @Tags			Schedule
// @Produce		json
// @Success		200	{object}	SyncScheduleResponse	"Sync outcome"
// @Router			/studies/{id}/schedule/sync [post]
func (app *application) handleSyncSchedule(w http.ResponseWriter, r *http.Request) {
	studyID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid study id")
		return
	}

	ctx := r.Context()
	synced, rows, err := app.studies.SyncSchedule(ctx, studyID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to sync schedule: "+err.Error())
		return
	}

	message := "Schedule already up to date"
	if synced {
		message = "Schedule synced"
	}

	response := &SyncScheduleResponse{
		Success: true,
		Data:    SyncScheduleResult{Synced: synced, Rows: rows},
		Message: message,
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
