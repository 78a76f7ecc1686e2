package main

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paolocjunior/im-vel-gestor-sub001/internal/feasibility"
	"github.com/paolocjunior/im-vel-gestor-sub001/internal/response"
	"github.com/paolocjunior/im-vel-gestor-sub001/internal/store"
)

type ThresholdsResponse = response.APIResponse[*store.UserSettings]

func (app *application) handleGetThresholds(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserIDQuery(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid user_id parameter")
		return
	}

	ctx := r.Context()
	settings, err := app.store.Settings.GetSettings(ctx, userID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get settings: "+err.Error())
		return
	}
	if settings == nil {
		// Never saved: expose the defaults the engine would apply.
		defaults := feasibility.DefaultThresholds()
		settings = &store.UserSettings{
			UserID:                userID,
			ROIViableThreshold:    defaults.ViableROI,
			ROIAttentionThreshold: defaults.AttentionROI,
		}
	}

	response := &ThresholdsResponse{
		Success: true,
		Data:    settings,
		Message: "Successfully retrieved thresholds",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleUpdateThresholds(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserIDQuery(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid user_id parameter")
		return
	}

	var input struct {
		ROIViableThreshold    decimal.Decimal `json:"roi_viable_threshold"`
		ROIAttentionThreshold decimal.Decimal `json:"roi_attention_threshold"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if input.ROIAttentionThreshold.GreaterThan(input.ROIViableThreshold) {
		writeJSONError(w, http.StatusBadRequest, "attention threshold cannot exceed viable threshold")
		return
	}

	settings := &store.UserSettings{
		UserID:                userID,
		ROIViableThreshold:    input.ROIViableThreshold,
		ROIAttentionThreshold: input.ROIAttentionThreshold,
		UpdatedAt:             time.Now(),
	}

	ctx := r.Context()
	if err := app.store.Settings.UpsertSettings(ctx, settings); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to save settings: "+err.Error())
		return
	}

	response := &ThresholdsResponse{
		Success: true,
		Data:    settings,
		Message: "Thresholds updated",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
