package main

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paolocjunior/im-vel-gestor-sub001/internal/feasibility"
	"github.com/paolocjunior/im-vel-gestor-sub001/internal/response"
	"github.com/paolocjunior/im-vel-gestor-sub001/internal/store"
)

type ListLineItemsResponse = response.APIResponse[[]store.LineItem]
type LineItemResponse = response.APIResponse[*store.LineItem]
type DeleteLineItemResponse = response.APIResponse[struct{}]

var validLineTypes = map[string]bool{
	string(feasibility.AcquisitionCost):  true,
	string(feasibility.MonthlyCost):      true,
	string(feasibility.ExitCost):         true,
	string(feasibility.ConstructionCost): true,
}

type lineItemInput struct {
	LineType    string          `json:"line_type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	IsRecurring bool            `json:"is_recurring"`
	Months      *int            `json:"months"`
}

func (in *lineItemInput) validate() string {
	if !validLineTypes[in.LineType] {
		return "invalid line_type"
	}
	if in.Months != nil && *in.Months < 1 {
		return "months must be at least 1"
	}
	return ""
}

func (app *application) handleListLineItems(w http.ResponseWriter, r *http.Request) {
	studyID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid study id")
		return
	}

	ctx := r.Context()
	items, err := app.store.LineItems.ListActive(ctx, studyID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list line items: "+err.Error())
		return
	}

	response := &ListLineItemsResponse{
		Success: true,
		Data:    items,
		Message: "Successfully listed line items",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Create line item
// @Description	Inserts a line item and recomputes the study.
// @Tags			LineItems
// @Accept			json
// @Produce		json
// @Success		201	{object}	LineItemResponse		"Line item created"
// @Failure		400	{object}	response.ErrorResponse	"Invalid payload"
// @Router			/studies/{id}/line-items [post]
func (app *application) handleCreateLineItem(w http.ResponseWriter, r *http.Request) {
	studyID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid study id")
		return
	}

	var input lineItemInput
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if msg := input.validate(); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	item := &store.LineItem{
		ID:          uuid.New(),
		StudyID:     studyID,
		LineType:    input.LineType,
		Description: input.Description,
		Amount:      input.Amount,
		IsRecurring: input.IsRecurring,
		Months:      monthsValue(input.Months),
		Status:      store.StatusActive,
		InsertedAt:  now,
		UpdatedAt:   now,
	}

	ctx := r.Context()
	if err := app.store.LineItems.InsertLineItem(ctx, item); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to create line item: "+err.Error())
		return
	}

	// The stored result is a derived cache; every line-item change refreshes it.
	if _, err := app.studies.Recompute(ctx, studyID); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to recompute study: "+err.Error())
		return
	}

	response := &LineItemResponse{
		Success: true,
		Data:    item,
		Message: "Line item created",
	}

	if err := writeJSON(w, http.StatusCreated, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleUpdateLineItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid line item id")
		return
	}

	var input lineItemInput
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if msg := input.validate(); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	item, err := app.store.LineItems.GetLineItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "line item not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to get line item: "+err.Error())
		return
	}

	item.LineType = input.LineType
	item.Description = input.Description
	item.Amount = input.Amount
	item.IsRecurring = input.IsRecurring
	item.Months = monthsValue(input.Months)
	item.UpdatedAt = time.Now()

	if err := app.store.LineItems.UpdateLineItem(ctx, item); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to update line item: "+err.Error())
		return
	}

	if _, err := app.studies.Recompute(ctx, item.StudyID); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to recompute study: "+err.Error())
		return
	}

	response := &LineItemResponse{
		Success: true,
		Data:    item,
		Message: "Line item updated",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleDeleteLineItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := parseIDParam(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid line item id")
		return
	}

	ctx := r.Context()
	item, err := app.store.LineItems.GetLineItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "line item not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to get line item: "+err.Error())
		return
	}

	if err := app.store.LineItems.SoftDeleteLineItem(ctx, itemID); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to delete line item: "+err.Error())
		return
	}

	if _, err := app.studies.Recompute(ctx, item.StudyID); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to recompute study: "+err.Error())
		return
	}

	response := &DeleteLineItemResponse{
		Success: true,
		Message: "Line item deleted",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func monthsValue(months *int) sql.NullInt32 {
	if months == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*months), Valid: true}
}
