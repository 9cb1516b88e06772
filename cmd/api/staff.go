package main

import (
	"encoding/json"
	"net/http"

	"maeled/pkg/otel"
	"maeled/pkg/staff"
)

// listStaffHandler lists employees.
// @Summary List staff
// @Produce json
// @Param q query string false "Search in name, role and email"
// @Param role query string false "Role"
// @Param status query string false "Employment status"
// @Success 200 {array} staff.Employee
// @Router /api/staff [get]
func listStaffHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listStaffHandler")
	defer span.End()

	list, err := roster.List(ctx, staff.Filter{
		Query:  r.URL.Query().Get("q"),
		Role:   r.URL.Query().Get("role"),
		Status: staff.Status(r.URL.Query().Get("status")),
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// getStaffHandler retrieves one employee.
// @Summary Get employee
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} staff.Employee
// @Router /api/staff/{id} [get]
func getStaffHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getStaffHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	e, err := roster.Get(ctx, id)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

// createStaffHandler adds an employee to the roster.
// @Summary Create employee
// @Accept json
// @Produce json
// @Param employee body staff.Employee true "Employee"
// @Success 201 {object} staff.Employee
// @Router /api/staff [post]
func createStaffHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createStaffHandler")
	defer span.End()

	var e staff.Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	created, err := roster.Create(ctx, e)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// updateStaffHandler replaces an employee record.
// @Summary Update employee
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param employee body staff.Employee true "Employee"
// @Success 200 {object} staff.Employee
// @Router /api/staff/{id} [put]
func updateStaffHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateStaffHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var e staff.Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	e.ID = id
	updated, err := roster.Update(ctx, e)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// deleteStaffHandler removes an employee.
// @Summary Delete employee
// @Param id path int true "Employee ID"
// @Success 204
// @Router /api/staff/{id} [delete]
func deleteStaffHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteStaffHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := roster.Delete(ctx, id); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// staffStatusHandler moves an employee to an explicit status.
// @Summary Set employee status
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param body body object true "{\"status\": string}"
// @Success 200 {object} staff.Employee
// @Router /api/staff/{id}/status [put]
func staffStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "staffStatusHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req struct {
		Status staff.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	e, err := roster.SetStatus(ctx, id, req.Status)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

// staffStatsHandler summarizes the roster.
// @Summary Staff stats
// @Produce json
// @Success 200 {object} staff.Stats
// @Router /api/staff/stats [get]
func staffStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "staffStatsHandler")
	defer span.End()

	stats, err := roster.Stats(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
