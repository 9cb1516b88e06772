package main

import (
	"encoding/json"
	"net/http"

	"maeled/pkg/otel"
	"maeled/pkg/reservation"
)

// listReservationsHandler lists reservations.
// @Summary List reservations
// @Produce json
// @Param q query string false "Search in name, phone and table"
// @Param status query string false "Reservation status"
// @Success 200 {array} reservation.Reservation
// @Router /api/reservations [get]
func listReservationsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listReservationsHandler")
	defer span.End()

	list, err := bookings.List(ctx, reservation.Filter{
		Query:  r.URL.Query().Get("q"),
		Status: reservation.Status(r.URL.Query().Get("status")),
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// createReservationHandler books a table.
// @Summary Create reservation
// @Accept json
// @Produce json
// @Param reservation body reservation.Reservation true "Reservation"
// @Success 201 {object} reservation.Reservation
// @Router /api/reservations [post]
func createReservationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createReservationHandler")
	defer span.End()

	var res reservation.Reservation
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	created, err := bookings.Create(ctx, res)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// updateReservationHandler rewrites a reservation's booking details.
// @Summary Update reservation
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param reservation body reservation.Reservation true "Reservation"
// @Success 200 {object} reservation.Reservation
// @Router /api/reservations/{id} [put]
func updateReservationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateReservationHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var res reservation.Reservation
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	res.ID = id
	updated, err := bookings.Update(ctx, res)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// confirmReservationHandler confirms a booking, assigning a table when
// needed.
// @Summary Confirm reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} reservation.Reservation
// @Router /api/reservations/{id}/confirm [post]
func confirmReservationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "confirmReservationHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	res, err := bookings.Confirm(ctx, id)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// cancelReservationHandler cancels a booking without deleting it.
// @Summary Cancel reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} reservation.Reservation
// @Router /api/reservations/{id}/cancel [post]
func cancelReservationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "cancelReservationHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	res, err := bookings.Cancel(ctx, id)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// deleteReservationHandler removes a reservation.
// @Summary Delete reservation
// @Param id path int true "Reservation ID"
// @Success 204
// @Router /api/reservations/{id} [delete]
func deleteReservationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteReservationHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := bookings.Delete(ctx, id); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
