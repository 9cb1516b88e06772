package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"maeled/pkg/order"
	"maeled/pkg/otel"
)

// orderRequest is the declarative order form: the selection listed in
// full, quantities included.
type orderRequest struct {
	Table  string `json:"table"`
	Guests int    `json:"guests"`
	Notes  string `json:"notes"`
	Items  []struct {
		ID       int `json:"id"`
		Quantity int `json:"quantity"`
	} `json:"items"`
}

// listOrdersHandler lists orders.
// @Summary List orders
// @Produce json
// @Param q query string false "Search in table, id and notes"
// @Param status query string false "Order status"
// @Param period query string false "all, today, yesterday or week"
// @Success 200 {array} order.Record
// @Router /api/orders [get]
func listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listOrdersHandler")
	defer span.End()

	records, err := ledger.List(ctx, order.Filter{
		Query:  r.URL.Query().Get("q"),
		Status: order.Status(r.URL.Query().Get("status")),
		Period: order.Period(r.URL.Query().Get("period")),
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// getOrderHandler retrieves an order by ID.
// @Summary Get order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} order.Record
// @Router /api/orders/{id} [get]
func getOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getOrderHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	rec, err := ledger.Get(ctx, id)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// createOrderHandler creates a new order from the back-office form.
// @Summary Create order
// @Accept json
// @Produce json
// @Param order body orderRequest true "Order"
// @Success 201 {object} order.Record
// @Router /api/orders [post]
func createOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createOrderHandler")
	defer span.End()

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	menu, err := menuSvc.AvailableForOrdering(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	draft := order.NewDraft(menu)
	applyRequest(draft, req)
	rec, err := ledger.Commit(ctx, draft, order.AdminCheckout())
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

// updateOrderHandler rewrites an existing order's selection and details.
// @Summary Update order
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param order body orderRequest true "Order"
// @Success 200 {object} order.Record
// @Router /api/orders/{id} [put]
func updateOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateOrderHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := ledger.Get(ctx, id)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	menu, err := menuSvc.AvailableForOrdering(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	draft := order.EditDraft(menu, rec)
	// the request lists the full selection, so anything not named is
	// dropped from the draft first
	wanted := make(map[int]bool, len(req.Items))
	for _, it := range req.Items {
		wanted[it.ID] = true
	}
	for _, line := range draft.Lines() {
		if !wanted[line.ItemID] {
			draft.SetQuantity(line.ItemID, 0)
		}
	}
	applyRequest(draft, req)

	updated, err := ledger.Commit(ctx, draft, order.AdminCheckout())
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func applyRequest(draft *order.Draft, req orderRequest) {
	draft.Table = req.Table
	if req.Guests > 0 {
		draft.Guests = req.Guests
	}
	draft.Notes = req.Notes
	for _, it := range req.Items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		draft.SetQuantity(it.ID, qty)
	}
}

// deleteOrderHandler removes an order.
// @Summary Delete order
// @Param id path int true "Order ID"
// @Success 204
// @Router /api/orders/{id} [delete]
func deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteOrderHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := ledger.Delete(ctx, id); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// orderStatusHandler sets or cycles an order's status.
// @Summary Change order status
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param body body object false "{\"status\": string}; omit to cycle"
// @Success 200 {object} order.Record
// @Router /api/orders/{id}/status [put]
func orderStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "orderStatusHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req struct {
		Status order.Status `json:"status"`
	}
	// an empty body means "advance to the next status"
	_ = json.NewDecoder(r.Body).Decode(&req)

	var rec order.Record
	if req.Status == "" {
		rec, err = ledger.CycleStatus(ctx, id)
	} else {
		rec, err = ledger.SetStatus(ctx, id, req.Status)
	}
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// orderStatsHandler returns per-status order counts.
// @Summary Order stats
// @Produce json
// @Success 200 {object} order.Stats
// @Router /api/orders/stats [get]
func orderStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "orderStatsHandler")
	defer span.End()

	stats, err := ledger.Stats(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// dailyReportHandler returns today's order summary.
// @Summary Daily report
// @Produce json
// @Success 200 {object} order.DailyReport
// @Router /api/orders/report [get]
func dailyReportHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "dailyReportHandler")
	defer span.End()

	rep, err := ledger.Today(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
