package main

import (
	"encoding/json"
	"net/http"

	"maeled/pkg/inventory"
	"maeled/pkg/otel"
)

// listInventoryHandler lists stock items.
// @Summary List inventory
// @Produce json
// @Param q query string false "Search in name and supplier"
// @Param category query string false "Category"
// @Param status query string false "out, low or ok"
// @Success 200 {array} inventory.Item
// @Router /api/inventory [get]
func listInventoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listInventoryHandler")
	defer span.End()

	list, err := stock.List(ctx, inventory.Filter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Status:   inventory.StockStatus(r.URL.Query().Get("status")),
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// getInventoryHandler retrieves one stock item.
// @Summary Get inventory item
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} inventory.Item
// @Router /api/inventory/{id} [get]
func getInventoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getInventoryHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	item, err := stock.Get(ctx, id)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// createInventoryHandler adds a stock item.
// @Summary Create inventory item
// @Accept json
// @Produce json
// @Param item body inventory.Item true "Item"
// @Success 201 {object} inventory.Item
// @Router /api/inventory [post]
func createInventoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createInventoryHandler")
	defer span.End()

	var item inventory.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	created, err := stock.Create(ctx, item)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// updateInventoryHandler replaces a stock item.
// @Summary Update inventory item
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param item body inventory.Item true "Item"
// @Success 200 {object} inventory.Item
// @Router /api/inventory/{id} [put]
func updateInventoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateInventoryHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var item inventory.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	item.ID = id
	updated, err := stock.Update(ctx, item)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// deleteInventoryHandler removes a stock item.
// @Summary Delete inventory item
// @Param id path int true "Item ID"
// @Success 204
// @Router /api/inventory/{id} [delete]
func deleteInventoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteInventoryHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := stock.Delete(ctx, id); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// adjustInventoryHandler shifts a stock level by a delta.
// @Summary Adjust stock
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param body body object true "{\"delta\": number}"
// @Success 200 {object} inventory.Item
// @Router /api/inventory/{id}/adjust [post]
func adjustInventoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "adjustInventoryHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req struct {
		Delta float64 `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	item, err := stock.Adjust(ctx, id, req.Delta)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// lowStockHandler lists items at or below their minimum.
// @Summary Low stock
// @Produce json
// @Success 200 {array} inventory.Item
// @Router /api/inventory/low [get]
func lowStockHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "lowStockHandler")
	defer span.End()

	list, err := stock.LowStock(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// reorderHandler proposes reorder amounts for low items.
// @Summary Reorder suggestions
// @Produce json
// @Success 200 {array} inventory.Suggestion
// @Router /api/inventory/reorder [get]
func reorderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "reorderHandler")
	defer span.End()

	list, err := stock.ReorderSuggestions(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}
