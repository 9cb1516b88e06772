package main

import (
	"encoding/json"
	"net/http"

	"maeled/pkg/catalog"
	"maeled/pkg/otel"
)

// publicMenuHandler serves the customer-facing menu.
// @Summary Public menu
// @Description Available items grouped by category
// @Produce json
// @Success 200 {array} catalog.Section
// @Router /menu [get]
func publicMenuHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "publicMenuHandler")
	defer span.End()

	sections, err := menuSvc.Menu(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, sections)
}

// listMenuHandler lists menu items for the back office.
// @Summary List menu items
// @Produce json
// @Param q query string false "Search in name and ingredients"
// @Param category query string false "Category"
// @Param availability query string false "available or unavailable"
// @Success 200 {array} catalog.Item
// @Router /api/menu [get]
func listMenuHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listMenuHandler")
	defer span.End()

	items, err := menuSvc.List(ctx, catalog.Filter{
		Query:        r.URL.Query().Get("q"),
		Category:     r.URL.Query().Get("category"),
		Availability: r.URL.Query().Get("availability"),
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// getMenuItemHandler retrieves one menu item.
// @Summary Get menu item
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} catalog.Item
// @Router /api/menu/{id} [get]
func getMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getMenuItemHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	item, err := menuSvc.Get(ctx, id)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// createMenuItemHandler adds a menu item.
// @Summary Create menu item
// @Accept json
// @Produce json
// @Param item body catalog.Item true "Item"
// @Success 201 {object} catalog.Item
// @Router /api/menu [post]
func createMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createMenuItemHandler")
	defer span.End()

	var item catalog.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	created, err := menuSvc.Create(ctx, item)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// updateMenuItemHandler replaces a menu item.
// @Summary Update menu item
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param item body catalog.Item true "Item"
// @Success 200 {object} catalog.Item
// @Router /api/menu/{id} [put]
func updateMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateMenuItemHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var item catalog.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	item.ID = id
	updated, err := menuSvc.Update(ctx, item)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// deleteMenuItemHandler removes a menu item.
// @Summary Delete menu item
// @Param id path int true "Item ID"
// @Success 204
// @Router /api/menu/{id} [delete]
func deleteMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteMenuItemHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := menuSvc.Delete(ctx, id); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// menuAvailabilityHandler toggles whether an item can be ordered.
// @Summary Set item availability
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param body body object true "{\"available\": bool}"
// @Success 200 {object} catalog.Item
// @Router /api/menu/{id}/availability [put]
func menuAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "menuAvailabilityHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	item, err := menuSvc.SetAvailable(ctx, id, req.Available)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}
