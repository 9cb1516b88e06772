package main

import (
	"encoding/json"
	"net/http"

	"maeled/pkg/otel"
)

// cartItemsHandler returns the cart contents with totals.
// @Summary Cart contents
// @Produce json
// @Success 200 {object} object
// @Router /api/cart [get]
func cartItemsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "cartItemsHandler")
	defer span.End()

	items, err := cartSvc.Items(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	subtotal, err := cartSvc.Subtotal(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"items":      items,
		"subtotal":   subtotal,
		"serviceFee": serviceFee,
		"total":      subtotal + serviceFee,
	})
}

// cartAddHandler puts one more of a menu item in the cart. The item must
// be orderable right now; name and price are snapshotted from the menu.
// @Summary Add to cart
// @Accept json
// @Produce json
// @Param body body object true "{\"id\": int}"
// @Success 200
// @Router /api/cart [post]
func cartAddHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "cartAddHandler")
	defer span.End()

	var req struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	item, err := menuSvc.Get(ctx, req.ID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	if !item.Available {
		http.Error(w, "item is not available", http.StatusConflict)
		return
	}
	if err := cartSvc.Add(ctx, item.ID, item.Name, item.Price); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// cartQuantityHandler sets an entry's quantity.
// @Summary Set cart quantity
// @Accept json
// @Param id path int true "Item ID"
// @Param body body object true "{\"quantity\": int}"
// @Success 200
// @Router /api/cart/{id} [put]
func cartQuantityHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "cartQuantityHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := cartSvc.SetQuantity(ctx, id, req.Quantity); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// cartRemoveHandler drops an entry from the cart.
// @Summary Remove from cart
// @Param id path int true "Item ID"
// @Success 204
// @Router /api/cart/{id} [delete]
func cartRemoveHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "cartRemoveHandler")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := cartSvc.Remove(ctx, id); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// cartClearHandler empties the cart.
// @Summary Clear cart
// @Success 204
// @Router /api/cart [delete]
func cartClearHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "cartClearHandler")
	defer span.End()

	if err := cartSvc.Clear(ctx); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// cartCheckoutHandler turns the cart into a committed order.
// @Summary Checkout
// @Accept json
// @Produce json
// @Param body body object true "{\"table\": string}"
// @Success 201 {object} order.Record
// @Router /api/cart/checkout [post]
func cartCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "cartCheckoutHandler")
	defer span.End()

	var req struct {
		Table string `json:"table"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	rec, err := cartSvc.Checkout(ctx, req.Table)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}
