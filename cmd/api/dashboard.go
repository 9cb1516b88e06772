package main

import (
	"net/http"

	"maeled/pkg/otel"
)

// dashboardHandler returns the headline overview plus distributions.
// @Summary Dashboard overview
// @Produce json
// @Success 200 {object} object
// @Router /api/dashboard [get]
func dashboardHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "dashboardHandler")
	defer span.End()

	overview, err := reports.Overview(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	statuses, err := reports.StatusDistribution(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	stockDist, err := reports.Stock(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	value, err := stock.TotalValue(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"overview":   overview,
		"statuses":   statuses,
		"stock":      stockDist,
		"stockValue": value,
	})
}

// revenueHandler returns the revenue chart data.
// @Summary Revenue by day
// @Produce json
// @Param days query int false "Window size, default 7"
// @Success 200 {array} report.DayRevenue
// @Router /api/dashboard/revenue [get]
func revenueHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "revenueHandler")
	defer span.End()

	days := queryInt(r, "days", 7)
	out, err := reports.RevenueByDay(ctx, days)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// topMarginsHandler ranks menu items by gross margin.
// @Summary Top margins
// @Produce json
// @Param limit query int false "Max rows, default 5"
// @Success 200 {array} catalog.Item
// @Router /api/dashboard/margins [get]
func topMarginsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "topMarginsHandler")
	defer span.End()

	limit := queryInt(r, "limit", 5)
	out, err := reports.TopMargins(ctx, limit)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// popularDishesHandler ranks dishes by quantity sold.
// @Summary Popular dishes
// @Produce json
// @Param limit query int false "Max rows, default 5"
// @Success 200 {array} report.Dish
// @Router /api/dashboard/dishes [get]
func popularDishesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "popularDishesHandler")
	defer span.End()

	limit := queryInt(r, "limit", 5)
	out, err := reports.PopularDishes(ctx, limit)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}
