package main

import (
	"net/http"

	"maeled/pkg/otel"
)

// listNotificationsHandler returns the feed with the unread count.
// @Summary List notifications
// @Produce json
// @Success 200 {object} object
// @Router /api/notifications [get]
func listNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listNotificationsHandler")
	defer span.End()

	list, err := feed.List(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	unread, err := feed.UnreadCount(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"notifications": list,
		"unread":        unread,
	})
}

// markNotificationsReadHandler clears the unread badge.
// @Summary Mark all notifications read
// @Success 204
// @Router /api/notifications/read [post]
func markNotificationsReadHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "markNotificationsReadHandler")
	defer span.End()

	if err := feed.MarkAllRead(ctx); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
