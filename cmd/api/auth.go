package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"maeled/pkg/auth"
	"maeled/pkg/otel"
)

const sessionCookie = "session_id"

type sessionKey struct{}

// loginRequest represents login credentials.
type loginRequest struct {
	Role     auth.Role `json:"role"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
}

// loginHandler handles login and session creation.
// @Summary Login
// @Description Checks demo credentials and sets the session cookie
// @Accept json
// @Produce json
// @Param creds body loginRequest true "Credentials"
// @Success 200 {object} auth.Session
// @Router /login [post]
func loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "loginHandler")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Role == "" {
		req.Role = auth.RoleAdmin
	}

	session, err := auth.Login(req.Role, req.Email, req.Password)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	sid := auth.NewSessionID()
	if err := sessions.Put(ctx, sid, session, auth.SessionTTL); err != nil {
		respondError(ctx, w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		Expires:  time.Now().Add(auth.SessionTTL),
		HttpOnly: true,
	})
	log.Info(ctx, "login", "role", session.Role, "email", session.Email)
	respondJSON(w, http.StatusOK, session)
}

// logoutHandler drops the session.
// @Summary Logout
// @Success 204
// @Router /logout [post]
func logoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "logoutHandler")
	defer span.End()

	if c, err := r.Cookie(sessionCookie); err == nil {
		if err := sessions.Delete(ctx, c.Value); err != nil {
			log.Warn(ctx, "session delete", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	w.WriteHeader(http.StatusNoContent)
}

// authMiddleware ensures a valid session exists.
func authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookie)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		session, err := sessions.Get(r.Context(), c.Value)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole gates a subrouter to one role.
func requireRole(role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := r.Context().Value(sessionKey{}).(auth.Session)
			if !ok || session.Role != role {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
