package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/messmate/mess-client/internal/adapters/api"
	"github.com/messmate/mess-client/internal/core/domain"
	"github.com/messmate/mess-client/internal/core/services"
)

// SessionHandler exposes the session lifecycle over the local gateway:
// login, logout, registration, OTP verification, and the in-process
// notice feed.
type SessionHandler struct {
	session *services.SessionService
	notices *services.Notifier
	client  *api.Client
}

func NewSessionHandler(session *services.SessionService, notices *services.Notifier, client *api.Client) *SessionHandler {
	return &SessionHandler{session: session, notices: notices, client: client}
}

type loginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.session.Login(r.Context(), form.Username, form.Password); err != nil {
		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			h.notices.Publish(domain.NoticeError, "Login Failed", authErr.Error())
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": authErr.Error()})
			return
		}
		http.Error(w, "login failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    h.session.Identity(),
	})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.client.Register(r.Context(), req); err != nil {
		h.writeAPIError(w, "Registration Failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Registration submitted, verify the OTP sent to your phone"})
}

type otpForm struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

func (h *SessionHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var form otpForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.client.VerifyOTP(r.Context(), form.Phone, form.OTP); err != nil {
		h.writeAPIError(w, "OTP Verification Failed", err)
		return
	}

	// Status advanced on the backend; pick up the new identity.
	if err := h.session.RefreshUser(r.Context()); err != nil {
		log.Printf("handler: refresh after OTP verification failed: %v", err)
	}
	if ident := h.session.Identity(); ident == nil || ident.Status.AtLeast(domain.StatusRegistrationComplete) {
		h.notices.Publish(domain.NoticeSuccess, "Account Verified", "OTP verification complete.")
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP verified"})
}

func (h *SessionHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var form otpForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.client.ResendOTP(r.Context(), form.Phone); err != nil {
		h.writeAPIError(w, "Could Not Resend OTP", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP resent"})
}

// Notices returns the currently visible in-process notifications.
func (h *SessionHandler) Notices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.notices.Active())
}

func (h *SessionHandler) DismissNotice(w http.ResponseWriter, r *http.Request) {
	h.notices.Dismiss(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// writeAPIError surfaces a backend failure as a notice plus a JSON error
// with the backend's status when one is known.
func (h *SessionHandler) writeAPIError(w http.ResponseWriter, title string, err error) {
	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) {
		h.notices.Publish(domain.NoticeError, title, reqErr.Detail)
		writeJSON(w, reqErr.Status, map[string]string{"detail": reqErr.Detail})
		return
	}
	log.Printf("handler: %s: %v", title, err)
	h.notices.Publish(domain.NoticeError, title, "The service is unreachable, try again shortly.")
	http.Error(w, "upstream unavailable", http.StatusBadGateway)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
