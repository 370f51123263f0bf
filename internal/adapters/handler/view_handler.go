package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/messmate/mess-client/internal/adapters/api"
	"github.com/messmate/mess-client/internal/core/domain"
	"github.com/messmate/mess-client/internal/core/services"
)

// ViewHandler serves the guarded JSON views. Every route behind it has
// already passed the route guard, so an identity is always present and
// fully onboarded (except /profile, which registration_complete users
// are funneled to).
type ViewHandler struct {
	session *services.SessionService
	notices *services.Notifier
	client  *api.Client
}

func NewViewHandler(session *services.SessionService, notices *services.Notifier, client *api.Client) *ViewHandler {
	return &ViewHandler{session: session, notices: notices, client: client}
}

// Dashboard assembles the landing view: identity plus the active
// subscription when one exists. Mess owners get the pending-leave queue
// instead.
func (h *ViewHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ident := h.session.Identity()
	view := map[string]any{"user": ident}

	if ident != nil && ident.Role == domain.RoleMessOwner {
		pending, err := h.client.OwnerPendingLeaves(r.Context())
		if err == nil {
			view["pending_leaves"] = pending
		}
		stats, err := h.client.LeaveStats(r.Context())
		if err == nil {
			view["leave_stats"] = stats
		}
		writeJSON(w, http.StatusOK, view)
		return
	}

	sub, err := h.client.ActiveSubscription(r.Context())
	if err == nil {
		view["active_subscription"] = sub
	} else {
		var reqErr *domain.RequestError
		if !errors.As(err, &reqErr) || reqErr.Status != http.StatusNotFound {
			h.upstreamError(w, "Could Not Load Dashboard", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *ViewHandler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.client.Subscriptions(r.Context())
	if err != nil {
		h.upstreamError(w, "Could Not Load Subscriptions", err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *ViewHandler) Plans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.client.Plans(r.Context())
	if err != nil {
		h.upstreamError(w, "Could Not Load Plans", err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (h *ViewHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req api.CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	sub, err := h.client.CreateSubscription(r.Context(), req)
	if err != nil {
		h.upstreamError(w, "Subscription Failed", err)
		return
	}
	h.notices.Publish(domain.NoticeSuccess, "Subscribed", "Your subscription is active.")
	writeJSON(w, http.StatusCreated, sub)
}

func (h *ViewHandler) Payments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.client.Payments(r.Context())
	if err != nil {
		h.upstreamError(w, "Could Not Load Payments", err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *ViewHandler) Leaves(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.client.Leaves(r.Context())
	if err != nil {
		h.upstreamError(w, "Could Not Load Leaves", err)
		return
	}
	writeJSON(w, http.StatusOK, leaves)
}

func (h *ViewHandler) RequestLeave(w http.ResponseWriter, r *http.Request) {
	var req api.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	leave, err := h.client.CreateLeave(r.Context(), req)
	if err != nil {
		h.upstreamError(w, "Leave Request Failed", err)
		return
	}
	h.notices.Publish(domain.NoticeSuccess, "Leave Requested", "Your leave request was submitted.")
	writeJSON(w, http.StatusCreated, leave)
}

func (h *ViewHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	items, err := h.client.FeedbackList(r.Context())
	if err != nil {
		h.upstreamError(w, "Could Not Load Feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ViewHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req api.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	item, err := h.client.CreateFeedback(r.Context(), req)
	if err != nil {
		h.upstreamError(w, "Feedback Submission Failed", err)
		return
	}
	h.notices.Publish(domain.NoticeSuccess, "Feedback Submitted", "Thanks for letting us know.")
	writeJSON(w, http.StatusCreated, item)
}

func (h *ViewHandler) NotificationLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.client.NotificationLogs(r.Context())
	if err != nil {
		h.upstreamError(w, "Could Not Load Notifications", err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *ViewHandler) Profile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Identity())
}

// CompleteProfile forwards the role-specific payload and refreshes the
// identity so the status advance is visible immediately.
func (h *ViewHandler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.client.CompleteProfile(r.Context(), payload); err != nil {
		h.upstreamError(w, "Profile Update Failed", err)
		return
	}
	if err := h.session.RefreshUser(r.Context()); err == nil {
		// Only celebrate once the backend confirms the status advance.
		if ident := h.session.Identity(); ident != nil && ident.Status.AtLeast(domain.StatusProfileComplete) {
			h.notices.Publish(domain.NoticeSuccess, "Profile Complete", "Your account is fully set up.")
		}
	}
	writeJSON(w, http.StatusOK, h.session.Identity())
}

func (h *ViewHandler) upstreamError(w http.ResponseWriter, title string, err error) {
	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) {
		h.notices.Publish(domain.NoticeError, title, reqErr.Detail)
		writeJSON(w, reqErr.Status, map[string]string{"detail": reqErr.Detail})
		return
	}
	h.notices.Publish(domain.NoticeError, title, "The service is unreachable, try again shortly.")
	http.Error(w, "upstream unavailable", http.StatusBadGateway)
}
