package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"labstock/internal/service"

	"github.com/go-chi/chi/v5"
)

type CheckoutHandler struct {
	svc *service.CheckoutService
}

func NewCheckoutHandler(svc *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

type SubmitRequest struct {
	ComponentID int `json:"component_id"`
	Quantity    int `json:"quantity"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	claims := ClaimsFromContext(r.Context())
	id, err := h.svc.Submit(r.Context(), claims.UserID, req.ComponentID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "message": "Checkout request submitted"})
}

func (h *CheckoutHandler) MyRequests(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	requests, err := h.svc.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *CheckoutHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.svc.ListPending(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (h *CheckoutHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Approve(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Approved"})
}

func (h *CheckoutHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}

	// The reason body is optional; an absent or empty body means an
	// empty reason.
	var req RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.svc.Reject(r.Context(), id, req.Reason); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Rejected"})
}

func (h *CheckoutHandler) PendingCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.PendingCount(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"pending": count})
}
