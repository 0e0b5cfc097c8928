package handler

import (
	"encoding/json"
	"net/http"

	"labstock/internal/service"
)

type ComponentHandler struct {
	svc *service.ComponentService
}

func NewComponentHandler(svc *service.ComponentService) *ComponentHandler {
	return &ComponentHandler{svc: svc}
}

type AddComponentRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

func (h *ComponentHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.svc.Add(r.Context(), req.Name, req.Category, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "message": "Component added"})
}

func (h *ComponentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	components, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, components)
}

func (h *ComponentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	components, err := h.svc.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, components)
}
