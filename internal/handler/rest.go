package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"itemsvc/internal/model"
	"itemsvc/internal/store"
)

// Version is the application version.
const Version = "1.0.0"

// Client-facing messages; fixed strings that are part of the wire contract.
const (
	MsgItemNotFound = "Item not found"
	MsgNameRequired = "Name is required to create an item."
	MsgInvalidBody  = "Invalid request body"
	MsgEmptyName    = "Name cannot be empty"
)

// EventSink receives item change events for broadcast to watch clients.
type EventSink interface {
	Broadcast(event model.ItemEvent)
}

// RESTHandler handles REST API requests for items.
type RESTHandler struct {
	store  store.Store
	logger *zap.Logger
	events EventSink
}

// NewRESTHandler creates a new RESTHandler instance. The event sink
// may be nil, in which case change events are not published.
func NewRESTHandler(s store.Store, logger *zap.Logger, events EventSink) *RESTHandler {
	return &RESTHandler{
		store:  s,
		logger: logger,
		events: events,
	}
}

// RegisterRoutes registers the REST API routes with the router.
func (h *RESTHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/api/items", h.ListItems).Methods(http.MethodGet)
	router.HandleFunc("/api/items", h.CreateItem).Methods(http.MethodPost)
	router.HandleFunc("/api/items/{id}", h.GetItem).Methods(http.MethodGet)
	router.HandleFunc("/api/items/{id}", h.UpdateItem).Methods(http.MethodPut)
	router.HandleFunc("/api/items/{id}", h.DeleteItem).Methods(http.MethodDelete)
}

// HealthCheck handles GET /health requests.
func (h *RESTHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: Version,
	})
}

// ListItems handles GET /api/items requests.
func (h *RESTHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list items", zap.Error(err))
		h.writeText(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, items)
}

// GetItem handles GET /api/items/{id} requests.
func (h *RESTHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.writeText(w, http.StatusNotFound, MsgItemNotFound)
		return
	}

	item, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, err, "get item")
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

// CreateItem handles POST /api/items requests.
func (h *RESTHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var input model.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		h.writeText(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if err := input.ValidateCreate(); err != nil {
		h.logger.Warn("validation failed", zap.Error(err))
		h.writeText(w, http.StatusBadRequest, MsgNameRequired)
		return
	}

	item, err := h.store.Create(r.Context(), &input)
	if err != nil {
		h.handleStoreError(w, err, "create item")
		return
	}

	h.publish(model.EventItemCreated, *item)
	h.writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/items/{id} requests.
func (h *RESTHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.writeText(w, http.StatusNotFound, MsgItemNotFound)
		return
	}

	var input model.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		h.writeText(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if err := input.ValidateUpdate(); err != nil {
		h.logger.Warn("validation failed", zap.Error(err))
		h.writeText(w, http.StatusBadRequest, MsgEmptyName)
		return
	}

	item, err := h.store.Update(r.Context(), id, &input)
	if err != nil {
		h.handleStoreError(w, err, "update item")
		return
	}

	h.publish(model.EventItemUpdated, *item)
	h.writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/items/{id} requests.
func (h *RESTHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.writeText(w, http.StatusNotFound, MsgItemNotFound)
		return
	}

	item, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, err, "delete item")
		return
	}

	h.publish(model.EventItemDeleted, *item)
	w.WriteHeader(http.StatusNoContent)
}

// itemID extracts the {id} path variable. A non-numeric id reports
// false so callers can route it to the not-found branch rather than
// treating it as a server error.
func itemID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, false
	}
	return id, true
}

// handleStoreError maps store errors to HTTP responses.
func (h *RESTHandler) handleStoreError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.writeText(w, http.StatusNotFound, MsgItemNotFound)
	case errors.Is(err, model.ErrEmptyName):
		h.writeText(w, http.StatusBadRequest, MsgNameRequired)
	default:
		h.logger.Error("store operation failed", zap.String("operation", operation), zap.Error(err))
		h.writeText(w, http.StatusInternalServerError, "Internal server error")
	}
}

// publish sends a change event to the sink, if one is configured.
func (h *RESTHandler) publish(eventType string, item model.Item) {
	if h.events == nil {
		return
	}
	h.events.Broadcast(model.NewItemEvent(eventType, item))
}

// writeJSON writes a JSON response with the given status code.
func (h *RESTHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeText writes a plain-text response with the given status code.
func (h *RESTHandler) writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)

	if _, err := fmt.Fprint(w, message); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
