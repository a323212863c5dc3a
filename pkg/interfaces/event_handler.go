package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/yair/eventscout/pkg/domain"
	"github.com/yair/eventscout/pkg/listing"
)

// ListingController is the controller surface the HTTP API drives.
type ListingController interface {
	State() listing.State
	SetField(field domain.FilterField, value string) error
	Search(ctx context.Context) bool
	LoadMore(ctx context.Context) bool
}

type EventHandler struct {
	controller ListingController
	service    *BrowseService
}

func NewEventHandler(controller ListingController, service *BrowseService) *EventHandler {
	return &EventHandler{
		controller: controller,
		service:    service,
	}
}

func (h *EventHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/events", h.GetEvents).Methods("GET")
	router.HandleFunc("/api/events/more", h.LoadMore).Methods("POST")
	router.HandleFunc("/api/events/{id}", h.GetEvent).Methods("GET")
	router.HandleFunc("/api/filter", h.SetFilter).Methods("PUT")
	router.HandleFunc("/api/search", h.Search).Methods("POST")
	router.HandleFunc("/api/segments", h.GetSegments).Methods("GET")
	router.HandleFunc("/api/genres/{id}", h.GetGenre).Methods("GET")
}

type listingResponse struct {
	Events           []domain.Event `json:"events"`
	Page             int            `json:"page"`
	IsInitialLoading bool           `json:"is_initial_loading"`
	IsLoadingMore    bool           `json:"is_loading_more"`
	Error            string         `json:"error,omitempty"`
	Filter           domain.Filter  `json:"filter"`
	Started          *bool          `json:"started,omitempty"`
	Version          uint64         `json:"version"`
}

func newListingResponse(state listing.State) listingResponse {
	resp := listingResponse{
		Events:           state.Events,
		Page:             state.Page,
		IsInitialLoading: state.InitialLoading,
		IsLoadingMore:    state.LoadingMore,
		Filter:           state.Filter,
		Version:          state.Version,
	}
	if resp.Events == nil {
		resp.Events = []domain.Event{}
	}
	if state.Err != nil {
		resp.Error = state.Err.Error()
	}
	return resp
}

type filterRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, newListingResponse(h.controller.State()))
}

// SetFilter records one filter field; the fetch happens after the debounce.
func (h *EventHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.controller.SetField(domain.FilterField(req.Field), req.Value); err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusAccepted, newListingResponse(h.controller.State()))
}

// Search runs an immediate reset-fetch and waits for it. The fetch is
// detached from the request so a client hang-up does not record a spurious
// cancellation error.
func (h *EventHandler) Search(w http.ResponseWriter, r *http.Request) {
	started := h.controller.Search(context.WithoutCancel(r.Context()))
	resp := newListingResponse(h.controller.State())
	resp.Started = &started
	respondWithJSON(w, http.StatusOK, resp)
}

func (h *EventHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	started := h.controller.LoadMore(context.WithoutCancel(r.Context()))
	resp := newListingResponse(h.controller.State())
	resp.Started = &started
	respondWithJSON(w, http.StatusOK, resp)
}

func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	event, err := h.service.Event(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}

func (h *EventHandler) GetSegments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	segments, err := h.service.Segments(ctx)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"segments": segments})
}

func (h *EventHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result := h.service.Genre(ctx, mux.Vars(r)["id"])
	switch {
	case result.Found:
		respondWithJSON(w, http.StatusOK, result.Genre)
	case result.Err != nil:
		respondWithDomainError(w, result.Err)
	default:
		respondWithError(w, http.StatusNotFound, "genre not found")
	}
}
