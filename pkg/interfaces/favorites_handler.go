package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/yair/eventscout/pkg/domain"
)

type FavoritesHandler struct {
	favorites Favorites
}

func NewFavoritesHandler(favorites Favorites) *FavoritesHandler {
	return &FavoritesHandler{
		favorites: favorites,
	}
}

func (h *FavoritesHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/favorites", h.GetFavorites).Methods("GET")
	router.HandleFunc("/api/favorites", h.AddFavorite).Methods("POST")
	router.HandleFunc("/api/favorites/toggle", h.ToggleFavorite).Methods("POST")
	router.HandleFunc("/api/favorites/{id}", h.GetFavorite).Methods("GET")
	router.HandleFunc("/api/favorites/{id}", h.RemoveFavorite).Methods("DELETE")
}

type favoriteStatus struct {
	ID    string `json:"id"`
	Saved bool   `json:"saved"`
}

func (h *FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	events, err := h.favorites.GetAll(ctx)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"total":  len(events),
	})
}

func (h *FavoritesHandler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := mux.Vars(r)["id"]
	saved, err := h.favorites.Contains(ctx, id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, favoriteStatus{ID: id, Saved: saved})
}

func (h *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	event, ok := decodeEvent(w, r)
	if !ok {
		return
	}

	added, err := h.favorites.Add(ctx, event)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	code := http.StatusOK
	if added {
		code = http.StatusCreated
	}
	respondWithJSON(w, code, event)
}

func (h *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.favorites.Remove(ctx, mux.Vars(r)["id"]); err != nil {
		respondWithDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FavoritesHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	event, ok := decodeEvent(w, r)
	if !ok {
		return
	}

	saved, err := h.favorites.Toggle(ctx, event)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, favoriteStatus{ID: event.ID, Saved: saved})
}

func decodeEvent(w http.ResponseWriter, r *http.Request) (domain.Event, bool) {
	var event domain.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return event, false
	}

	if event.ID == "" {
		respondWithError(w, http.StatusBadRequest, "event id is required")
		return event, false
	}

	return event, true
}
