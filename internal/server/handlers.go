package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ferrarinobrakes/oddsboard/internal/domain"
	"github.com/ferrarinobrakes/oddsboard/internal/favorites"
	"github.com/ferrarinobrakes/oddsboard/internal/logos"
	"github.com/ferrarinobrakes/oddsboard/internal/service"
)

type Handler struct {
	registry  *service.Registry
	favorites *favorites.Repository
	logos     *logos.Service
	logger    zerolog.Logger
}

func NewHandler(registry *service.Registry, favorites *favorites.Repository, logos *logos.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		registry:  registry,
		favorites: favorites,
		logos:     logos,
		logger:    logger.With().Str("component", "http").Logger(),
	}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/api/health", h.handleHealth)

	r.Route("/api/boards", func(r chi.Router) {
		r.Post("/", h.handleOpenBoard)
		r.Route("/{boardID}", func(r chi.Router) {
			r.Get("/", h.handleGetBoard)
			r.Delete("/", h.handleCloseBoard)
			r.Post("/sport", h.handleSetSport)
			r.Post("/window", h.handleSetWindow)
			r.Post("/league", h.handleSetLeague)
			r.Post("/more", h.handleLoadMore)
			r.Post("/refresh", h.handleRefresh)
			r.Post("/updates", h.handleMatchUpdate)
			r.Route("/matches/{matchID}", func(r chi.Router) {
				r.Post("/details", h.handleToggleDetails)
				r.Post("/bookmakers", h.handleToggleBookmakers)
				r.Post("/sort", h.handleSetSort)
			})
		})
	})

	r.Route("/api/favorites", func(r chi.Router) {
		r.Get("/", h.handleListFavorites)
		r.Post("/{team}/toggle", h.handleToggleFavorite)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

type openBoardRequest struct {
	Sport  string            `json:"sport"`
	Window domain.TimeWindow `json:"window"`
}

func (h *Handler) handleOpenBoard(w http.ResponseWriter, r *http.Request) {
	var req openBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Window != "" && !req.Window.Valid() {
		h.errorResponse(w, http.StatusBadRequest, "invalid window")
		return
	}
	if req.Window == "" {
		req.Window = domain.WindowUpcoming
	}

	id, snap := h.registry.Open(r.Context(), req.Sport, req.Window)
	board, err := h.registry.Get(id)
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.jsonResponse(w, http.StatusCreated, h.boardView(r.Context(), id, board, snap))
}

// handleGetBoard renders the board. When the caller's URL carries sport or
// window values that differ from the board's, the board re-synchronizes to
// them first, so a shared link reproduces the same filtered view.
func (h *Handler) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "boardID")
	board, err := h.registry.Get(id)
	if err != nil {
		h.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	snap := board.Snapshot()
	if sport := r.URL.Query().Get("sport"); sport != "" && sport != snap.Sport {
		snap = board.SetSport(r.Context(), sport)
	}
	if raw := r.URL.Query().Get("window"); raw != "" {
		window := domain.TimeWindow(raw)
		if window.Valid() && window != snap.Window {
			snap = board.SetWindow(r.Context(), window)
		}
	}

	h.jsonResponse(w, http.StatusOK, h.boardView(r.Context(), id, board, snap))
}

func (h *Handler) handleCloseBoard(w http.ResponseWriter, r *http.Request) {
	h.registry.Close(chi.URLParam(r, "boardID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSetSport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sport string `json:"sport"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.withBoard(w, r, func(id string, board *service.Board) {
		snap := board.SetSport(r.Context(), req.Sport)
		h.jsonResponse(w, http.StatusOK, h.boardView(r.Context(), id, board, snap))
	})
}

func (h *Handler) handleSetWindow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Window domain.TimeWindow `json:"window"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Window.Valid() {
		h.errorResponse(w, http.StatusBadRequest, "invalid window")
		return
	}
	h.withBoard(w, r, func(id string, board *service.Board) {
		snap := board.SetWindow(r.Context(), req.Window)
		h.jsonResponse(w, http.StatusOK, h.boardView(r.Context(), id, board, snap))
	})
}

func (h *Handler) handleSetLeague(w http.ResponseWriter, r *http.Request) {
	var req struct {
		League string `json:"league"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.withBoard(w, r, func(id string, board *service.Board) {
		snap := board.SetLeague(req.League)
		h.jsonResponse(w, http.StatusOK, h.boardView(r.Context(), id, board, snap))
	})
}

func (h *Handler) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	h.withBoard(w, r, func(id string, board *service.Board) {
		snap := board.LoadMore(r.Context())
		h.jsonResponse(w, http.StatusOK, h.boardView(r.Context(), id, board, snap))
	})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	h.withBoard(w, r, func(id string, board *service.Board) {
		snap := board.Reset(r.Context())
		h.jsonResponse(w, http.StatusOK, h.boardView(r.Context(), id, board, snap))
	})
}

// handleMatchUpdate accepts a pushed score/odds snapshot for one match,
// replacing the stored match wholesale.
func (h *Handler) handleMatchUpdate(w http.ResponseWriter, r *http.Request) {
	var m domain.Match
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil || m.ID == "" {
		h.errorResponse(w, http.StatusBadRequest, "invalid match payload")
		return
	}
	h.withBoard(w, r, func(id string, board *service.Board) {
		snap := board.ApplyMatchUpdate(m)
		h.jsonResponse(w, http.StatusOK, h.boardView(r.Context(), id, board, snap))
	})
}

func (h *Handler) handleToggleDetails(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	h.withBoard(w, r, func(id string, board *service.Board) {
		snap := board.ToggleDetails(matchID)
		h.jsonResponse(w, http.StatusOK, h.boardView(r.Context(), id, board, snap))
	})
}

func (h *Handler) handleToggleBookmakers(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	h.withBoard(w, r, func(id string, board *service.Board) {
		snap := board.ToggleBookmakers(matchID)
		h.jsonResponse(w, http.StatusOK, h.boardView(r.Context(), id, board, snap))
	})
}

func (h *Handler) handleSetSort(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key domain.SortKey `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	matchID := chi.URLParam(r, "matchID")
	h.withBoard(w, r, func(id string, board *service.Board) {
		snap := board.SetSort(matchID, req.Key)
		h.jsonResponse(w, http.StatusOK, h.boardView(r.Context(), id, board, snap))
	})
}

func (h *Handler) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	teams, err := h.favorites.List(r.Context())
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if teams == nil {
		teams = []string{}
	}
	h.jsonResponse(w, http.StatusOK, map[string]any{"teams": teams})
}

func (h *Handler) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	team := chi.URLParam(r, "team")
	sportKey := r.URL.Query().Get("sport")

	followed, err := h.favorites.Toggle(r.Context(), team, sportKey)
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]any{"team": team, "followed": followed})
}

func (h *Handler) withBoard(w http.ResponseWriter, r *http.Request, fn func(id string, board *service.Board)) {
	id := chi.URLParam(r, "boardID")
	board, err := h.registry.Get(id)
	if err != nil {
		h.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	fn(id, board)
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, msg string) {
	h.jsonResponse(w, status, map[string]string{"error": msg})
}
