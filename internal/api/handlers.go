// Package api exposes the casino floor over HTTP for a local front end
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fadedpez/neonroyal/internal/logging"
	"github.com/fadedpez/neonroyal/internal/types"
	"github.com/fadedpez/neonroyal/pkg/catalog"
	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/services/casino"
	"github.com/fadedpez/neonroyal/pkg/services/coinflip"
	"github.com/fadedpez/neonroyal/pkg/services/hilo"
	"github.com/fadedpez/neonroyal/pkg/services/statistics"
	"github.com/gorilla/mux"
)

// Handler contains all HTTP handlers
type Handler struct {
	floor  *casino.Floor
	stats  *statistics.Service
	hub    *Hub
	logger *logging.Logger
}

// New creates a handler over floor and subscribes its websocket hub to the
// ledger's events
func New(floor *casino.Floor, stats *statistics.Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default
	}

	h := &Handler{
		floor:  floor,
		stats:  stats,
		hub:    NewHub(logger),
		logger: logger,
	}
	floor.Ledger().Subscribe(h.hub.Broadcast)
	return h
}

// Hub returns the websocket hub events are broadcast on
func (h *Handler) Hub() *Hub {
	return h.hub
}

// Response helpers

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
	})
}

// statusFor maps a rejection code to the HTTP status the front end sees
func statusFor(code types.ErrorCode) int {
	switch code {
	case types.ErrInsufficientFunds, types.ErrInvalidArgument, types.ErrInvalidAction:
		return http.StatusBadRequest
	case types.ErrNotFound:
		return http.StatusNotFound
	case types.ErrRoundInProgress, types.ErrNoRoundInProgress,
		types.ErrTooSoon, types.ErrNotEligible,
		types.ErrAlreadyOwned, types.ErrNotOwned:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondGameError(w http.ResponseWriter, err error) {
	var gameErr *types.GameError
	if !types.As(err, &gameErr) {
		h.logger.Error("Unexpected error: %v", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	status := statusFor(gameErr.Code)
	if status == http.StatusInternalServerError {
		h.logger.LogError(err)
	}
	respondError(w, status, string(gameErr.Code), gameErr.Message)
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return types.WrapError(types.ErrInvalidArgument, "Invalid request body", err)
	}
	return nil
}

// === State ===

// GetState handles GET /api/state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.state())
}

func (h *Handler) state() stateView {
	wallet := h.floor.Ledger()
	return stateView{
		Ledger:    wallet.Snapshot(),
		OpenWager: wallet.OpenWager(),
		Active:    h.floor.Active(),
		Time:      h.floor.TimeContext(),
	}
}

// SetBet handles POST /api/bet
func (h *Handler) SetBet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := decode(r, &req); err != nil {
		h.respondGameError(w, err)
		return
	}

	if err := h.floor.Ledger().SetBet(r.Context(), req.Amount); err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"current_bet": req.Amount,
	})
}

// Reset handles POST /api/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.floor.Ledger().Reset(r.Context()); err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.state())
}

// === Games ===

// SpinSlots handles POST /api/games/slots/spin
func (h *Handler) SpinSlots(w http.ResponseWriter, r *http.Request) {
	spin, err := h.floor.SpinSlots(r.Context())
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, slotsView(spin))
}

// DealBlackjack handles POST /api/games/blackjack/deal
func (h *Handler) DealBlackjack(w http.ResponseWriter, r *http.Request) {
	table, err := h.floor.DealBlackjack(r.Context())
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, blackjackView(table))
}

// Hit handles POST /api/games/blackjack/hit
func (h *Handler) Hit(w http.ResponseWriter, r *http.Request) {
	table, err := h.floor.Hit(r.Context())
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, blackjackView(table))
}

// Stand handles POST /api/games/blackjack/stand
func (h *Handler) Stand(w http.ResponseWriter, r *http.Request) {
	table, err := h.floor.Stand(r.Context())
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, blackjackView(table))
}

// SpinRoulette handles POST /api/games/roulette/spin
func (h *Handler) SpinRoulette(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pick *int `json:"pick"`
	}
	if err := decode(r, &req); err != nil {
		h.respondGameError(w, err)
		return
	}
	if req.Pick == nil {
		respondError(w, http.StatusBadRequest, string(types.ErrInvalidArgument), "pick is required")
		return
	}

	spin, err := h.floor.SpinRoulette(r.Context(), *req.Pick)
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rouletteView(spin))
}

// StartHiLo handles POST /api/games/hilo/start
func (h *Handler) StartHiLo(w http.ResponseWriter, r *http.Request) {
	hand, err := h.floor.StartHiLo(r.Context())
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, hiloView(hand))
}

// GuessHiLo handles POST /api/games/hilo/guess
func (h *Handler) GuessHiLo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Guess string `json:"guess"`
	}
	if err := decode(r, &req); err != nil {
		h.respondGameError(w, err)
		return
	}
	guess, err := hilo.ParseGuess(req.Guess)
	if err != nil {
		h.respondGameError(w, err)
		return
	}

	hand, err := h.floor.GuessHiLo(r.Context(), guess)
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, hiloView(hand))
}

// FlipCoin handles POST /api/games/coinflip/flip
func (h *Handler) FlipCoin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pick string `json:"pick"`
	}
	if err := decode(r, &req); err != nil {
		h.respondGameError(w, err)
		return
	}
	side, err := coinflip.ParseSide(req.Pick)
	if err != nil {
		h.respondGameError(w, err)
		return
	}

	flip, err := h.floor.FlipCoin(r.Context(), side)
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, coinflipView(flip))
}

// DealHoldem handles POST /api/games/holdem/deal
func (h *Handler) DealHoldem(w http.ResponseWriter, r *http.Request) {
	board, err := h.floor.DealHoldem(r.Context())
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, holdemView(board))
}

// AdvanceHoldem handles POST /api/games/holdem/advance
func (h *Handler) AdvanceHoldem(w http.ResponseWriter, r *http.Request) {
	board, err := h.floor.AdvanceHoldem(r.Context())
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, holdemView(board))
}

// DropPlinko handles POST /api/games/plinko/drop
func (h *Handler) DropPlinko(w http.ResponseWriter, r *http.Request) {
	drop, err := h.floor.DropPlinko(r.Context())
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plinkoView(drop))
}

// === Rewards ===

// ClaimDaily handles POST /api/rewards/daily
func (h *Handler) ClaimDaily(w http.ResponseWriter, r *http.Request) {
	claim, err := h.floor.Ledger().ClaimDailyBonus(r.Context())
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"amount":    claim.Amount,
		"balance":   claim.Balance,
		"narration": claim.Narration,
	})
}

// ClaimWeekly handles POST /api/rewards/weekly
func (h *Handler) ClaimWeekly(w http.ResponseWriter, r *http.Request) {
	claim, err := h.floor.Ledger().ClaimWeeklyBonus(r.Context())
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"amount":    claim.Amount,
		"balance":   claim.Balance,
		"narration": claim.Narration,
	})
}

// === Shop ===

// GetShop handles GET /api/shop
func (h *Handler) GetShop(w http.ResponseWriter, r *http.Request) {
	snap := h.floor.Ledger().Snapshot()

	items := make([]shopItemView, 0, len(catalog.Items()))
	for _, item := range catalog.Items() {
		items = append(items, shopItemView{
			ShopItem: item,
			Owned:    snap.Owns(item.ID),
			Equipped: item.ID == snap.EquippedTheme || item.ID == snap.EquippedAccessory,
		})
	}
	respondJSON(w, http.StatusOK, items)
}

// BuyItem handles POST /api/shop/{id}/buy
func (h *Handler) BuyItem(w http.ResponseWriter, r *http.Request) {
	id := entities.ItemID(mux.Vars(r)["id"])
	if err := h.floor.Ledger().PurchaseItem(r.Context(), id); err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.state())
}

// EquipItem handles POST /api/shop/{id}/equip
func (h *Handler) EquipItem(w http.ResponseWriter, r *http.Request) {
	id := entities.ItemID(mux.Vars(r)["id"])
	if err := h.floor.Ledger().EquipItem(r.Context(), id); err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.state())
}

// === History ===

// GetHistory handles GET /api/history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= entities.HistoryCap {
			limit = n
		}
	}

	entries, err := h.floor.Ledger().RecentRounds(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to load history: %v", err)
		respondError(w, http.StatusInternalServerError, "HISTORY_ERROR", "Failed to get round history")
		return
	}
	if entries == nil {
		entries = []entities.HistoryEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// GetStats handles GET /api/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	board, err := h.stats.Board(r.Context(), entities.HistoryCap)
	if err != nil {
		h.logger.Error("Failed to build stats: %v", err)
		respondError(w, http.StatusInternalServerError, "STATS_ERROR", "Failed to get statistics")
		return
	}
	digest, err := h.stats.RecentAction(r.Context())
	if err != nil {
		h.logger.Error("Failed to build digest: %v", err)
		respondError(w, http.StatusInternalServerError, "STATS_ERROR", "Failed to get statistics")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"board":  board,
		"recent": digest,
	})
}

// === Health ===

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"clients": h.hub.Clients(),
	})
}
