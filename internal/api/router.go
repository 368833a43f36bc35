package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRouter creates and configures the HTTP router
func (h *Handler) SetupRouter() *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(NotFoundHandler)
	// routes only match GET or POST, so preflights land here
	r.MethodNotAllowedHandler = CORSMiddleware(http.HandlerFunc(MethodNotAllowedHandler))

	r.Use(h.RecoveryMiddleware)
	r.Use(CORSMiddleware)
	r.Use(h.LoggingMiddleware)

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/ws", h.HandleWebSocket).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Ledger
	api.HandleFunc("/state", h.GetState).Methods("GET")
	api.HandleFunc("/bet", h.SetBet).Methods("POST")
	api.HandleFunc("/reset", h.Reset).Methods("POST")
	api.HandleFunc("/history", h.GetHistory).Methods("GET")
	api.HandleFunc("/stats", h.GetStats).Methods("GET")

	// Games
	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("/slots/spin", h.SpinSlots).Methods("POST")
	games.HandleFunc("/blackjack/deal", h.DealBlackjack).Methods("POST")
	games.HandleFunc("/blackjack/hit", h.Hit).Methods("POST")
	games.HandleFunc("/blackjack/stand", h.Stand).Methods("POST")
	games.HandleFunc("/roulette/spin", h.SpinRoulette).Methods("POST")
	games.HandleFunc("/hilo/start", h.StartHiLo).Methods("POST")
	games.HandleFunc("/hilo/guess", h.GuessHiLo).Methods("POST")
	games.HandleFunc("/coinflip/flip", h.FlipCoin).Methods("POST")
	games.HandleFunc("/holdem/deal", h.DealHoldem).Methods("POST")
	games.HandleFunc("/holdem/advance", h.AdvanceHoldem).Methods("POST")
	games.HandleFunc("/plinko/drop", h.DropPlinko).Methods("POST")

	// Rewards
	api.HandleFunc("/rewards/daily", h.ClaimDaily).Methods("POST")
	api.HandleFunc("/rewards/weekly", h.ClaimWeekly).Methods("POST")

	// Shop
	api.HandleFunc("/shop", h.GetShop).Methods("GET")
	api.HandleFunc("/shop/{id}/buy", h.BuyItem).Methods("POST")
	api.HandleFunc("/shop/{id}/equip", h.EquipItem).Methods("POST")

	return r
}

// NotFoundHandler handles 404 errors
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
}

// MethodNotAllowedHandler handles 405 errors
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
}
