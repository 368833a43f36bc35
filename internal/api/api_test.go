package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fadedpez/neonroyal/internal/logging"
	"github.com/fadedpez/neonroyal/internal/types"
	"github.com/fadedpez/neonroyal/pkg/clock"
	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/repositories/profile"
	"github.com/fadedpez/neonroyal/pkg/rng"
	"github.com/fadedpez/neonroyal/pkg/services/blackjack"
	"github.com/fadedpez/neonroyal/pkg/services/casino"
	"github.com/fadedpez/neonroyal/pkg/services/ledger"
	"github.com/fadedpez/neonroyal/pkg/services/statistics"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type rawResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

type APITestSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *clock.Fixed
	ledger  *ledger.Service
	handler *Handler
	server  *httptest.Server
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) SetupTest() {
	s.ctx = context.Background()
	// Monday 3 March 2025, noon
	s.clock = clock.NewFixed(time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC))

	logger := logging.NewLoggerTo(&bytes.Buffer{}, logging.DEBUG)
	s.ledger = ledger.Open(s.ctx, profile.NewMemoryRepository(), s.clock, ledger.WithLogger(logger))
	floor := casino.NewFloor(s.ledger, rng.NewSequence(0.25), s.clock, casino.WithLogger(logger))
	s.handler = New(floor, statistics.NewService(s.ledger), logger)
	s.server = httptest.NewServer(s.handler.SetupRouter())
}

func (s *APITestSuite) TearDownTest() {
	s.server.Close()
}

func (s *APITestSuite) do(method, path, body string) (int, rawResponse) {
	req, err := http.NewRequest(method, s.server.URL+path, strings.NewReader(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var out rawResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (s *APITestSuite) requireError(status int, res rawResponse, wantStatus int, code types.ErrorCode) {
	s.Require().Equal(wantStatus, status)
	s.False(res.Success)
	s.Require().NotNil(res.Error)
	s.Equal(string(code), res.Error.Code)
	s.NotEmpty(res.Error.Message)
}

func (s *APITestSuite) TestGetState() {
	status, res := s.do(http.MethodGet, "/api/state", "")
	s.Require().Equal(http.StatusOK, status)
	s.True(res.Success)

	var state stateView
	s.Require().NoError(json.Unmarshal(res.Data, &state))
	s.Equal(int64(entities.InitialBalance), state.Ledger.Balance)
	s.Equal(int64(entities.DefaultBet), state.Ledger.CurrentBet)
	s.Equal(time.Monday, state.Time.Weekday)
	s.Equal(12, state.Time.Hour)
	s.Zero(state.OpenWager)
	s.Empty(state.Active)
}

func (s *APITestSuite) TestSetBet() {
	status, res := s.do(http.MethodPost, "/api/bet", `{"amount": 25}`)
	s.Require().Equal(http.StatusOK, status)
	s.True(res.Success)
	s.Equal(int64(25), s.ledger.CurrentBet())

	status, res = s.do(http.MethodPost, "/api/bet", `{"amount": 30}`)
	s.requireError(status, res, http.StatusBadRequest, types.ErrInvalidArgument)

	status, res = s.do(http.MethodPost, "/api/bet", `not json`)
	s.requireError(status, res, http.StatusBadRequest, types.ErrInvalidArgument)
	s.Equal(int64(25), s.ledger.CurrentBet())
}

func (s *APITestSuite) TestPreflight() {
	req, err := http.NewRequest(http.MethodOptions, s.server.URL+"/api/games/coinflip/flip", nil)
	s.Require().NoError(err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("*", resp.Header.Get("Access-Control-Allow-Origin"))
	s.Contains(resp.Header.Get("Access-Control-Allow-Methods"), "POST")

	status, res := s.do(http.MethodGet, "/api/bet", "")
	s.Require().Equal(http.StatusMethodNotAllowed, status)
	s.False(res.Success)
	s.Require().NotNil(res.Error)
	s.Equal("METHOD_NOT_ALLOWED", res.Error.Code)
	s.Equal(int64(entities.InitialBalance), s.ledger.Balance())
}

func (s *APITestSuite) TestFlipCoinSettlesRound() {
	status, res := s.do(http.MethodPost, "/api/games/coinflip/flip", `{"pick": "heads"}`)
	s.Require().Equal(http.StatusOK, status)

	var flip coinflipResult
	s.Require().NoError(json.Unmarshal(res.Data, &flip))
	s.Equal("TAILS", string(flip.Landed))
	s.Zero(flip.Payout)
	s.Require().NotNil(flip.Entry)
	s.Equal(entities.OutcomeLoss, flip.Entry.Outcome)
	s.Equal(int64(990), s.ledger.Balance())

	status, res = s.do(http.MethodPost, "/api/games/coinflip/flip", `{"pick": "edge"}`)
	s.requireError(status, res, http.StatusBadRequest, types.ErrInvalidArgument)
}

func (s *APITestSuite) TestRouletteRequiresPick() {
	status, res := s.do(http.MethodPost, "/api/games/roulette/spin", `{}`)
	s.requireError(status, res, http.StatusBadRequest, types.ErrInvalidArgument)

	status, res = s.do(http.MethodPost, "/api/games/roulette/spin", `{"pick": 99}`)
	s.requireError(status, res, http.StatusBadRequest, types.ErrInvalidArgument)
	s.Equal(int64(entities.InitialBalance), s.ledger.Balance())
}

func (s *APITestSuite) TestActionWithoutRound() {
	status, res := s.do(http.MethodPost, "/api/games/blackjack/hit", "")
	s.requireError(status, res, http.StatusBadRequest, types.ErrInvalidAction)
}

func (s *APITestSuite) TestOpenRoundBlocksResetAndOtherGames() {
	status, res := s.do(http.MethodPost, "/api/games/hilo/start", "")
	s.Require().Equal(http.StatusOK, status)

	var hand hiloResult
	s.Require().NoError(json.Unmarshal(res.Data, &hand))
	s.False(hand.Finished)
	s.Nil(hand.Entry)

	status, res = s.do(http.MethodPost, "/api/games/slots/spin", "")
	s.requireError(status, res, http.StatusConflict, types.ErrRoundInProgress)

	status, res = s.do(http.MethodPost, "/api/reset", "")
	s.requireError(status, res, http.StatusConflict, types.ErrRoundInProgress)

	status, res = s.do(http.MethodGet, "/api/state", "")
	s.Require().Equal(http.StatusOK, status)
	var state stateView
	s.Require().NoError(json.Unmarshal(res.Data, &state))
	s.Equal(int64(entities.DefaultBet), state.OpenWager)
	s.Equal([]entities.GameType{entities.GameHiLo}, state.Active)
}

func (s *APITestSuite) TestRewards() {
	status, res := s.do(http.MethodPost, "/api/rewards/daily", "")
	s.Require().Equal(http.StatusOK, status)

	var claim struct {
		Amount    int64  `json:"amount"`
		Balance   int64  `json:"balance"`
		Narration string `json:"narration"`
	}
	s.Require().NoError(json.Unmarshal(res.Data, &claim))
	s.Equal(int64(300), claim.Amount)
	s.Equal(entities.InitialBalance+claim.Amount, claim.Balance)
	s.Equal("Monday reward claimed! $300 added to balance.", claim.Narration)

	status, res = s.do(http.MethodPost, "/api/rewards/daily", "")
	s.requireError(status, res, http.StatusConflict, types.ErrTooSoon)

	status, res = s.do(http.MethodPost, "/api/rewards/weekly", "")
	s.requireError(status, res, http.StatusConflict, types.ErrNotEligible)
}

func (s *APITestSuite) TestShop() {
	status, res := s.do(http.MethodGet, "/api/shop", "")
	s.Require().Equal(http.StatusOK, status)

	var items []shopItemView
	s.Require().NoError(json.Unmarshal(res.Data, &items))
	s.Require().NotEmpty(items)

	equipped := 0
	for _, item := range items {
		if item.Equipped {
			equipped++
			s.True(item.Owned)
		}
	}
	s.Equal(1, equipped)

	status, res = s.do(http.MethodPost, "/api/shop/no-such-item/buy", "")
	s.requireError(status, res, http.StatusNotFound, types.ErrNotFound)

	for _, item := range items {
		if !item.Owned {
			status, res = s.do(http.MethodPost, "/api/shop/"+string(item.ID)+"/equip", "")
			s.requireError(status, res, http.StatusConflict, types.ErrNotOwned)
			break
		}
	}
}

func (s *APITestSuite) TestHistoryAndStats() {
	s.do(http.MethodPost, "/api/games/coinflip/flip", `{"pick": "tails"}`)

	status, res := s.do(http.MethodGet, "/api/history?limit=5", "")
	s.Require().Equal(http.StatusOK, status)
	var entries []entities.HistoryEntry
	s.Require().NoError(json.Unmarshal(res.Data, &entries))
	s.Require().Len(entries, 1)
	s.Equal(entities.GameCoinFlip, entries[0].Game)
	s.Equal(entities.OutcomeWin, entries[0].Outcome)

	status, res = s.do(http.MethodGet, "/api/stats", "")
	s.Require().Equal(http.StatusOK, status)
	var stats struct {
		Board  statistics.Board `json:"board"`
		Recent string           `json:"recent"`
	}
	s.Require().NoError(json.Unmarshal(res.Data, &stats))
	s.Equal(1, stats.Board.Rounds)
	s.Contains(stats.Recent, "COIN_FLIP")
}

func (s *APITestSuite) TestUnknownRoute() {
	status, res := s.do(http.MethodGet, "/api/nope", "")
	s.requireError(status, res, http.StatusNotFound, types.ErrNotFound)
}

func (s *APITestSuite) TestHealth() {
	status, res := s.do(http.MethodGet, "/health", "")
	s.Require().Equal(http.StatusOK, status)
	s.Contains(string(res.Data), "healthy")
}

func (s *APITestSuite) TestWebSocketStreamsEvents() {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	defer conn.Close()

	read := func() WSMessage {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg WSMessage
		s.Require().NoError(conn.ReadJSON(&msg))
		return msg
	}

	first := read()
	s.Equal("state", first.Type)
	s.Equal(1, s.handler.Hub().Clients())

	status, _ := s.do(http.MethodPost, "/api/bet", `{"amount": 5}`)
	s.Require().Equal(http.StatusOK, status)

	msg := read()
	s.Require().Equal("event", msg.Type)
	var ev eventView
	s.Require().NoError(json.Unmarshal(msg.Payload, &ev))
	s.Equal(ledger.EventBetChanged, ev.Kind)
	s.Equal(int64(entities.InitialBalance), ev.Balance)

	s.Require().NoError(conn.WriteJSON(WSMessage{Type: "ping"}))
	s.Equal("pong", read().Type)

	s.Require().NoError(conn.WriteJSON(WSMessage{Type: "dance"}))
	s.Equal("error", read().Type)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code types.ErrorCode
		want int
	}{
		{types.ErrInsufficientFunds, http.StatusBadRequest},
		{types.ErrInvalidArgument, http.StatusBadRequest},
		{types.ErrInvalidAction, http.StatusBadRequest},
		{types.ErrNotFound, http.StatusNotFound},
		{types.ErrRoundInProgress, http.StatusConflict},
		{types.ErrNoRoundInProgress, http.StatusConflict},
		{types.ErrTooSoon, http.StatusConflict},
		{types.ErrNotEligible, http.StatusConflict},
		{types.ErrAlreadyOwned, http.StatusConflict},
		{types.ErrNotOwned, http.StatusConflict},
		{types.ErrStorageError, http.StatusInternalServerError},
		{types.ErrCorruptState, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.code))
		})
	}
}

func TestBlackjackViewHidesHoleCard(t *testing.T) {
	table := &blackjack.Table{
		Player:      []entities.Card{{Suit: entities.Spades, Rank: entities.Ten}, {Suit: entities.Hearts, Rank: entities.Six}},
		Dealer:      []entities.Card{{Suit: entities.Clubs, Rank: entities.Nine}, {Suit: entities.Diamonds, Rank: entities.King}},
		PlayerScore: 16,
		DealerScore: 9,
		HoleHidden:  true,
	}

	view := blackjackView(table)
	require.Len(t, view.Dealer, 1)
	assert.Equal(t, entities.Nine, view.Dealer[0].Rank)

	table.HoleHidden = false
	table.Finished = true
	assert.Len(t, blackjackView(table).Dealer, 2)
}
