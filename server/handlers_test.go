package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auctioneer/events"
	"auctioneer/models"
	"auctioneer/service"
)

const testAdminKey = "test-admin-key"

var testNow = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

// decimalEq matches decimals by value rather than representation
type decimalEq string

func (d decimalEq) Matches(x interface{}) bool {
	amount, ok := x.(decimal.Decimal)
	return ok && amount.Equal(decimal.RequireFromString(string(d)))
}

func (d decimalEq) String() string {
	return "is decimal " + string(d)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

type fakeBroker struct {
	connected bool
}

func (b fakeBroker) IsConnected() bool { return b.connected }

type testServer struct {
	router        *gin.Engine
	bidding       *MockBiddingService
	catalog       *MockCatalogService
	notifications *MockNotificationService
	users         *MockUserService
	bus           *events.Bus
}

func newTestServer(t *testing.T, db Pinger) *testServer {
	return newTestServerWithBroker(t, db, nil)
}

func newTestServerWithBroker(t *testing.T, db Pinger, broker ConnectionChecker) *testServer {
	ctrl := gomock.NewController(t)
	gin.SetMode(gin.TestMode)

	s := &testServer{
		bidding:       NewMockBiddingService(ctrl),
		catalog:       NewMockCatalogService(ctrl),
		notifications: NewMockNotificationService(ctrl),
		users:         NewMockUserService(ctrl),
		bus:           events.NewBus(),
	}
	s.router = SetupRouter(Dependencies{
		Bidding:       s.bidding,
		Catalog:       s.catalog,
		Notifications: s.notifications,
		Auth:          NewSessionAuthenticator(s.users, "auction_session"),
		Bus:           s.bus,
		DB:            db,
		Broker:        broker,
		IsAdminKey:    func(key string) bool { return key == testAdminKey },
	})
	return s
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	}
	return w, env
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decodeData(t *testing.T, env envelope) map[string]any {
	t.Helper()
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

func TestPlaceBidHandler(t *testing.T) {
	alice := &models.User{ID: 101, Username: "alice"}

	tests := []struct {
		name           string
		path           string
		body           any
		headers        map[string]string
		mockSetup      func(s *testServer)
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, env envelope)
	}{
		{
			name:    "success_accepted_bid",
			path:    "/games/10/bids",
			body:    map[string]any{"amount": "55.00"},
			headers: bearer("tok"),
			mockSetup: func(s *testServer) {
				s.users.EXPECT().ResolveSession(gomock.Any(), "tok").Return(alice, nil)
				s.bidding.EXPECT().
					SubmitBid(gomock.Any(), int64(10), int64(101), decimalEq("55.00")).
					Return(&models.BidResult{
						Bid: &models.Bid{
							ID: 3, GameID: 10, UserID: 101,
							Amount: decimal.RequireFromString("55.00"), IsWinning: true, CreatedAt: testNow,
						},
						MinimumAcceptableBid: decimal.RequireFromString("65.00"),
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid recorded successfully",
			validateData: func(t *testing.T, env envelope) {
				data := decodeData(t, env)
				require.Equal(t, float64(3), data["bid_id"])
				require.Equal(t, "55.00", data["amount"])
				require.Equal(t, true, data["is_winning"])
				require.Equal(t, "65.00", data["minimum_acceptable_bid"])
				require.Equal(t, "2026-03-14T18:00:00Z", data["created_at"])
			},
		},
		{
			name:    "numeric_amount_accepted",
			path:    "/games/10/bids",
			body:    `{"amount": 40}`,
			headers: bearer("tok"),
			mockSetup: func(s *testServer) {
				s.users.EXPECT().ResolveSession(gomock.Any(), "tok").Return(alice, nil)
				s.bidding.EXPECT().
					SubmitBid(gomock.Any(), int64(10), int64(101), decimalEq("40")).
					Return(&models.BidResult{
						Bid:                  &models.Bid{ID: 4, GameID: 10, UserID: 101, Amount: decimal.NewFromInt(40), CreatedAt: testNow},
						MinimumAcceptableBid: decimal.NewFromInt(40),
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid recorded successfully",
		},
		{
			name:    "rejected_below_minimum",
			path:    "/games/10/bids",
			body:    map[string]any{"amount": "45.00"},
			headers: bearer("tok"),
			mockSetup: func(s *testServer) {
				s.users.EXPECT().ResolveSession(gomock.Any(), "tok").Return(alice, nil)
				s.bidding.EXPECT().
					SubmitBid(gomock.Any(), int64(10), int64(101), decimalEq("45")).
					Return(&models.BidResult{
						Rejection: &models.Rejection{
							Reason:  models.RejectionBelowMinimum,
							Message: "bid must be greater than 50.00",
							Minimum: decimal.RequireFromString("50.00"),
						},
						MinimumAcceptableBid: decimal.RequireFromString("50.00"),
					}, nil)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "bid must be greater than 50.00",
			validateData: func(t *testing.T, env envelope) {
				require.Equal(t, "below_minimum", env.Error)
				data := decodeData(t, env)
				require.Equal(t, "below_minimum", data["reason"])
				require.Equal(t, false, data["retryable"])
				require.Equal(t, "50.00", data["minimum_acceptable_bid"])
			},
		},
		{
			name:    "rejected_conflict_is_retryable",
			path:    "/games/10/bids",
			body:    map[string]any{"amount": "60.00"},
			headers: bearer("tok"),
			mockSetup: func(s *testServer) {
				s.users.EXPECT().ResolveSession(gomock.Any(), "tok").Return(alice, nil)
				s.bidding.EXPECT().
					SubmitBid(gomock.Any(), int64(10), int64(101), gomock.Any()).
					Return(&models.BidResult{Rejection: &models.Rejection{
						Reason:  models.RejectionConflict,
						Message: "another bid was placed at the same time, please retry",
					}}, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "another bid was placed at the same time, please retry",
			validateData: func(t *testing.T, env envelope) {
				data := decodeData(t, env)
				require.Equal(t, true, data["retryable"])
				_, hasMinimum := data["minimum_acceptable_bid"]
				require.False(t, hasMinimum)
			},
		},
		{
			name:           "unauthenticated",
			path:           "/games/10/bids",
			body:           map[string]any{"amount": "55.00"},
			mockSetup:      func(s *testServer) {},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "authentication required",
		},
		{
			name:    "expired_session",
			path:    "/games/10/bids",
			body:    map[string]any{"amount": "55.00"},
			headers: map[string]string{"Cookie": "auction_session=old"},
			mockSetup: func(s *testServer) {
				s.users.EXPECT().ResolveSession(gomock.Any(), "old").Return(nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "authentication required",
		},
		{
			name:    "invalid_json",
			path:    "/games/10/bids",
			body:    `{invalid json}`,
			headers: bearer("tok"),
			mockSetup: func(s *testServer) {
				s.users.EXPECT().ResolveSession(gomock.Any(), "tok").Return(alice, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:    "missing_amount",
			path:    "/games/10/bids",
			body:    map[string]any{},
			headers: bearer("tok"),
			mockSetup: func(s *testServer) {
				s.users.EXPECT().ResolveSession(gomock.Any(), "tok").Return(alice, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:    "invalid_game_id",
			path:    "/games/abc/bids",
			body:    map[string]any{"amount": "55.00"},
			headers: bearer("tok"),
			mockSetup: func(s *testServer) {
				s.users.EXPECT().ResolveSession(gomock.Any(), "tok").Return(alice, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid game_id",
		},
		{
			name:    "storage_fault_is_not_leaked",
			path:    "/games/10/bids",
			body:    map[string]any{"amount": "55.00"},
			headers: bearer("tok"),
			mockSetup: func(s *testServer) {
				s.users.EXPECT().ResolveSession(gomock.Any(), "tok").Return(alice, nil)
				s.bidding.EXPECT().
					SubmitBid(gomock.Any(), int64(10), int64(101), gomock.Any()).
					Return(nil, fmt.Errorf("failed to submit bid: %w", errors.New("pq: connection refused on 10.0.0.5")))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
			validateData: func(t *testing.T, env envelope) {
				require.Equal(t, "internal server error", env.Error)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, fakePinger{})
			tt.mockSetup(s)

			w, env := s.do(t, http.MethodPost, tt.path, tt.body, tt.headers)

			require.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())
			require.Equal(t, tt.expectedMsg, env.Message)
			if tt.validateData != nil {
				tt.validateData(t, env)
			}
		})
	}
}

func TestGetWinningBidsHandler(t *testing.T) {
	t.Run("anonymous_viewer", func(t *testing.T) {
		s := newTestServer(t, fakePinger{})
		s.bidding.EXPECT().ListWinningBids(gomock.Any(), int64(10), int64(0)).Return([]*models.WinningBidView{
			{Rank: 1, Amount: decimal.RequireFromString("55"), BidderDisplayName: "Bidder 3", CreatedAt: testNow},
		}, nil)

		w, env := s.do(t, http.MethodGet, "/games/10/bids", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var views []map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &views))
		require.Len(t, views, 1)
		require.Equal(t, "55.00", views[0]["amount"])
		require.Equal(t, "Bidder 3", views[0]["bidder"])
		require.Equal(t, false, views[0]["is_requesting_user"])
	})

	t.Run("signed_in_viewer", func(t *testing.T) {
		s := newTestServer(t, fakePinger{})
		s.users.EXPECT().ResolveSession(gomock.Any(), "tok").Return(&models.User{ID: 102}, nil)
		s.bidding.EXPECT().ListWinningBids(gomock.Any(), int64(10), int64(102)).Return([]*models.WinningBidView{}, nil)

		w, env := s.do(t, http.MethodGet, "/games/10/bids", nil, bearer("tok"))

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, "[]", string(env.Data))
	})

	t.Run("unknown_game", func(t *testing.T) {
		s := newTestServer(t, fakePinger{})
		s.bidding.EXPECT().ListWinningBids(gomock.Any(), int64(99), int64(0)).Return(nil, service.ErrGameNotFound)

		w, env := s.do(t, http.MethodGet, "/games/99/bids", nil, nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "game not found", env.Message)
	})
}

func TestGetMinimumBidHandler(t *testing.T) {
	s := newTestServer(t, fakePinger{})
	s.bidding.EXPECT().GetMinimumAcceptableBid(gomock.Any(), int64(10)).Return(decimal.RequireFromString("42.5"), nil)

	w, env := s.do(t, http.MethodGet, "/games/10/minimum-bid", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, env)
	require.Equal(t, "42.50", data["minimum_acceptable_bid"])
	require.Equal(t, float64(10), data["game_id"])
}

func TestCatalogHandlers(t *testing.T) {
	event := &models.Event{ID: 20, Name: "Charity Con", StartsAt: testNow, EndsAt: testNow.Add(48 * time.Hour), IsActive: true}
	game := &models.Game{
		ID: 10, EventID: 20, Title: "Gloomhaven", TotalSeats: 4,
		StartingPrice: decimal.RequireFromString("25"), MinBidIncrement: decimal.RequireFromString("5"),
	}

	t.Run("list_events", func(t *testing.T) {
		s := newTestServer(t, fakePinger{})
		s.catalog.EXPECT().ListActiveEvents(gomock.Any()).Return([]*models.Event{event}, nil)

		w, env := s.do(t, http.MethodGet, "/events", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var list []map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &list))
		require.Len(t, list, 1)
		require.Equal(t, "Charity Con", list[0]["name"])
		require.Equal(t, "2026-03-16T18:00:00Z", list[0]["ends_at"])
	})

	t.Run("list_games_unknown_event", func(t *testing.T) {
		s := newTestServer(t, fakePinger{})
		s.catalog.EXPECT().ListGames(gomock.Any(), int64(77)).Return(nil, service.ErrEventNotFound)

		w, _ := s.do(t, http.MethodGet, "/events/77/games", nil, nil)

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("get_game", func(t *testing.T) {
		s := newTestServer(t, fakePinger{})
		s.catalog.EXPECT().GetGame(gomock.Any(), int64(10)).Return(&models.GameDetail{
			Game: game, Event: event, MinimumAcceptableBid: decimal.RequireFromString("25"), BidCount: 0,
		}, nil)

		w, env := s.do(t, http.MethodGet, "/games/10", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeData(t, env)
		require.Equal(t, "Gloomhaven", data["title"])
		require.Equal(t, "25.00", data["starting_price"])
		require.Equal(t, "25.00", data["minimum_acceptable_bid"])
		require.Equal(t, "Charity Con", data["event"].(map[string]any)["name"])
	})
}

func TestAdminHandlers(t *testing.T) {
	adminHeaders := map[string]string{adminKeyHeader: testAdminKey}

	t.Run("missing_admin_key", func(t *testing.T) {
		s := newTestServer(t, fakePinger{})

		w, env := s.do(t, http.MethodPost, "/admin/sweep", nil, map[string]string{adminKeyHeader: "guess"})

		require.Equal(t, http.StatusForbidden, w.Code)
		require.Equal(t, "admin access required", env.Message)
	})

	t.Run("create_event", func(t *testing.T) {
		s := newTestServer(t, fakePinger{})
		ends := testNow.Add(48 * time.Hour)
		s.catalog.EXPECT().CreateEvent(gomock.Any(), "Charity Con", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, name string, startsAt, endsAt time.Time) (*models.Event, error) {
				require.True(t, startsAt.Equal(testNow))
				require.True(t, endsAt.Equal(ends))
				return &models.Event{ID: 20, Name: name, StartsAt: startsAt, EndsAt: endsAt, IsActive: true}, nil
			})

		w, env := s.do(t, http.MethodPost, "/admin/events", map[string]any{
			"name":      "Charity Con",
			"starts_at": "2026-03-14T18:00:00Z",
			"ends_at":   "2026-03-16T18:00:00Z",
		}, adminHeaders)

		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
		require.Equal(t, float64(20), decodeData(t, env)["id"])
	})

	t.Run("create_game", func(t *testing.T) {
		s := newTestServer(t, fakePinger{})
		s.catalog.EXPECT().CreateGame(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, params service.CreateGameParams) (*models.Game, error) {
				require.Equal(t, int64(20), params.EventID)
				require.Equal(t, 4, params.TotalSeats)
				require.True(t, params.StartingPrice.Equal(decimal.RequireFromString("25")))
				require.True(t, params.MinBidIncrement.Equal(decimal.RequireFromString("2.5")))
				return &models.Game{
					ID: 10, EventID: 20, Title: params.Title, TotalSeats: params.TotalSeats,
					StartingPrice: params.StartingPrice, MinBidIncrement: params.MinBidIncrement,
				}, nil
			})

		w, env := s.do(t, http.MethodPost, "/admin/events/20/games", map[string]any{
			"title":             "Gloomhaven",
			"total_seats":       4,
			"starting_price":    "25.00",
			"min_bid_increment": 2.5,
		}, adminHeaders)

		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
		require.Equal(t, "2.50", decodeData(t, env)["min_bid_increment"])
	})

	t.Run("create_game_invalid_settings", func(t *testing.T) {
		s := newTestServer(t, fakePinger{})
		s.catalog.EXPECT().CreateGame(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("%w: minimum bid increment must be positive", service.ErrInvalidGame))

		w, env := s.do(t, http.MethodPost, "/admin/events/20/games", map[string]any{
			"title":             "Gloomhaven",
			"total_seats":       4,
			"starting_price":    "25.00",
			"min_bid_increment": "0",
		}, adminHeaders)

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "invalid game details", env.Message)
		require.Contains(t, env.Error, "minimum bid increment must be positive")
	})

	t.Run("sweep", func(t *testing.T) {
		s := newTestServer(t, fakePinger{})
		s.notifications.EXPECT().ProcessEndedAuctions(gomock.Any()).Return(2, nil)

		w, env := s.do(t, http.MethodPost, "/admin/sweep", nil, adminHeaders)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, float64(2), decodeData(t, env)["notified"])
	})
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		s := newTestServer(t, fakePinger{})

		w, env := s.do(t, http.MethodGet, "/healthz", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "disabled", decodeData(t, env)["broker"])
	})

	t.Run("broker_disconnected_is_reported_not_fatal", func(t *testing.T) {
		s := newTestServerWithBroker(t, fakePinger{}, fakeBroker{connected: false})

		w, env := s.do(t, http.MethodGet, "/healthz", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeData(t, env)
		require.Equal(t, "ok", data["database"])
		require.Equal(t, "disconnected", data["broker"])
	})

	t.Run("database_down", func(t *testing.T) {
		s := newTestServer(t, fakePinger{err: errors.New("dial tcp: connection refused")})

		w, env := s.do(t, http.MethodGet, "/healthz", nil, nil)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.Equal(t, "database unavailable", env.Error)
	})
}
