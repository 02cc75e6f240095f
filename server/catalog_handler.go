package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"auctioneer/auction"
	"auctioneer/service"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(service service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListEventsHandler handles GET /events
func (h *CatalogHandler) ListEventsHandler(c *gin.Context) {
	list, err := h.service.ListActiveEvents(c.Request.Context())
	if err != nil {
		handleServiceError(c, "ListEventsHandler", err, nil)
		return
	}

	resp := make([]EventResponse, 0, len(list))
	for _, e := range list {
		resp = append(resp, newEventResponse(e))
	}
	JSONResponse(c, http.StatusOK, resp, "events retrieved successfully")
}

// ListGamesHandler handles GET /events/:event_id/games
func (h *CatalogHandler) ListGamesHandler(c *gin.Context) {
	eventID, ok := idParam(c, "event_id")
	if !ok {
		return
	}

	games, err := h.service.ListGames(c.Request.Context(), eventID)
	if err != nil {
		handleServiceError(c, "ListGamesHandler", err, log.Fields{"event_id": eventID})
		return
	}

	resp := make([]GameResponse, 0, len(games))
	for _, g := range games {
		resp = append(resp, newGameResponse(g))
	}
	JSONResponse(c, http.StatusOK, resp, "games retrieved successfully")
}

// GetGameHandler handles GET /games/:game_id
func (h *CatalogHandler) GetGameHandler(c *gin.Context) {
	gameID, ok := idParam(c, "game_id")
	if !ok {
		return
	}

	detail, err := h.service.GetGame(c.Request.Context(), gameID)
	if err != nil {
		handleServiceError(c, "GetGameHandler", err, log.Fields{"game_id": gameID})
		return
	}

	JSONResponse(c, http.StatusOK, newGameDetailResponse(detail), "game retrieved successfully")
}

// CreateEventHandler handles POST /admin/events
func (h *CatalogHandler) CreateEventHandler(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, "CreateEventHandler", err)
		return
	}

	event, err := h.service.CreateEvent(c.Request.Context(), req.Name, req.StartsAt, req.EndsAt)
	if err != nil {
		handleServiceError(c, "CreateEventHandler", err, log.Fields{"name": req.Name})
		return
	}

	JSONResponse(c, http.StatusCreated, newEventResponse(event), "event created successfully")
}

// CreateGameHandler handles POST /admin/events/:event_id/games
func (h *CatalogHandler) CreateGameHandler(c *gin.Context) {
	eventID, ok := idParam(c, "event_id")
	if !ok {
		return
	}

	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, "CreateGameHandler", err)
		return
	}
	startingPrice, err := auction.ParseAmount(req.StartingPrice.String())
	if err != nil {
		handleBindError(c, "CreateGameHandler", err)
		return
	}
	increment, err := auction.ParseAmount(req.MinBidIncrement.String())
	if err != nil {
		handleBindError(c, "CreateGameHandler", err)
		return
	}

	game, err := h.service.CreateGame(c.Request.Context(), service.CreateGameParams{
		EventID:         eventID,
		Title:           req.Title,
		Description:     req.Description,
		TotalSeats:      req.TotalSeats,
		StartingPrice:   startingPrice,
		MinBidIncrement: increment,
	})
	if err != nil {
		handleServiceError(c, "CreateGameHandler", err, log.Fields{"event_id": eventID})
		return
	}

	JSONResponse(c, http.StatusCreated, newGameResponse(game), "game created successfully")
}
