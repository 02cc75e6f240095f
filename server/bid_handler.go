package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"auctioneer/auction"
	"auctioneer/models"
	"auctioneer/service"
)

type BidHandler struct {
	service service.BiddingService
}

func NewBidHandler(service service.BiddingService) *BidHandler {
	return &BidHandler{service: service}
}

// PlaceBidHandler handles POST /games/:game_id/bids
func (h *BidHandler) PlaceBidHandler(c *gin.Context) {
	gameID, ok := idParam(c, "game_id")
	if !ok {
		return
	}
	user := currentUser(c)

	var req PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, "PlaceBidHandler", err)
		return
	}
	amount, err := auction.ParseAmount(req.Amount.String())
	if err != nil {
		handleBindError(c, "PlaceBidHandler", err)
		return
	}

	result, err := h.service.SubmitBid(c.Request.Context(), gameID, user.ID, amount)
	if err != nil {
		handleServiceError(c, "PlaceBidHandler", err, log.Fields{
			"game_id": gameID,
			"user_id": user.ID,
		})
		return
	}

	if !result.Accepted() {
		writeRejection(c, result)
		return
	}

	JSONResponse(c, http.StatusCreated, newBidResponse(result), "bid recorded successfully")
}

func writeRejection(c *gin.Context, result *models.BidResult) {
	status := RejectionStatus(result.Rejection.Reason)
	c.JSON(status, gin.H{
		"status":  status,
		"message": result.Rejection.Message,
		"error":   string(result.Rejection.Reason),
		"data":    newRejectionResponse(result),
	})
}

// GetWinningBidsHandler handles GET /games/:game_id/bids
func (h *BidHandler) GetWinningBidsHandler(c *gin.Context) {
	gameID, ok := idParam(c, "game_id")
	if !ok {
		return
	}

	var requestingUserID int64
	if user := currentUser(c); user != nil {
		requestingUserID = user.ID
	}

	views, err := h.service.ListWinningBids(c.Request.Context(), gameID, requestingUserID)
	if err != nil {
		handleServiceError(c, "GetWinningBidsHandler", err, log.Fields{"game_id": gameID})
		return
	}

	resp := make([]WinningBidResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, newWinningBidResponse(v))
	}
	JSONResponse(c, http.StatusOK, resp, "winning bids retrieved successfully")
}

// GetMinimumBidHandler handles GET /games/:game_id/minimum-bid
func (h *BidHandler) GetMinimumBidHandler(c *gin.Context) {
	gameID, ok := idParam(c, "game_id")
	if !ok {
		return
	}

	minimum, err := h.service.GetMinimumAcceptableBid(c.Request.Context(), gameID)
	if err != nil {
		handleServiceError(c, "GetMinimumBidHandler", err, log.Fields{"game_id": gameID})
		return
	}

	JSONResponse(c, http.StatusOK, MinimumBidResponse{
		GameID:               gameID,
		MinimumAcceptableBid: auction.FormatAmount(minimum),
	}, "minimum bid retrieved successfully")
}
