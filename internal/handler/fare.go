package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goride/internal/domain"
	"goride/internal/observability"
	"goride/internal/service"
)

// FareHandler handles HTTP requests for fare quotes.
type FareHandler struct {
	rideService *service.RideService
}

// NewFareHandler creates a new FareHandler.
func NewFareHandler(rideService *service.RideService) *FareHandler {
	return &FareHandler{rideService: rideService}
}

// EstimateFareRequest is the HTTP request body for a fare quote.
type EstimateFareRequest struct {
	Pickup      domain.Coordinate `json:"pickup"`
	Destination domain.Coordinate `json:"destination"`
}

// EstimateFareResponse is the HTTP response for a fare quote.
type EstimateFareResponse struct {
	DistanceKm float64 `json:"distance_km"`
	Fare       int     `json:"fare"`
}

// Estimate handles POST /v1/fare/estimate
func (h *FareHandler) Estimate(c *gin.Context) {
	var req EstimateFareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	quote, err := h.rideService.EstimateFare(req.Pickup, req.Destination)
	if err != nil {
		respondError(c, err)
		return
	}

	observability.FareQuotesTotal.Inc()

	respondJSON(c, http.StatusOK, EstimateFareResponse{
		DistanceKm: quote.DistanceKm,
		Fare:       quote.Fare,
	})
}
