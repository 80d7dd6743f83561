// handlers/trip_handlers.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/utils"
)

// CreateTrip handles the creation of a new trip
func CreateTrip(c *gin.Context) {
	var request models.CreateTripRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.CreateTrip(request.Name, request.BaseCurrency, request.UserID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	response := models.CreateTripResponse{
		TripID: trip.ID,
		Code:   trip.Code,
	}

	utils.HandleSuccess(c, response)
}

// GetTripByCode handles retrieving a trip by its join code
func GetTripByCode(c *gin.Context) {
	var request models.GetTripByCodeRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, trip)
}

// JoinTrip adds a member to a trip
func JoinTrip(c *gin.Context) {
	var request models.JoinTripRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	member, err := handlerServices.TripService.JoinTrip(trip, request.UserID, request.Role)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, member)
}

// SetRole updates a member's role
func SetRole(c *gin.Context) {
	var request models.SetRoleRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := handlerServices.TripService.SetRole(trip, request.UserID, request.Role); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}

// SetRSVP updates a member's RSVP status
func SetRSVP(c *gin.Context) {
	var request models.SetRSVPRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := handlerServices.TripService.SetRSVP(trip, request.UserID, request.RSVPStatus); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}
