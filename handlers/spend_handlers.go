// handlers/spend_handlers.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/utils"
)

// AddSpend records a new OPEN spend on a trip
func AddSpend(c *gin.Context) {
	var request models.AddSpendRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	spend, err := handlerServices.SpendService.CreateSpend(trip, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, spend)
}

// UpdateSpend edits an OPEN spend
func UpdateSpend(c *gin.Context) {
	var request models.UpdateSpendRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	spend, err := handlerServices.SpendService.UpdateSpend(trip, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, spend)
}

// RemoveSpend deletes an OPEN spend
func RemoveSpend(c *gin.Context) {
	var request models.RemoveSpendRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := handlerServices.SpendService.RemoveSpend(trip, request.SpendID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}

// ListSpends lists all spends for a trip
func ListSpends(c *gin.Context) {
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

	spends, err := handlerServices.SpendService.GetSpends(trip.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, spends)
}

// FinalizeSpend closes a spend, enforcing reconciliation unless force is set
func FinalizeSpend(c *gin.Context) {
	var request models.FinalizeSpendRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	spend, err := handlerServices.SpendService.Finalize(trip, request.SpendID, request.Force)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, spend)
}

// ReopenSpend transitions a spend back to OPEN
func ReopenSpend(c *gin.Context) {
	var request models.ReopenSpendRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	spend, err := handlerServices.SpendService.Reopen(trip, request.SpendID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, spend)
}

// AssignSpend upserts an assignment batch onto a spend
func AssignSpend(c *gin.Context) {
	var request models.AssignSpendRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	assignments, err := handlerServices.AssignmentService.AssignUsers(trip, request.SpendID, request.Assignments)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, assignments)
}

// ReplaceAssignments swaps a spend's full assignment set
func ReplaceAssignments(c *gin.Context) {
	var request models.ReplaceAssignmentsRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	assignments, err := handlerServices.AssignmentService.ReplaceAssignments(trip, request.SpendID, request.Assignments)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, assignments)
}

// RemoveAssignment deletes one user's assignment from a spend
func RemoveAssignment(c *gin.Context) {
	var request models.RemoveAssignmentRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := handlerServices.AssignmentService.RemoveAssignment(trip, request.SpendID, request.UserID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}

// ListAssignments lists the assignments of a spend
func ListAssignments(c *gin.Context) {
	var request models.RemoveSpendRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	assignments, err := handlerServices.AssignmentService.GetAssignments(trip, request.SpendID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, assignments)
}

// QuoteSplit previews computed shares without persisting anything
func QuoteSplit(c *gin.Context) {
	var request models.QuoteSplitRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	assignments, err := handlerServices.SpendService.QuoteSplit(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, assignments)
}
