package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/utils"
)

// ExportTrip exports a trip's finances as an Excel workbook
func ExportTrip(c *gin.Context) {
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

	excelFile, filename, err := handlerServices.ExportService.ExportTrip(trip)
	if err != nil {
		utils.HandleError(c, utils.NewInternalError("Failed to export trip: "+err.Error()))
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := excelFile.Write(c.Writer); err != nil {
		utils.HandleError(c, utils.NewInternalError("Failed to write Excel file: "+err.Error()))
		return
	}
}
