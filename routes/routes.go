package routes

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/tripsplit/tripsplit-backend/handlers"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine) {
	// Create uploads directory if not exists
	os.MkdirAll("uploads", os.ModePerm)

	handlers.InitHandlers()

	v1 := router.Group("/api/v1")
	{
		// Trip endpoints
		v1.POST("/trips/create", handlers.CreateTrip)
		v1.POST("/trips/getByCode", handlers.GetTripByCode)
		v1.POST("/trips/join", handlers.JoinTrip)
		v1.POST("/trips/setRole", handlers.SetRole)
		v1.POST("/trips/rsvp", handlers.SetRSVP)

		// Spend endpoints
		v1.POST("/spends/add", handlers.AddSpend)
		v1.POST("/spends/update", handlers.UpdateSpend)
		v1.POST("/spends/remove", handlers.RemoveSpend)
		v1.POST("/spends/list", handlers.ListSpends)
		v1.POST("/spends/finalize", handlers.FinalizeSpend)
		v1.POST("/spends/reopen", handlers.ReopenSpend)
		v1.POST("/spends/quoteSplit", handlers.QuoteSplit)

		// Assignment endpoints
		v1.POST("/spends/assign", handlers.AssignSpend)
		v1.POST("/spends/assignments/replace", handlers.ReplaceAssignments)
		v1.POST("/spends/assignments/remove", handlers.RemoveAssignment)
		v1.POST("/spends/assignments/list", handlers.ListAssignments)

		// Settlement endpoints
		v1.POST("/settlements/calculate", handlers.CalculateSettlements)
		v1.POST("/payments/create", handlers.CreatePayment)
		v1.POST("/payments/list", handlers.ListPayments)
		v1.DELETE("/payments/:id", handlers.DeletePayment)

		// Receipt processing endpoints
		v1.POST("/receipts/process", handlers.ProcessReceipt)
		v1.POST("/spends/addFromReceipt", handlers.AddSpendFromReceipt)

		// Export endpoint
		v1.POST("/export", handlers.ExportTrip)
	}
}
