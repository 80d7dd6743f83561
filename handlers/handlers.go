package handlers

import (
	"github.com/tripsplit/tripsplit-backend/currency"
	"github.com/tripsplit/tripsplit-backend/repository"
	"github.com/tripsplit/tripsplit-backend/services"
)

// HandlerServices contains all service dependencies
type HandlerServices struct {
	TripService       *services.TripService
	SpendService      *services.SpendService
	AssignmentService *services.AssignmentService
	BalanceService    *services.BalanceService
	SettlementService *services.SettlementService
	PaymentService    *services.PaymentService
	ReceiptService    *services.ReceiptService
	ExportService     *services.ExportService
}

// NewHandlerServices wires repositories and services together
func NewHandlerServices() *HandlerServices {
	table := currency.DefaultTable()

	tripRepo := repository.NewTripRepository()
	spendRepo := repository.NewSpendRepository()
	paymentRepo := repository.NewPaymentRepository()

	assignmentService := services.NewAssignmentService(table, spendRepo)
	spendService := services.NewSpendService(table, spendRepo, assignmentService)
	balanceService := services.NewBalanceService()
	paymentService := services.NewPaymentService(paymentRepo)
	settlementService := services.NewSettlementService(table, spendRepo, tripRepo, balanceService, paymentService)

	return &HandlerServices{
		TripService:       services.NewTripService(tripRepo),
		SpendService:      spendService,
		AssignmentService: assignmentService,
		BalanceService:    balanceService,
		SettlementService: settlementService,
		PaymentService:    paymentService,
		ReceiptService:    services.NewReceiptService(spendService, assignmentService),
		ExportService:     services.NewExportService(spendService, settlementService, paymentService),
	}
}

var handlerServices *HandlerServices

// InitHandlers initializes the handler services
func InitHandlers() {
	handlerServices = NewHandlerServices()
}
