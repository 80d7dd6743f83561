package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/utils"
)

// ExportService generates Excel workbooks summarizing a trip's finances.
type ExportService struct {
	spendService      *SpendService
	settlementService *SettlementService
	paymentService    *PaymentService
}

// NewExportService creates a new export service
func NewExportService(spendService *SpendService, settlementService *SettlementService, paymentService *PaymentService) *ExportService {
	return &ExportService{
		spendService:      spendService,
		settlementService: settlementService,
		paymentService:    paymentService,
	}
}

// ExportTrip generates an Excel file with summary, spend, transfer and
// payment sheets for a trip.
func (s *ExportService) ExportTrip(trip *models.Trip) (*excelize.File, string, error) {
	spends, err := s.spendService.GetSpends(trip.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get spends: %v", err)
	}

	settlementResult, err := s.settlementService.CalculateSettlements(trip)
	if err != nil {
		return nil, "", fmt.Errorf("failed to calculate settlements: %v", err)
	}

	payments, err := s.paymentService.GetPaymentsByTripID(trip.ID)
	if err != nil {
		payments = []models.Payment{}
	}

	f := excelize.NewFile()

	if err := s.createSummarySheet(f, trip, settlementResult); err != nil {
		return nil, "", fmt.Errorf("failed to create summary sheet: %v", err)
	}
	if err := s.createSpendSheet(f, trip, spends); err != nil {
		return nil, "", fmt.Errorf("failed to create spend sheet: %v", err)
	}
	if err := s.createTransferSheet(f, trip, settlementResult.Transfers); err != nil {
		return nil, "", fmt.Errorf("failed to create transfer sheet: %v", err)
	}
	if err := s.createPaymentSheet(f, payments); err != nil {
		return nil, "", fmt.Errorf("failed to create payment sheet: %v", err)
	}

	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("%s_Export_%s.xlsx",
		utils.CleanFileName(trip.Name),
		time.Now().Format("2006-01-02"))

	return f, filename, nil
}

// createSummarySheet writes per-member net balances
func (s *ExportService) createSummarySheet(f *excelize.File, trip *models.Trip, result *models.SettlementResult) error {
	sheetName := "Summary"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	headers := []string{"Member", fmt.Sprintf("Net Balance (%s)", trip.BaseCurrency)}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	userIDs := make([]string, 0, len(result.NetBalances))
	for userID := range result.NetBalances {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	for row, userID := range userIDs {
		if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row+2), userID); err != nil {
			return err
		}
		balance, _ := result.NetBalances[userID].Float64()
		if err := f.SetCellValue(sheetName, fmt.Sprintf("B%d", row+2), balance); err != nil {
			return err
		}
	}

	return nil
}

// createSpendSheet lists every spend with its normalized amount and status
func (s *ExportService) createSpendSheet(f *excelize.File, trip *models.Trip, spends []*models.Spend) error {
	sheetName := "Spends"
	f.NewSheet(sheetName)

	headers := []string{"Date", "Description", "Paid By", "Amount", "Currency", "FX Rate",
		fmt.Sprintf("Normalized (%s)", trip.BaseCurrency), "Status"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for row, spend := range spends {
		values := []interface{}{
			time.UnixMilli(spend.CreationTime).Format("2006-01-02"),
			spend.Description,
			spend.PaidBy,
			toFloat(spend.Amount),
			spend.Currency,
			toFloat(spend.FxRate),
			toFloat(spend.NormalizedAmount),
			spend.Status,
		}
		for col, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+col, row+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// createTransferSheet lists the computed settlement plan
func (s *ExportService) createTransferSheet(f *excelize.File, trip *models.Trip, transfers []models.Transfer) error {
	sheetName := "Transfers"
	f.NewSheet(sheetName)

	headers := []string{"From", "To", fmt.Sprintf("Amount (%s)", trip.BaseCurrency)}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for row, transfer := range transfers {
		if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row+2), transfer.From); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, fmt.Sprintf("B%d", row+2), transfer.To); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, fmt.Sprintf("C%d", row+2), toFloat(transfer.Amount)); err != nil {
			return err
		}
	}

	return nil
}

// createPaymentSheet lists recorded payments
func (s *ExportService) createPaymentSheet(f *excelize.File, payments []models.Payment) error {
	sheetName := "Payments"
	f.NewSheet(sheetName)

	headers := []string{"Date", "From", "To", "Amount", "Description"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for row, payment := range payments {
		values := []interface{}{
			payment.PaymentDate.Format("2006-01-02"),
			payment.FromUserID,
			payment.ToUserID,
			toFloat(payment.Amount),
			payment.Description,
		}
		for col, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+col, row+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	return nil
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
