// services/receipt_service.go
package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/utils"
)

// ReceiptService turns receipt images into draft spends via a vision model.
// The model is an external black box: image in, structured line items out.
type ReceiptService struct {
	spendService      *SpendService
	assignmentService *AssignmentService
}

// NewReceiptService creates a new receipt service
func NewReceiptService(spendService *SpendService, assignmentService *AssignmentService) *ReceiptService {
	return &ReceiptService{
		spendService:      spendService,
		assignmentService: assignmentService,
	}
}

// ProcessReceipt parses a receipt image using the Claude messages API
func (s *ReceiptService) ProcessReceipt(imageBytes []byte, format string, filePath string) (*models.ProcessedReceipt, error) {
	base64Image := base64.StdEncoding.EncodeToString(imageBytes)

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}

	apiURL := "https://api.anthropic.com/v1/messages"

	prompt := `Extract receipt data in this JSON format:
{
  "merchant": "store name",
  "date": "YYYY-MM-DD",
  "currency": "ISO 4217 code, best guess from the receipt",
  "items": [
    {
      "name": "item name",
      "price": number,
      "quantity": number
    }
  ],
  "total": number
}
Return only valid JSON. No explanations or formatting.`

	requestBody := map[string]interface{}{
		"model":      "claude-sonnet-4-20250514",
		"max_tokens": 4000,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": prompt,
					},
					{
						"type": "image",
						"source": map[string]interface{}{
							"type":       "base64",
							"media_type": "image/" + format,
							"data":       base64Image,
						},
					},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vision API request: %v", err)
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create vision API request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to vision API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("vision API returned non-200 status: %d - %s", resp.StatusCode, string(bodyBytes))
	}

	var claudeResp models.ClaudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&claudeResp); err != nil {
		return nil, fmt.Errorf("failed to decode vision API response: %v", err)
	}

	var jsonResponse string
	for _, content := range claudeResp.Content {
		if content.Type == "text" {
			jsonResponse = content.Text
			break
		}
	}
	if jsonResponse == "" {
		return nil, fmt.Errorf("no text content found in vision API response")
	}

	var receipt models.ProcessedReceipt
	if err := json.Unmarshal([]byte(jsonResponse), &receipt); err != nil {
		return nil, fmt.Errorf("failed to parse vision API JSON output: %v. Raw response: %s", err, jsonResponse)
	}

	receipt.ImagePath = filePath

	return &receipt, nil
}

// CreateSpendFromReceipt turns a parsed receipt into a draft OPEN spend with
// an EQUAL split across the listed members. The spend stays OPEN so members
// can adjust assignments before it is finalized.
func (s *ReceiptService) CreateSpendFromReceipt(trip *models.Trip, receipt *models.ProcessedReceipt, req *models.AddSpendFromReceiptRequest) (*models.Spend, error) {
	description := receipt.Merchant
	if description == "" {
		description = "Receipt " + time.Now().Format("2006-01-02")
	}

	code := receipt.Currency
	if code == "" {
		code = trip.BaseCurrency
	}

	spend, err := s.spendService.CreateSpend(trip, &models.AddSpendRequest{
		Code:        trip.Code,
		Description: description,
		Amount:      receipt.Total,
		Currency:    code,
		FxRate:      req.FxRate,
		PaidBy:      req.PaidBy,
	})
	if err != nil {
		return nil, err
	}

	spend.ReceiptImage = receipt.ImagePath
	if err := s.spendService.spendRepo.UpdateSpend(spend); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	batch := make([]models.AssignmentInput, len(req.SplitAmong))
	for i, userID := range req.SplitAmong {
		batch[i] = models.AssignmentInput{
			UserID:     userID,
			SplitType:  utils.SplitTypeEqual,
			SplitValue: decimal.Zero,
		}
	}

	if _, err := s.assignmentService.ReplaceAssignments(trip, spend.ID, batch); err != nil {
		return nil, err
	}

	return spend, nil
}
