package models

import "github.com/shopspring/decimal"

// Models for receipt processing. The vision model is a black box that takes
// an image and returns structured line items.

type ClaudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type ProcessedReceipt struct {
	Merchant  string          `json:"merchant"`
	Date      string          `json:"date"`
	Items     []ReceiptItem   `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
	ImagePath string          `json:"image_path,omitempty"`
}

type ReceiptItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

// AddSpendFromReceiptRequest turns a parsed receipt into a draft OPEN spend
// with an EQUAL split across the listed members.
type AddSpendFromReceiptRequest struct {
	Code       string          `json:"code" binding:"required"`
	PaidBy     string          `json:"paidBy" binding:"required"`
	SplitAmong []string        `json:"splitAmong" binding:"required,min=1"`
	FxRate     decimal.Decimal `json:"fxRate"`
}
