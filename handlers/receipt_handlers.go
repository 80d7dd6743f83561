// handlers/receipt_handlers.go
package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/utils"
)

// ProcessReceipt parses an uploaded receipt image into structured line items
func ProcessReceipt(c *gin.Context) {
	filePath, fileBytes, ext, ok := saveUploadedReceipt(c)
	if !ok {
		return
	}

	receipt, err := handlerServices.ReceiptService.ProcessReceipt(fileBytes, ext[1:], filePath)
	if err != nil {
		log.Printf("Error processing receipt: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process receipt",
			"details": err.Error(),
		})
		if err := os.Remove(filePath); err != nil {
			log.Printf("Failed to delete image file after error: %v", err)
		}
		return
	}

	utils.HandleSuccess(c, receipt)
}

// AddSpendFromReceipt parses a receipt and records it as a draft OPEN spend
// with an EQUAL split across the listed members
func AddSpendFromReceipt(c *gin.Context) {
	filePath, fileBytes, ext, ok := saveUploadedReceipt(c)
	if !ok {
		return
	}

	request, err := bindReceiptSpendForm(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	receipt, err := handlerServices.ReceiptService.ProcessReceipt(fileBytes, ext[1:], filePath)
	if err != nil {
		log.Printf("Error processing receipt: %v", err)
		utils.HandleError(c, utils.NewInternalError("Failed to process receipt"))
		return
	}

	spend, err := handlerServices.ReceiptService.CreateSpendFromReceipt(trip, receipt, request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, spend)
}

// bindReceiptSpendForm reads the multipart form fields accompanying the
// receipt image.
func bindReceiptSpendForm(c *gin.Context) (*models.AddSpendFromReceiptRequest, error) {
	request := &models.AddSpendFromReceiptRequest{
		Code:   c.PostForm("code"),
		PaidBy: c.PostForm("paidBy"),
	}
	if request.Code == "" || request.PaidBy == "" {
		return nil, utils.NewBadRequestError(utils.ErrInvalidRequest)
	}

	request.SplitAmong = strings.Split(c.PostForm("splitAmong"), ",")
	for i := range request.SplitAmong {
		request.SplitAmong[i] = strings.TrimSpace(request.SplitAmong[i])
	}
	if len(request.SplitAmong) == 0 || request.SplitAmong[0] == "" {
		return nil, utils.NewBadRequestError("splitAmong is required")
	}

	if raw := c.PostForm("fxRate"); raw != "" {
		fxRate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, utils.NewBadRequestError("invalid fxRate")
		}
		request.FxRate = fxRate
	}

	return request, nil
}

// saveUploadedReceipt receives the multipart image, stores it under uploads/
// and returns its path, bytes and extension.
func saveUploadedReceipt(c *gin.Context) (string, []byte, string, bool) {
	file, header, err := c.Request.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("No file uploaded or invalid form: %v", err)})
		return "", nil, "", false
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only JPG, JPEG, and PNG files are supported"})
		return "", nil, "", false
	}

	filename := uuid.New().String() + ext
	filePath := filepath.Join("uploads", filename)

	out, err := os.Create(filePath)
	if err != nil {
		log.Printf("Error creating file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return "", nil, "", false
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		log.Printf("Error copying file data: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return "", nil, "", false
	}

	fileBytes, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("Error reading saved file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read saved file"})
		return "", nil, "", false
	}

	return filePath, fileBytes, ext, true
}
