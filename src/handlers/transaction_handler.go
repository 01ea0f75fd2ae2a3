package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/username/gainledger/src/database"
	"github.com/username/gainledger/src/logger"
	"github.com/username/gainledger/src/model"
	"github.com/username/gainledger/src/models"
	"github.com/username/gainledger/src/security/validation"
	"github.com/username/gainledger/src/services"
	"github.com/username/gainledger/src/utils"
)

type TransactionHandler struct {
	summaryService services.SummaryService
}

func NewTransactionHandler(summaryService services.SummaryService) *TransactionHandler {
	return &TransactionHandler{summaryService: summaryService}
}

func (h *TransactionHandler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	txs, err := model.GetTransactionsByUser(database.DB, userID)
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error querying transactions for userID %d: %v", userID, err), http.StatusInternalServerError)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(txs)
}

type createTransactionRequest struct {
	AssetID   string `json:"asset_id"`
	AssetName string `json:"asset_name"`
	Kind      string `json:"kind"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Fee       string `json:"fee"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

func (h *TransactionHandler) HandleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tx, err := h.buildTransaction(userID, req)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := model.InsertTransaction(database.DB, tx); err != nil {
		logger.L.Error("Failed to insert transaction", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to store transaction", http.StatusInternalServerError)
		return
	}

	h.summaryService.InvalidateUser(userID)
	logger.L.Info("Transaction created", "userID", userID, "transactionID", tx.ID, "assetID", tx.AssetID, "kind", tx.Kind)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tx)
}

func (h *TransactionHandler) HandleDeleteAllTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	deleted, err := model.DeleteTransactionsByUser(database.DB, userID)
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error deleting transactions for userID %d: %v", userID, err), http.StatusInternalServerError)
		return
	}

	h.summaryService.InvalidateUser(userID)
	logger.L.Info("All transactions deleted", "userID", userID, "count", deleted)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"deleted": deleted})
}

// buildTransaction validates and sanitizes the request into a storable
// transaction. The engine re-validates on every computation; this check just
// rejects garbage at the door with a useful message.
func (h *TransactionHandler) buildTransaction(userID int64, req createTransactionRequest) (models.Transaction, error) {
	assetID := validation.StripUnprintable(strings.TrimSpace(req.AssetID))
	if assetID == "" {
		return models.Transaction{}, fmt.Errorf("asset_id is required")
	}
	assetName := validation.SanitizeForFormulaInjection(validation.StripUnprintable(strings.TrimSpace(req.AssetName)))
	if assetName == "" {
		assetName = assetID
	}

	kind := models.TransactionKind(strings.ToUpper(strings.TrimSpace(req.Kind)))
	if kind != models.KindBuy && kind != models.KindSell {
		return models.Transaction{}, fmt.Errorf("kind must be BUY or SELL")
	}

	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil || !quantity.IsPositive() {
		return models.Transaction{}, fmt.Errorf("quantity must be a positive number")
	}
	unitPrice, err := decimal.NewFromString(req.UnitPrice)
	if err != nil || unitPrice.IsNegative() {
		return models.Transaction{}, fmt.Errorf("unit_price must be a non-negative number")
	}
	fee := decimal.Zero
	if req.Fee != "" {
		if fee, err = decimal.NewFromString(req.Fee); err != nil || fee.IsNegative() {
			return models.Transaction{}, fmt.Errorf("fee must be a non-negative number")
		}
	}

	timestamp, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("timestamp must be RFC3339, e.g. 2025-02-10T00:00:00Z")
	}

	status := models.StatusCompleted
	if req.Status != "" {
		status = models.TransactionStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
		switch status {
		case models.StatusCompleted, models.StatusPending, models.StatusCancelled:
		default:
			return models.Transaction{}, fmt.Errorf("status must be COMPLETED, PENDING or CANCELLED")
		}
	}

	return models.Transaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		AssetID:   assetID,
		AssetName: assetName,
		Kind:      kind,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Fee:       fee,
		Timestamp: timestamp,
		Status:    status,
	}, nil
}
