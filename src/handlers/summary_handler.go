package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/username/gainledger/src/logger"
	"github.com/username/gainledger/src/models"
	"github.com/username/gainledger/src/services"
	"github.com/username/gainledger/src/utils"
)

type SummaryHandler struct {
	summaryService services.SummaryService
}

func NewSummaryHandler(summaryService services.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// Response DTOs. The engine works in decimals end to end; amounts are
// converted to rounded floats only here, at the serialization boundary.

type taxSummaryDTO struct {
	Period         periodDTO                   `json:"period"`
	TotalInvested  float64                     `json:"total_invested"`
	TotalReceived  float64                     `json:"total_received"`
	RealizedGains  float64                     `json:"realized_gains"`
	RealizedLosses float64                     `json:"realized_losses"`
	NetGainLoss    float64                     `json:"net_gain_loss"`
	EstimatedTax   float64                     `json:"estimated_tax"`
	TaxRate        float64                     `json:"tax_rate"`
	ByAsset        []assetSummaryDTO           `json:"by_asset"`
	Transactions   []reportedTransactionDTO    `json:"transactions"`
	Skipped        []models.SkippedTransaction `json:"skipped,omitempty"`
	Anomalies      []oversoldAnomalyDTO        `json:"anomalies,omitempty"`
}

type periodDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type assetSummaryDTO struct {
	AssetID      string  `json:"asset_id"`
	AssetName    string  `json:"asset_name"`
	Invested     float64 `json:"invested"`
	Received     float64 `json:"received"`
	RealizedGain float64 `json:"realized_gain"`
	RealizedLoss float64 `json:"realized_loss"`
	NetGainLoss  float64 `json:"net_gain_loss"`
}

type reportedTransactionDTO struct {
	ID         string   `json:"id"`
	AssetID    string   `json:"asset_id"`
	AssetName  string   `json:"asset_name"`
	Kind       string   `json:"kind"`
	Quantity   float64  `json:"quantity"`
	UnitPrice  float64  `json:"unit_price"`
	Fee        float64  `json:"fee"`
	Timestamp  string   `json:"timestamp"`
	GainOrLoss *float64 `json:"gain_or_loss,omitempty"`
}

type oversoldAnomalyDTO struct {
	AssetID           string  `json:"asset_id"`
	AssetName         string  `json:"asset_name"`
	SellTransactionID string  `json:"sell_transaction_id"`
	Timestamp         string  `json:"timestamp"`
	UnmatchedQuantity float64 `json:"unmatched_quantity"`
	UnmatchedProceeds float64 `json:"unmatched_proceeds"`
}

type holdingDTO struct {
	AssetID    string  `json:"asset_id"`
	AssetName  string  `json:"asset_name"`
	Quantity   float64 `json:"quantity"`
	UnitCost   float64 `json:"unit_cost"`
	CostBasis  float64 `json:"cost_basis"`
	AcquiredAt string  `json:"acquired_at"`
}

func (h *SummaryHandler) HandleGetTaxSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	periodStart, periodEnd, err := utils.ResolvePeriod(q.Get("year"), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.summaryService.GetTaxSummary(userID, periodStart, periodEnd)
	if err != nil {
		logger.L.Error("Failed to compute tax summary", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to compute tax summary", http.StatusInternalServerError)
		return
	}

	dto := toTaxSummaryDTO(summary)
	etag, err := utils.GenerateETag(dto)
	if err == nil {
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto)
}

func (h *SummaryHandler) HandleGetHoldings(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	lots, err := h.summaryService.GetHoldings(userID)
	if err != nil {
		logger.L.Error("Failed to compute holdings", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to compute holdings", http.StatusInternalServerError)
		return
	}

	dtos := make([]holdingDTO, 0, len(lots))
	for _, lot := range lots {
		dtos = append(dtos, holdingDTO{
			AssetID:    lot.AssetID,
			AssetName:  lot.AssetName,
			Quantity:   money(lot.Quantity),
			UnitCost:   money(lot.UnitCost),
			CostBasis:  money(lot.Quantity.Mul(lot.UnitCost)),
			AcquiredAt: lot.AcquiredAt.UTC().Format(utils.ISODateFormat),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dtos)
}

func toTaxSummaryDTO(summary *models.TaxSummary) taxSummaryDTO {
	dto := taxSummaryDTO{
		Period: periodDTO{
			Start: summary.Period.Start.UTC().Format(utils.ISODateFormat),
			End:   summary.Period.End.UTC().Format(utils.ISODateFormat),
		},
		TotalInvested:  money(summary.TotalInvested),
		TotalReceived:  money(summary.TotalReceived),
		RealizedGains:  money(summary.RealizedGains),
		RealizedLosses: money(summary.RealizedLosses),
		NetGainLoss:    money(summary.NetGainLoss),
		EstimatedTax:   money(summary.EstimatedTax),
		TaxRate:        summary.TaxRate.InexactFloat64(),
		ByAsset:        make([]assetSummaryDTO, 0, len(summary.ByAsset)),
		Transactions:   make([]reportedTransactionDTO, 0, len(summary.Transactions)),
		Skipped:        summary.Skipped,
	}

	for _, asset := range summary.ByAsset {
		dto.ByAsset = append(dto.ByAsset, assetSummaryDTO{
			AssetID:      asset.AssetID,
			AssetName:    asset.AssetName,
			Invested:     money(asset.Invested),
			Received:     money(asset.Received),
			RealizedGain: money(asset.RealizedGain),
			RealizedLoss: money(asset.RealizedLoss),
			NetGainLoss:  money(asset.NetGainLoss),
		})
	}

	for _, tx := range summary.Transactions {
		row := reportedTransactionDTO{
			ID:        tx.ID,
			AssetID:   tx.AssetID,
			AssetName: tx.AssetName,
			Kind:      string(tx.Kind),
			Quantity:  money(tx.Quantity),
			UnitPrice: money(tx.UnitPrice),
			Fee:       money(tx.Fee),
			Timestamp: tx.Timestamp.UTC().Format(utils.ISODateFormat),
		}
		if tx.GainOrLoss != nil {
			v := money(*tx.GainOrLoss)
			row.GainOrLoss = &v
		}
		dto.Transactions = append(dto.Transactions, row)
	}

	for _, anomaly := range summary.Anomalies {
		dto.Anomalies = append(dto.Anomalies, oversoldAnomalyDTO{
			AssetID:           anomaly.AssetID,
			AssetName:         anomaly.AssetName,
			SellTransactionID: anomaly.SellTransactionID,
			Timestamp:         anomaly.Timestamp.UTC().Format(utils.ISODateFormat),
			UnmatchedQuantity: money(anomaly.UnmatchedQuantity),
			UnmatchedProceeds: money(anomaly.UnmatchedProceeds),
		})
	}

	return dto
}

func money(d decimal.Decimal) float64 {
	return utils.RoundFloat(d.InexactFloat64(), 2)
}
