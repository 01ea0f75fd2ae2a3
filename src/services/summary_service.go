package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/username/gainledger/src/database"
	"github.com/username/gainledger/src/logger"
	"github.com/username/gainledger/src/model"
	"github.com/username/gainledger/src/models"
	"github.com/username/gainledger/src/processors"
)

const (
	ckTaxSummary = "summary_user_%d_%s_%s"
	ckHoldings   = "holdings_user_%d"
)

type summaryServiceImpl struct {
	tiers       *processors.TaxTierEngine
	reportCache *cache.Cache
	cacheTTL    time.Duration
}

func NewSummaryService(tiers *processors.TaxTierEngine, reportCache *cache.Cache, cacheTTL time.Duration) SummaryService {
	return &summaryServiceImpl{
		tiers:       tiers,
		reportCache: reportCache,
		cacheTTL:    cacheTTL,
	}
}

func (s *summaryServiceImpl) GetTaxSummary(userID int64, periodStart, periodEnd time.Time) (*models.TaxSummary, error) {
	cacheKey := fmt.Sprintf(ckTaxSummary, userID,
		periodStart.UTC().Format(time.RFC3339), periodEnd.UTC().Format(time.RFC3339))
	if cached, found := s.reportCache.Get(cacheKey); found {
		if summary, ok := cached.(*models.TaxSummary); ok {
			logger.L.Debug("Tax summary cache hit", "userID", userID, "key", cacheKey)
			return summary, nil
		}
	}

	startTime := time.Now()
	txs, err := model.GetTransactionsByUser(database.DB, userID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions for user %d: %w", userID, err)
	}

	summary := processors.ComputeTaxSummary(txs, periodStart, periodEnd, s.tiers)
	logger.L.Info("Tax summary computed",
		"userID", userID,
		"transactions", len(txs),
		"events", len(summary.Transactions),
		"anomalies", len(summary.Anomalies),
		"duration", time.Since(startTime))

	s.reportCache.Set(cacheKey, summary, s.cacheTTL)
	return summary, nil
}

func (s *summaryServiceImpl) GetHoldings(userID int64) ([]models.Lot, error) {
	cacheKey := fmt.Sprintf(ckHoldings, userID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		if lots, ok := cached.([]models.Lot); ok {
			return lots, nil
		}
	}

	txs, err := model.GetTransactionsByUser(database.DB, userID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions for user %d: %w", userID, err)
	}

	lots := processors.ComputeHoldings(txs)
	s.reportCache.Set(cacheKey, lots, s.cacheTTL)
	return lots, nil
}

func (s *summaryServiceImpl) InvalidateUser(userID int64) {
	summaryPrefix := fmt.Sprintf("summary_user_%d_", userID)
	holdingsKey := fmt.Sprintf(ckHoldings, userID)
	for key := range s.reportCache.Items() {
		if key == holdingsKey || strings.HasPrefix(key, summaryPrefix) {
			s.reportCache.Delete(key)
		}
	}
	logger.L.Debug("Report cache invalidated", "userID", userID)
}
