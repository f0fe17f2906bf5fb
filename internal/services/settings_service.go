package services

import (
	"context"
	"log"
	"strconv"

	"tradewise/internal/repositories"
	"tradewise/pkg/memcache"
)

// Defaults applied before any database override; a refresh merges rows on top
// of these, never removes keys.
var defaultSettings = map[string]string{
	"site_name":       "TradeWise",
	"currency_symbol": "₹",
	"currency_code":   "INR",
	"tax_rate":        "18",
	"commission_rate": "10",
	"support_email":   "support@tradewise.in",
}

type SettingsServiceInterface interface {
	Get(key string) string
	Snapshot() map[string]string
	Refresh(ctx context.Context) error
	Upsert(ctx context.Context, key, value string) error

	TaxRatePercent() float64
	CommissionRatePercent() float64
	CurrencySymbol() string
	CurrencyCode() string
}

type SettingsService struct {
	repo  repositories.ISettingsRepository
	cache *memcache.SettingsCache
}

func NewSettingsService(repo repositories.ISettingsRepository) SettingsServiceInterface {
	s := &SettingsService{
		repo:  repo,
		cache: memcache.NewSettingsCache(defaultSettings),
	}

	// Best-effort warm load; the defaults keep the app usable if the first
	// fetch fails.
	if err := s.Refresh(context.Background()); err != nil {
		log.Printf("settings: initial refresh failed, using defaults: %v", err)
	}

	return s
}

func (s *SettingsService) Get(key string) string {
	return s.cache.Get(key)
}

func (s *SettingsService) Snapshot() map[string]string {
	return s.cache.Snapshot()
}

func (s *SettingsService) Refresh(ctx context.Context) error {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	overrides := make(map[string]string, len(rows))
	for _, row := range rows {
		overrides[row.Key] = row.Value
	}
	s.cache.Replace(defaultSettings, overrides)
	return nil
}

func (s *SettingsService) Upsert(ctx context.Context, key, value string) error {
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *SettingsService) TaxRatePercent() float64 {
	rate, err := strconv.ParseFloat(s.cache.Get("tax_rate"), 64)
	if err != nil || rate < 0 {
		return 0
	}
	return rate
}

func (s *SettingsService) CommissionRatePercent() float64 {
	rate, err := strconv.ParseFloat(s.cache.Get("commission_rate"), 64)
	if err != nil || rate < 0 {
		return 0
	}
	return rate
}

func (s *SettingsService) CurrencySymbol() string {
	return s.cache.Get("currency_symbol")
}

func (s *SettingsService) CurrencyCode() string {
	return s.cache.Get("currency_code")
}
