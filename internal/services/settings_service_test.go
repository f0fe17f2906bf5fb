package services

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradewise/internal/infra"
	"tradewise/internal/repositories"
)

func setupSettingsService(t *testing.T) (*gorm.DB, SettingsServiceInterface) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := infra.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db, NewSettingsService(repositories.NewSettingsRepository(db))
}

func TestSettingsDefaults(t *testing.T) {
	_, svc := setupSettingsService(t)

	if got := svc.TaxRatePercent(); got != 18 {
		t.Errorf("TaxRatePercent = %v, want 18", got)
	}
	if got := svc.CommissionRatePercent(); got != 10 {
		t.Errorf("CommissionRatePercent = %v, want 10", got)
	}
	if got := svc.CurrencyCode(); got != "INR" {
		t.Errorf("CurrencyCode = %s, want INR", got)
	}
	if got := svc.Get("site_name"); got != "TradeWise" {
		t.Errorf("site_name = %s, want TradeWise", got)
	}
}

func TestSettingsUpsertOverridesDefault(t *testing.T) {
	_, svc := setupSettingsService(t)

	if err := svc.Upsert(context.Background(), "tax_rate", "12"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if got := svc.TaxRatePercent(); got != 12 {
		t.Errorf("TaxRatePercent = %v, want 12", got)
	}

	// Second upsert of the same key updates in place.
	if err := svc.Upsert(context.Background(), "tax_rate", "5"); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if got := svc.TaxRatePercent(); got != 5 {
		t.Errorf("TaxRatePercent = %v, want 5", got)
	}
}

func TestSettingsRefreshKeepsDefaultsForMissingKeys(t *testing.T) {
	_, svc := setupSettingsService(t)

	if err := svc.Upsert(context.Background(), "site_name", "TradeWise Pro"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	snap := svc.Snapshot()
	if snap["site_name"] != "TradeWise Pro" {
		t.Errorf("site_name = %s, want TradeWise Pro", snap["site_name"])
	}
	// Keys without a database row keep their default.
	if snap["currency_code"] != "INR" {
		t.Errorf("currency_code = %s, want INR", snap["currency_code"])
	}
}

func TestSettingsMalformedRateFallsBackToZero(t *testing.T) {
	_, svc := setupSettingsService(t)

	if err := svc.Upsert(context.Background(), "tax_rate", "not-a-number"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if got := svc.TaxRatePercent(); got != 0 {
		t.Errorf("TaxRatePercent = %v, want 0 for malformed value", got)
	}
}

func TestSettingsSnapshotIsACopy(t *testing.T) {
	_, svc := setupSettingsService(t)

	snap := svc.Snapshot()
	snap["site_name"] = "mutated"

	if got := svc.Get("site_name"); got != "TradeWise" {
		t.Errorf("cache mutated through snapshot: %s", got)
	}
}
