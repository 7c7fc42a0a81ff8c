package billing

import (
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ResolveRate determines the hourly rate for a new timesheet entry.
//
// Precedence: an explicit rate always wins; with no proposal configuration the
// worker's default rate applies (possibly nil); a blended rate covers every
// worker; a rate table is keyed by the worker's table key with the worker
// default as fallback; a bare rate range clamps the worker's default into
// [min, max], and a worker without a default resolves to the range minimum.
// The range policy is a deliberate choice: it is deterministic, keeps
// configured bounds authoritative, and never invents a rate outside them.
func ResolveRate(cfg *domain.RateConfig, worker domain.WorkerProfile, explicit *decimal.Decimal) *decimal.Decimal {
	if explicit != nil {
		return explicit
	}
	if cfg == nil {
		return worker.DefaultHourlyRate
	}

	if cfg.UseBlendedRate {
		return cfg.BlendedRate
	}

	if cfg.RateTableType != nil {
		if rate, ok := cfg.RateTableRates[worker.RateTableKey]; ok {
			return &rate
		}
		return worker.DefaultHourlyRate
	}

	if cfg.RateRangeMin != nil || cfg.RateRangeMax != nil {
		return clampToRange(worker.DefaultHourlyRate, cfg.RateRangeMin, cfg.RateRangeMax)
	}

	return worker.DefaultHourlyRate
}

func clampToRange(rate, min, max *decimal.Decimal) *decimal.Decimal {
	if rate == nil {
		return min
	}
	r := *rate
	if min != nil && r.LessThan(*min) {
		r = *min
	}
	if max != nil && r.GreaterThan(*max) {
		r = *max
	}
	return &r
}
