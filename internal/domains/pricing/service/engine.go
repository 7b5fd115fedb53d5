package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"innkeep/internal/domains/pricing/model"
	"innkeep/internal/domains/pricing/model/dto"
	"innkeep/shared/constant"
	"innkeep/shared/failure"
)

// computeQuote prices each night of [checkIn, checkOut) against the given
// holiday and rate rule state. The result is deterministic: equal inputs
// always produce equal totals and breakdowns, which booking creation relies
// on when it re-validates client-submitted prices.
//
// Multipliers stack multiplicatively, rule first then holiday. When several
// rules cover a night, the one with the highest multiplier wins; equal
// multipliers fall back to the lexicographically smallest rule id so the
// pick never depends on scan order.
func computeQuote(baseRate float64, category string, checkIn, checkOut time.Time, holidays []model.Holiday, rules []model.RateRule) (dto.QuoteResponse, error) {
	res := dto.QuoteResponse{Breakdown: []dto.NightCharge{}}

	holidayByDate := make(map[string]model.Holiday, len(holidays))
	for _, holiday := range holidays {
		holidayByDate[holiday.Date.Format(constant.DateFormat)] = holiday
	}

	var runningTotal float64

	for night := checkIn; night.Before(checkOut); night = night.AddDate(0, 0, 1) {
		nightKey := night.Format(constant.DateFormat)
		notes := []string{}

		holiday, isHoliday := holidayByDate[nightKey]
		if isHoliday && holiday.IsBlackout {
			return dto.QuoteResponse{}, failure.Unprocessable(fmt.Sprintf("%s is a blackout date (%s), booking is not available", nightKey, holiday.Name)) //nolint:wrapcheck
		}

		multiplier := 1.0

		if rule, found := bestRule(night, category, rules); found {
			multiplier = rule.RateMultiplier
			notes = append(notes, fmt.Sprintf("Rate rule: %s (x%s)", rule.Name, formatMultiplier(rule.RateMultiplier)))
		}

		if isHoliday {
			multiplier *= holiday.RateMultiplier
			notes = append(notes, fmt.Sprintf("Holiday: %s (x%s)", holiday.Name, formatMultiplier(holiday.RateMultiplier)))
		}

		nightTotal := roundMoney(baseRate * multiplier)
		runningTotal += nightTotal

		note := "Standard rate"
		if len(notes) > 0 {
			note = strings.Join(notes, ", ")
		}

		res.Breakdown = append(res.Breakdown, dto.NightCharge{
			Date:       nightKey,
			BaseRate:   baseRate,
			Multiplier: roundMultiplier(multiplier),
			Total:      nightTotal,
			Notes:      note,
		})
	}

	res.Nights = len(res.Breakdown)
	res.TotalPrice = roundMoney(runningTotal)

	return res, nil
}

func bestRule(night time.Time, category string, rules []model.RateRule) (model.RateRule, bool) {
	var best model.RateRule

	found := false

	for _, rule := range rules {
		if !rule.AppliesTo(night, category) {
			continue
		}

		if !found || rule.RateMultiplier > best.RateMultiplier ||
			(rule.RateMultiplier == best.RateMultiplier && rule.ID < best.ID) {
			best = rule
			found = true
		}
	}

	return best, found
}

// roundMoney rounds half away from zero to 2 decimals.
func roundMoney(value float64) float64 {
	return math.Round(value*100) / 100
}

// roundMultiplier keeps stacked multipliers readable in the breakdown
// (1.2 x 1.5 is 1.8, not 1.7999999999999998).
func roundMultiplier(value float64) float64 {
	return math.Round(value*10000) / 10000
}

func formatMultiplier(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
