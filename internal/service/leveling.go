package service

import (
	"regexp"
	"sort"
	"strings"

	"bid-leveler/internal/dto"
	"bid-leveler/internal/models"

	"github.com/shopspring/decimal"
)

var amountRe = regexp.MustCompile(`(?i)((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?)(?:\s*(thousand|million|billion)\b)?`)

var unitMultipliers = map[string]decimal.Decimal{
	"thousand": decimal.NewFromInt(1_000),
	"million":  decimal.NewFromInt(1_000_000),
	"billion":  decimal.NewFromInt(1_000_000_000),
}

var hundred = decimal.NewFromInt(100)

// ParseCostAmount reads the first amount in a verbatim cost line such as
// "Total Project Estimated Cost: $82,300,000" or "Total project cost: $4.2 million".
func ParseCostAmount(s string) (decimal.Decimal, bool) {
	m := amountRe.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	if unit, ok := unitMultipliers[strings.ToLower(m[2])]; ok {
		amount = amount.Mul(unit)
	}
	return amount, true
}

type levelRow struct {
	bid    *models.Bid
	amount decimal.Decimal
}

// Level ranks bids by their total cost, lowest first. Ties share a rank. Bids whose total
// cannot be read follow the ranked ones, unranked, in their original order.
func Level(bids []*models.Bid) []dto.LevelingEntry {
	var ranked []levelRow
	var unranked []*models.Bid
	for _, b := range bids {
		if amount, ok := ParseCostAmount(b.TotalCost); ok && b.TotalCost != "" {
			ranked = append(ranked, levelRow{bid: b, amount: amount})
		} else {
			unranked = append(unranked, b)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].amount.LessThan(ranked[j].amount)
	})

	entries := make([]dto.LevelingEntry, 0, len(bids))
	for i, row := range ranked {
		low := ranked[0].amount
		delta := row.amount.Sub(low)

		rank := i + 1
		if i > 0 && row.amount.Equal(ranked[i-1].amount) {
			rank = entries[i-1].Rank
		}

		entry := dto.LevelingEntry{
			BidID:        row.bid.ID.String(),
			Contractor:   row.bid.Contractor,
			TotalCost:    row.bid.TotalCost,
			Amount:       row.amount.StringFixed(2),
			Rank:         rank,
			DeltaFromLow: delta.StringFixed(2),
		}
		if low.IsPositive() {
			entry.PercentAbove = delta.Div(low).Mul(hundred).Round(1).InexactFloat64()
		}
		entries = append(entries, entry)
	}

	for _, b := range unranked {
		entries = append(entries, dto.LevelingEntry{
			BidID:      b.ID.String(),
			Contractor: b.Contractor,
			TotalCost:  b.TotalCost,
		})
	}
	return entries
}
