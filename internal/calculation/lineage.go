package calculation

import (
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
)

// Herd structure of one breeding unit.
//
// AdultOrderMonths drive births, CPF and CGF. AdultRevenueStartMonths drive
// adult milk revenue and trail the order months by the lactation onset delay.
// The two sets are intentionally distinct.
var (
	AdultOrderMonths        = [2]int{1, 7}
	AdultRevenueStartMonths = [2]int{3, 9}
)

const (
	// CalvingIntervalMonths is the gap between successive births of one mother.
	CalvingIntervalMonths = 12
	// FirstCalvingAgeMonths is the age at which a home-bred calf starts its own line.
	FirstCalvingAgeMonths = 36
	// AdultsPerUnit is the number of founding animals in a unit.
	AdultsPerUnit = len(AdultOrderMonths)
)

// GenerateLineage enumerates every birth of a single unit up to horizon:
// direct births of each founding adult and the second generation those calves
// produce once they reach calving age. Ages are measured at the horizon.
func GenerateLineage(horizon int) domain.Lineage {
	lineage := domain.Lineage{Horizon: horizon}
	if horizon < 1 {
		return lineage
	}

	for slot, order := range AdultOrderMonths {
		for b := order; b <= horizon; b += CalvingIntervalMonths {
			lineage.Births = append(lineage.Births, domain.Birth{
				Month:      b,
				Generation: 1,
				ParentSlot: slot,
				AgeMonths:  horizon - b + 1,
			})
			for g := b + FirstCalvingAgeMonths; g <= horizon; g += CalvingIntervalMonths {
				lineage.Births = append(lineage.Births, domain.Birth{
					Month:       g,
					Generation:  2,
					ParentSlot:  slot,
					MotherMonth: b,
					AgeMonths:   horizon - g + 1,
				})
			}
		}
	}
	return lineage
}

// OffspringValue is the summed valuation of one unit's offspring.
func OffspringValue(lineage domain.Lineage) decimal.Decimal {
	var total int64
	for _, b := range lineage.Births {
		total += assetValue(b.AgeMonths)
	}
	return decimal.NewFromInt(total)
}

// HerdAssetValue values the whole herd at the lineage horizon. The founding
// adults are mature animals; offspring are valued by age. Only one unit is
// simulated and the result multiplied, since all units are identical.
func HerdAssetValue(lineage domain.Lineage, units int) decimal.Decimal {
	if units <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(units))
	adults := MatureAnimalValue.Mul(decimal.NewFromInt(int64(AdultsPerUnit)))
	return adults.Mul(n).Add(OffspringValue(lineage).Mul(n))
}
