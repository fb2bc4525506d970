package calculation

import (
	"github.com/shopspring/decimal"
)

// valueBand maps an inclusive upper age bound (in months) to a whole-rupee amount.
type valueBand struct {
	maxAge int
	amount int64
}

var assetValueBands = []valueBand{
	{12, 10000},
	{18, 25000},
	{24, 40000},
	{34, 100000},
	{40, 150000},
}

// matureAnimalValue is the open-ended top valuation band.
const matureAnimalValue int64 = 175000

// MatureAnimalValue is the value of any animal older than the last age band.
var MatureAnimalValue = decimal.NewFromInt(matureAnimalValue)

var growthFundBands = []valueBand{
	{12, 0},
	{18, 1000},
	{24, 1400},
	{30, 1800},
	{36, 2500},
}

const (
	peakLactationRevenue int64 = 9000
	midLactationRevenue  int64 = 6000
)

func lookupBand(bands []valueBand, age int, above int64) int64 {
	for _, b := range bands {
		if age <= b.maxAge {
			return b.amount
		}
	}
	return above
}

func assetValue(ageMonths int) int64 {
	return lookupBand(assetValueBands, ageMonths, matureAnimalValue)
}

func growthFundCost(ageMonths int) int64 {
	return lookupBand(growthFundBands, ageMonths, 0)
}

func adultRevenue(currentMonth, revenueStartMonth int) int64 {
	if currentMonth < revenueStartMonth {
		return 0
	}
	switch pos := (currentMonth - revenueStartMonth) % 12; {
	case pos <= 4:
		return peakLactationRevenue
	case pos <= 7:
		return midLactationRevenue
	default:
		return 0
	}
}

func calfRevenue(currentMonth, cycleBaseMonth int) int64 {
	if currentMonth < cycleBaseMonth {
		return 0
	}
	switch pos := (currentMonth - cycleBaseMonth) % 12; {
	case pos <= 1:
		return 0
	case pos <= 6:
		return peakLactationRevenue
	case pos <= 9:
		return midLactationRevenue
	default:
		return 0
	}
}

// AssetValue returns the market value of an animal of the given age in months.
func AssetValue(ageMonths int) decimal.Decimal {
	return decimal.NewFromInt(assetValue(ageMonths))
}

// MonthlyGrowthFundCost returns the CGF cost for a calf of the given age.
// Coverage ends after 36 months.
func MonthlyGrowthFundCost(ageMonths int) decimal.Decimal {
	return decimal.NewFromInt(growthFundCost(ageMonths))
}

// AdultRevenue returns the milk revenue of an adult whose lactation cycle
// starts at revenueStartMonth: five peak months, three mid months, four dry.
func AdultRevenue(currentMonth, revenueStartMonth int) decimal.Decimal {
	return decimal.NewFromInt(adultRevenue(currentMonth, revenueStartMonth))
}

// CalfRevenue returns the milk revenue of a home-bred animal whose cycle is
// anchored at cycleBaseMonth. The first two months of each cycle are dry.
func CalfRevenue(currentMonth, cycleBaseMonth int) decimal.Decimal {
	return decimal.NewFromInt(calfRevenue(currentMonth, cycleBaseMonth))
}
