package domain

// Birth is one animal born under a single breeding unit.
type Birth struct {
	Month       int `json:"month"`
	Generation  int `json:"generation"`            // 1 = calf of an adult, 2 = calf of a calf
	ParentSlot  int `json:"parentSlot"`            // index of the founding adult the line descends from
	MotherMonth int `json:"motherMonth,omitempty"` // birth month of the mother; zero for a founding adult
	AgeMonths   int `json:"ageMonths"`             // age at the lineage horizon
}

// Lineage lists every birth for one unit up to a horizon month.
// It is never scaled by unit count; all units are structurally identical.
type Lineage struct {
	Horizon int     `json:"horizon"`
	Births  []Birth `json:"births"`
}

// Ages returns the age at horizon of each born animal, in birth order.
func (l Lineage) Ages() []int {
	ages := make([]int, len(l.Births))
	for i, b := range l.Births {
		ages[i] = b.AgeMonths
	}
	return ages
}

// BirthMonths returns the birth month of each born animal, in birth order.
func (l Lineage) BirthMonths() []int {
	months := make([]int, len(l.Births))
	for i, b := range l.Births {
		months[i] = b.Month
	}
	return months
}

// CountByGeneration returns how many births belong to the given generation.
func (l Lineage) CountByGeneration(gen int) int {
	n := 0
	for _, b := range l.Births {
		if b.Generation == gen {
			n++
		}
	}
	return n
}
