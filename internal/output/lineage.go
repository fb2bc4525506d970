package output

import (
	"fmt"
	"io"

	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rgehrsitz/herdemi/internal/domain"
)

// WriteLineageTree draws the family tree of one unit: each founding adult,
// its calves, and the calves those calves bear before the horizon.
func WriteLineageTree(w io.Writer, lineage domain.Lineage, units int) {
	fmt.Fprintf(w, "BUFFALO TREE (per unit, horizon %d months)\n", lineage.Horizon)
	for slot, order := range calculation.AdultOrderMonths {
		fmt.Fprintf(w, "Adult %d (ordered month %d, %s)\n", slot+1, order, FormatINR(calculation.MatureAnimalValue))

		var direct []domain.Birth
		for _, b := range lineage.Births {
			if b.ParentSlot == slot && b.Generation == 1 {
				direct = append(direct, b)
			}
		}
		for i, b := range direct {
			branch, indent := "├── ", "│   "
			if i == len(direct)-1 {
				branch, indent = "└── ", "    "
			}
			fmt.Fprintf(w, "%sCalf born month %d, age %d months, %s\n",
				branch, b.Month, b.AgeMonths, FormatINR(calculation.AssetValue(b.AgeMonths)))

			kids := secondGeneration(lineage, slot, b.Month)
			for j, k := range kids {
				kb := "├── "
				if j == len(kids)-1 {
					kb = "└── "
				}
				fmt.Fprintf(w, "%s%sGrand-calf born month %d, age %d months, %s\n",
					indent, kb, k.Month, k.AgeMonths, FormatINR(calculation.AssetValue(k.AgeMonths)))
			}
		}
	}

	perUnit := calculation.HerdAssetValue(lineage, 1)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Animals per unit:  %d (%d born)\n", calculation.AdultsPerUnit+len(lineage.Births), len(lineage.Births))
	fmt.Fprintf(w, "Value per unit:    %s\n", FormatINR(perUnit))
	if units > 1 {
		total := calculation.HerdAssetValue(lineage, units)
		fmt.Fprintf(w, "Value of %d units: %s (%s)\n", units, FormatINR(total), RupeesInWords(total))
	}
}

// secondGeneration returns the births of the calf born in motherMonth.
func secondGeneration(lineage domain.Lineage, slot, motherMonth int) []domain.Birth {
	var out []domain.Birth
	for _, b := range lineage.Births {
		if b.Generation == 2 && b.ParentSlot == slot && b.MotherMonth == motherMonth {
			out = append(out, b)
		}
	}
	return out
}
