package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Each unit is two adult buffaloes ordered in months 1 and 7, valued at ₹1,75,000 each",
	"Adults milk from months 3 and 9: five months at ₹9,000, three at ₹6,000, four dry",
	"Each adult calves every 12 months; calves calve from 36 months of age",
	"CPF is ₹15,000 per insured animal per year, charged monthly from month 13",
	"CGF covers calves from 13 to 36 months of age",
	"Revenue pays the EMI first, then CPF, then CGF; shortfalls draw on the loan pool",
}
