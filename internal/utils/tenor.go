package utils

const monthsPerYear = 12.0

// MonthsToYears converts a tenor in months to the year fraction the pricing
// formulas expect.
func MonthsToYears(months float64) float64 {
	return months / monthsPerYear
}

// YearsToMonths is the inverse of MonthsToYears.
func YearsToMonths(years float64) float64 {
	return years * monthsPerYear
}
