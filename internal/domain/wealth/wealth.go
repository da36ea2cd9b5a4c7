// Package wealth computes compound-growth projections for the wealth
// simulator. The math is pure and deterministic; narration of the result
// is someone else's job.
package wealth

import "math"

// DataPoint is the projected portfolio value at the end of a given year.
// Values are rounded to whole dollars.
type DataPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Projection is the result of a compound-growth simulation.
type Projection struct {
	DataPoints         []DataPoint `json:"dataPoints"`
	FinalValue         float64     `json:"finalValue"`
	TotalContributions float64     `json:"totalContributions"`
	Gains              float64     `json:"gains"`
}

// Project simulates investing initialAmount plus monthlyContribution each
// month at the given annual return for the given number of years. Growth
// compounds monthly; contributions land after each month's growth. Year 0
// is the starting value, so the result has years+1 data points.
func Project(initialAmount, monthlyContribution, annualReturn float64, years int) Projection {
	monthlyRate := annualReturn / 100 / 12

	dataPoints := make([]DataPoint, 0, years+1)
	currentValue := initialAmount

	for year := 0; year <= years; year++ {
		if year > 0 {
			for month := 0; month < 12; month++ {
				currentValue = currentValue*(1+monthlyRate) + monthlyContribution
			}
		}
		dataPoints = append(dataPoints, DataPoint{
			Year:  year,
			Value: math.Round(currentValue),
		})
	}

	finalValue := dataPoints[len(dataPoints)-1].Value
	totalContributions := initialAmount + monthlyContribution*12*float64(years)

	return Projection{
		DataPoints:         dataPoints,
		FinalValue:         finalValue,
		TotalContributions: totalContributions,
		Gains:              finalValue - totalContributions,
	}
}
