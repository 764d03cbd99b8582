package domain

// Savings is the monetary and emissions outcome of replacing an in-person
// visit with a remote one over a given driving distance.
type Savings struct {
	TotalCost    float64 `json:"total_cost"`
	CO2Saved     float64 `json:"co2_saved"`
	MethaneSaved float64 `json:"methane_saved"`
}

// ComparisonResult is the response body of the comparison endpoint.
type ComparisonResult struct {
	TotalTimeSavedInMins float64 `json:"total_time_saved_in_mins"`
	TotalCostSaved       float64 `json:"total_cost_saved"`
	Currency             string  `json:"currency"`
	CO2Saved             float64 `json:"co2_saved"`
	MethaneSaved         float64 `json:"methane_saved"`
}
