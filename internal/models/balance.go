package models

// Balance is derived per request, never persisted. Currency is a pass-through
// tag; no conversion is applied to the sums.
type Balance struct {
	TotalIncomes  float64 `json:"totalIncomes"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetBalance    float64 `json:"netBalance"`
	Currency      string  `json:"currency"`
}
