package models

// Statistics is the aggregate view over the working collection.
// Ratios are rounded to one decimal and defined as 0 when the
// denominator is empty.
type Statistics struct {
	Total             int     `json:"total"`
	Watched           int     `json:"watched"`
	Remaining         int     `json:"remaining"`
	AverageRating     float64 `json:"average_rating"`
	CompletionPercent float64 `json:"completion_percent"`
}

// SagaProgress is one saga's watched/total counts.
type SagaProgress struct {
	Saga    string `json:"saga"`
	Total   int    `json:"total"`
	Watched int    `json:"watched"`
}
