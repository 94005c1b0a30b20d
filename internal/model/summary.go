package model

// Summary is the portfolio-level snapshot behind the dashboard.
type Summary struct {
	AvgScore        *float64      `json:"avg_score,omitempty"`
	AcceptanceRatio *float64      `json:"acceptance_ratio,omitempty"`
	RejectionRatio  *float64      `json:"rejection_ratio,omitempty"`
	AcceptedDetails []Application `json:"accepted_details,omitempty"`
	RejectedDetails []Application `json:"rejected_details,omitempty"`
	TotalCases      int           `json:"total_cases"`
	Approved        int           `json:"approved"`
	Rejected        int           `json:"rejected"`
	Offers          int           `json:"offers"`
}

// IsEmpty reports whether the summary carries no data at all.
func (s Summary) IsEmpty() bool {
	return s.TotalCases == 0 && s.Approved == 0 && s.Rejected == 0 && s.Offers == 0 &&
		s.AvgScore == nil && s.AcceptanceRatio == nil && s.RejectionRatio == nil &&
		len(s.AcceptedDetails) == 0 && len(s.RejectedDetails) == 0
}

// Analytics holds applicant-population averages.
type Analytics struct {
	AvgSalary      *float64 `json:"avg_salary,omitempty"`
	AvgTenure      *float64 `json:"avg_tenure,omitempty"`
	GoodHistoryPct *float64 `json:"good_history_pct,omitempty"`
	AvgDefaults    *float64 `json:"avg_defaults,omitempty"`
}

// IsEmpty reports whether no analytics field was provided.
func (a Analytics) IsEmpty() bool {
	return a.AvgSalary == nil && a.AvgTenure == nil && a.GoodHistoryPct == nil && a.AvgDefaults == nil
}
