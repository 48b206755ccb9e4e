package dashboard

import "time"

// Stats is the aggregate snapshot served to the clinic dashboard.
type Stats struct {
	TotalPatients        int `json:"total_patients"`
	TotalDoctors         int `json:"total_doctors"`
	ActiveTreatments     int `json:"active_treatments"`
	CompletedTreatments  int `json:"completed_treatments"`
	SuccessfulTreatments int `json:"successful_treatments"`
	// SuccessRate is a percentage; zero when nothing has completed yet.
	SuccessRate float64 `json:"success_rate"`

	TreatmentsByType  []TypeStat     `json:"treatments_by_type"`
	MonthlyTreatments []MonthStat    `json:"monthly_treatments"`
	TodayAppointments int            `json:"today_appointments"`
	MonthAppointments int            `json:"month_appointments"`
	RiskDistribution  map[string]int `json:"risk_distribution"`

	GeneratedAt time.Time `json:"generated_at"`
}

// TypeStat breaks completed treatments down by treatment type.
type TypeStat struct {
	TreatmentType string `json:"treatment_type"`
	Count         int    `json:"count"`
	SuccessCount  int    `json:"success_count"`
}

// MonthStat is one month of the current year's treatment starts. Months with
// no treatments are present with a zero count.
type MonthStat struct {
	Month int `json:"month"`
	Count int `json:"count"`
}
