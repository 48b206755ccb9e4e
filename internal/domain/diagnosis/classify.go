package diagnosis

// ClassifyRisk maps a total score onto a risk tier.
func ClassifyRisk(totalScore int) RiskLevel {
	switch {
	case totalScore <= 5:
		return RiskLow
	case totalScore <= 15:
		return RiskMedium
	case totalScore <= 25:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}
