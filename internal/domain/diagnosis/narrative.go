package diagnosis

import "strings"

var diagnosisTexts = map[RiskLevel]string{
	RiskLow: "Your profile shows low-level risk factors. Continue monitoring " +
		"and follow your treatment plan, if you have one.",
	RiskMedium: "Your profile shows some factors that deserve attention during " +
		"treatment. Discuss a monitoring plan and any needed adjustments with your doctor.",
	RiskHigh: "Your profile shows high-level risk factors. Follow your treatment " +
		"plan closely and stay under regular specialist supervision.",
	RiskVeryHigh: "Your profile shows very high-level risk factors. Treatment " +
		"needs to be managed with great care under close medical supervision.",
}

// DiagnosisText returns the narrative paragraph for a risk tier.
func DiagnosisText(level RiskLevel) string {
	if text, ok := diagnosisTexts[level]; ok {
		return text
	}
	return "There is not enough information for a detailed assessment. " +
		"Please complete your records and consult a doctor."
}

var baseRecommendations = []string{
	"Maintain a healthy, nutritionally balanced diet as advised by your doctor.",
	"Exercise regularly at a suitable intensity and manage stress effectively.",
	"Take prescribed medication on schedule and follow all treatment instructions.",
	"Keep notes on any symptoms or unusual changes to discuss with your doctor.",
	"Attend follow-up appointments so your doctor can track treatment progress.",
}

// Recommendations builds the bulleted advice list for a risk tier. Female
// patients at medium risk or above also get cycle-tracking advice.
func Recommendations(level RiskLevel, gender Gender) string {
	recs := make([]string, 0, len(baseRecommendations)+4)
	recs = append(recs, baseRecommendations...)

	switch level {
	case RiskLow:
		recs = append(recs, "Keep up your healthy lifestyle and routine check-ups.")
	case RiskMedium:
		recs = append(recs,
			"Discuss specific supportive measures for your situation with your doctor.",
			"Consider monitoring key health indicators more frequently.")
	case RiskHigh, RiskVeryHigh:
		recs = append(recs,
			"Strictly follow the treatment protocol and your doctor's instructions.",
			"Never change or stop medication without medical direction.",
			"Contact your doctor immediately if any serious warning sign appears.")
	}

	if gender == GenderFemale && level != RiskLow {
		recs = append(recs, "Track your menstrual cycle and ovulation to help time treatment steps.")
	}

	var b strings.Builder
	for _, r := range recs {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
