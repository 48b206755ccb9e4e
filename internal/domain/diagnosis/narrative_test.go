package diagnosis

import (
	"strings"
	"testing"
)

func TestDiagnosisTextPerLevel(t *testing.T) {
	seen := map[string]bool{}
	for _, level := range []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskVeryHigh} {
		text := DiagnosisText(level)
		if text == "" {
			t.Errorf("empty narrative for %s", level)
		}
		if seen[text] {
			t.Errorf("narrative for %s duplicates another tier", level)
		}
		seen[text] = true
	}
}

func TestRecommendationsTierAdditions(t *testing.T) {
	low := Recommendations(RiskLow, GenderMale)
	high := Recommendations(RiskHigh, GenderMale)

	if strings.Count(high, "- ") <= strings.Count(low, "- ") {
		t.Error("high tier should add more recommendations than low tier")
	}
	if !strings.Contains(high, "treatment protocol") {
		t.Errorf("high tier missing strict-adherence advice: %s", high)
	}
}

func TestRecommendationsCycleTracking(t *testing.T) {
	const marker = "menstrual cycle"

	if !strings.Contains(Recommendations(RiskMedium, GenderFemale), marker) {
		t.Error("female medium risk should include cycle tracking advice")
	}
	if strings.Contains(Recommendations(RiskMedium, GenderMale), marker) {
		t.Error("male recommendations should not include cycle tracking advice")
	}
	if strings.Contains(Recommendations(RiskLow, GenderFemale), marker) {
		t.Error("female low risk should not include cycle tracking advice")
	}
	if !strings.Contains(Recommendations(RiskVeryHigh, GenderFemale), marker) {
		t.Error("female very high risk should include cycle tracking advice")
	}
}
