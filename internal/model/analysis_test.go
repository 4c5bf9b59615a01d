package model

import "testing"

func TestAssessmentValid(t *testing.T) {
	for _, a := range []Assessment{AssessmentSupported, AssessmentContradicted, AssessmentUncertain} {
		if !a.Valid() {
			t.Errorf("%s should be valid", a)
		}
	}
	for _, a := range []Assessment{"", "MAYBE", "supported", "TRUE"} {
		if a.Valid() {
			t.Errorf("%q should be invalid", a)
		}
	}
}

func TestSentimentProfileDegraded(t *testing.T) {
	degraded := SentimentProfile{ClassifierLabel: ClassifierUnavailable}
	if !degraded.Degraded() {
		t.Error("unavailable label should report degraded")
	}
	if degraded.Risky() {
		t.Error("degraded profile must never be risky")
	}

	normal := SentimentProfile{ClassifierLabel: "POSITIVE", Neutral: 0.9}
	if normal.Degraded() {
		t.Error("labeled profile should not report degraded")
	}
}
