package models

// AdviceType grades an advisory message.
type AdviceType string

const (
	AdviceCritical AdviceType = "critical"
	AdviceWarning  AdviceType = "warning"
	AdvicePositive AdviceType = "positive"
)

// ValidAdviceType reports whether s is one of the three known grades.
func ValidAdviceType(s string) bool {
	switch AdviceType(s) {
	case AdviceCritical, AdviceWarning, AdvicePositive:
		return true
	}
	return false
}

// AdviceMessage is one categorized advisory line. Advice is transient:
// recomputed on every dashboard refresh and never persisted.
type AdviceMessage struct {
	Type    AdviceType `json:"type"`
	Message string     `json:"message"`
}

// AllClearAdvice is the synthetic message shown when no rule fired.
var AllClearAdvice = AdviceMessage{
	Type:    AdvicePositive,
	Message: "All metrics look good! Keep up the great work.",
}
