package models

import "time"

// Alert types produced by the periodic scan.
const (
	AlertOverspending     = "overspending"
	AlertLowSavingsRate   = "low_savings_rate"
	AlertIncomeVolatility = "income_volatility"
	AlertHighExpenseRatio = "high_expense_ratio"
)

// Alert severities.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Alert is a proactively detected financial condition. Alerts live only in
// the profile's current slot and are overwritten wholesale on every scan.
type Alert struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// MemoryProfile is the per-user state that survives history clears.
type MemoryProfile struct {
	UserID        int64     `json:"user_id"`
	Language      string    `json:"language"`
	ResponseStyle string    `json:"response_style"` // concise | detailed
	RiskTolerance string    `json:"risk_tolerance"` // low | medium | high
	VoiceEnabled  bool      `json:"voice_enabled"`
	LastAlertScan time.Time `json:"last_alert_scan"`
	CurrentAlerts []Alert   `json:"current_alerts"`
}

// DefaultProfile returns the profile used before a user has saved one.
func DefaultProfile(userID int64) *MemoryProfile {
	return &MemoryProfile{
		UserID:        userID,
		Language:      "en",
		ResponseStyle: "concise",
		RiskTolerance: "medium",
	}
}

// Interaction is one question/response pair of the conversation history.
type Interaction struct {
	Question  string    `json:"question"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
