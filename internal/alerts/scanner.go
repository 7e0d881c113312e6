// Package alerts runs the periodic proactive checks over live snapshots.
package alerts

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akeef891/Finance-Clarity/internal/models"
	"github.com/akeef891/Finance-Clarity/internal/snapshot"
)

// Thresholds for the volatility check. The savings-rate and expense-ratio
// checks reuse the snapshot package's classification bands.
const (
	incomeVolatilityPct  = 30.0
	volatilityWindowSize = 3
)

// ProfileStore is the slice of persistence the scanner needs.
type ProfileStore interface {
	ListUserIDs() ([]int64, error)
	GetProfile(userID int64) (*models.MemoryProfile, error)
	SaveProfile(profile *models.MemoryProfile) error
}

// Scanner recomputes alerts for every user and overwrites each profile's
// current-alerts slot. It never pushes text to users; other components
// surface the alerts opportunistically.
type Scanner struct {
	builder *snapshot.Builder
	store   ProfileStore
	log     *logrus.Logger
}

func NewScanner(builder *snapshot.Builder, store ProfileStore, log *logrus.Logger) *Scanner {
	return &Scanner{builder: builder, store: store, log: log}
}

// Run scans all users. Per-user failures are logged and skipped; the scan
// itself never fails.
func (s *Scanner) Run() {
	ids, err := s.store.ListUserIDs()
	if err != nil {
		s.log.WithError(err).Warn("alert scan: cannot list users")
		return
	}
	for _, id := range ids {
		s.scanUser(id)
	}
}

func (s *Scanner) scanUser(userID int64) {
	snap := s.builder.Build(userID)
	alerts := Check(snap)

	profile, err := s.store.GetProfile(userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("alert scan: profile load failed")
		return
	}
	if profile == nil {
		profile = models.DefaultProfile(userID)
	}

	profile.CurrentAlerts = alerts
	profile.LastAlertScan = time.Now()
	if err := s.store.SaveProfile(profile); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("alert scan: profile save failed")
	}

	if len(alerts) > 0 {
		s.log.WithFields(logrus.Fields{"user_id": userID, "alerts": len(alerts)}).Info("alert scan found conditions")
	}
}

// Check runs the four independent checks against one snapshot. The result
// replaces, never extends, any previous alerts.
func Check(s *models.Snapshot) []models.Alert {
	var alerts []models.Alert

	if s.Overspending() {
		alerts = append(alerts, models.Alert{
			Type:       models.AlertOverspending,
			Severity:   models.SeverityCritical,
			Message:    fmt.Sprintf("You're spending more than you earn this month (expenses exceed income by ₹%.0f).", s.Expenses-s.Income),
			Suggestion: "Review your largest flexible category for quick cuts.",
		})
	}

	if s.Savings > 0 && s.SavingsRate < snapshot.LowSavingsRatePct {
		alerts = append(alerts, models.Alert{
			Type:       models.AlertLowSavingsRate,
			Severity:   models.SeverityWarning,
			Message:    fmt.Sprintf("Your savings rate is %.1f%%, below the 10%% floor.", s.SavingsRate),
			Suggestion: "Small recurring cuts add up; start with subscriptions.",
		})
	}

	if vol := incomeVolatility(s.MonthlyHistory); vol > incomeVolatilityPct {
		alerts = append(alerts, models.Alert{
			Type:       models.AlertIncomeVolatility,
			Severity:   models.SeverityWarning,
			Message:    fmt.Sprintf("Your income varied %.0f%% across recent months.", vol),
			Suggestion: "A larger emergency buffer smooths volatile income.",
		})
	}

	if s.ExpenseRatio > snapshot.HighExpenseRatioPct {
		alerts = append(alerts, models.Alert{
			Type:       models.AlertHighExpenseRatio,
			Severity:   models.SeverityWarning,
			Message:    fmt.Sprintf("Expenses use %.1f%% of your income, leaving a thin margin.", s.ExpenseRatio),
			Suggestion: "Aim to bring the ratio under 85%.",
		})
	}

	return alerts
}

// incomeVolatility is the relative standard deviation (percent) of the last
// few months' income. Returns 0 when there aren't at least two months.
func incomeVolatility(history []models.MonthlyTotals) float64 {
	if len(history) > volatilityWindowSize {
		history = history[len(history)-volatilityWindowSize:]
	}
	if len(history) < 2 {
		return 0
	}

	var sum float64
	for _, m := range history {
		sum += m.Income
	}
	mean := sum / float64(len(history))
	if mean <= 0 {
		return 0
	}

	var sq float64
	for _, m := range history {
		d := m.Income - mean
		sq += d * d
	}
	stddev := math.Sqrt(sq / float64(len(history)))
	return stddev / mean * 100
}
