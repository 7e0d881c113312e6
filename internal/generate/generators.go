package generate

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/akeef891/Finance-Clarity/internal/goals"
	"github.com/akeef891/Finance-Clarity/internal/models"
	"github.com/akeef891/Finance-Clarity/internal/scenario"
)

const noDataMsg = "I don't see any income or expense records yet. Add a few entries and I can start analyzing your finances."

func hasData(s *models.Snapshot) bool {
	return s != nil && (s.Income > 0 || s.Expenses > 0)
}

func greeting(args Args) string {
	if !hasData(args.Snapshot) {
		return "Hello! " + noDataMsg
	}
	return fmt.Sprintf("Hello! Your finances currently look %s: income %s against expenses %s. Ask me anything about them.",
		strings.ToLower(args.Snapshot.Health), inr(args.Snapshot.Income), inr(args.Snapshot.Expenses))
}

func capabilities(Args) string {
	return "I can summarize your month, track savings goals, compare income and expenses, " +
		"break down spending by category, run what-if scenarios (\"what if my income increases by 10%\"), " +
		"check affordability, and watch for overspending. What would you like to know?"
}

func monthlyReport(args Args) string {
	s := args.Snapshot
	if !hasData(s) {
		return noDataMsg
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's your monthly picture: income %s, expenses %s, savings %s (%.1f%% savings rate). ",
		inr(s.Income), inr(s.Expenses), inr(s.Savings), s.SavingsRate)
	fmt.Fprintf(&b, "Overall status: %s.", s.Health)

	if len(s.TopCategories) > 0 {
		top := s.TopCategories[0]
		fmt.Fprintf(&b, " Your biggest expense is %s at %s (%.1f%% of income).", top.Name, inr(top.Amount), top.PercentOfIncome)
	}
	if s.HasTrend && s.Trend.ExpenseDirection != models.TrendStable {
		fmt.Fprintf(&b, " Expenses are %s %.1f%% versus earlier months.", s.Trend.ExpenseDirection, abs(s.Trend.ExpenseChangePct))
	}

	// Alerts ride along with the report rather than being pushed separately.
	if args.Profile != nil {
		for _, a := range args.Profile.CurrentAlerts {
			fmt.Fprintf(&b, " Heads up: %s", a.Message)
		}
	}
	return b.String()
}

func financialHealth(args Args) string {
	s := args.Snapshot
	if !hasData(s) {
		return noDataMsg
	}
	switch s.Health {
	case models.HealthHealthy:
		return fmt.Sprintf("Your finances look healthy: you spend %.1f%% of income and save %.1f%%. Keep that cushion going.",
			s.ExpenseRatio, s.SavingsRate)
	case models.HealthModerate:
		return fmt.Sprintf("Your finances are moderate: %.1f%% of income goes to expenses, leaving a %.1f%% savings rate. "+
			"There's room to tighten flexible spending.", s.ExpenseRatio, s.SavingsRate)
	default:
		if s.Overspending() {
			return fmt.Sprintf("Your expenses (%s) exceed your income (%s), and that needs attention. "+
				"Start by trimming the largest flexible category.", inr(s.Expenses), inr(s.Income))
		}
		return fmt.Sprintf("Your expense ratio is %.1f%%, which leaves little room to save. "+
			"Reducing a category or two could move you to a healthier zone.", s.ExpenseRatio)
	}
}

func saveMore(args Args) string {
	s := args.Snapshot
	if !hasData(s) {
		return noDataMsg
	}
	target := largestFlexible(s)
	if target == "" {
		return fmt.Sprintf("You currently save %s per month (%.1f%%). Most of your expenses look fixed, "+
			"so increasing income may help more than cutting costs.", inr(s.Savings), s.SavingsRate)
	}
	amount := s.FlexibleByCat[target]
	return fmt.Sprintf("You save %s per month (%.1f%% of income). The quickest lever is %s, "+
		"where you spend %s. Cutting it by a fifth frees about %s monthly.",
		inr(s.Savings), s.SavingsRate, target, inr(amount), inr(amount*0.2))
}

func savingsRate(args Args) string {
	s := args.Snapshot
	if !hasData(s) {
		return noDataMsg
	}
	return fmt.Sprintf("Your savings rate is %.1f%%: you keep %s of the %s you earn each month.",
		s.SavingsRate, inr(s.Savings), inr(s.Income))
}

func incomeQuery(args Args) string {
	s := args.Snapshot
	if s == nil || s.Income <= 0 {
		return "I don't have any income records for you yet. Add your income sources and I can work with them."
	}
	msg := fmt.Sprintf("Your recorded income is %s per month.", inr(s.Income))
	if s.HasTrend && s.Trend.IncomeDirection != models.TrendStable {
		msg += fmt.Sprintf(" It has been %s about %.1f%% compared with earlier months.",
			s.Trend.IncomeDirection, abs(s.Trend.IncomeChangePct))
	}
	return msg
}

func expenseQuery(args Args) string {
	s := args.Snapshot
	if s == nil || s.Expenses <= 0 {
		return "I don't have any expense records for you yet."
	}
	return fmt.Sprintf("Your expenses total %s per month: %s fixed and %s flexible.",
		inr(s.Expenses), inr(s.FixedExpenses), inr(s.FlexibleExpenses))
}

func incomeVsExpense(args Args) string {
	s := args.Snapshot
	if !hasData(s) {
		return noDataMsg
	}
	if s.Overspending() {
		return fmt.Sprintf("You earn %s but spend %s, a shortfall of %s every month.",
			inr(s.Income), inr(s.Expenses), inr(s.Expenses-s.Income))
	}
	return fmt.Sprintf("You earn %s and spend %s, leaving %s (%.1f%% of income) as savings.",
		inr(s.Income), inr(s.Expenses), inr(s.Savings), s.SavingsRate)
}

func categoryBreakdown(args Args) string {
	s := args.Snapshot
	if !hasData(s) || len(s.TopCategories) == 0 {
		return "I don't have categorized expenses yet. Tag your expense entries with categories and I can break them down."
	}
	var b strings.Builder
	b.WriteString("Here's where your money goes: ")
	for i, cat := range s.TopCategories {
		if i > 0 {
			b.WriteString(", ")
		}
		kind := "flexible"
		if cat.Fixed {
			kind = "fixed"
		}
		fmt.Fprintf(&b, "%s %s (%.1f%% of income, %s)", cat.Name, inr(cat.Amount), cat.PercentOfIncome, kind)
	}
	b.WriteString(".")
	return b.String()
}

func topExpenses(args Args) string {
	s := args.Snapshot
	if !hasData(s) || len(s.TopCategories) == 0 {
		return "I don't have categorized expenses yet, so I can't rank them."
	}
	top := s.TopCategories[0]
	msg := fmt.Sprintf("Your biggest expense category is %s at %s (%.1f%% of income).",
		top.Name, inr(top.Amount), top.PercentOfIncome)
	if len(s.TopCategories) > 1 {
		second := s.TopCategories[1]
		msg += fmt.Sprintf(" Next is %s at %s.", second.Name, inr(second.Amount))
	}
	return msg
}

func reduceCategory(args Args) string {
	s := args.Snapshot
	if !hasData(s) {
		return noDataMsg
	}
	target := largestFlexible(s)
	if target == "" {
		return "All your recorded expenses look fixed, so there's no obvious category to cut. Reviewing fixed commitments may be the next step."
	}
	amount := s.FlexibleByCat[target]
	return fmt.Sprintf("The easiest place to cut is %s: it's flexible and you spend %s there. "+
		"Reducing it by 10-20%% would free %s to %s per month.",
		target, inr(amount), inr(amount*0.1), inr(amount*0.2))
}

func overspendingCheck(args Args) string {
	s := args.Snapshot
	if !hasData(s) {
		return noDataMsg
	}
	if s.Overspending() {
		return fmt.Sprintf("Yes, you're overspending by %s per month (income %s, expenses %s).",
			inr(s.Expenses-s.Income), inr(s.Income), inr(s.Expenses))
	}
	return fmt.Sprintf("No, you're not overspending: expenses use %.1f%% of your income.", s.ExpenseRatio)
}

func trendAnalysis(args Args) string {
	s := args.Snapshot
	if s == nil || !s.HasTrend {
		return "I need at least two months of records to compare trends. Keep logging entries and ask me again next month."
	}
	var b strings.Builder
	switch s.Trend.ExpenseDirection {
	case models.TrendStable:
		b.WriteString("Your spending has been stable month over month.")
	default:
		fmt.Fprintf(&b, "Your spending is %s, about %.1f%% versus your earlier average.",
			s.Trend.ExpenseDirection, abs(s.Trend.ExpenseChangePct))
	}
	if s.Trend.IncomeDirection != models.TrendStable {
		fmt.Fprintf(&b, " Income is %s %.1f%% over the same period.",
			s.Trend.IncomeDirection, abs(s.Trend.IncomeChangePct))
	}
	return b.String()
}

func affordability(args Args) string {
	s := args.Snapshot
	if !hasData(s) {
		return noDataMsg
	}
	amount := scenario.ParseAmount(args.Message)
	if amount <= 0 {
		return "Tell me the price and I can check it, for example \"can I afford a phone for ₹30,000?\""
	}
	if s.Savings <= 0 {
		return fmt.Sprintf("Right now you have no monthly surplus, so a %s purchase would push you further into overspending.", inr(amount))
	}
	months := amount / s.Savings
	switch {
	case months <= 1:
		return fmt.Sprintf("Yes, %s fits inside one month of your savings (%s).", inr(amount), inr(s.Savings))
	case months <= 3:
		return fmt.Sprintf("%s equals roughly %.1f months of your savings. Doable, though it pauses other goals for that period.", inr(amount), months)
	default:
		return fmt.Sprintf("%s is about %.1f months of your current savings. Consider saving toward it rather than buying outright.", inr(amount), months)
	}
}

func whatIf(args Args) string {
	s := args.Snapshot
	if !hasData(s) {
		return noDataMsg
	}
	desc, err := scenario.Parse(args.Message, s)
	if err != nil {
		return "I couldn't work out that scenario. Try phrasing it like \"what if my income increases by 10%\" or \"what if I cut food by ₹2,000\"."
	}
	result, err := scenario.Simulate(s, desc, args.Goals)
	if err != nil {
		return "I couldn't simulate that scenario with your current data."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "In that scenario your savings would change by %s, to %s per month (%.1f%% savings rate, expense ratio %.1f%%).",
		signedINR(result.SavingsDelta), inr(result.Snapshot.Savings), result.Snapshot.SavingsRate, result.Snapshot.ExpenseRatio)

	names := make([]string, 0, len(result.GoalAnalyses))
	for name := range result.GoalAnalyses {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		analysis := result.GoalAnalyses[name]
		switch analysis.Verdict {
		case goals.VerdictAchievable:
			fmt.Fprintf(&b, " Your goal %q would stay on track.", name)
		case goals.VerdictRequiresReduction:
			fmt.Fprintf(&b, " Your goal %q would need an extra %s per month in cuts.", name, inr(analysis.Shortfall))
		default:
			fmt.Fprintf(&b, " Your goal %q would become unrealistic at that income.", name)
		}
	}
	return b.String()
}

var durationRegex = regexp.MustCompile(`(\d+)\s*(?:months?|mos?\b)`)
var goalNameRegex = regexp.MustCompile(`(?:for|called|named)\s+(?:a\s+|an\s+|my\s+)?([a-z][a-z ]{1,30}?)(?:\s+(?:of|worth|in|by)\b|[,.]|$)`)

func createGoal(args Args) string {
	if args.Planner == nil {
		return "Goal tracking isn't available right now."
	}
	message := strings.ToLower(args.Message)

	target := scenario.ParseAmount(message)
	months := 0
	if m := durationRegex.FindStringSubmatch(message); m != nil {
		months, _ = strconv.Atoi(m[1])
	}
	if target <= 0 || months <= 0 {
		return "To set a goal I need a target and a duration, for example \"create a goal to save ₹50,000 in 6 months\"."
	}

	name := "Savings Goal"
	if m := goalNameRegex.FindStringSubmatch(message); m != nil {
		name = strings.TrimSpace(m[1])
	}

	goal, err := args.Planner.Create(args.UserID, name, target, months)
	if err != nil {
		return fmt.Sprintf("I couldn't create that goal: %s.", err)
	}

	analysis := goals.Analyze(goal, args.Snapshot)
	msg := fmt.Sprintf("Goal %q created: save %s in %d months, which needs %s per month.",
		goal.Name, inr(goal.TargetAmount), goal.DurationMonths, inr(goal.MonthlyRequirement))
	switch analysis.Verdict {
	case goals.VerdictAchievable:
		msg += " At your current savings pace this looks achievable."
	case goals.VerdictRequiresReduction:
		msg += fmt.Sprintf(" You'd need to free up an extra %s per month; %s", inr(analysis.Shortfall), planText(analysis.Plan))
	default:
		msg += " Honestly, this target is beyond your current income. Consider a longer duration."
	}
	return msg
}

func goalProgress(args Args) string {
	if len(args.Goals) == 0 {
		return "You don't have any savings goals yet. Say something like \"create a goal to save ₹50,000 in 6 months\" to start one."
	}
	var b strings.Builder
	b.WriteString("Goal progress: ")
	for i := range args.Goals {
		g := &args.Goals[i]
		if i > 0 {
			b.WriteString(" ")
		}
		switch g.Status {
		case models.GoalCompleted:
			fmt.Fprintf(&b, "%q is complete with %s saved.", g.Name, inr(g.TargetAmount))
		case models.GoalBehind:
			fmt.Fprintf(&b, "%q is at %.0f%% (%s of %s) and behind schedule.",
				g.Name, g.CompletionPct, inr(g.AmountSaved), inr(g.TargetAmount))
		default:
			fmt.Fprintf(&b, "%q is at %.0f%% (%s of %s) and on track.",
				g.Name, g.CompletionPct, inr(g.AmountSaved), inr(g.TargetAmount))
		}
	}
	return b.String()
}

func goalFeasibility(args Args) string {
	if len(args.Goals) == 0 {
		return "You don't have any goals to analyze yet."
	}
	if !hasData(args.Snapshot) {
		return noDataMsg
	}
	var b strings.Builder
	for i := range args.Goals {
		g := &args.Goals[i]
		if g.Terminal() {
			continue
		}
		analysis := goals.Analyze(g, args.Snapshot)
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		switch analysis.Verdict {
		case goals.VerdictAchievable:
			fmt.Fprintf(&b, "%q looks achievable: %s per month fits your current surplus.", g.Name, inr(g.MonthlyRequirement))
		case goals.VerdictRequiresReduction:
			fmt.Fprintf(&b, "%q needs %s per month, %s more than your surplus; %s", g.Name,
				inr(g.MonthlyRequirement), inr(analysis.Shortfall), planText(analysis.Plan))
		default:
			fmt.Fprintf(&b, "%q needs %s per month, which exceeds your income. A longer duration would make it realistic.",
				g.Name, inr(g.MonthlyRequirement))
		}
	}
	if b.Len() == 0 {
		return "All your goals are already complete. Time for a new one?"
	}
	return b.String()
}

func adjustGoal(args Args) string {
	if len(args.Goals) == 0 {
		return "You don't have any goals to adjust yet."
	}
	return "I don't change goals automatically. Tell me the new target or duration and confirm, or create a fresh goal with a different name."
}

func listGoals(args Args) string {
	if len(args.Goals) == 0 {
		return "You have no savings goals yet."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You have %d goal(s): ", len(args.Goals))
	for i := range args.Goals {
		g := &args.Goals[i]
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%q: %s in %d months, %s, %.0f%% done", g.Name, inr(g.TargetAmount), g.DurationMonths, g.Status, g.CompletionPct)
	}
	b.WriteString(".")
	return b.String()
}

func budgetAdvice(args Args) string {
	s := args.Snapshot
	if !hasData(s) || s.Income <= 0 {
		return noDataMsg
	}
	needs := s.Income * 0.5
	wants := s.Income * 0.3
	save := s.Income * 0.2
	return fmt.Sprintf("A 50/30/20 split of your %s income would be %s for needs, %s for wants and %s for savings. "+
		"Right now you spend %s (%.1f%%) and save %.1f%%.",
		inr(s.Income), inr(needs), inr(wants), inr(save), inr(s.Expenses), s.ExpenseRatio, s.SavingsRate)
}

func emergencyFund(args Args) string {
	s := args.Snapshot
	if !hasData(s) {
		return noDataMsg
	}
	fund := s.Expenses * 6
	if s.Savings <= 0 {
		return fmt.Sprintf("A six-month emergency fund for you would be about %s, but you currently have no monthly surplus to build it from. Freeing even a small amount each month is the first step.", inr(fund))
	}
	months := fund / s.Savings
	return fmt.Sprintf("A six-month emergency fund for your expenses would be about %s. "+
		"At your current savings of %s per month you could build it in roughly %.0f months.", inr(fund), inr(s.Savings), months)
}

func debtAdvice(args Args) string {
	s := args.Snapshot
	if !hasData(s) {
		return "I can help more once you've added your income and expense records."
	}
	if s.Savings <= 0 {
		return "With no monthly surplus, focus first on closing the gap between income and expenses before taking on or accelerating debt payments."
	}
	return fmt.Sprintf("You have %s of monthly surplus. A common approach is to direct part of it at the highest-interest debt first while keeping minimum payments on the rest.", inr(s.Savings))
}

func investmentQuery(Args) string {
	return "I don't give investment recommendations. What I can do is show how much monthly surplus you have available and how a change in income or spending would affect it; a qualified advisor can take it from there."
}

func taxQuery(Args) string {
	return "I don't track tax rules, so I can't advise on deductions. I can tell you your income and savings figures if that helps with your own tax planning."
}

func subscriptionAudit(args Args) string {
	s := args.Snapshot
	if !hasData(s) {
		return noDataMsg
	}
	if s.FixedExpenses <= 0 {
		return "I don't see any fixed or recurring expenses recorded, so there's nothing to audit yet."
	}
	return fmt.Sprintf("Your fixed and recurring commitments total %s per month (%.1f%% of income). "+
		"Reviewing the smaller recurring ones is often the easiest saving.", inr(s.FixedExpenses), pct(s.FixedExpenses, s.Income))
}

func alertsQuery(args Args) string {
	if args.Profile == nil || len(args.Profile.CurrentAlerts) == 0 {
		return "No active alerts: nothing in your finances is tripping my checks right now."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You have %d active alert(s): ", len(args.Profile.CurrentAlerts))
	for i, a := range args.Profile.CurrentAlerts {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s %s", a.Message, a.Suggestion)
	}
	return b.String()
}

func languagePreference(args Args) string {
	if args.Profile == nil {
		return "I couldn't read your preferences right now."
	}
	return fmt.Sprintf("Your response language is set to %q. The orchestrating app can change it in your profile settings.", args.Profile.Language)
}

func clearHistoryNotice(Args) string {
	return "Done, I've cleared our conversation history. Your goals and preferences are untouched."
}

func generalAdvice(args Args) string {
	if !hasData(args.Snapshot) {
		return noDataMsg
	}
	return fallbackChain(args)
}

// --- helpers ---

func largestFlexible(s *models.Snapshot) string {
	var name string
	var max float64
	for cat, amount := range s.FlexibleByCat {
		if amount > max || (amount == max && (name == "" || cat < name)) {
			name, max = cat, amount
		}
	}
	return name
}

func planText(plan []goals.ReductionStep) string {
	if len(plan) == 0 {
		return "there's no flexible spending left to cut, so a longer duration may work better."
	}
	parts := make([]string, len(plan))
	for i, step := range plan {
		parts[i] = fmt.Sprintf("%s by %s", step.Category, inr(step.Amount))
	}
	return fmt.Sprintf("you could reduce %s.", strings.Join(parts, ", then "))
}

func pct(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func signedINR(v float64) string {
	if v < 0 {
		return "-" + inr(-v)
	}
	return "+" + inr(v)
}

// inr formats an amount with Indian digit grouping: ₹12,34,567.
func inr(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	whole := strconv.FormatInt(int64(v+0.5), 10)

	var groups []string
	if len(whole) > 3 {
		rest := whole[:len(whole)-3]
		groups = append(groups, whole[len(whole)-3:])
		for len(rest) > 2 {
			groups = append([]string{rest[len(rest)-2:]}, groups...)
			rest = rest[:len(rest)-2]
		}
		if rest != "" {
			groups = append([]string{rest}, groups...)
		}
	} else {
		groups = []string{whole}
	}

	out := "₹" + strings.Join(groups, ",")
	if neg {
		out = "-" + out
	}
	return out
}
