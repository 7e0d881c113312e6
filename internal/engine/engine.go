// Package engine is the conversation orchestrator. One turn flows
// receive -> rate limit -> snapshot -> intent -> generate -> safety -> record.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akeef891/Finance-Clarity/internal/config"
	"github.com/akeef891/Finance-Clarity/internal/generate"
	"github.com/akeef891/Finance-Clarity/internal/goals"
	"github.com/akeef891/Finance-Clarity/internal/intent"
	"github.com/akeef891/Finance-Clarity/internal/llm"
	"github.com/akeef891/Finance-Clarity/internal/models"
	"github.com/akeef891/Finance-Clarity/internal/scenario"
	"github.com/akeef891/Finance-Clarity/internal/snapshot"
)

// Store is the persistence the orchestrator needs: profile and interaction
// history. Writes are best effort; a failed write never fails the turn.
type Store interface {
	GetProfile(userID int64) (*models.MemoryProfile, error)
	SaveProfile(profile *models.MemoryProfile) error
	AppendInteraction(userID int64, in models.Interaction, keep int) error
	ListInteractions(userID int64, limit int) ([]models.Interaction, error)
	ClearInteractions(userID int64) error
}

// TextProvider is the optional external generation backend.
type TextProvider interface {
	Generate(ctx context.Context, req llm.GenerateRequest) (string, error)
}

const (
	busyMsg     = "I am still working on your previous question. Give me a second and ask again."
	throttleMsg = "You are sending messages a little too fast. Please wait a moment and try again."
	emptyMsg    = "Ask me anything about your money. Try \"monthly report\" or \"how is my financial health?\""
)

// Reply is the outcome of one conversation turn.
type Reply struct {
	Response    string      `json:"response"`
	Intent      intent.Type `json:"intent"`
	Confidence  float64     `json:"confidence"`
	Suggestions []string    `json:"suggestions,omitempty"`
}

type Engine struct {
	cfg      *config.Config
	log      *logrus.Logger
	store    Store
	builder  *snapshot.Builder
	planner  *goals.Planner
	registry *generate.Registry
	safety   *generate.SafetyFilter
	provider TextProvider
	limiter  *rateLimiter
	sessions *sessionTable

	now func() time.Time
}

func New(cfg *config.Config, log *logrus.Logger, store Store, builder *snapshot.Builder, planner *goals.Planner, provider TextProvider) *Engine {
	return &Engine{
		cfg:      cfg,
		log:      log,
		store:    store,
		builder:  builder,
		planner:  planner,
		registry: generate.NewRegistry(),
		safety:   generate.NewSafetyFilter(cfg.MaxResponseChars),
		provider: provider,
		limiter:  newRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax),
		sessions: newSessionTable(),
		now:      time.Now,
	}
}

// Process runs one conversation turn. It never returns an error: every
// failure mode has a user-facing string.
func (e *Engine) Process(ctx context.Context, userID int64, message string) Reply {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{Response: emptyMsg, Intent: intent.GeneralAdvice}
	}

	sess := e.sessions.get(userID)
	if !sess.busy.TryLock() {
		return Reply{Response: busyMsg, Intent: intent.GeneralAdvice}
	}
	defer sess.busy.Unlock()

	now := e.now()
	if !e.limiter.allow(userID, now) {
		e.log.WithField("user_id", userID).Warn("rate limit exceeded")
		return Reply{Response: throttleMsg, Intent: intent.GeneralAdvice}
	}

	snap := e.builder.Build(userID)
	userGoals, err := e.planner.Refresh(userID, snap, now)
	if err != nil {
		e.log.WithError(err).Warn("goal refresh failed")
	}
	profile := e.profile(userID)
	in := intent.Classify(message, sess.ctx)

	response := ""
	if e.providerEligible(in, message) {
		response = e.askProvider(ctx, userID, message, in, snap, profile)
	}
	if response == "" {
		response = e.registry.Generate(in, generate.Args{
			UserID:   userID,
			Message:  message,
			Snapshot: snap,
			Goals:    userGoals,
			Planner:  e.planner,
			Profile:  profile,
			Context:  sess.ctx,
			Now:      now,
		})
	}
	response = e.safety.Apply(response)

	e.applySideEffects(userID, in, message, profile, sess)

	if in.Type != intent.ClearHistory {
		e.updateContext(sess, in, message, snap)
		err := e.store.AppendInteraction(userID, models.Interaction{
			Question:  message,
			Response:  response,
			Timestamp: now,
		}, e.cfg.HistoryWindow)
		if err != nil {
			e.log.WithError(err).Warn("history write failed")
		}
	}

	return Reply{
		Response:    response,
		Intent:      in.Type,
		Confidence:  in.Confidence,
		Suggestions: suggest(snap, userGoals),
	}
}

// SuggestedQuestions returns a handful of questions worth asking given the
// user's current financial state.
func (e *Engine) SuggestedQuestions(userID int64) []string {
	snap := e.builder.Build(userID)
	userGoals, err := e.planner.Refresh(userID, snap, e.now())
	if err != nil {
		e.log.WithError(err).Warn("goal refresh failed")
	}
	return suggest(snap, userGoals)
}

// History returns the stored interaction window, oldest first.
func (e *Engine) History(userID int64) ([]models.Interaction, error) {
	return e.store.ListInteractions(userID, e.cfg.HistoryWindow)
}

// ClearHistory drops both interaction windows. The memory profile and goals
// are untouched.
func (e *Engine) ClearHistory(userID int64) error {
	sess := e.sessions.get(userID)
	sess.busy.Lock()
	sess.ctx = intent.Context{}
	sess.busy.Unlock()
	return e.store.ClearInteractions(userID)
}

func (e *Engine) profile(userID int64) *models.MemoryProfile {
	profile, err := e.store.GetProfile(userID)
	if err != nil {
		e.log.WithError(err).Warn("profile load failed")
	}
	if profile == nil {
		profile = models.DefaultProfile(userID)
	}
	return profile
}

// providerEligible decides whether a turn is worth an external call: the
// provider must be configured, the message long enough or the local
// classification weak, and the intent free of local side effects.
func (e *Engine) providerEligible(in intent.Intent, message string) bool {
	if e.provider == nil || !e.cfg.AIEnabled {
		return false
	}
	if sideEffecting(in.Type) {
		return false
	}
	return len(message) >= e.cfg.AIMessageLenThreshold || in.Confidence < intent.DispatchThreshold
}

// sideEffecting intents mutate goals, history or preferences through their
// local generator and must never be answered externally.
func sideEffecting(t intent.Type) bool {
	switch t {
	case intent.CreateGoal, intent.AdjustGoal, intent.ClearHistory, intent.LanguagePreference:
		return true
	}
	return false
}

// askProvider calls the external text provider. Every failure is logged and
// answered with "" so the caller falls back to the local path.
func (e *Engine) askProvider(ctx context.Context, userID int64, message string, in intent.Intent, snap *models.Snapshot, profile *models.MemoryProfile) string {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.AITimeout)
	defer cancel()

	req := llm.GenerateRequest{
		Message:       message,
		Context:       llm.BuildContext(snap, profile),
		Type:          llm.TypeChat,
		RecentHistory: e.recentHistory(userID),
	}
	if in.Type == intent.MonthlyReport {
		req.Type = llm.TypeReport
	}
	req.Prompt = llm.BuildPrompt(req, e.cfg.MaxResponseChars)

	reply, err := e.provider.Generate(callCtx, req)
	if err != nil {
		e.log.WithError(err).WithField("user_id", userID).Debug("provider fallback to local path")
		return ""
	}
	return reply
}

func (e *Engine) recentHistory(userID int64) []string {
	interactions, err := e.store.ListInteractions(userID, e.cfg.ContextWindow)
	if err != nil {
		return nil
	}
	history := make([]string, 0, len(interactions)*2)
	for _, in := range interactions {
		history = append(history, "user: "+in.Question, "assistant: "+in.Response)
	}
	return history
}

// applySideEffects performs the turn's mutations outside the generators:
// clearing history and switching the preferred language.
func (e *Engine) applySideEffects(userID int64, in intent.Intent, message string, profile *models.MemoryProfile, sess *session) {
	if in.Confidence < intent.DispatchThreshold {
		return
	}
	switch in.Type {
	case intent.ClearHistory:
		if err := e.ClearHistory(userID); err != nil {
			e.log.WithError(err).Warn("history clear failed")
		}
	case intent.LanguagePreference:
		lang := detectLanguage(message)
		if lang != "" && lang != profile.Language {
			profile.Language = lang
			if err := e.store.SaveProfile(profile); err != nil {
				e.log.WithError(err).Warn("profile write failed")
			}
		}
	}
}

func detectLanguage(message string) string {
	text := strings.ToLower(message)
	switch {
	case strings.Contains(text, "hindi"):
		return "hi"
	case strings.Contains(text, "english"):
		return "en"
	}
	return ""
}

// updateContext records what this turn talked about so follow-up questions
// can inherit the topic.
func (e *Engine) updateContext(sess *session, in intent.Intent, message string, snap *models.Snapshot) {
	if in.Confidence >= intent.DispatchThreshold {
		sess.ctx.LastTopic = in.Type
	}

	sess.ctx.Categories = sess.ctx.Categories[:0]
	for _, cat := range snap.TopCategories {
		sess.ctx.Categories = append(sess.ctx.Categories, cat.Name)
	}
	if amount := scenario.ParseAmount(message); amount > 0 {
		sess.ctx.Amounts = append(sess.ctx.Amounts, amount)
		if len(sess.ctx.Amounts) > e.cfg.ContextWindow {
			sess.ctx.Amounts = sess.ctx.Amounts[len(sess.ctx.Amounts)-e.cfg.ContextWindow:]
		}
	}
}
