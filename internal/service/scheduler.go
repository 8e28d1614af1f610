package service

import (
	"context"
	"sync"
	"time"

	"budgetd/internal/model"
	"budgetd/internal/repository"
	"go.uber.org/zap"
)

// Scheduler materializes due recurring rules into dated transactions,
// at most once per elapsed period per rule.
type Scheduler struct {
	rules repository.RecurringRuleRepository
	log   *zap.Logger

	// mu serializes evaluation passes; the startup run and the first timer
	// tick can otherwise race at process boot.
	mu sync.Mutex
}

// NewScheduler constructs a Scheduler.
func NewScheduler(rules repository.RecurringRuleRepository, log *zap.Logger) *Scheduler {
	return &Scheduler{rules: rules, log: log}
}

// EvaluateDueRules runs one evaluation pass for the given day. Each due rule
// is materialized in its own storage transaction whose guarded update re-checks
// last_run_date, so repeated or overlapping invocations for the same day create
// no duplicate transactions. A failing rule is logged and skipped; the pass
// continues and the rule is retried on the next invocation. Missed periods are
// not backfilled: one pass creates at most one transaction per rule.
func (s *Scheduler) EvaluateDueRules(ctx context.Context, today time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	today = dateOnly(today)

	candidates, err := s.rules.ListDue(ctx, today)
	if err != nil {
		return err
	}
	s.log.Info("evaluating recurring rules",
		zap.Int("candidates", len(candidates)),
		zap.String("date", today.Format("2006-01-02")),
	)

	created := 0
	for i := range candidates {
		rule := &candidates[i]
		if !isDue(rule, today) {
			continue
		}
		ok, err := s.rules.Materialize(ctx, rule, today)
		if err != nil {
			s.log.Error("materialize rule",
				zap.String("rule_id", rule.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if ok {
			created++
		}
	}

	s.log.Info("recurring evaluation complete",
		zap.Int("created", created),
		zap.Int("checked", len(candidates)),
	)
	return nil
}

// isDue decides sufficiency for a candidate rule. The candidate scan already
// excluded rules run today, ended rules, and rules not yet started.
func isDue(r *model.RecurringRule, today time.Time) bool {
	if r.LastRunDate == nil {
		return true
	}
	last := dateOnly(*r.LastRunDate)

	switch r.Frequency {
	case model.FreqDaily:
		return today.After(last)
	case model.FreqWeekly:
		// Fixed 7-day cadence from the last materialization, not week-aligned.
		return int(today.Sub(last).Hours()/24) >= 7
	case model.FreqMonthly:
		// One materialization per calendar month; day-of-month is ignored.
		return today.Year() != last.Year() || today.Month() != last.Month()
	default:
		return false
	}
}

// dateOnly truncates an instant to a UTC calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
