package progress

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/robfig/cron/v3"

	"nurture-backend/internal/games"
	"nurture-backend/internal/shared/telemetry"
)

const rollupTimeout = 5 * time.Minute

// GameAverager is the slice of the games repository the rollup reads.
type GameAverager interface {
	DailyAverages(ctx context.Context, from, to time.Time) ([]games.DailyAverage, error)
}

// Rollup folds a day's game sessions into per-child progress entries.
type Rollup struct {
	Games GameAverager
	Repo  Repo
	Now   func() time.Time
}

func NewRollup(gamesRepo GameAverager, repo Repo) *Rollup {
	return &Rollup{Games: gamesRepo, Repo: repo, Now: time.Now}
}

// Schedule registers the rollup on c under spec.
func (r *Rollup) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), rollupTimeout)
		defer cancel()
		if _, err := r.Run(ctx); err != nil {
			telemetry.Error("progress.rollup_failed", map[string]any{"error": err.Error()})
		}
	})
}

// Run rolls up the previous UTC day.
func (r *Rollup) Run(ctx context.Context) (int, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return r.RunFor(ctx, Day(now()).AddDate(0, 0, -1))
}

// RunFor rolls up day and returns the number of children updated.
func (r *Rollup) RunFor(ctx context.Context, day time.Time) (int, error) {
	from := Day(day)
	to := from.AddDate(0, 0, 1)
	averages, err := r.Games.DailyAverages(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("load game averages: %w", err)
	}

	perChild := make(map[string]map[string]*skillAgg)
	var order []string
	for _, avg := range averages {
		game, ok := games.Lookup(avg.GameType)
		if !ok || avg.Sessions <= 0 {
			continue
		}
		skills, ok := perChild[avg.ChildID]
		if !ok {
			skills = make(map[string]*skillAgg)
			perChild[avg.ChildID] = skills
			order = append(order, avg.ChildID)
		}
		agg, ok := skills[game.Skill]
		if !ok {
			agg = &skillAgg{}
			skills[game.Skill] = agg
		}
		agg.total += avg.Average * float64(avg.Sessions)
		agg.sessions += avg.Sessions
	}

	updated := 0
	for _, childID := range order {
		scores := SkillScores{
			Focus:   perChild[childID]["focus"].score(),
			Memory:  perChild[childID]["memory"].score(),
			Reading: perChild[childID]["reading"].score(),
		}
		if scores.empty() {
			continue
		}
		if err := r.Repo.MergeSkills(ctx, childID, from, scores); err != nil {
			return updated, fmt.Errorf("merge progress for %s: %w", childID, err)
		}
		updated++
	}
	telemetry.Info("progress.rollup_complete", map[string]any{
		"date":     from.Format(DateLayout),
		"children": updated,
	})
	return updated, nil
}

type skillAgg struct {
	total    float64
	sessions int
}

func (a *skillAgg) score() *int {
	if a == nil || a.sessions == 0 {
		return nil
	}
	v := int(math.Round(a.total / float64(a.sessions)))
	if v < MinScore {
		v = MinScore
	}
	if v > MaxScore {
		v = MaxScore
	}
	return &v
}
