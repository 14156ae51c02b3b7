package bootstrap

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"nurture-backend/internal/assessments"
	"nurture-backend/internal/shared/config"
	"nurture-backend/internal/shared/testutil"
	"nurture-backend/internal/users"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:                 "dev",
		Port:                "0",
		JWTTTL:              time.Hour,
		ObjectStoreType:     "local",
		LocalStoreDir:       t.TempDir(),
		ProgressRollupSpec:  "@daily",
		ChatRateLimitPerMin: 2,
	}
}

func TestBuildServesEndToEnd(t *testing.T) {
	testutil.CaptureLogs(t)
	app, err := Build(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(app.Close)
	if app.DB != nil {
		t.Fatalf("expected in-memory repositories")
	}
	if len(app.Cron.Entries()) != 1 {
		t.Fatalf("expected rollup to be scheduled")
	}
	router := app.Router

	resp := testutil.Do(t, router, http.MethodGet, "/api/v1/health", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("health expected 200, got %d", resp.Code)
	}

	resp = testutil.Do(t, router, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email": "parent@example.com", "password": "password123", "fullName": "Pat Parent",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("signup expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var session users.Session
	testutil.Decode(t, resp, &session)
	token := session.Token

	resp = testutil.Do(t, router, http.MethodPost, "/api/v1/assessments", token, map[string]any{
		"answers": []int{4, 4, 2, 4, 4, 4},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("assessment expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = testutil.Do(t, router, http.MethodPost, "/api/v1/games/sessions", token, map[string]any{
		"gameType": "focus", "difficulty": 1, "clicks": 30, "timeLeft": 0,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("game session expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = testutil.Do(t, router, http.MethodGet, "/api/v1/dashboard", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("dashboard expected 200, got %d", resp.Code)
	}
	var dash struct {
		LatestAssessment *assessments.Assessment `json:"latestAssessment"`
		TotalGames       int                     `json:"totalGames"`
	}
	testutil.Decode(t, resp, &dash)
	if dash.LatestAssessment == nil || dash.LatestAssessment.Score != 92 || dash.LatestAssessment.SupportLevel != assessments.SupportMild {
		t.Fatalf("unexpected latest assessment %+v", dash.LatestAssessment)
	}
	if dash.TotalGames != 1 {
		t.Fatalf("expected 1 game, got %d", dash.TotalGames)
	}

	resp = testutil.Do(t, router, http.MethodGet, "/metrics", "", nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "assessments_scored_total") {
		t.Fatalf("unexpected metrics response %d", resp.Code)
	}
}

func TestBuildRejectsBadRollupSpec(t *testing.T) {
	testutil.CaptureLogs(t)
	cfg := testConfig(t)
	cfg.ProgressRollupSpec = "every now and then"
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for invalid cron spec")
	}
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "production"
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected DATABASE_URL error")
	}
}

func TestBuildRejectsBadQuestionBankFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.QuestionBankFile = t.TempDir() + "/missing.yaml"
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected bank load error")
	}
}
