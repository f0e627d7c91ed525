package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"go-jobscout-automation/internal/ai"
	"go-jobscout-automation/internal/browser"
	"go-jobscout-automation/internal/config"
	"go-jobscout-automation/internal/filter"
	"go-jobscout-automation/internal/outreach"
	"go-jobscout-automation/internal/pipeline"
	"go-jobscout-automation/internal/reporter"
	"go-jobscout-automation/internal/scheduler"
	"go-jobscout-automation/internal/scraper/linkedin"
	"go-jobscout-automation/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	roles := cfg.EnabledRoles()
	if len(roles) == 0 {
		sugar.Fatal("no enabled roles configured")
	}
	sugar.Infow("config loaded", "roles", len(roles), "interval_minutes", cfg.ScrapeIntervalMinutes)

	// The fit stage cannot run without a resume.
	resume, err := storage.LoadDocument(cfg.ResumePath)
	if err != nil {
		sugar.Fatalw("could not load resume", "path", cfg.ResumePath, "error", err)
	}
	preferences, err := storage.LoadDocument(cfg.PreferencesPath)
	if err != nil {
		if !errors.Is(err, storage.ErrDocumentNotFound) {
			sugar.Fatalw("could not load preferences", "path", cfg.PreferencesPath, "error", err)
		}
		sugar.Warnw("no preferences document, scoring on resume only", "path", cfg.PreferencesPath)
	}

	store, err := storage.NewStore(cfg.DataDir, sugar)
	if err != nil {
		sugar.Fatalw("could not init storage", "error", err)
	}

	blocklist, err := filter.NewBlocklist(storage.NewBlocklistStore(cfg.BlocklistPath), sugar)
	if err != nil {
		sugar.Fatalw("could not load blocklist", "path", cfg.BlocklistPath, "error", err)
	}

	notifier, err := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID, sugar)
	if err != nil {
		sugar.Fatalw("could not init telegram reporter", "error", err)
	}

	judge := ai.NewChatClient(cfg.JudgeAPIKey, cfg.JudgeBaseURL, cfg.JudgeCallsPerSec)

	pwManager, err := browser.NewPlaywright(cfg.Headless)
	if err != nil {
		sugar.Fatalw("could not init playwright", "error", err)
	}
	defer pwManager.Close()

	// The session must arrive authenticated; login is never performed here.
	cookies, err := browser.LoadCookies(cfg.CookiesPath)
	if err != nil {
		sugar.Fatalw("could not load session cookies", "path", cfg.CookiesPath, "error", err)
	}
	browserCtx, err := pwManager.NewContext(cookies)
	if err != nil {
		sugar.Fatalw("could not create browser context", "error", err)
	}
	session, err := browser.NewSession(browserCtx)
	if err != nil {
		sugar.Fatalw("could not open browser session", "error", err)
	}
	defer session.Close()

	chain := filter.NewChain(
		blocklist,
		filter.NewHRDetector(judge, cfg.JudgeModel, blocklist, sugar),
		filter.NewSponsorshipGate(judge, cfg.JudgeModel, filter.SponsorshipGateConfig{
			RejectUnpaidRoles:  cfg.RejectUnpaidRoles,
			RejectVolunteer:    cfg.RejectVolunteer,
			MaxExperienceYears: cfg.MaxExperienceYears,
			AllowPhDRequired:   cfg.AllowPhDRequired,
		}, sugar),
		filter.NewFitScorer(judge, cfg.JudgeModel, cfg.JudgeRerankModel, cfg.RerankTrigger, resume, preferences, sugar),
		cfg.MatchThreshold,
		sugar,
	)

	newList := func() pipeline.ListExtractor {
		return linkedin.NewListExtractor(
			linkedin.NewListSource(session.CurrentPage()),
			cfg.ListPageRetries, cfg.RequestDelayMinMs, cfg.RequestDelayMaxMs, sugar)
	}
	detail := linkedin.NewDetailExtractor(
		linkedin.NewDetailSource(session.CurrentPage()),
		cfg.DetailFaultRetries, cfg.DetailTimeoutRetries, sugar)

	coordinator := outreach.NewCoordinator(
		outreach.NewSession(session),
		cfg.MaxPeoplePages, cfg.RequestDelayMinMs, cfg.RequestDelayMaxMs, sugar)

	runner := pipeline.NewRunner(
		pipeline.BuildQueries(roles),
		newList,
		detail,
		chain,
		coordinator,
		store,
		notifier,
		pipeline.Options{
			MaxApplicants: cfg.MaxApplicants,
			NoMatchPages:  cfg.NoMatchPages,
			DelayMinMs:    cfg.RequestDelayMinMs,
			DelayMaxMs:    cfg.RequestDelayMaxMs,
		},
		sugar,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sugar.Info("jobscout starting")
	if err := scheduler.New(cfg.ScrapeIntervalMinutes, runner, sugar).Run(ctx); err != nil {
		sugar.Fatalw("scheduler failed", "error", err)
	}
	sugar.Info("jobscout stopped")
}
