package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/motleyton/tgbot-hp/internal/config"
	"github.com/motleyton/tgbot-hp/internal/dialog"
	"github.com/motleyton/tgbot-hp/internal/domain"
	"github.com/motleyton/tgbot-hp/internal/i18n"
	"github.com/motleyton/tgbot-hp/internal/openai"
	"github.com/motleyton/tgbot-hp/internal/scheduler"
	"github.com/motleyton/tgbot-hp/internal/store"
	"github.com/motleyton/tgbot-hp/internal/telegram"
)

// sweepInterval is how often abandoned dialogue sessions are evicted.
const sweepInterval = 10 * time.Minute

type App struct {
	cfg      config.Config
	log      *zap.Logger
	bot      *tgbotapi.BotAPI
	httpSrv  *http.Server
	loc      *i18n.Bundle
	notifyAt int // minutes since midnight
	repo     store.Repo
}

// New validates derived configuration and prepares the bot transport.
func New(cfg config.Config, log *zap.Logger) (*App, error) {
	notifyAt, err := domain.ParseNotifyTime(cfg.NotifyAt)
	if err != nil {
		return nil, fmt.Errorf("NOTIFY_AT: %w", err)
	}

	loc, err := i18n.Load()
	if err != nil {
		return nil, err
	}
	if !loc.Has(cfg.BotLanguage) {
		log.Warn("no translations for configured language, falling back to defaults",
			zap.String("language", cfg.BotLanguage))
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv, loc: loc, notifyAt: notifyAt}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting birthday bot",
		zap.String("notify_at", domain.FormatMinutes(a.notifyAt)),
		zap.String("language", a.cfg.BotLanguage),
		zap.String("http", a.cfg.HTTPAddr),
	)

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready", zap.String("path", a.cfg.DBPath))

	systemPrompt := a.cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = a.loc.Text(a.cfg.BotLanguage, "greeting_system_prompt")
	}
	greeter := openai.New(openai.Config{
		APIKey:        a.cfg.OpenAIAPIKey,
		Model:         a.cfg.OpenAIModel,
		Temperature:   a.cfg.Temperature,
		SystemPrompt:  systemPrompt,
		UserPromptFmt: a.loc.Text(a.cfg.BotLanguage, "greeting_user_prompt"),
		Fallback:      a.loc.Text(a.cfg.BotLanguage, "greeting_fallback"),
	}, a.log)

	flow := dialog.New(a.repo, a.log)
	router := telegram.NewRouter(a.bot, a.log, a.repo, flow, greeter, a.loc, a.cfg.BotLanguage)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	daily := scheduler.NewDaily(a.repo, a.log, router, a.notifyAt)
	go daily.Run(ctx)

	go a.sweepSessions(ctx, flow)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if a.repo != nil {
				_ = a.repo.Close()
			}
			return nil

		case upd := <-updCh:
			router.HandleUpdate(ctx, upd)
		}
	}
}

// sweepSessions periodically evicts dialogue sessions abandoned mid-entry.
func (a *App) sweepSessions(ctx context.Context, flow *dialog.Flow) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := flow.Sweep(now); n > 0 {
				a.log.Info("evicted stale dialogue sessions", zap.Int("count", n))
			}
		}
	}
}
