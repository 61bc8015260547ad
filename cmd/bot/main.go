package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alenapavlenkko/lifetracker/internal/app"
	"github.com/alenapavlenkko/lifetracker/internal/bot"
	"github.com/alenapavlenkko/lifetracker/internal/config"
	"github.com/alenapavlenkko/lifetracker/pkg/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	// -----------------------
	// ENV
	cfg, err := config.ParseFlags("lifetracker-bot", "Telegram front-end for daily routines, streaks and sleep",
		(*config.Config).ValidateBot)
	if err != nil {
		utils.Log.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}
	utils.Configure(utils.LogConfig{Level: cfg.Log.Level, File: cfg.Log.File})

	// -----------------------
	// DATABASE + SERVICES
	application, err := app.New(cfg)
	if err != nil {
		utils.Log.Error("Startup failed", "err", err)
		os.Exit(1)
	}
	defer application.Close()

	// -----------------------
	// BOT
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		utils.Log.Error("Failed to create bot", "err", err)
		os.Exit(1)
	}
	utils.Log.Info("Authorized", "bot", api.Self.UserName)

	botApp := bot.NewBotApp(api, bot.Services{
		Accounts: application.Accounts,
		Routines: application.Routines,
		Health:   application.Health,
	})

	scheduler, err := botApp.StartReminders(cfg.Telegram.ReminderCron)
	if err != nil {
		utils.Log.Error("Failed to schedule reminders", "err", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)
	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	botApp.Run(ctx, updates)
}
