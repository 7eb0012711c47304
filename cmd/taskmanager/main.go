package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amitkumarsingh01/ACS-Cyber/internal/api"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/config"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/notify"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/repository"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	sink := buildSink(cfg)

	userSvc := service.NewUserService(userRepo, sink)
	taskSvc := service.NewTaskService(taskRepo, sink)
	reminderSvc := service.NewReminderService(userRepo, taskRepo, sink)

	scheduler := service.NewSchedulerService(time.Local)
	if cfg.ReminderTime != "" && sink != nil {
		if _, err := scheduler.ScheduleDaily(cfg.ReminderTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := reminderSvc.SendDailyDigests(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("[warn] digest: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule digest: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := api.New(cfg.HTTPAddr, cfg.JWTSecret, userRepo, userSvc, taskSvc)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	log.Printf("[info] task manager listening on %s", cfg.HTTPAddr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}

	log.Println("[info] shutdown complete")
}

// buildSink assembles the configured notification sinks. Nil means the
// service runs without notifications.
func buildSink(cfg config.Config) notify.Sink {
	var sinks notify.Multi

	if cfg.Mail.Enabled() {
		sinks = append(sinks, notify.NewSMTPSink(cfg.Mail))
		log.Printf("[info] mail notifications enabled via %s", cfg.Mail.Host)
	}
	if cfg.TelegramToken != "" {
		telegram, err := notify.NewTelegramSink(cfg.TelegramToken)
		if err != nil {
			log.Fatalf("telegram sink: %v", err)
		}
		sinks = append(sinks, telegram)
	}

	if len(sinks) == 0 {
		log.Println("[info] notifications disabled")
		return nil
	}
	return sinks
}
