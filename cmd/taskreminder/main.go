package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-reminder/internal/ai"
	"task-reminder/internal/config"
	"task-reminder/internal/notify"
	"task-reminder/internal/reminder"
	"task-reminder/internal/repository"
	"task-reminder/internal/server"
	"task-reminder/internal/store"
	"task-reminder/internal/vocab"
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

	taskRepo := repository.NewTaskRepository(db)
	vocabRepo := repository.NewVocabularyRepository(db)

	taskStore := store.New(taskRepo)
	go taskStore.Watch(ctx)

	vocabSvc := vocab.NewService(vocabRepo, ai.NewClient(cfg.AI))

	var notifier reminder.Notifier
	if cfg.TelegramToken != "" {
		telegram, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		notifier = telegram
	}

	// The scheduler must never run against an unloaded list.
	if _, err := taskStore.LoadAll(ctx); err != nil {
		log.Fatalf("load tasks: %v", err)
	}

	scheduler := reminder.New(taskStore, notifier, time.Local)
	scheduler.CheckNow()
	if err := scheduler.Start(cfg.CheckInterval); err != nil {
		log.Fatalf("schedule reminders: %v", err)
	}
	defer scheduler.Stop()

	srv := server.New(taskStore, vocabSvc)
	srv.Start(ctx)

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("[info] task reminder listening on %s", cfg.ListenAddr)
	if err := srv.Listen(cfg.ListenAddr); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
	srv.Wait()
	log.Println("Shutdown complete.")
}
