package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"grafeio-data/internal/config"
	"grafeio-data/internal/database"
	httpapi "grafeio-data/internal/http"
	"grafeio-data/internal/logger"
	"grafeio-data/internal/repository"
	"grafeio-data/internal/service"
	"grafeio-data/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "grafeio-data")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	kv := store.NewRedisKV(redisClient)

	citizensRepo := repository.NewPostgresCitizensRepository(db)
	militaryRepo := repository.NewPostgresMilitaryRepository(db)
	requestsRepo := repository.NewPostgresRequestsRepository(db)
	remindersRepo := repository.NewPostgresRemindersRepository(db)
	usersRepo := repository.NewPostgresUsersRepository(db)
	statsRepo := repository.NewPostgresStatsRepository(db)

	citizenSvc := service.NewCitizenService(citizensRepo, kv, log)
	militarySvc := service.NewMilitaryService(militaryRepo, kv, log)
	requestSvc := service.NewRequestService(requestsRepo, citizensRepo, militaryRepo, kv, log)
	reminderSvc := service.NewReminderService(remindersRepo, requestsRepo, kv, log)
	statsSvc := service.NewStatsService(statsRepo, kv, log)
	userSvc := service.NewUserService(usersRepo, log)

	router := httpapi.NewRouter(log)
	router.RegisterCitizenRoutes(httpapi.NewCitizensHandler(citizenSvc, log))
	router.RegisterMilitaryRoutes(httpapi.NewMilitaryHandler(militarySvc, log))
	router.RegisterRequestRoutes(httpapi.NewRequestsHandler(requestSvc, log))
	router.RegisterReminderRoutes(httpapi.NewRemindersHandler(reminderSvc, log))
	router.RegisterStatsRoutes(httpapi.NewStatsHandler(statsSvc, log))
	router.RegisterUserRoutes(httpapi.NewUsersHandler(userSvc, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
		}
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = redisClient.Close()
	_ = database.Close(db)
}
