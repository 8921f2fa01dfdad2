package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"fittrack/internal/api"
	"fittrack/internal/config"
	"fittrack/internal/repository"
	"fittrack/internal/repository/memory"
	mongorepo "fittrack/internal/repository/mongo"
	"fittrack/internal/repository/postgres"
	"fittrack/internal/service"
)

// stores bundles the four repositories of whichever backend is active.
type stores struct {
	users     repository.UserRepository
	workouts  repository.WorkoutRepository
	goals     repository.GoalRepository
	exercises repository.ExerciseRepository
	close     func()
}

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: could not load config: %v", err)
	}

	setupLogging(cfg.Log)
	log.Infof("starting fittrack server, storage driver %q", cfg.Database.Driver)

	st, err := openStores(cfg)
	if err != nil {
		log.Fatalf("FATAL: could not initialize storage: %v", err)
	}
	defer st.close()

	authService := service.NewAuthService(st.users, st.exercises, cfg.JWT.Secret, cfg.JWT.Expiration)
	workoutService := service.NewWorkoutService(st.workouts)
	goalService := service.NewGoalService(st.goals, st.workouts)
	exerciseService := service.NewExerciseService(st.exercises)

	router := gin.Default()
	api.SetupRoutes(router, cfg.JWT.Secret, authService, workoutService, goalService, exerciseService, nil)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: server forced to shutdown: %v", err)
	}
	log.Info("server exiting")
}

func setupLogging(cfg config.LogConfig) {
	if cfg.JSON {
		log.SetFormatter(&log.JSONFormatter{})
	}
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)
}

// openStores connects the configured backend and wires the repositories.
func openStores(cfg config.Config) (stores, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		return stores{
			users:     store.Users(),
			workouts:  store.Workouts(),
			goals:     store.Goals(),
			exercises: store.Exercises(),
			close:     func() {},
		}, nil

	case config.DriverMongo:
		client, err := mongorepo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return stores{}, err
		}
		db := client.Database(cfg.Database.Name)

		// Index creation runs in the background; the server can serve
		// before it completes.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := mongorepo.EnsureUserIndexes(ctx, db.Collection("users")); err != nil {
				log.Warnf("user index creation failed: %v", err)
			}
			if err := mongorepo.EnsureWorkoutIndexes(ctx, db.Collection("workouts")); err != nil {
				log.Warnf("workout index creation failed: %v", err)
			}
			if err := mongorepo.EnsureGoalIndexes(ctx, db.Collection("goals")); err != nil {
				log.Warnf("goal index creation failed: %v", err)
			}
			if err := mongorepo.EnsureExerciseIndexes(ctx, db.Collection("exercises")); err != nil {
				log.Warnf("exercise index creation failed: %v", err)
			}
		}()

		return stores{
			users:     mongorepo.NewUserRepository(db),
			workouts:  mongorepo.NewWorkoutRepository(db),
			goals:     mongorepo.NewGoalRepository(db),
			exercises: mongorepo.NewExerciseRepository(db),
			close: func() {
				if err := mongorepo.DisconnectDB(client); err != nil {
					log.Errorf("failed to disconnect MongoDB: %v", err)
				}
			},
		}, nil

	case config.DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		pool, err := postgres.Connect(ctx, cfg.Database.URI)
		if err != nil {
			return stores{}, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return stores{}, err
		}
		return stores{
			users:     postgres.NewUserRepository(pool),
			workouts:  postgres.NewWorkoutRepository(pool),
			goals:     postgres.NewGoalRepository(pool),
			exercises: postgres.NewExerciseRepository(pool),
			close:     pool.Close,
		}, nil
	}
	return stores{}, errors.New("unknown database driver " + cfg.Database.Driver)
}
