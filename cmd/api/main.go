package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sharpfade/barber-booking/internal/config"
	dbpkg "github.com/sharpfade/barber-booking/internal/db"
	"github.com/sharpfade/barber-booking/internal/logger"
	"github.com/sharpfade/barber-booking/internal/mailer"
	"github.com/sharpfade/barber-booking/internal/middleware"
	"github.com/sharpfade/barber-booking/internal/reminder"
	"github.com/sharpfade/barber-booking/internal/routes"
	"github.com/sharpfade/barber-booking/internal/storage"
)

func main() {

	cfg := config.Load()
	log := logger.New(os.Getenv("APP_ENV"))
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)

	var denylist *middleware.TokenDenylist
	if cfg.RedisAddr != "" {
		denylist = middleware.NewTokenDenylist(redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		}))
		log.Info("redis token denylist enabled", zap.String("addr", cfg.RedisAddr))
	}

	var store storage.ObjectStorage
	if s3store := storage.NewS3(cfg); s3store != nil {
		store = s3store
		log.Info("s3 portfolio storage enabled", zap.String("bucket", cfg.S3Bucket))
	}

	reminderJob := reminder.New(db, mailer.New(cfg), log, cfg.Timezone)
	cronRunner := reminderJob.Start()
	defer cronRunner.Stop()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Log:      log,
		Denylist: denylist,
		Storage:  store,
	})

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
