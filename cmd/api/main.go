package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Emmett6401/bioHealthScheduleManager/api/swagger"
	"github.com/Emmett6401/bioHealthScheduleManager/internal/handler"
	internalmiddleware "github.com/Emmett6401/bioHealthScheduleManager/internal/middleware"
	"github.com/Emmett6401/bioHealthScheduleManager/internal/repository"
	"github.com/Emmett6401/bioHealthScheduleManager/internal/service"
	"github.com/Emmett6401/bioHealthScheduleManager/pkg/cache"
	"github.com/Emmett6401/bioHealthScheduleManager/pkg/config"
	"github.com/Emmett6401/bioHealthScheduleManager/pkg/database"
	"github.com/Emmett6401/bioHealthScheduleManager/pkg/logger"
	corsmiddleware "github.com/Emmett6401/bioHealthScheduleManager/pkg/middleware/cors"
	reqidmiddleware "github.com/Emmett6401/bioHealthScheduleManager/pkg/middleware/requestid"
)

// @title BioHealth Schedule Manager API
// @version 0.1.0
// @description Course timetable generation and institute administration
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect redis", "error", err)
	}
	defer redisClient.Close()

	instructorRepo := repository.NewInstructorRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	proposalRepo := repository.NewProposalRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	instructorSvc := service.NewInstructorService(instructorRepo, nil, logr)
	courseSvc := service.NewCourseService(courseRepo, nil, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, courseRepo, instructorRepo, nil, logr)
	studentSvc := service.NewStudentService(studentRepo, courseRepo, nil, logr)
	holidaySvc := service.NewHolidayService(holidayRepo, nil, logr)
	timetableSvc := service.NewTimetableService(
		courseRepo,
		subjectRepo,
		holidayRepo,
		timetableRepo,
		proposalRepo,
		metricsSvc,
		service.TimetableConfig{
			ProposalTTL:        cfg.Timetable.ProposalTTL,
			FallbackWindowDays: cfg.Timetable.FallbackWindowDays,
		},
		nil,
		logr,
	)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Instructors: handler.NewInstructorHandler(instructorSvc),
		Courses:     handler.NewCourseHandler(courseSvc),
		Subjects:    handler.NewSubjectHandler(subjectSvc),
		Students:    handler.NewStudentHandler(studentSvc),
		Holidays:    handler.NewHolidayHandler(holidaySvc),
		Timetables:  handler.NewTimetableHandler(timetableSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
