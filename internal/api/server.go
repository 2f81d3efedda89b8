package api

import (
	"log"

	"github.com/SundayYogurt/task_service/config"
	"github.com/SundayYogurt/task_service/infra/queue"
	"github.com/SundayYogurt/task_service/internal/api/rest/handlers"
	"github.com/SundayYogurt/task_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/helper"
	"github.com/SundayYogurt/task_service/internal/repository"
	"github.com/SundayYogurt/task_service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260901

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Project{},
		&domain.ProjectMember{},
		&domain.Board{},
		&domain.Task{},
		&domain.Comment{},
		&domain.AuditLog{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ---------- Services ----------
	permissionSvc := services.NewPermissionService(projectRepo, boardRepo, taskRepo, commentRepo)
	auditSvc := services.NewAuditService(auditRepo)
	userSvc := services.NewUserService(userRepo, authHelper)
	projectSvc := services.NewProjectService(projectRepo, userRepo, permissionSvc, auditSvc)
	boardSvc := services.NewBoardService(boardRepo, projectRepo, permissionSvc, auditSvc)
	taskSvc := services.NewTaskService(taskRepo, commentRepo, boardRepo, userRepo, permissionSvc, auditSvc, kafkaProducer)

	// ---------- Handlers ----------
	authMW := middleware.AuthMiddleware(authHelper, userRepo)

	userHandler := handlers.NewUserHandler(userSvc, authHelper)
	userHandler.SetupRoutes(app, authMW)

	projectHandler := handlers.NewProjectHandler(projectSvc, boardSvc)
	projectHandler.SetupRoutes(app, authMW)

	taskHandler := handlers.NewTaskHandler(taskSvc)
	taskHandler.SetupRoutes(app, authMW)

	auditHandler := handlers.NewAuditHandler(auditSvc)
	auditHandler.SetupRoutes(app, authMW)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
