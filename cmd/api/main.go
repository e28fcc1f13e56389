package main

import (
	"os"

	_ "bizhive/api/swagger" // swagger docs
	"bizhive/internal/access"
	"bizhive/internal/config"
	"bizhive/internal/database"
	"bizhive/internal/handler"
	"bizhive/internal/middleware"
	"bizhive/internal/repository"
	"bizhive/internal/service"
	"bizhive/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           BizHive API
// @version         1.0
// @description     Multitenant inventory and personnel management backend with role-based branch access.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	log.Info().Msg("connected to PostgreSQL")

	jwtSecret := middleware.GetJWTSecret()

	// WebSocket hub for inventory events
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Repository -> Service -> Handler
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewUserRoleRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	resolver := access.NewResolver(roleRepo, employeeRepo)

	authService := service.NewAuthService(userRepo, roleRepo, profileRepo, txManager, jwtSecret)
	branchService := service.NewBranchService(branchRepo, employeeRepo, inventoryRepo, auditRepo, txManager)
	employeeService := service.NewEmployeeService(employeeRepo, branchRepo, userRepo, roleRepo, auditRepo, txManager)
	inventoryService := service.NewInventoryService(inventoryRepo, branchRepo, auditRepo, txManager, wsHub)
	auditService := service.NewAuditService(auditRepo)
	profileService := service.NewProfileService(profileRepo)

	authHandler := handler.NewAuthHandler(authService)
	branchHandler := handler.NewBranchHandler(branchService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	auditHandler := handler.NewAuditHandler(auditService)
	profileHandler := handler.NewProfileHandler(profileService)

	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, jwtSecret)
	})

	// Public auth routes
	authHandler.RegisterRoutes(router.Group(""))

	// Authenticated routes: identity first, then the resolved access context
	api := router.Group("")
	api.Use(middleware.Authenticate(jwtSecret), middleware.ResolveAccess(resolver))
	branchHandler.RegisterRoutes(api)
	employeeHandler.RegisterRoutes(api)
	inventoryHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)
	profileHandler.RegisterRoutes(api)

	log.Info().Str("port", cfg.Port).Msg("server listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
