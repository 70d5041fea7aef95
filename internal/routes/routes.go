package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/R0UTS/Animal-Hospitalty/internal/audit"
	"github.com/R0UTS/Animal-Hospitalty/internal/auth"
	"github.com/R0UTS/Animal-Hospitalty/internal/config"
	animaldomain "github.com/R0UTS/Animal-Hospitalty/internal/domain/animal"
	emergencydomain "github.com/R0UTS/Animal-Hospitalty/internal/domain/emergency"
	userdomain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/handlers"
	"github.com/R0UTS/Animal-Hospitalty/internal/infra/storage"
	"github.com/R0UTS/Animal-Hospitalty/internal/metrics"
	"github.com/R0UTS/Animal-Hospitalty/internal/middleware"
	"github.com/R0UTS/Animal-Hospitalty/internal/notify"
	"github.com/R0UTS/Animal-Hospitalty/internal/timezone"
	ucAnimal "github.com/R0UTS/Animal-Hospitalty/internal/usecase/animal"
	ucEmergency "github.com/R0UTS/Animal-Hospitalty/internal/usecase/emergency"
	ucUser "github.com/R0UTS/Animal-Hospitalty/internal/usecase/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/validators"
)

const (
	roleFarmer = string(userdomain.RoleFarmer)
	roleVet    = string(userdomain.RoleVeterinarian)
	roleAdmin  = string(userdomain.RoleAdmin)
)

// Deps are the singletons the routes are built from. main wires postgres
// and the configured store; tests wire the memory repositories.
type Deps struct {
	Config *config.Config
	Log    *slog.Logger

	Users       userdomain.Repository
	Animals     animaldomain.Repository
	Emergencies emergencydomain.Repository
	AuditStore  audit.Store
	Audit       *audit.Dispatcher

	Files      storage.Store
	Thumbnails ucEmergency.Thumbnails

	Hub       *notify.Hub
	Publisher notify.Publisher

	Checks map[string]handlers.Pinger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	log := d.Log
	if log == nil {
		log = slog.Default()
	}

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(metrics.GinMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins()))
	r.MaxMultipartMemory = 8 << 20

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	loc := timezone.Location(cfg.Timezone)
	clock := timezone.Clock(cfg.Timezone)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL())
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	hub := d.Hub
	if hub == nil {
		hub = notify.NewHub(log)
	}
	publisher := d.Publisher
	if publisher == nil {
		publisher = hub
	}
	relay := notify.NewRelay(publisher, log)

	// ======================================================
	// USE CASES — USERS
	// ======================================================
	registerOpts := ucUser.RegisterOptions{AllowAdmin: cfg.AdminRegistrationEnabled}
	if cfg.ValidateEmailDomain {
		registerOpts.CheckEmailDomain = validators.IsEmailDomainValid
	}

	registerUC := ucUser.NewRegister(d.Users, hasher, d.Files, d.Audit, registerOpts, log)
	loginUC := ucUser.NewLogin(d.Users, hasher, tokens, d.Audit)
	getUserUC := ucUser.NewGetUser(d.Users)
	updateProfileUC := ucUser.NewUpdateProfile(d.Users, d.Audit)
	changePasswordUC := ucUser.NewChangePassword(d.Users, hasher, d.Audit)
	listUsersUC := ucUser.NewListUsers(d.Users)
	setStatusUC := ucUser.NewSetStatus(d.Users, d.Audit)
	setDocumentUC := ucUser.NewSetDocumentStatus(d.Users, d.Audit)
	deleteUserUC := ucUser.NewDeleteUser(d.Users, d.Audit)

	// ======================================================
	// USE CASES — ANIMALS / EMERGENCIES
	// ======================================================
	animalRegistry := ucAnimal.NewRegistry(d.Animals, d.Users, clock)

	createEmergencyUC := ucEmergency.NewCreateEmergency(
		d.Emergencies,
		d.Users,
		d.Files,
		d.Thumbnails,
		relay,
		d.Audit,
		log,
	)
	emergencyReader := ucEmergency.NewReader(d.Emergencies, d.Users)
	updateStatusUC := ucEmergency.NewUpdateStatus(d.Emergencies, d.Users, relay, d.Audit)
	reports := ucEmergency.NewReports(d.Emergencies, loc)

	// ======================================================
	// HANDLERS
	// ======================================================
	maxBody := cfg.MaxUploadBytes()

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, maxBody, log)
	profileHandler := handlers.NewProfileHandler(getUserUC, updateProfileUC, changePasswordUC, log)
	adminUsersHandler := handlers.NewAdminUsersHandler(
		listUsersUC,
		getUserUC,
		updateProfileUC,
		setStatusUC,
		setDocumentUC,
		deleteUserUC,
		log,
	)
	animalHandler := handlers.NewAnimalHandler(animalRegistry, loc, log)
	emergencyHandler := handlers.NewEmergencyHandler(
		createEmergencyUC,
		emergencyReader,
		updateStatusUC,
		reports,
		maxBody,
		log,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(d.AuditStore), loc, log)
	uploadsHandler := handlers.NewUploadsHandler(d.Files, log)
	socketHandler := handlers.NewSocketHandler(hub, tokens, cfg.AllowedOrigins(), log)
	healthHandler := handlers.NewHealthHandler(d.Checks, log)

	// ======================================================
	// OPERATIONAL
	// ======================================================
	r.GET("/health", healthHandler.Live)
	r.GET("/readyz", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/uploads/*key", uploadsHandler.Serve)
	r.GET("/socket", socketHandler.Connect)

	// ======================================================
	// API (JSON)
	// ======================================================
	authenticated := middleware.AuthMiddleware(tokens)

	api := r.Group("/api")
	{
		// ------------------------------
		// USERS
		// ------------------------------
		user := api.Group("/user")
		{
			user.POST("/register", authHandler.Register)
			user.POST("/login", authHandler.Login)

			me := user.Group("/profile", authenticated)
			{
				me.GET("", profileHandler.Get)
				me.PUT("", profileHandler.Update)
				me.POST("/change-password", profileHandler.ChangePassword)
			}

			admin := user.Group("/users", authenticated, middleware.RequireRoles(roleAdmin))
			{
				admin.GET("", adminUsersHandler.List)
				admin.GET("/:id", adminUsersHandler.Get)
				admin.PUT("/:id", adminUsersHandler.Update)
				admin.DELETE("/:id", adminUsersHandler.Delete)
				admin.PUT("/:id/status", adminUsersHandler.SetStatus)
				admin.PUT("/:id/document-status", adminUsersHandler.SetDocumentStatus)
			}
		}

		// ------------------------------
		// ANIMALS
		// ------------------------------
		animal := api.Group("/animal", authenticated)
		{
			animal.POST("", middleware.RequireRoles(roleFarmer), animalHandler.Create)
			animal.GET("/farmer/:ownerId", animalHandler.ListByOwner)
			animal.GET("/:animalId", animalHandler.Get)
			animal.PUT("/:animalId", animalHandler.Update)
			animal.DELETE("/:animalId", animalHandler.Delete)
		}

		// ------------------------------
		// EMERGENCIES
		// ------------------------------
		emergency := api.Group("/emergency", authenticated)
		{
			emergency.POST("", middleware.RequireRoles(roleFarmer), emergencyHandler.Create)
			emergency.GET("", emergencyHandler.ListMine)
			emergency.GET("/vet-emergencies", middleware.RequireRoles(roleVet), emergencyHandler.ListForVet)

			reporting := emergency.Group("", middleware.RequireRoles(roleAdmin))
			{
				reporting.GET("/statistics", emergencyHandler.Statistics)
				reporting.GET("/statistics/monthly", emergencyHandler.MonthlyStatistics)
				reporting.GET("/detailed", emergencyHandler.Detailed)
			}

			emergency.GET("/:emergencyId", emergencyHandler.Get)
			emergency.PATCH("/:emergencyId/status", middleware.RequireRoles(roleVet, roleAdmin), emergencyHandler.UpdateStatus)
		}

		// ------------------------------
		// AUDIT
		// ------------------------------
		api.GET("/audit-logs", authenticated, middleware.RequireRoles(roleAdmin), auditLogsHandler.List)
	}
}
