package app

import (
	"database/sql"

	"poolops/internal/auth"
	"poolops/internal/employee"
	"poolops/internal/messaging/kafka"
	"poolops/internal/payout"
	"poolops/internal/payperiod"
	"poolops/internal/settings"
	"poolops/internal/shared/counter"
	"poolops/internal/timeentry"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	timeentryRepo := timeentry.NewRepository(gormDB)
	payoutRepo := payout.NewRepository(gormDB)
	payperiodRepo := payperiod.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(authRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb)
	// The pay period repository doubles as the lock gate time entry mutations
	// consult.
	timeentryService := timeentry.NewService(db, timeentryRepo, payperiodRepo)
	settingsService := settings.NewService(db, settingsRepo)
	payoutService := payout.NewService(db, payoutRepo, employeeRepo, timeentryRepo, settingsService)
	payperiodService := payperiod.NewService(db, payperiodRepo, employeeRepo, timeentryRepo, payoutRepo, outboxRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	timeentryHandler := timeentry.NewHandler(timeentryService)
	payoutHandler := payout.NewHandlerWithRedis(payoutService, rdb)
	payperiodHandler := payperiod.NewHandlerWithRedis(payperiodService, rdb)
	settingsHandler := settings.NewHandler(settingsService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler)
		timeentry.RegisterRoutes(api, timeentryHandler)
		payout.RegisterRoutes(api, payoutHandler, rdb)
		payperiod.RegisterRoutes(api, payperiodHandler, rdb)
		settings.RegisterRoutes(api, settingsHandler)
	}

	return nil
}
