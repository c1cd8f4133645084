package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/cuentas-api/internal/application/auth"
	"github.com/jhoicas/cuentas-api/internal/application/identity"
	"github.com/jhoicas/cuentas-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/cuentas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cuentas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cuentas-api/internal/interfaces/http"
	"github.com/jhoicas/cuentas-api/pkg/config"
	"github.com/jhoicas/cuentas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones de esquema")
	}

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	memberRepo := postgres.NewMemberRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	memberUC := usecase.NewMemberUseCase(memberRepo, userRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo, userRepo, memberRepo, memberUC)
	invitationUC := usecase.NewInvitationUseCase(invitationRepo, userRepo, memberUC, txRunner)
	authUC := auth.NewAuthUseCase(userRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	resolver := identity.NewResolver(userRepo, companyRepo, memberUC, cfg.JWT.Secret)
	profilePDF := infrapdf.NewCompanyProfileGenerator()

	loginLimiter := httpRouter.NewLoginRateLimiter(10)
	defer loginLimiter.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cuentas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		MemberUC:     memberUC,
		InvitationUC: invitationUC,
		Resolver:     resolver,
		ProfilePDF:   profilePDF,
		LoginLimiter: loginLimiter,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
