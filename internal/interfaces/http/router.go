package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cuentas-api/internal/application/auth"
	"github.com/jhoicas/cuentas-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	MemberUC     *usecase.MemberUseCase
	InvitationUC *usecase.InvitationUseCase
	Resolver     principalResolver
	ProfilePDF   profileGenerator
	LoginLimiter *LoginRateLimiter
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (público; login con rate limit por IP)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	if deps.LoginLimiter != nil {
		authGroup.Post("/login", deps.LoginLimiter.Middleware(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Resolver))

	protected.Get("/auth/me", authHandler.Me)

	// Companies (protegido)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.ProfilePDF)
	companies.Get("/", companyHandler.ListMine)
	companies.Post("/select", companyHandler.SelectActive)
	companies.Get("/:id", companyHandler.Get)
	companies.Put("/:id", companyHandler.Update)
	companies.Get("/:id/profile.pdf", companyHandler.ProfilePDF)

	// Members (protegido)
	memberHandler := NewMemberHandler(deps.MemberUC)
	companies.Get("/:id/members", memberHandler.List)
	companies.Post("/:id/members", memberHandler.Add)
	companies.Put("/:id/members/:userId", memberHandler.UpdateRole)
	companies.Delete("/:id/members/:userId", memberHandler.Remove)

	// Invitations (protegido)
	invitationHandler := NewInvitationHandler(deps.InvitationUC)
	companies.Post("/:id/invitations", invitationHandler.Create)
	companies.Get("/:id/invitations", invitationHandler.List)
	invitations := protected.Group("/invitations")
	invitations.Post("/accept", invitationHandler.Accept)
	invitations.Post("/reject", invitationHandler.Reject)
}
