package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soltecla/solarops-api/internal/application/access"
	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// Guard adapta el resolver de identidad y tenant al borde HTTP. Cada handler
// protegido lo invoca con su lista de roles permitidos; la autorización se
// decide contra la BD en CADA petición, nunca solo con los claims del token.
type Guard struct {
	resolver *access.Resolver
}

// NewGuard construye el guard.
func NewGuard(resolver *access.Resolver) *Guard {
	return &Guard{resolver: resolver}
}

// Resolve ejecuta la resolución completa con los claims ya extraídos por
// AuthMiddleware. El error resultante se responde con respondError.
func (g *Guard) Resolve(c *fiber.Ctx, allowed ...entity.Role) (*access.Grant, error) {
	return g.resolver.Resolve(c.UserContext(), access.Input{
		UserID:       GetUserID(c),
		EnterpriseID: GetEnterpriseID(c),
		Allowed:      allowed,
	})
}
