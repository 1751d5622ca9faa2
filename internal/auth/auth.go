// Package auth declares the roles the API cares about and the collaborator
// interface that answers role checks. Identity and role resolution live in
// an external service; this package only consumes its verdicts.
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nvalenzuela/selekta/internal/dto"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCompany   Role = "company"
	RoleEvaluator Role = "evaluator"
	RoleWorker    Role = "worker"
	RoleGuest     Role = "guest"
)

// RoleChecker reports whether the request's authenticated principal holds
// any of the given roles.
type RoleChecker interface {
	HasAnyRole(c *gin.Context, roles ...Role) bool
}

// HeaderRoleChecker trusts the role asserted by the fronting gateway in
// X-Principal-Role. It stands in for the real authorization service.
type HeaderRoleChecker struct{}

func NewHeaderRoleChecker() RoleChecker { return HeaderRoleChecker{} }

func (HeaderRoleChecker) HasAnyRole(c *gin.Context, roles ...Role) bool {
	principal := Role(c.GetHeader("X-Principal-Role"))
	if principal == "" {
		principal = RoleGuest
	}
	for _, role := range roles {
		if principal == role {
			return true
		}
	}
	return false
}

// RequireRoles aborts with 403 unless the principal holds one of roles.
func RequireRoles(checker RoleChecker, roles ...Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checker.HasAnyRole(c, roles...) {
			log.Warn().Str("path", c.FullPath()).Msg("request rejected: missing required role")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "insufficient role"})
			return
		}
		c.Next()
	}
}
