package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Benjaminlucky/pcrl/models"
	"github.com/Benjaminlucky/pcrl/utils"
)

const principalKey = "principal"

// Principal is the authenticated identity set on the request context.
// Both realtor and admin bearers resolve to this one shape, so handlers
// check a role tag instead of caring which table the caller lives in.
type Principal struct {
	ID    uint
	Email string
	Name  string
	Role  string
	Typ   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// Middleware validates the bearer token and loads the principal from the
// store named by the token's typ claim.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		claims, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		principal, err := resolvePrincipal(claims)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// AdminOnly rejects principals without the admin role. Must run after
// Middleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok || !principal.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated identity set by Middleware.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok
}

func resolvePrincipal(claims *utils.TokenClaims) (Principal, error) {
	if claims.Typ == utils.PrincipalAdmin {
		var admin models.Admin
		if err := utils.DB.First(&admin, claims.UserID).Error; err != nil {
			return Principal{}, err
		}
		return Principal{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Email,
			Role:  models.RoleAdmin,
			Typ:   utils.PrincipalAdmin,
		}, nil
	}

	var realtor models.Realtor
	if err := utils.DB.First(&realtor, claims.UserID).Error; err != nil {
		return Principal{}, err
	}
	return Principal{
		ID:    realtor.ID,
		Email: realtor.Email,
		Name:  realtor.FullName(),
		Role:  realtor.Role,
		Typ:   utils.PrincipalRealtor,
	}, nil
}
