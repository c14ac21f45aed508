package middlewares

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = "user_id"
	UserNameKey = "user_name"
	UserRoleKey = "user_role"
)

// ExtractUserContext lê os headers injetados pelo gateway após validar o JWT:
// - X-User-ID: id numérico do leitor
// - X-User-Name: nome de exibição
// - X-User-Role: papel do usuário
// Um X-User-ID não numérico é ignorado.
func ExtractUserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := strings.TrimSpace(c.GetHeader("X-User-ID")); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				c.Set(UserIDKey, id)
			}
		}

		if userName := c.GetHeader("X-User-Name"); userName != "" {
			c.Set(UserNameKey, userName)
		}

		if role := c.GetHeader("X-User-Role"); role != "" {
			c.Set(UserRoleKey, strings.ToUpper(role))
		}

		c.Next()
	}
}

// GetUserID retorna o id do usuário autenticado, se houver
func GetUserID(c *gin.Context) (int64, bool) {
	if v, exists := c.Get(UserIDKey); exists {
		if id, ok := v.(int64); ok && id > 0 {
			return id, true
		}
	}
	return 0, false
}

// GetUserName retorna o nome do usuário autenticado
func GetUserName(c *gin.Context) string {
	return c.GetString(UserNameKey)
}

// GetUserRole retorna o papel do usuário autenticado
func GetUserRole(c *gin.Context) string {
	return c.GetString(UserRoleKey)
}
