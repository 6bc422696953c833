package middleware

import (
	"errors"
	"net/http"

	"github.com/KAKADIVA/testePFI/internal/models"
	"github.com/KAKADIVA/testePFI/internal/session"
	"github.com/KAKADIVA/testePFI/internal/util"

	"github.com/gin-gonic/gin"
)

const userKey = "currentUser"

// Auth resolve o cookie de sessão e coloca o usuário no contexto.
// Sem sessão válida a requisição é abortada com 401.
func Auth(mgr *session.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookieName)

		user, err := mgr.Resolve(token)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Usuário não autenticado")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao validar sessão")
			}
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser devolve o usuário colocado no contexto pelo Auth.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
