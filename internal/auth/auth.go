// Package auth — сессионный гейт админки. Куки-сессия только переносит
// principal между запросами; внутри запроса он живёт в context.Context,
// и операции, требующие авторизации, читают его оттуда явно.
package auth

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionKeyID    = "admin_id"
	sessionKeyEmail = "admin_email"
)

// Principal — авторизованный админ текущей сессии.
type Principal struct {
	ID    uint
	Email string
}

type ctxKey struct{}

func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}

// Login записывает principal в сессию после успешной проверки пароля.
func Login(c *gin.Context, p Principal) error {
	sess := sessions.Default(c)
	sess.Set(sessionKeyID, p.ID)
	sess.Set(sessionKeyEmail, p.Email)
	return sess.Save()
}

// Logout безусловно чистит сессию.
func Logout(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	return sess.Save()
}

// LoadPrincipal переносит principal из куки-сессии в контекст запроса.
func LoadPrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		id, okID := sess.Get(sessionKeyID).(uint)
		email, okEmail := sess.Get(sessionKeyEmail).(string)
		if okID && okEmail {
			ctx := NewContext(c.Request.Context(), Principal{ID: id, Email: email})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// RequireAuth не пускает в админку без principal: редирект на логин,
// операция не выполняется.
func RequireAuth(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := FromContext(c.Request.Context()); !ok {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
