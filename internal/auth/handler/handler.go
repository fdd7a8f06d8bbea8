package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/miky21x21/tribal-fashion-sub001/internal/auth"
	"github.com/miky21x21/tribal-fashion-sub001/internal/auth/login"
	"github.com/miky21x21/tribal-fashion-sub001/internal/auth/provider"
	"github.com/miky21x21/tribal-fashion-sub001/internal/auth/verifier"
	"github.com/miky21x21/tribal-fashion-sub001/internal/otp"
	"github.com/miky21x21/tribal-fashion-sub001/internal/session"
	"github.com/miky21x21/tribal-fashion-sub001/internal/sms"
)

const sessionTTL = 24 * time.Hour

// IdentityResolver lets /me probe session state with the same chain the
// gate uses.
type IdentityResolver interface {
	Resolve(ctx context.Context, creds verifier.Credentials) (*auth.Identity, error)
}

type Handler struct {
	providers      *provider.Registry
	dispatcher     *login.Dispatcher
	otpStore       otp.Store
	smsSender      sms.Sender
	resolver       IdentityResolver
	defaultCountry string
}

func NewHandler(
	registry *provider.Registry,
	dispatcher *login.Dispatcher,
	otpStore otp.Store,
	smsSender sms.Sender,
	resolver IdentityResolver,
	defaultCountry string,
) *Handler {
	return &Handler{
		providers:      registry,
		dispatcher:     dispatcher,
		otpStore:       otpStore,
		smsSender:      smsSender,
		resolver:       resolver,
		defaultCountry: defaultCountry,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/otp/send", h.SendOTP)
	r.GET("/api/auth/me", h.Me)
	r.POST("/api/auth/logout", h.Logout)

	r.GET("/api/auth/oauth/login/:provider", h.oauthStart)
	r.GET("/api/auth/oauth/callback/:provider", h.oauthCallback)
}

// Me reports the caller's session state. The gate exempts this path so an
// anonymous client can probe it; the handler decides the response itself.
func (h *Handler) Me(c *gin.Context) {
	identity, err := h.resolver.Resolve(c.Request.Context(), verifier.FromRequest(c.Request))
	if err != nil || identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Not authenticated",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":        identity.ID,
			"email":     identity.Email,
			"firstName": identity.FirstName,
			"lastName":  identity.LastName,
			"role":      identity.Role,
			"tokenKind": identity.TokenKind,
		},
	})
}

func (h *Handler) Logout(c *gin.Context) {
	session.ClearCookie(c.Writer, session.CookieOptions{
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// Idempotent response
	c.Status(http.StatusNoContent)
}

// setSessionCookie stores the backend-issued token client-side after a
// successful login.
func setSessionCookie(c *gin.Context, token string) {
	session.SetCookie(c.Writer, token, time.Now().Add(sessionTTL), session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
