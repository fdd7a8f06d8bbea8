package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miky21x21/tribal-fashion-sub001/internal/auth/login"
	"github.com/miky21x21/tribal-fashion-sub001/internal/logger"
	"github.com/miky21x21/tribal-fashion-sub001/internal/otp"
)

// loginBody is the wire shape of a login call. The provider tag decides
// which of the remaining fields matter.
type loginBody struct {
	Provider string `json:"provider" binding:"required"`

	Email    string `json:"email"`
	Password string `json:"password"`

	// google: authorization code from the client-side OAuth flow
	Code string `json:"code"`

	// apple: identity token plus the raw profile Apple only ever sends once
	IdentityToken string `json:"identityToken"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`

	// phone
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

func (h *Handler) Login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
		})
		return
	}

	ctx := c.Request.Context()

	var req login.Request

	switch login.Provider(body.Provider) {
	case login.ProviderPassword:
		req = login.PasswordRequest{
			Email:    body.Email,
			Password: body.Password,
		}

	case login.ProviderGoogle:
		p, err := h.providers.Get("google")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Unsupported login provider",
			})
			return
		}
		token, profile, err := p.Verify(ctx, body.Code, "")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Google authentication failed",
			})
			return
		}
		req = login.GoogleRequest{Token: token, Profile: profile}

	case login.ProviderApple:
		p, err := h.providers.Get("apple")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Unsupported login provider",
			})
			return
		}
		token, profile, err := p.Verify(ctx, body.IdentityToken, "")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Apple authentication failed",
			})
			return
		}
		// Apple only sends the name in the request body, and only on the
		// first authorization.
		if profile.FirstName == "" {
			profile.FirstName = body.FirstName
		}
		if profile.LastName == "" {
			profile.LastName = body.LastName
		}
		req = login.AppleRequest{IdentityToken: token, Profile: profile}

	case login.ProviderPhone:
		destination := otp.Normalize(body.PhoneNumber, h.defaultCountry)
		if err := h.otpStore.Verify(ctx, destination, body.OTP); err != nil {
			logger.Warn("otp verification failed", map[string]any{
				"error": err.Error(),
			})
			// One message for every OTP failure kind. Distinguishing wrong
			// from expired would leak whether a code exists.
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired code",
			})
			return
		}
		req = login.PhoneRequest{PhoneNumber: destination, Code: body.OTP}

	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Unsupported login provider",
		})
		return
	}

	h.dispatch(c, req)
}

// dispatch runs the login dispatcher and writes the canonical envelope.
func (h *Handler) dispatch(c *gin.Context, req login.Request) {
	resp, err := h.dispatcher.Dispatch(c.Request.Context(), req)
	if err != nil {
		var le *login.Error
		switch {
		case errors.As(err, &le):
			c.JSON(le.Status, gin.H{
				"success": false,
				"message": le.Message,
			})
		case errors.Is(err, login.ErrUnsupportedProvider):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Unsupported login provider",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Authentication failed",
			})
		}
		return
	}

	setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, resp)
}

// SendOTP issues a fresh code for the destination and delivers it via the
// SMS gateway. The code never appears in the response.
func (h *Handler) SendOTP(c *gin.Context) {
	var body struct {
		PhoneNumber string `json:"phoneNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
		})
		return
	}

	destination := otp.Normalize(body.PhoneNumber, h.defaultCountry)

	code, err := h.otpStore.Issue(c.Request.Context(), destination)
	if err != nil {
		logger.Error("failed to issue otp", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to send verification code",
		})
		return
	}

	err = h.smsSender.Send(c.Request.Context(), destination,
		"Your verification code is "+code+". It expires in 10 minutes.")
	if err != nil {
		logger.Error("otp delivery failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Failed to send verification code",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Verification code sent",
	})
}
