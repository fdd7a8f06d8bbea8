package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miky21x21/tribal-fashion-sub001/internal/auth/login"
	"github.com/miky21x21/tribal-fashion-sub001/internal/auth/provider"
	"github.com/miky21x21/tribal-fashion-sub001/internal/logger"
)

// oauthStart begins the browser redirect flow for providers that support it.
func (h *Handler) oauthStart(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Unsupported login provider",
		})
		return
	}

	rp, ok := p.(provider.RedirectProvider)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Provider does not support redirect login",
		})
		return
	}

	state := generateState(c)
	_, codeChallenge := generatePKCE(c)

	c.Redirect(http.StatusFound, rp.AuthCodeURL(state, codeChallenge))
}

// oauthCallback completes the redirect flow and funnels into the same
// dispatcher path as a direct login call.
func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Unsupported login provider",
		})
		return
	}

	if !validateState(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid state",
		})
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		c.Redirect(http.StatusFound, "/")
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", nil)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Missing PKCE verifier",
		})
		return
	}

	token, profile, err := p.Verify(c.Request.Context(), code, codeVerifier)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Authentication failed",
		})
		return
	}

	var req login.Request
	switch login.Provider(providerName) {
	case login.ProviderGoogle:
		req = login.GoogleRequest{Token: token, Profile: profile}
	case login.ProviderApple:
		req = login.AppleRequest{IdentityToken: token, Profile: profile}
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Unsupported login provider",
		})
		return
	}

	h.dispatch(c, req)
}
