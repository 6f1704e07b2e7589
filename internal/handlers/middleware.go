package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	bearerScheme        = "Bearer"

	// ctxUserID is the gin context key holding the authenticated operator ID.
	ctxUserID = "userId"

	// accessTokenParam carries the bearer token on websocket upgrades,
	// where browsers cannot set headers.
	accessTokenParam = "access_token"
)

// wsTokenFromQuery lifts ?access_token= into the Authorization header when
// the request has none, so userIdMiddleware can check it.
func (h *Handler) wsTokenFromQuery(c *gin.Context) {
	if c.GetHeader(authorizationHeader) == "" {
		if token := c.Query(accessTokenParam); token != "" {
			c.Request.Header.Set(authorizationHeader, bearerScheme+" "+token)
		}
	}
	c.Next()
}

// userIdMiddleware accepts "Bearer <jwt>" (scheme case-insensitive) and stores
// the operator ID under ctxUserID.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	scheme, token, _ := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !strings.EqualFold(scheme, bearerScheme) || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userID, err := h.services.ParseToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Debugw("auth_token_rejected", "path", c.FullPath(), "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(ctxUserID, userID)
	c.Next()
}
