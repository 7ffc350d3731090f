package api

import (
	"net/http"

	"storefront-core/internal/handler/httperr"
	"storefront-core/internal/handler/middleware"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	carts CartService
}

func NewSessionHandler(carts CartService) *SessionHandler {
	return &SessionHandler{carts: carts}
}

// @Summary Logout
// @Description Drop the caller's cached cart once its pending operations have finished
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} httperr.Response
// @Router /session/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoOwner, "Unauthorized", nil)
		return
	}
	if err := h.carts.Logout(c.Request.Context(), email); err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}
