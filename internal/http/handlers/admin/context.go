package admin

import (
	handlershared "github.com/gemledger/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.RequireAdminID(c)
}

func currentUsername(c *gin.Context) string {
	identity, _ := handlershared.CurrentAdmin(c)
	return identity.Username
}
