package middleware

import (
	"net/http"
	"strings"

	"promanager/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userIDKey = "userID"

// TokenVerifier resolves a bearer token to the id of the user it was issued to.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// authenticated user id on the context.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			abortUnauthorized(c)
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			zap.L().Debug("rejected bearer token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			abortUnauthorized(c)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, GetLang(c)),
	)
}
