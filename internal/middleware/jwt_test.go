package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kplat_back_end/internal/models"
	"kplat_back_end/internal/utils"
)

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetString("user_id"),
			"token_id": c.GetString("token_id"),
		})
	})
	return r
}

func stubRevocation(t *testing.T, revoked bool) {
	t.Helper()
	orig := tokenRevoked
	tokenRevoked = func(string) bool { return revoked }
	t.Cleanup(func() { tokenRevoked = orig })
}

func doAuthRequest(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	authTestRouter().ServeHTTP(w, req)
	return w
}

// Le secret ne doit pas être figé à l'init du package : un JWT_SECRET
// posé après le démarrage (via .env) doit vérifier les tokens émis.
func TestAuthRequiredSecretFromEnvAfterStartup(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	stubRevocation(t, false)

	token, err := utils.GenerateJWT(models.User{ID: "u-1", Email: "kim@example.com"})
	require.NoError(t, err)

	w := doAuthRequest(t, token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u-1"`)
	// le jti du token doit être propagé dans le contexte
	assert.NotContains(t, w.Body.String(), `"token_id":""`)
}

func TestAuthRequiredRejectsRevokedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	stubRevocation(t, true)

	token, err := utils.GenerateJWT(models.User{ID: "u-1", Email: "kim@example.com"})
	require.NoError(t, err)

	w := doAuthRequest(t, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token révoqué")
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	w := doAuthRequest(t, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	stubRevocation(t, false)

	token, err := utils.GenerateJWT(models.User{ID: "u-1", Email: "kim@example.com"})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "autre-secret")
	w := doAuthRequest(t, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
