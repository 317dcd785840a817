package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/osc-dev/contest-api/internal/models"
	"github.com/osc-dev/contest-api/internal/service"
)

type stubStudentRepo struct{}

func (stubStudentRepo) FindByEmailUID(ctx context.Context, email, uid string) (*models.Student, error) {
	return nil, mongo.ErrNoDocuments
}

type stubMentorRepo struct {
	mentor *models.Mentor
}

func (s stubMentorRepo) FindByEmailUID(ctx context.Context, email, uid string) (*models.Mentor, error) {
	if s.mentor != nil && s.mentor.Email == email && s.mentor.UID == uid {
		return s.mentor, nil
	}
	return nil, mongo.ErrNoDocuments
}

func newTestRouter(authSvc *service.AuthService) (*gin.Engine, *[]*models.Claims) {
	gin.SetMode(gin.TestMode)
	seen := &[]*models.Claims{}

	r := gin.New()
	r.Use(Auth(authSvc))
	r.GET("/probe", func(c *gin.Context) {
		*seen = append(*seen, models.ClaimsFromContext(c.Request.Context()))
		c.Status(http.StatusOK)
	})
	return r, seen
}

func TestAuthMiddlewareAttachesClaims(t *testing.T) {
	mentor := &models.Mentor{ID: primitive.NewObjectID(), Email: "m@example.com", UID: "uid", IsVerified: true}
	authSvc := service.NewAuthService(stubStudentRepo{}, stubMentorRepo{mentor: mentor}, zap.NewNop(), service.AuthConfig{
		Secret:     "test_secret",
		Expiration: time.Hour,
	})

	auth, err := authSvc.Login(context.Background(), "m@example.com", "uid", true)
	require.NoError(t, err)

	r, seen := newTestRouter(authSvc)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Len(t, *seen, 1)
	claims := (*seen)[0]
	require.NotNil(t, claims)
	assert.Equal(t, mentor.ID.Hex(), claims.UserID)
	assert.True(t, claims.IsMentor)
	assert.True(t, claims.IsVerified)
	assert.Equal(t, auth.Token, claims.Token)
}

func TestAuthMiddlewarePassesThroughWithoutToken(t *testing.T) {
	authSvc := service.NewAuthService(stubStudentRepo{}, stubMentorRepo{}, zap.NewNop(), service.AuthConfig{
		Secret:     "test_secret",
		Expiration: time.Hour,
	})
	r, seen := newTestRouter(authSvc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *seen, 1)
	assert.Nil(t, (*seen)[0])
}

func TestAuthMiddlewareIgnoresGarbageToken(t *testing.T) {
	authSvc := service.NewAuthService(stubStudentRepo{}, stubMentorRepo{}, zap.NewNop(), service.AuthConfig{
		Secret:     "test_secret",
		Expiration: time.Hour,
	})
	r, seen := newTestRouter(authSvc)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *seen, 1)
	assert.Nil(t, (*seen)[0])
}
