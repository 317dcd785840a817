package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/osc-dev/contest-api/internal/models"
)

func newAuthService(students *mockStudentRepo, mentors *mockMentorRepo) *AuthService {
	return NewAuthService(students, mentors, zap.NewNop(), AuthConfig{
		Secret:     "test_secret",
		Expiration: 8 * time.Hour,
	})
}

func TestLoginUnknownStudent(t *testing.T) {
	svc := newAuthService(newMockStudentRepo(), newMockMentorRepo())

	_, err := svc.Login(context.Background(), "ghost@example.com", "uid", false)
	require.Error(t, err)
	assert.Equal(t, "Student with email ghost@example.com is not registered!", err.Error())
}

func TestLoginUnknownMentor(t *testing.T) {
	svc := newAuthService(newMockStudentRepo(), newMockMentorRepo())

	_, err := svc.Login(context.Background(), "ghost@example.com", "uid", true)
	require.Error(t, err)
	assert.Equal(t, "Mentor with email ghost@example.com is not registered!", err.Error())
}

func TestLoginStudentOmitsMentorFlags(t *testing.T) {
	student := models.Student{ID: primitive.NewObjectID(), Email: "s@example.com", UID: "uid-1"}
	svc := newAuthService(newMockStudentRepo(student), newMockMentorRepo())

	auth, err := svc.Login(context.Background(), "s@example.com", "uid-1", false)
	require.NoError(t, err)

	assert.Equal(t, student.ID.Hex(), auth.UserID)
	assert.Equal(t, 8, auth.TokenExpiration)
	assert.False(t, auth.IsMentor)
	assert.Nil(t, auth.IsAdmin)
	assert.Nil(t, auth.IsVerified)
	assert.NotEmpty(t, auth.Token)
}

func TestLoginMentorCarriesRightsFlags(t *testing.T) {
	mentor := models.Mentor{ID: primitive.NewObjectID(), Email: "m@example.com", UID: "uid-2", IsVerified: true}
	svc := newAuthService(newMockStudentRepo(), newMockMentorRepo(mentor))

	auth, err := svc.Login(context.Background(), "m@example.com", "uid-2", true)
	require.NoError(t, err)

	assert.True(t, auth.IsMentor)
	require.NotNil(t, auth.IsAdmin)
	require.NotNil(t, auth.IsVerified)
	assert.False(t, *auth.IsAdmin)
	assert.True(t, *auth.IsVerified)
}

func TestLoginWrongUID(t *testing.T) {
	student := models.Student{ID: primitive.NewObjectID(), Email: "s@example.com", UID: "uid-1"}
	svc := newAuthService(newMockStudentRepo(student), newMockMentorRepo())

	_, err := svc.Login(context.Background(), "s@example.com", "wrong", false)
	require.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	mentor := models.Mentor{ID: primitive.NewObjectID(), Email: "m@example.com", UID: "uid-2", IsVerified: true, IsAdmin: true}
	svc := newAuthService(newMockStudentRepo(), newMockMentorRepo(mentor))

	auth, err := svc.Login(context.Background(), "m@example.com", "uid-2", true)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(auth.Token)
	require.NoError(t, err)

	assert.Equal(t, mentor.ID.Hex(), claims.UserID)
	assert.Equal(t, mentor.Email, claims.Email)
	assert.True(t, claims.IsMentor)
	assert.True(t, claims.IsAdmin)
	assert.True(t, claims.IsVerified)
	assert.Equal(t, auth.Token, claims.Token)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	mentor := models.Mentor{ID: primitive.NewObjectID(), Email: "m@example.com", UID: "uid-2"}
	issuer := newAuthService(newMockStudentRepo(), newMockMentorRepo(mentor))
	verifier := NewAuthService(newMockStudentRepo(), newMockMentorRepo(), zap.NewNop(), AuthConfig{
		Secret:     "other_secret",
		Expiration: 8 * time.Hour,
	})

	auth, err := issuer.Login(context.Background(), "m@example.com", "uid-2", true)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(auth.Token)
	require.Error(t, err)
}

func TestVerifyEchoesClaims(t *testing.T) {
	svc := newAuthService(newMockStudentRepo(), newMockMentorRepo())

	_, err := svc.Verify(nil)
	require.Error(t, err)
	assert.Equal(t, "Unauthenticated!", err.Error())

	claims := &models.Claims{UserID: "abc", IsMentor: true, IsAdmin: true, IsVerified: true, Token: "raw"}
	auth, err := svc.Verify(claims)
	require.NoError(t, err)
	assert.Equal(t, "abc", auth.UserID)
	assert.Equal(t, "raw", auth.Token)
	require.NotNil(t, auth.IsAdmin)
	assert.True(t, *auth.IsAdmin)
}
