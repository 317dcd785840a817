package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/osc-dev/contest-api/internal/models"
	appErrors "github.com/osc-dev/contest-api/pkg/errors"
)

type authStudentRepository interface {
	FindByEmailUID(ctx context.Context, email, uid string) (*models.Student, error)
}

type authMentorRepository interface {
	FindByEmailUID(ctx context.Context, email, uid string) (*models.Mentor, error)
}

// AuthConfig defines token issuing parameters.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
}

// AuthService issues and validates the bearer tokens used to authorize API
// calls. Identity itself is established by the external provider; login only
// matches the (email, uid) pair it handed out.
type AuthService struct {
	students authStudentRepository
	mentors  authMentorRepository
	logger   *zap.Logger
	config   AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(students authStudentRepository, mentors authMentorRepository, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{students: students, mentors: mentors, logger: logger, config: config}
}

// Login matches the (email, uid) pair against the role-specific collection
// and issues a signed token with the caller's role flags embedded.
func (s *AuthService) Login(ctx context.Context, email, uid string, isMentor bool) (*models.AuthData, error) {
	var (
		userID     string
		isAdmin    bool
		isVerified bool
	)

	if isMentor {
		mentor, err := s.mentors.FindByEmailUID(ctx, email, uid)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, appErrors.Clonef(appErrors.ErrNotFound,
					"Mentor with email %s is not registered!", email)
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch mentor")
		}
		userID = mentor.ID.Hex()
		isAdmin = mentor.IsAdmin
		isVerified = mentor.IsVerified
	} else {
		student, err := s.students.FindByEmailUID(ctx, email, uid)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, appErrors.Clonef(appErrors.ErrNotFound,
					"Student with email %s is not registered!", email)
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
		}
		userID = student.ID.Hex()
	}

	token, err := s.issueToken(userID, email, isMentor, isAdmin, isVerified)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	auth := &models.AuthData{
		UserID:          userID,
		Token:           token,
		TokenExpiration: int(s.config.Expiration.Hours()),
		IsMentor:        isMentor,
	}
	if isMentor {
		auth.IsAdmin = &isAdmin
		auth.IsVerified = &isVerified
	}
	return auth, nil
}

// Verify echoes the caller's decoded identity so a client can restore its
// session from a stored token.
func (s *AuthService) Verify(viewer *models.Claims) (*models.AuthData, error) {
	if viewer == nil {
		return nil, appErrors.ErrUnauthenticated
	}

	auth := &models.AuthData{
		UserID:          viewer.UserID,
		Token:           viewer.Token,
		TokenExpiration: int(s.config.Expiration.Hours()),
		IsMentor:        viewer.IsMentor,
	}
	if viewer.IsMentor {
		isAdmin := viewer.IsAdmin
		isVerified := viewer.IsVerified
		auth.IsAdmin = &isAdmin
		auth.IsVerified = &isVerified
	}
	return auth, nil
}

// ValidateToken parses and validates a bearer token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthenticated.Code, appErrors.ErrUnauthenticated.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "invalid token claims")
	}

	claims.Token = tokenString
	return claims, nil
}

func (s *AuthService) issueToken(userID, email string, isMentor, isAdmin, isVerified bool) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.Claims{
		UserID:     userID,
		Email:      email,
		IsMentor:   isMentor,
		IsAdmin:    isAdmin,
		IsVerified: isVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}
