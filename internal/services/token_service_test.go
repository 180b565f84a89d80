package services

import (
	"strings"
	"testing"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const (
	currentSecret  = "current-secret-current-secret-0001"
	previousSecret = "previous-secret-previous-secret-01"
)

// TokenServiceTestSuite defines the test suite for TokenService
type TokenServiceTestSuite struct {
	suite.Suite
	service TokenServiceInterface
	userID  uuid.UUID
}

func (s *TokenServiceTestSuite) SetupTest() {
	s.service = NewTokenService(&config.JWTConfig{
		Secret:              currentSecret,
		PreviousSecrets:     []string{previousSecret},
		AccessTokenDuration: time.Hour,
	})
	s.userID = uuid.New()
}

func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) sign(secret string, claims models.CustomClaims, method jwt.SigningMethod) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	s.Require().NoError(err)
	return token
}

func (s *TokenServiceTestSuite) claimsFor(userID string, expiresIn time.Duration) models.CustomClaims {
	now := time.Now()
	return models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
		UserID: userID,
	}
}

func (s *TokenServiceTestSuite) TestGenerateAndValidate() {
	token, expiresAt, err := s.service.GenerateAccessToken(s.userID)
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.True(expiresAt.After(time.Now()))

	claims, err := s.service.ValidateAccessToken(token)
	s.Require().NoError(err)
	s.Equal(s.userID.String(), claims.UserID)
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken_NilUser() {
	_, _, err := s.service.GenerateAccessToken(uuid.Nil)
	s.Error(err)
}

func (s *TokenServiceTestSuite) TestValidate_PreviousSecretAccepted() {
	token := s.sign(previousSecret, s.claimsFor(s.userID.String(), time.Hour), jwt.SigningMethodHS256)

	claims, err := s.service.ValidateAccessToken(token)

	s.Require().NoError(err)
	s.Equal(s.userID.String(), claims.UserID)
}

func (s *TokenServiceTestSuite) TestValidate_TokenWithoutExpiryAccepted() {
	token := s.sign(currentSecret, models.CustomClaims{UserID: s.userID.String()}, jwt.SigningMethodHS256)

	_, err := s.service.ValidateAccessToken(token)

	s.NoError(err)
}

func (s *TokenServiceTestSuite) TestValidate_UnknownSecretRejected() {
	token := s.sign("some-other-secret-some-other-secret", s.claimsFor(s.userID.String(), time.Hour), jwt.SigningMethodHS256)

	_, err := s.service.ValidateAccessToken(token)

	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestValidate_Expired() {
	token := s.sign(previousSecret, s.claimsFor(s.userID.String(), -time.Minute), jwt.SigningMethodHS256)

	_, err := s.service.ValidateAccessToken(token)

	s.ErrorIs(err, ErrExpiredToken)
}

func (s *TokenServiceTestSuite) TestValidate_WrongAlgorithmRejected() {
	token := s.sign(currentSecret, s.claimsFor(s.userID.String(), time.Hour), jwt.SigningMethodHS512)

	_, err := s.service.ValidateAccessToken(token)

	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestValidate_MissingIdentity() {
	token := s.sign(currentSecret, s.claimsFor("not-a-uuid", time.Hour), jwt.SigningMethodHS256)

	_, err := s.service.ValidateAccessToken(token)

	s.ErrorIs(err, ErrMissingIdentity)
}

func (s *TokenServiceTestSuite) TestValidate_Malformed() {
	_, err := s.service.ValidateAccessToken("not.a.jwt")
	s.ErrorIs(err, ErrInvalidToken)

	_, err = s.service.ValidateAccessToken("")
	s.ErrorIs(err, ErrEmptyToken)
}

func (s *TokenServiceTestSuite) TestValidate_IssuerEnforcedWhenConfigured() {
	service := NewTokenService(&config.JWTConfig{
		Secret:              currentSecret,
		Issuer:              "finance-tracker",
		AccessTokenDuration: time.Hour,
	})
	token := s.sign(currentSecret, s.claimsFor(s.userID.String(), time.Hour), jwt.SigningMethodHS256)

	_, err := service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidIssuer)

	own, _, err := service.GenerateAccessToken(s.userID)
	s.Require().NoError(err)
	_, err = service.ValidateAccessToken(own)
	s.NoError(err)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader() {
	testCases := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"bearer", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase scheme", "bearer abc", "abc", false},
		{"extra spaces", "Bearer   abc  ", "abc", false},
		{"empty", "", "", true},
		{"no token", "Bearer ", "", true},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", true},
		{"raw token", strings.Repeat("a", 20), "", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, err := s.service.ExtractTokenFromHeader(tc.header)
			if tc.wantErr {
				s.ErrorIs(err, ErrInvalidAuthHeader)
				return
			}
			s.NoError(err)
			s.Equal(tc.want, got)
		})
	}
}
