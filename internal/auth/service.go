package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Service implements login, token verification and the password-setup half of
// the invitation flow.
type Service struct {
	repo       DirectoryRepository
	tokens     TokenGenerator
	bcryptCost int
}

func NewService(repo DirectoryRepository, tokens TokenGenerator, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

func NewJWTTokenGenerator(secret string, sessionTTL, inviteTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:     []byte(secret),
		SessionTTL: sessionTTL,
		InviteTTL:  inviteTTL,
	}
}

// Login exchanges email and password for a session token. Unknown accounts and
// wrong passwords collapse into the same error so callers cannot probe for
// registered emails. Invited accounts cannot log in until activated.
func (s *Service) Login(dto LoginDTO) (TokenResponse, error) {
	if err := dto.Validate(); err != nil {
		return TokenResponse{}, err
	}

	account, err := s.repo.GetAccountByEmail(dto.Email)
	if err != nil {
		return TokenResponse{}, ErrInvalidCredentials
	}

	if !account.Activated() {
		return TokenResponse{}, ErrNotActivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(dto.Password)); err != nil {
		// Covers both mismatches and malformed stored hashes.
		return TokenResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateSessionToken(account.Email)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("generate session token: %w", err)
	}

	return TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Authenticate resolves a session token into an actor. Invite tokens are
// rejected here: carrying a valid activation link must not grant API access.
func (s *Service) Authenticate(tokenString string) (*Actor, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Purpose != TokenPurposeSession {
		return nil, ErrInvalidToken
	}

	account, err := s.repo.GetAccountByEmail(claims.Subject)
	if err != nil {
		return nil, ErrAccountNotFound
	}

	actor := account.Actor
	return &actor, nil
}

// SetupPassword activates an invited account, or resets the password of an
// already-activated one while its invite token is still valid. Repeat
// invocations simply overwrite the stored hash.
func (s *Service) SetupPassword(dto SetupPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	claims, err := s.tokens.ValidateToken(dto.Token)
	if err != nil {
		return ErrInvalidToken
	}

	if claims.Purpose != TokenPurposeInvite {
		return ErrInvalidToken
	}

	account, err := s.repo.GetAccountByEmail(claims.Subject)
	if err != nil {
		return ErrAccountNotFound
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.SetPasswordHash(account.ID, hash)
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (j *JWTTokenGenerator) GenerateSessionToken(email string) (string, error) {
	return j.sign(email, TokenPurposeSession, j.SessionTTL)
}

func (j *JWTTokenGenerator) GenerateInviteToken(email string) (string, error) {
	return j.sign(email, TokenPurposeInvite, j.InviteTTL)
}

func (j *JWTTokenGenerator) sign(email, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// ValidateToken verifies signature and embedded expiry. It never fails open:
// any parse or signature problem comes back as an error.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
