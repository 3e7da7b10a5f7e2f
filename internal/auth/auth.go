package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

const (
	// TokenPurposeSession is the zero purpose; session tokens carry no tag.
	TokenPurposeSession = ""
	TokenPurposeInvite  = "invite"
)

// Actor is the authenticated identity attached to each request.
type Actor struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	Role            Role   `json:"role"`
	EstablishmentID *int64 `json:"establishment_id,omitempty"`
}

// Account is a directory entry as the auth layer sees it. A nil PasswordHash
// means the account is invited but not yet activated.
type Account struct {
	Actor
	PasswordHash *string
}

func (a *Account) Activated() bool {
	return a.PasswordHash != nil && *a.PasswordHash != ""
}

// DirectoryRepository resolves accounts for login, token verification and
// password setup.
type DirectoryRepository interface {
	GetAccountByEmail(email string) (*Account, error)
	SetPasswordHash(userID int64, hash string) error
}

// TokenGenerator issues and verifies self-contained signed tokens. Expiry is
// embedded at issuance; verification never consults storage.
type TokenGenerator interface {
	GenerateSessionToken(email string) (string, error)
	GenerateInviteToken(email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// ServiceAPI is the surface handlers and other domains depend on.
type ServiceAPI interface {
	Login(dto LoginDTO) (TokenResponse, error)
	Authenticate(tokenString string) (*Actor, error)
	SetupPassword(dto SetupPasswordDTO) error
	HashPassword(password string) (string, error)
}

// Claims is the JWT payload. Subject carries the account email; Purpose tags
// invite tokens so they cannot double as session tokens.
type Claims struct {
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type JWTTokenGenerator struct {
	Secret     []byte
	SessionTTL time.Duration
	InviteTTL  time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotActivated       = errors.New("account not activated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrAccountNotFound    = errors.New("account not found")
)
