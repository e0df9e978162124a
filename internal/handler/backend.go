package handler

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/boddenberg/digtecnico-client-go/internal/config"
	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/infra/cache"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login payload layouts the mock can answer with.
const (
	ShapeCamel  = "camel"
	ShapeSnake  = "snake"
	ShapeFilial = "filial"
)

// mockUser is a fixture account with its bcrypt password hash.
type mockUser struct {
	record       domain.UserRecord
	isAdmin      bool
	passwordHash []byte
	branch       domain.CompanyBranch
}

// Backend is the in-memory development backend behind the mock router.
type Backend struct {
	secret     []byte
	accessTTL  time.Duration
	loginShape string
	logger     *zap.Logger
	dummyHash  []byte

	// refresh token -> user id
	refreshTokens *cache.InMemory[string]

	mu          sync.RWMutex
	users       map[string]*mockUser // by username
	orders      []domain.OrderDetail
	clients     []domain.Client
	customers   []domain.Customer
	materials   []domain.Material
	stockOrders []domain.StockOrder
	branches    []domain.CompanyBranch
	seq         int
}

// NewBackend seeds the fixtures. Passwords are hashed on startup.
func NewBackend(cfg config.MockConfig, logger *zap.Logger) (*Backend, error) {
	switch cfg.LoginShape {
	case ShapeCamel, ShapeSnake, ShapeFilial:
	default:
		return nil, fmt.Errorf("invalid MOCK_LOGIN_SHAPE: %q (must be camel, snake or filial)", cfg.LoginShape)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("MOCK_JWT_SECRET must not be empty")
	}

	b := &Backend{
		secret:        []byte(cfg.JWTSecret),
		accessTTL:     cfg.AccessTTL,
		loginShape:    cfg.LoginShape,
		logger:        logger,
		refreshTokens: cache.New[string](cfg.RefreshTTL),
		users:         make(map[string]*mockUser),
		seq:           1000,
	}
	if err := b.seed(); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

// Close releases the refresh-token sweeper.
func (b *Backend) Close() {
	b.refreshTokens.Close()
}

// LoginShape reports the configured login payload layout.
func (b *Backend) LoginShape() string { return b.loginShape }

func (b *Backend) nextID() string {
	b.seq++
	return strconv.Itoa(b.seq)
}

// ============================================================
// Credentials
// ============================================================

func (b *Backend) authenticate(username, password string) (mockUser, error) {
	b.mu.RLock()
	u, ok := b.users[username]
	var snapshot mockUser
	if ok {
		snapshot = *u
	}
	b.mu.RUnlock()

	if !ok {
		// compare anyway so unknown users cost the same as wrong passwords
		_ = bcrypt.CompareHashAndPassword(b.dummyHash, []byte(password))
		return mockUser{}, unauthorizedError("Usuário ou senha inválidos")
	}
	if err := bcrypt.CompareHashAndPassword(snapshot.passwordHash, []byte(password)); err != nil {
		return mockUser{}, unauthorizedError("Usuário ou senha inválidos")
	}
	return snapshot, nil
}

// userByID returns a copy of the user so callers can read it unlocked.
func (b *Backend) userByID(id string) (mockUser, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, u := range b.users {
		if u.record.ID == id {
			return *u, true
		}
	}
	return mockUser{}, false
}

// ============================================================
// Tokens
// ============================================================

// accessClaims are the claims of issued access tokens.
type accessClaims struct {
	Role string `json:"role"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

const tokenIssuer = "digtecnico-mock"

func (b *Backend) signAccessToken(u mockUser) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Role: string(u.record.Role),
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.record.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(b.accessTTL)),
			Issuer:    tokenIssuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
}

// validateAccessToken returns the user id carried by a valid access token.
func (b *Backend) validateAccessToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return b.secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return "", unauthorizedError("Token inválido ou expirado")
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid || claims.Type != "access" {
		return "", unauthorizedError("Token inválido")
	}
	return claims.Subject, nil
}

func (b *Backend) issueRefreshToken(userID string) string {
	token := uuid.NewString()
	b.refreshTokens.Set(token, userID)
	return token
}

// rotate consumes a refresh token and issues a new token pair.
func (b *Backend) rotate(refreshToken string) (access, refresh string, err error) {
	userID, ok := b.refreshTokens.Take(refreshToken)
	if !ok {
		return "", "", unauthorizedError("Token de atualização inválido ou expirado")
	}
	u, ok := b.userByID(userID)
	if !ok {
		return "", "", unauthorizedError("Usuário não encontrado")
	}

	access, err = b.signAccessToken(u)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}
	return access, b.issueRefreshToken(userID), nil
}

// revokeAll drops every refresh token of userID.
func (b *Backend) revokeAll(userID string) int {
	return b.refreshTokens.DeleteWhere(func(_ string, owner string) bool {
		return owner == userID
	})
}
