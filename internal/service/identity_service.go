package service

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campusgrid/timetable-backend/internal/config"
	"github.com/campusgrid/timetable-backend/internal/model"
)

// IdentityClaims are the claims read from an identity provider token. The
// department code is taken from public_metadata first, then the top level.
type IdentityClaims struct {
	jwt.RegisteredClaims
	DepartmentCode string         `json:"department_code,omitempty"`
	PublicMetadata PublicMetadata `json:"public_metadata,omitempty"`
}

// PublicMetadata is the provider-managed metadata block of a token.
type PublicMetadata struct {
	DepartmentCode string `json:"department_code,omitempty"`
}

// IdentityService verifies bearer tokens and turns them into identities.
type IdentityService struct {
	method    jwt.SigningMethod
	publicKey *rsa.PublicKey
	secret    []byte
	issuer    string
}

// NewIdentityService picks RS256 when a public key is configured and HS256 otherwise.
func NewIdentityService(cfg *config.Config) (*IdentityService, error) {
	s := &IdentityService{
		secret: []byte(cfg.IdentityHMACSecret),
		issuer: cfg.IdentityIssuer,
	}

	switch {
	case cfg.IdentityPublicKey != "":
		pemKey, err := readPEM(cfg.IdentityPublicKey)
		if err != nil {
			return nil, err
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM(pemKey)
		if err != nil {
			return nil, fmt.Errorf("parse identity public key: %w", err)
		}
		s.method = jwt.SigningMethodRS256
		s.publicKey = key
	case cfg.IdentityHMACSecret != "":
		s.method = jwt.SigningMethodHS256
	default:
		return nil, errors.New("IDENTITY_PUBLIC_KEY or IDENTITY_HMAC_SECRET must be set")
	}
	return s, nil
}

// readPEM accepts either an inline PEM block (newlines may be escaped as \n)
// or a path to a PEM file.
func readPEM(v string) ([]byte, error) {
	if strings.Contains(v, "-----BEGIN") {
		return []byte(strings.ReplaceAll(v, `\n`, "\n")), nil
	}
	b, err := os.ReadFile(v)
	if err != nil {
		return nil, fmt.Errorf("read identity public key: %w", err)
	}
	return b, nil
}

// Verify checks the token signature, expiry and issuer and extracts the identity.
func (s *IdentityService) Verify(tokenStr string) (*model.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &IdentityClaims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		if s.publicKey != nil {
			return s.publicKey, nil
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrAuthenticationFailed, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", model.ErrAuthenticationFailed)
	}

	identity := &model.Identity{UserID: claims.Subject}
	code := strings.TrimSpace(claims.PublicMetadata.DepartmentCode)
	if code == "" {
		code = strings.TrimSpace(claims.DepartmentCode)
	}
	if utf8.RuneCountInString(code) > model.MaxDepartmentCodeLen {
		return nil, fmt.Errorf("%w: department code longer than %d characters", model.ErrAuthenticationFailed, model.MaxDepartmentCodeLen)
	}
	if code != "" {
		identity.DepartmentCode = &code
	}
	return identity, nil
}

// Issue signs an HS256 token for local development and tests. It fails when
// the service verifies RS256 tokens, since it holds no private key.
func (s *IdentityService) Issue(userID, departmentCode string, ttl time.Duration) (string, error) {
	if s.method != jwt.SigningMethodHS256 {
		return "", errors.New("token issuing requires IDENTITY_HMAC_SECRET")
	}

	now := time.Now()
	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		PublicMetadata: PublicMetadata{DepartmentCode: departmentCode},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
