package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MeetupServices/meetup-scheduler/internal/httperr"
	"github.com/MeetupServices/meetup-scheduler/internal/models"
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// Claims carried by both token kinds. Role travels in the access token
// so the middleware can gate endpoints without a user lookup.
type Claims struct {
	UserID uint
	Role   string
	ID     string
}

type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(secret string, accessTTLMin, refreshTTLDays int) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessTTLMin) * time.Minute,
		refreshTTL: time.Duration(refreshTTLDays) * 24 * time.Hour,
	}
}

func (i *Issuer) AccessToken(user *models.User) (string, error) {
	return i.sign(user, typeAccess, i.accessTTL, uuid.NewString())
}

// RefreshToken returns the signed token and its jti, which the store
// keeps server-side so refresh tokens can be revoked.
func (i *Issuer) RefreshToken(user *models.User) (string, string, time.Duration, error) {
	jti := uuid.NewString()
	signed, err := i.sign(user, typeRefresh, i.refreshTTL, jti)
	return signed, jti, i.refreshTTL, err
}

func (i *Issuer) sign(user *models.User, typ string, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"typ":  typ,
		"jti":  jti,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

func (i *Issuer) ParseAccess(tokenString string) (*Claims, error) {
	return i.parse(tokenString, typeAccess)
}

func (i *Issuer) ParseRefresh(tokenString string) (*Claims, error) {
	return i.parse(tokenString, typeRefresh)
}

func (i *Issuer) parse(tokenString, wantType string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, httperr.ErrBusiness("invalid_token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_token_claims")
	}

	sub, okSub := claims["sub"].(float64)
	typ, _ := claims["typ"].(string)
	role, _ := claims["role"].(string)
	jti, _ := claims["jti"].(string)
	if !okSub || typ != wantType {
		return nil, httperr.ErrBusiness("invalid_token_payload")
	}

	return &Claims{
		UserID: uint(sub),
		Role:   role,
		ID:     jti,
	}, nil
}
