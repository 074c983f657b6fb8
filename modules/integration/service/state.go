package service

import (
	"time"

	"meetning-api/core/constants"
	"meetning-api/core/errors"
	"meetning-api/core/utils"
	"meetning-api/modules/integration/entity"

	"github.com/golang-jwt/jwt/v5"
)

// StatePayload is the request context round-tripped through the provider's
// authorization redirect.
type StatePayload struct {
	UserID  string
	AppType entity.AppType
}

type stateClaims struct {
	UserID  string `json:"user_id"`
	AppType string `json:"app_type"`
	jwt.RegisteredClaims
}

// StateCodec encodes the OAuth transit state as a signed, short-lived token.
// The signature stops a callback from replaying a forged or tampered state;
// the expiry bounds it to one authorization round trip.
type StateCodec struct {
	secret []byte
}

func NewStateCodec(secret string) *StateCodec {
	return &StateCodec{secret: []byte(secret)}
}

func (c *StateCodec) Encode(userID string, appType entity.AppType) (string, error) {
	now := time.Now()
	claims := stateClaims{
		UserID:  userID,
		AppType: string(appType),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        utils.GenerateID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(constants.OAuthStateTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *StateCodec) Decode(state string) (*StatePayload, *errors.AppError) {
	claims := &stateClaims{}
	parsed, err := jwt.ParseWithClaims(state, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.NewAppError(errors.ErrInvalidState, "Invalid state parameter", err)
	}
	if claims.UserID == "" {
		return nil, errors.NewAppError(errors.ErrInvalidState, "UserId is required", nil)
	}

	return &StatePayload{
		UserID:  claims.UserID,
		AppType: entity.AppType(claims.AppType),
	}, nil
}
