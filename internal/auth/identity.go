package auth

import (
	"errors"
	"strings"

	"believestore/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const identityKey = "identity"

var errMissingBearer = errors.New("authorization header must be 'Bearer <token>'")

// Identity is the authenticated caller extracted from an access token.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   string
}

// IsAdmin reports whether the token carries an administrative role.
func (i Identity) IsAdmin() bool {
	return i.Role == "service_role" || i.Role == "admin"
}

// CurrentIdentity returns the identity stored by one of the auth middlewares.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func identityFromHeader(secret, header string) (Identity, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return Identity{}, errMissingBearer
	}

	claims, err := jwt.ParseToken(secret, parts[1])
	if err != nil {
		return Identity{}, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		UserID: userID,
		Email:  claims.Email,
		Name:   claims.DisplayName(),
		Role:   claims.Role,
	}, nil
}

func setIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
	c.Set("userID", id.UserID)
}
