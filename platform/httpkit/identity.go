// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the caller as seen by handlers, without depending on Gin.
type Identity interface {
	UserID() uuid.UUID
	IsAuthenticated() bool
}

type identity struct {
	userID        uuid.UUID
	authenticated bool
}

func (i identity) UserID() uuid.UUID     { return i.userID }
func (i identity) IsAuthenticated() bool { return i.authenticated }

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if user info is not present.
func GetIdentity(c *gin.Context) Identity {
	userID, ok := c.Get(ContextUserIDKey)
	if !ok {
		return identity{}
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return identity{}
	}

	return identity{userID: uid, authenticated: true}
}

// ActorID returns the authenticated user's ID, or nil for anonymous callers.
func ActorID(c *gin.Context) *uuid.UUID {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		return nil
	}
	uid := id.UserID()
	return &uid
}
