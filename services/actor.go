package services

import "reservation-backend/models"

// ActorContext identifies the signed-in user an operation runs on behalf of.
// Handlers resolve it from the request and pass it in explicitly; domain
// code never reads ambient request state.
type ActorContext struct {
	UserID uint
	Role   string
}

func (a ActorContext) IsAdmin() bool { return a.Role == models.RoleAdmin }
