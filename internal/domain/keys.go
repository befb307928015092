package domain

import "context"

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyPremium   CtxKey = "Premium"
	KeySessionID CtxKey = "SessionID"
)

// UserIDFromContext extracts the authenticated user id, empty when the
// request carries no principal.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyUserID).(string)
	return id
}
