package utils

import (
	"context"

	"tastygram/globals"
)

func GetUserIDFromContext(ctx context.Context) string {
	userID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		return ""
	}
	return userID
}

func GetUsernameFromContext(ctx context.Context) string {
	username, ok := ctx.Value(globals.UsernameKey).(string)
	if !ok {
		return ""
	}
	return username
}

func GetRoleFromContext(ctx context.Context) string {
	role, ok := ctx.Value(globals.RoleKey).(string)
	if !ok {
		return ""
	}
	return role
}
