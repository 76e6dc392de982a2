package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleChef  = "chef"
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID         string             `bson:"userId" json:"id"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	HashedPassword string             `bson:"hashedPassword" json:"-"`
	Role           string             `bson:"userType" json:"userType"`
	Name           string             `bson:"name,omitempty" json:"name,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL      string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleChef, RoleAdmin, RoleGuest:
		return true
	}
	return false
}
