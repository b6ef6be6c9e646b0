package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleMember  = "Member"
)

type User struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username           string             `json:"username" bson:"username"`
	Name               string             `json:"name" bson:"name"`
	LastName           string             `json:"lastName" bson:"lastName"`
	Email              string             `json:"email" bson:"email"`
	Password           string             `json:"-" bson:"password"`
	Role               string             `json:"role" bson:"role"`
	Department         primitive.ObjectID `json:"department,omitempty" bson:"department,omitempty"`
	IsActive           bool               `json:"isActive" bson:"isActive"`
	VerificationCode   string             `json:"-" bson:"verificationCode,omitempty"`
	VerificationExpiry time.Time          `json:"-" bson:"verificationExpiry,omitempty"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
}
