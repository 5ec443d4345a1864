package models

type User struct {
	ID       string `bson:"_id" json:"user_id"`
	Name     string `bson:"name" json:"name,omitempty"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"`
	Role     string `bson:"role" json:"role,omitempty"` // customer or admin
}
