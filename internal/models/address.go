package models

type Address struct {
	FullName string `bson:"full_name" json:"full_name"`
	Phone    string `bson:"phone" json:"phone"`
	Street   string `bson:"street" json:"street"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state" json:"state"`
	PinCode  string `bson:"pin_code" json:"pin_code"`
	Country  string `bson:"country" json:"country"`
}
