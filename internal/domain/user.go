package domain

// User represents an admin dashboard account.
type User struct {
	Meta         `bson:",inline"`
	Email        string `bson:"email" json:"email"`
	FullName     string `bson:"fullName" json:"fullName"`
	PhoneNumber  string `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	TLCID        string `bson:"tlcId,omitempty" json:"tlcId,omitempty"`
	Role         string `bson:"role" json:"role"`
	PasswordHash string `bson:"passwordHash" json:"-"`
}
