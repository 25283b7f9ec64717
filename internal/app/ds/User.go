package ds

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)

// @Schema(description="Back-office operator account")
type User struct {
	UserID   int    `gorm:"primaryKey;column:user_id" json:"user_id"`
	FullName string `gorm:"column:full_name" json:"full_name"`
	Login    string `gorm:"column:login;unique;not null" json:"login" binding:"required"`
	Password string `gorm:"column:password;not null" json:"password,omitempty" binding:"required,min=6"`
	Role     string `gorm:"column:role;default:operator" json:"role"` // "operator" | "admin"
}

// BeforeCreate hashes the password before the first save.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (User) TableName() string {
	return "users"
}
