package schema

import (
	"time"
)

// User represents the users table - the account entity that owns the coin balance
type User struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Email is the login identifier
	Email string `gorm:"column:email;not null;uniqueIndex;type:text"`
	// Username is the public display name
	Username string `gorm:"column:username;not null;type:text"`
	// PasswordHash is the bcrypt hash of the account password
	PasswordHash string `gorm:"column:password_hash;not null;type:text"`
	// Birthday is optional profile data
	Birthday *time.Time `gorm:"column:birthday;type:date"`
	// CoinBalance is the spendable coin amount; only the locked purchase
	// transaction decrements it and it never goes negative
	CoinBalance int64 `gorm:"column:coin_balance;not null;default:0;check:coin_balance >= 0"`
	// IsAdmin marks staff accounts that may read other users' unlock data
	IsAdmin bool `gorm:"column:is_admin;not null;default:false"`
	// CreatedAt is the timestamp when the account was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the account was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
