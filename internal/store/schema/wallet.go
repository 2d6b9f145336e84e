package schema

import (
	"time"

	"github.com/IN4XI4/xlo-server/internal/domain"
)

// CoinSpend represents the coin_spends table - the append-only audit record of
// every coin debit. Exactly one row is written per successful purchase, with
// Coins holding the catalog price at purchase time (copied, not referenced, so
// later price changes never rewrite history). Rows are never updated or deleted.
type CoinSpend struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Reference is a sortable unique identifier (ULID) for reconciliation
	Reference string `gorm:"column:reference;not null;uniqueIndex;type:text"`
	// UserID is the account that was debited
	UserID int64 `gorm:"column:user_id;not null;index:idx_coin_spends_user_created,priority:1"`
	// Reason tags the flow that produced the debit
	Reason domain.SpendReason `gorm:"column:reason;not null;type:text"`
	// Coins is the debited amount, equal to the catalog price at purchase time
	Coins int64 `gorm:"column:coins;not null;check:coins >= 0"`
	// TargetType identifies the catalog kind the spend paid for
	TargetType string `gorm:"column:target_type;not null;default:'';type:text"`
	// TargetID identifies the catalog row the spend paid for
	TargetID string `gorm:"column:target_id;not null;default:'';type:text"`
	// CreatedAt is the timestamp of the purchase
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;index:idx_coin_spends_user_created,priority:2,sort:desc"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the CoinSpend model
func (CoinSpend) TableName() string {
	return "coin_spends"
}

// CoinLedgerEntry represents the coin_ledger_entries table - the credit/debit
// journal behind the balance. Credits come from the out-of-band payment flow and
// carry an idempotency key so webhook retries never double-credit.
type CoinLedgerEntry struct {
	ID        int64                  `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64                  `gorm:"column:user_id;not null;index:idx_coin_ledger_user_created,priority:1"`
	EntryType domain.LedgerEntryType `gorm:"column:entry_type;not null;type:text"`
	// Amount is always positive; EntryType carries the direction
	Amount int64 `gorm:"column:amount;not null;check:amount > 0"`
	// ReferenceID ties the entry to its source (purchase reference or payment id)
	ReferenceID string `gorm:"column:reference_id;not null;type:text"`
	// IdempotencyKey dedupes replayed credit requests
	IdempotencyKey string    `gorm:"column:idempotency_key;not null;uniqueIndex;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;index:idx_coin_ledger_user_created,priority:2,sort:desc"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the CoinLedgerEntry model
func (CoinLedgerEntry) TableName() string {
	return "coin_ledger_entries"
}
