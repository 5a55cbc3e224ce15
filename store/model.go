package store

import "time"

// OperationRecord is one served request. Secrets, signatures and messages are
// never recorded.
type OperationRecord struct {
	Id        string    `gorm:"primaryKey;type:varchar(36);not null"`
	RequestId string    `gorm:"type:varchar(36);not null;index"`
	Operation string    `gorm:"type:varchar(32);not null;index"`
	ProgramId string    `gorm:"type:varchar(48)"`
	Amount    string    `gorm:"type:varchar(40)"`
	Success   bool      `gorm:"not null"`
	Error     string    `gorm:"type:varchar(255)"`
	Duration  int64     `gorm:"type:bigint(20);not null"`
	CreatedAt time.Time `gorm:"not null"`
}
