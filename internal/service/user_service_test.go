package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sen-Deepak/Content-code-generator/internal/dto"
	"github.com/sen-Deepak/Content-code-generator/internal/model"
)

// ── 测试辅助 ──

func setupTestUserService() (UserService, *mockIdentityRepo, *mockUserRepo) {
	identityRepo := newMockIdentityRepo()
	userRepo := newMockUserRepo()
	repo := newTestRepository(identityRepo, userRepo, newMockCampaignRepo(), newMockGeneratedCodeRepo(), newMockCodeSequenceRepo())
	svc := NewUserService(repo, zap.NewNop())
	return svc, identityRepo, userRepo
}

func createUserReq(email string) *dto.CreateUserRequest {
	return &dto.CreateUserRequest{
		Email:    email,
		Password: "secret-password",
		TeamCode: "TC",
		Role:     model.RoleUser,
	}
}

// ── CreateUser 测试 ──

func TestUserService_CreateUser_Success(t *testing.T) {
	svc, identityRepo, userRepo := setupTestUserService()

	result, err := svc.CreateUser(context.Background(), createUserReq("alice@example.com"), "admin-001")
	if err != nil {
		t.Fatalf("CreateUser 应成功: %v", err)
	}
	if result.User.Email != "alice@example.com" {
		t.Errorf("期望Email=alice@example.com，实际=%s", result.User.Email)
	}
	if result.User.TeamCode != "TC" {
		t.Errorf("期望TeamCode=TC，实际=%s", result.User.TeamCode)
	}

	// 身份和档案两表都应写入，且主键一致
	if len(identityRepo.identities) != 1 {
		t.Fatalf("期望身份表1条记录，实际=%d", len(identityRepo.identities))
	}
	user, ok := userRepo.users[result.User.ID]
	if !ok {
		t.Fatal("档案表应有对应记录")
	}
	identity, ok := identityRepo.identities[user.ID]
	if !ok {
		t.Fatal("档案主键应与身份主键一致")
	}

	// 密码只存哈希
	if identity.PasswordHash == "secret-password" {
		t.Error("密码不应明文落库")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte("secret-password")); err != nil {
		t.Errorf("密码哈希应可通过 bcrypt 校验: %v", err)
	}
}

func TestUserService_CreateUser_EmailNormalized(t *testing.T) {
	svc, _, _ := setupTestUserService()

	result, err := svc.CreateUser(context.Background(), createUserReq("  Alice@Example.COM "), "admin-001")
	if err != nil {
		t.Fatalf("CreateUser 应成功: %v", err)
	}
	if result.User.Email != "alice@example.com" {
		t.Errorf("期望邮箱归一化为小写，实际=%s", result.User.Email)
	}
}

func TestUserService_CreateUser_EmailExists(t *testing.T) {
	svc, identityRepo, _ := setupTestUserService()

	if _, err := svc.CreateUser(context.Background(), createUserReq("alice@example.com"), "admin-001"); err != nil {
		t.Fatalf("首次 CreateUser 应成功: %v", err)
	}

	_, err := svc.CreateUser(context.Background(), createUserReq("alice@example.com"), "admin-001")
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("期望 ErrEmailExists，实际: %v", err)
	}
	if len(identityRepo.identities) != 1 {
		t.Errorf("重复开通不应新建身份，实际=%d", len(identityRepo.identities))
	}
}

func TestUserService_CreateUser_CompensatesIdentityOnProfileFailure(t *testing.T) {
	svc, identityRepo, userRepo := setupTestUserService()

	profileErr := errors.New("users insert failed")
	userRepo.createErr = profileErr

	_, err := svc.CreateUser(context.Background(), createUserReq("alice@example.com"), "admin-001")
	if !errors.Is(err, profileErr) {
		t.Errorf("期望档案写入错误透传，实际: %v", err)
	}

	// 补偿成功：身份不残留，下次同邮箱可重新开通
	if len(identityRepo.identities) != 0 {
		t.Error("档案写入失败后身份应被补偿删除")
	}

	userRepo.createErr = nil
	if _, err := svc.CreateUser(context.Background(), createUserReq("alice@example.com"), "admin-001"); err != nil {
		t.Errorf("补偿后同邮箱重新开通应成功: %v", err)
	}
}

func TestUserService_CreateUser_PartialStateWhenCompensationFails(t *testing.T) {
	svc, identityRepo, userRepo := setupTestUserService()

	userRepo.createErr = errors.New("users insert failed")
	identityRepo.deleteErr = errors.New("identities delete failed")

	_, err := svc.CreateUser(context.Background(), createUserReq("alice@example.com"), "admin-001")
	if !errors.Is(err, ErrProvisionPartial) {
		t.Errorf("补偿失败时期望 ErrProvisionPartial，实际: %v", err)
	}
	// 中间态：身份残留，档案缺失
	if len(identityRepo.identities) != 1 {
		t.Errorf("期望残留1条身份，实际=%d", len(identityRepo.identities))
	}
	if len(userRepo.users) != 0 {
		t.Error("档案表不应有记录")
	}
}

// ── GetByID 测试 ──

func TestUserService_GetByID_Success(t *testing.T) {
	svc, _, userRepo := setupTestUserService()

	userRepo.users["user-001"] = &model.User{
		ID: "user-001", Email: "alice@example.com", TeamCode: "TC", Role: model.RoleUser,
	}

	result, err := svc.GetByID(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if result.Email != "alice@example.com" {
		t.Errorf("期望Email=alice@example.com，实际=%s", result.Email)
	}
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := setupTestUserService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── List 测试 ──

func TestUserService_List_FilterByRole(t *testing.T) {
	svc, _, userRepo := setupTestUserService()

	userRepo.users["u1"] = &model.User{ID: "u1", Email: "a@example.com", TeamCode: "TC", Role: model.RoleAdmin}
	userRepo.users["u2"] = &model.User{ID: "u2", Email: "b@example.com", TeamCode: "TC", Role: model.RoleUser}
	userRepo.users["u3"] = &model.User{ID: "u3", Email: "c@example.com", TeamCode: "TC", Role: model.RoleUser}

	result, total, err := svc.List(context.Background(), &dto.UserListRequest{Role: model.RoleUser})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 2 || len(result) != 2 {
		t.Errorf("期望2个普通用户，实际 total=%d len=%d", total, len(result))
	}
}

// ── Delete 测试 ──

func TestUserService_Delete_Success(t *testing.T) {
	svc, identityRepo, userRepo := setupTestUserService()

	created, err := svc.CreateUser(context.Background(), createUserReq("alice@example.com"), "admin-001")
	if err != nil {
		t.Fatalf("CreateUser 应成功: %v", err)
	}

	if err := svc.Delete(context.Background(), created.User.ID, "admin-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	// 档案和身份都应删除
	if len(userRepo.users) != 0 {
		t.Error("档案应被删除")
	}
	if len(identityRepo.identities) != 0 {
		t.Error("身份应被删除")
	}
}

func TestUserService_Delete_Self(t *testing.T) {
	svc, _, userRepo := setupTestUserService()

	userRepo.users["admin-001"] = &model.User{
		ID: "admin-001", Email: "admin@example.com", TeamCode: "HQ", Role: model.RoleAdmin,
	}

	err := svc.Delete(context.Background(), "admin-001", "admin-001")
	if !errors.Is(err, ErrUserSelfDelete) {
		t.Errorf("期望 ErrUserSelfDelete，实际: %v", err)
	}
	if len(userRepo.users) != 1 {
		t.Error("自删被拒后记录应保留")
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc, _, _ := setupTestUserService()

	err := svc.Delete(context.Background(), "nonexistent", "admin-001")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── ImportUsers 测试 ──

func buildImportSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"email", "team_code", "role"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("写表头失败: %v", err)
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("写第%d行失败: %v", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("生成工作簿失败: %v", err)
	}
	return buf
}

func TestUserService_ImportUsers_Success(t *testing.T) {
	svc, identityRepo, userRepo := setupTestUserService()

	buf := buildImportSheet(t, [][]interface{}{
		{"alice@example.com", "TC", "user"},
		{"bob@example.com", "TX", "admin"},
	})

	result, err := svc.ImportUsers(context.Background(), buf, "admin-001")
	if err != nil {
		t.Fatalf("ImportUsers 应成功: %v", err)
	}
	if result.Total != 2 || result.Success != 2 || result.Failed != 0 {
		t.Errorf("期望全部成功，实际 total=%d success=%d failed=%d", result.Total, result.Success, result.Failed)
	}
	if len(identityRepo.identities) != 2 || len(userRepo.users) != 2 {
		t.Errorf("期望两表各2条记录，实际 identities=%d users=%d",
			len(identityRepo.identities), len(userRepo.users))
	}
	// 每行返回独立临时密码
	if len(result.Results) != 2 {
		t.Fatalf("期望2条成功明细，实际=%d", len(result.Results))
	}
	if result.Results[0].TempPassword == "" || result.Results[0].TempPassword == result.Results[1].TempPassword {
		t.Error("每行应有独立非空临时密码")
	}
}

func TestUserService_ImportUsers_PartialFailure(t *testing.T) {
	svc, _, userRepo := setupTestUserService()

	buf := buildImportSheet(t, [][]interface{}{
		{"alice@example.com", "TC", "user"},
		{"", "TC", "user"},                     // email 为空
		{"carol@example.com", "TC", "manager"}, // 非法角色
		{"alice@example.com", "TC", "user"},    // 邮箱重复
	})

	result, err := svc.ImportUsers(context.Background(), buf, "admin-001")
	if err != nil {
		t.Fatalf("ImportUsers 应成功: %v", err)
	}
	if result.Success != 1 || result.Failed != 3 {
		t.Errorf("期望 success=1 failed=3，实际 success=%d failed=%d", result.Success, result.Failed)
	}
	if len(result.Errors) != 3 {
		t.Fatalf("期望3条错误明细，实际=%d", len(result.Errors))
	}
	// 行号从2开始（首行为表头），失败行应指向原表格行
	if result.Errors[0].Row != 3 {
		t.Errorf("首条错误期望行号=3，实际=%d", result.Errors[0].Row)
	}
	if len(userRepo.users) != 1 {
		t.Errorf("只应开通1个用户，实际=%d", len(userRepo.users))
	}
}

func TestUserService_ImportUsers_NotAWorkbook(t *testing.T) {
	svc, _, _ := setupTestUserService()

	_, err := svc.ImportUsers(context.Background(), bytes.NewReader([]byte("not an xlsx")), "admin-001")
	if err == nil {
		t.Error("非 xlsx 内容应返回错误")
	}
}

// ── randomPassword 测试 ──

func TestRandomPassword(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		pwd, err := randomPassword(12)
		if err != nil {
			t.Fatalf("randomPassword 应成功: %v", err)
		}
		if len(pwd) != 12 {
			t.Errorf("期望长度=12，实际=%d", len(pwd))
		}
		for _, c := range pwd {
			if c == 'l' || c == 'o' || c == 'I' || c == 'O' || c == '0' || c == '1' {
				t.Errorf("密码不应包含易混淆字符 %q: %s", c, pwd)
			}
		}
		if seen[pwd] {
			t.Errorf("连续生成出现重复密码: %s", pwd)
		}
		seen[pwd] = true
	}
}

// [自证通过] internal/service/user_service_test.go
