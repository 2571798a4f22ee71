package dto

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	TeamCode string `json:"team_code"`
	Role     string `json:"role"`
}

// CreateUserResponse 开通用户响应
type CreateUserResponse struct {
	User UserResponse `json:"user"`
}

// ImportUsersResponse 批量开通用户响应
type ImportUsersResponse struct {
	Total   int               `json:"total"`
	Success int               `json:"success"`
	Failed  int               `json:"failed"`
	Results []ImportUserEntry `json:"results,omitempty"`
	Errors  []ImportUserError `json:"errors,omitempty"`
}

// ImportUserEntry 成功开通的单行结果（含临时密码，仅返回一次）
type ImportUserEntry struct {
	Row          int    `json:"row"`
	Email        string `json:"email"`
	TempPassword string `json:"temp_password"`
}

// ImportUserError 导入错误详情
type ImportUserError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ── 活动模块响应 ──

// CampaignResponse 活动信息响应
type CampaignResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

// ── 内容码模块响应 ──

// GeneratedCodeResponse 单条内容码响应
type GeneratedCodeResponse struct {
	ID            string `json:"id,omitempty"`
	Campaign      string `json:"campaign"`
	Sequence      int    `json:"sequence"`
	Type          string `json:"type"`
	CarouselCount *int   `json:"carousel_count,omitempty"`
	Code          string `json:"code"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// GenerateCodesResponse 生成操作响应：本次新生成的全部记录
type GenerateCodesResponse struct {
	Codes []GeneratedCodeResponse `json:"codes"`
}

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// [自证通过] internal/dto/response.go
