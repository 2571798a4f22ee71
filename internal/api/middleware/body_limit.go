package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sen-Deepak/Content-code-generator/pkg/response"
)

// BodyLimit 请求体大小限制中间件
// 上限来自 server.max_body_bytes，取值要容下批量导入的 .xlsx；
// 普通 JSON 请求（登录、生成、建活动）远小于该值。
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() {
			return
		}
		// MaxBytesReader 超限的读错误被 gin 收进 c.Errors
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
				return
			}
		}
	}
}
