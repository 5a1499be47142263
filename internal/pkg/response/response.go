package response

import (
	log "log/slog"
	"net/http"

	"github.com/KOVY310/chaos-canvas/internal/service"

	"github.com/gin-gonic/gin"
)

// Response 统一响应信封
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// Error 将业务错误映射为 HTTP 状态码；未登记的错误一律按 500 收口
func Error(c *gin.Context, err error) {
	code, ok := service.ErrorMap[err]
	if !ok {
		log.ErrorContext(c.Request.Context(), "unexpected error", "path", c.FullPath(), "err", err)
		code = service.InternalServerError
		err = service.UnExpectedError
	}
	c.JSON(code, Response{
		Code:    code,
		Message: err.Error(),
		Data:    nil,
	})
}
