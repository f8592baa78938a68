package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"formvault/internal/form"
)

// 统一的错误响应形状：{"error": "..."}。

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func Unauthorized(c *gin.Context)           { Error(c, http.StatusUnauthorized, "unauthorized") }
func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)   { Error(c, http.StatusConflict, msg) }
func Internal(c *gin.Context, msg string)   { Error(c, http.StatusInternalServerError, msg) }

// replyStoreError 把存储层错误翻译为响应：校验失败 → 400 + 本地化文案，
// 其余（持久化失败）→ 500。校验失败不会产生部分保存。
func replyStoreError(c *gin.Context, err error) {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		BadRequest(c, verr.Message)
		return
	}
	Internal(c, "storage failure")
}
