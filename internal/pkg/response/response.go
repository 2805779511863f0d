package response

import (
	"Agora/internal/api/dto"
	"Agora/internal/pkg/search"
	"Agora/internal/service"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装，HTTP 状态码与 code 一致
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, dto.Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		Fail(c, BadRequest, ve.Error())
		return
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		Fail(c, BadRequest, "参数错误")
		return
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		Fail(c, BadRequest, fmt.Sprintf("参数错误: %q 不是合法的数字", numErr.Num))
		return
	}

	for target, code := range service.ErrorMap {
		if errors.Is(err, target) {
			Fail(c, code, target.Error())
			return
		}
	}

	var dae *search.DataAccessError
	if errors.As(err, &dae) {
		log.ErrorContext(c.Request.Context(), "data access failed", "op", dae.Op, "err", dae.Err)
	} else {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
	}
	Fail(c, InternalServerError, service.UnExpectedError.Error())
}
