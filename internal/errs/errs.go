package errs

import (
	"errors"
	"net/http"
)

// 业务错误枚举，handler 层通过 StatusOf 映射为 HTTP 状态码。
var (
	ErrValidation         = errors.New("参数校验失败")
	ErrDuplicateEmail     = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUnauthorized       = errors.New("未登录或凭证无效")
	ErrForbidden          = errors.New("权限不足")
	ErrNotFound           = errors.New("资源不存在")
	ErrInsufficientStock  = errors.New("库存不足")
	ErrInvalidStatus      = errors.New("订单状态流转不合法")
)

// StatusOf 返回错误对应的 HTTP 状态码，未知错误一律 500。
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsDomain 判断是否为业务错误（可以把 message 直接透出给调用方）。
func IsDomain(err error) bool {
	return StatusOf(err) != http.StatusInternalServerError
}
