package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/cimyrichardson/art-store/internal/errs"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// validateUsername 用户名：3-30 位字母/数字/下划线。
func validateUsername(name string) error {
	if !usernamePattern.MatchString(strings.TrimSpace(name)) {
		return fmt.Errorf("%w: 用户名需为 3-30 位字母、数字或下划线", errs.ErrValidation)
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("%w: 邮箱格式不正确", errs.ErrValidation)
	}
	return nil
}

// validatePassword 至少 8 位，且包含大写、小写和数字。
func validatePassword(pw string) error {
	if len(pw) < 8 {
		return fmt.Errorf("%w: 密码至少 8 位", errs.ErrValidation)
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return fmt.Errorf("%w: 密码需同时包含大写字母、小写字母和数字", errs.ErrValidation)
	}
	return nil
}
