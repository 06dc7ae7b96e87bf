package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost 与前代实现保持一致（bcryptjs 用的也是 12）。
const bcryptCost = 12

// HashPassword 生成密码的 bcrypt 哈希，盐由 bcrypt 内部生成。
func HashPassword(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword 校验明文密码与存储哈希是否匹配。
func CheckPassword(raw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}
