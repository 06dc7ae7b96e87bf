package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cimyrichardson/art-store/internal/auth"
	"github.com/cimyrichardson/art-store/internal/config"
	"github.com/cimyrichardson/art-store/internal/datamodels/user"
	"github.com/cimyrichardson/art-store/internal/errs"
)

// UserService 注册/登录/个人信息。
type UserService struct {
	repo user.Repository
	jwt  *config.JWTConfig
}

func NewUserService(repo user.Repository, jwt *config.JWTConfig) *UserService {
	return &UserService{repo: repo, jwt: jwt}
}

// Register 注册新用户并直接颁发 token。邮箱重复返回 ErrDuplicateEmail。
func (s *UserService) Register(ctx context.Context, username, email, password string) (*user.User, string, error) {
	if err := validateUsername(username); err != nil {
		return nil, "", err
	}
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, "", errs.ErrDuplicateEmail
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, "", err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	u := &user.User{
		Username: strings.TrimSpace(username),
		Email:    email,
		Password: hashed,
		Role:     user.RoleCustomer,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(s.jwt, u.ID, u.Username, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login 按邮箱登录。邮箱不存在和密码错误返回同一个错误，
// 不给外部探测账号是否存在的信号。
func (s *UserService) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, "", errs.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(password, u.Password) {
		return nil, "", errs.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwt, u.ID, u.Username, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Profile 查询个人信息
func (s *UserService) Profile(ctx context.Context, userID int64) (*user.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// ListAll 管理端用户列表
func (s *UserService) ListAll(ctx context.Context) ([]*user.User, error) {
	return s.repo.ListAll(ctx)
}

// UpdateProfile 修改用户名/邮箱。
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, username, email string) (*user.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if email != u.Email {
		if _, err := s.repo.GetByEmail(ctx, email); err == nil {
			return nil, errs.ErrDuplicateEmail
		} else if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
	}

	u.Username = strings.TrimSpace(username)
	u.Email = email
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword 校验旧密码后更换新密码。
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(oldPassword, u.Password) {
		return fmt.Errorf("%w: 原密码不正确", errs.ErrValidation)
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hashed
	return s.repo.Update(ctx, u)
}
