package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/cimyrichardson/art-store/internal/datamodels/user"
	"github.com/cimyrichardson/art-store/internal/errs"
)

// 并发注册绕过服务层先查后插的检查时，唯一键冲突也要映射成业务错误。
func TestUserCreateDuplicateEmail(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u1 := &user.User{Username: "marie_d", Email: "marie@example.com", Password: "x", Role: user.RoleCustomer}
	if err := repo.Create(ctx, u1); err != nil {
		t.Fatalf("Create: %v", err)
	}

	u2 := &user.User{Username: "marie_2", Email: "marie@example.com", Password: "x", Role: user.RoleCustomer}
	if err := repo.Create(ctx, u2); !errors.Is(err, errs.ErrDuplicateEmail) {
		t.Fatalf("duplicate create err = %v, want ErrDuplicateEmail", err)
	}
}

func TestUserListAll(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	users := []*user.User{
		{Username: "marie_d", Email: "marie@example.com", Password: "x", Role: user.RoleCustomer},
		{Username: "admin", Email: "admin@artstore.local", Password: "x", Role: user.RoleAdmin},
	}
	for _, u := range users {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	// 按 id 升序
	if list[0].Username != "marie_d" || list[1].Username != "admin" {
		t.Errorf("order = %s,%s", list[0].Username, list[1].Username)
	}
}
