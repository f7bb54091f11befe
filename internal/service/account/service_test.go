package account_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/account"
	"github.com/vladislavdragonenkov/storefront/internal/service/auth"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newService(t *testing.T) (*account.Service, domain.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository(nil)
	authSvc := auth.NewService("test-secret", time.Hour)
	return account.NewService(users, authSvc, nil), users
}

func validInput() account.CreateInput {
	return account.CreateInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
		Phone:    "+10000000001",
		Role:     domain.RoleUser,
	}
}

func TestCreate(t *testing.T) {
	svc, _ := newService(t)

	user, err := svc.Create(validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated user id")
	}
	if !user.Active {
		t.Fatal("expected account to be active")
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Fatal("expected password to be hashed")
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newService(t)

	cases := []struct {
		name   string
		mutate func(*account.CreateInput)
		want   error
	}{
		{
			name:   "empty username",
			mutate: func(in *account.CreateInput) { in.Username = "" },
			want:   domain.ErrUsernameRequired,
		},
		{
			name:   "empty email",
			mutate: func(in *account.CreateInput) { in.Email = "" },
			want:   domain.ErrEmailRequired,
		},
		{
			name:   "empty password",
			mutate: func(in *account.CreateInput) { in.Password = "" },
			want:   domain.ErrPasswordRequired,
		},
		{
			name:   "unknown role",
			mutate: func(in *account.CreateInput) { in.Role = "superuser" },
			want:   domain.ErrInvalidRole,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			if _, err := svc.Create(in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreate_DefaultRole(t *testing.T) {
	svc, _ := newService(t)

	in := validInput()
	in.Role = ""
	user, err := svc.Create(in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default user role, got %s", user.Role)
	}
}

func TestCreate_Uniqueness(t *testing.T) {
	svc, _ := newService(t)

	if _, err := svc.Create(validInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	dup := validInput()
	dup.Email = "other@example.com"
	if _, err := svc.Create(dup); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	dup = validInput()
	dup.Username = "bob"
	if _, err := svc.Create(dup); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, users := newService(t)

	created, err := svc.Create(validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	token, user, err := svc.Login("alice", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || user.ID != created.ID {
		t.Fatalf("unexpected login result: token=%q user=%+v", token, user)
	}

	if _, _, err := svc.Login("alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login("nobody", "s3cret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	created.Active = false
	if err := users.Save(created); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, _, err := svc.Login("alice", "s3cret"); !errors.Is(err, domain.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(created.ID, account.UpdateInput{
		Username: "alice",
		Email:    "alice+new@example.com",
		Role:     domain.RoleAdmin,
		Active:   false,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != domain.RoleAdmin || updated.Active {
		t.Fatalf("unexpected user: %+v", updated)
	}
	if updated.PasswordHash != created.PasswordHash {
		t.Fatal("empty password must leave the hash untouched")
	}

	// Административная смена пароля не требует текущего.
	updated, err = svc.Update(created.ID, account.UpdateInput{
		Username: "alice",
		Email:    "alice+new@example.com",
		Password: "newpass",
		Role:     domain.RoleAdmin,
		Active:   true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PasswordHash == created.PasswordHash {
		t.Fatal("expected password hash to change")
	}
}

func TestUpdateProfile_PasswordChange(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	profile := account.ProfileInput{
		Username:        "alice",
		Email:           "alice@example.com",
		CurrentPassword: "wrong",
		NewPassword:     "newpass",
	}
	if _, err := svc.UpdateProfile(created.ID, profile); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	profile.CurrentPassword = "s3cret"
	if _, err := svc.UpdateProfile(created.ID, profile); err != nil {
		t.Fatalf("profile update failed: %v", err)
	}

	if _, _, err := svc.Login("alice", "newpass"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, err := svc.Login("alice", "s3cret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}
}

func TestUpdateProfile_KeepsRole(t *testing.T) {
	svc, users := newService(t)

	created, err := svc.Create(validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.UpdateProfile(created.ID, account.ProfileInput{
		Username: "alice2",
		Email:    "alice2@example.com",
		Phone:    "+10000000002",
	}); err != nil {
		t.Fatalf("profile update failed: %v", err)
	}

	stored, err := users.Get(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Username != "alice2" || stored.Email != "alice2@example.com" {
		t.Fatalf("unexpected user: %+v", stored)
	}
	if stored.Role != domain.RoleUser || !stored.Active {
		t.Fatal("profile update must not touch role or active flag")
	}
}

func TestSetPhoto(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.SetPhoto(created.ID, "image/png", []byte{0x89, 0x50, 0x4E, 0x47})
	if err != nil {
		t.Fatalf("set photo failed: %v", err)
	}
	if len(updated.Photo) == 0 {
		t.Fatal("expected stored photo")
	}

	if _, err := svc.SetPhoto(created.ID, "text/plain", []byte("nope")); !errors.Is(err, domain.ErrPhotoUnsupportedType) {
		t.Fatalf("expected ErrPhotoUnsupportedType, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	orders := memory.NewOrderRepository()
	users := memory.NewUserRepository(orders)
	svc := account.NewService(users, auth.NewService("test-secret", time.Hour), nil)

	created, err := svc.Create(validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	order := domain.Order{
		ID:        "order-1",
		UserID:    created.ID,
		Status:    domain.OrderStatusPending,
		Currency:  "USD",
		CreatedAt: time.Now().UTC(),
	}
	if err := orders.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := svc.Delete(created.ID); !errors.Is(err, domain.ErrUserHasOrders) {
		t.Fatalf("expected ErrUserHasOrders, got %v", err)
	}

	if err := orders.Delete(order.ID); err != nil {
		t.Fatalf("delete order failed: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
