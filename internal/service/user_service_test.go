package service

import (
	"context"
	"errors"
	"testing"

	"class-timetable/internal/domain/schedule"
	"class-timetable/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
)

func TestUserService_CreateUser(t *testing.T) {
	// Initialize dependencies
	userRepo := newFakeUserRepo()
	userService := NewUserService(userRepo, bcrypt.MinCost)

	// Test data
	req := &user.CreateUserRequest{
		UserName:   "TestUser",
		Password:   "correct horse",
		SchoolName: "Seoul Univ",
	}

	// Create user
	created, err := userService.CreateUser(context.Background(), req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if created == nil {
		t.Fatal("Expected user to be created, got nil")
	}

	// Verify user data
	if created.UserName != "testuser" {
		t.Errorf("Expected user name testuser, got %s", created.UserName)
	}

	if created.Nickname != "testuser" {
		t.Errorf("Expected nickname to default to user name, got %s", created.Nickname)
	}

	if created.PasswordHash == "" || created.PasswordHash == req.Password {
		t.Error("Expected password to be hashed")
	}
}

func TestUserService_CreateUser_DuplicateUserName(t *testing.T) {
	userRepo := newFakeUserRepo()
	userService := NewUserService(userRepo, bcrypt.MinCost)
	ctx := context.Background()

	if _, err := userService.CreateUser(ctx, &user.CreateUserRequest{UserName: "alice", Password: "password1"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	created, err := userService.CreateUser(ctx, &user.CreateUserRequest{UserName: "ALICE", Password: "password2"})
	if !errors.Is(err, user.ErrUserNameTaken) {
		t.Fatalf("Expected ErrUserNameTaken, got %v", err)
	}

	if created != nil {
		t.Fatal("Expected nil user for duplicate user name, got user")
	}
}

func TestUserService_GetUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	userService := NewUserService(userRepo, bcrypt.MinCost)
	ctx := context.Background()

	created, err := userService.CreateUser(ctx, &user.CreateUserRequest{UserName: "bob", Password: "password1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	found, err := userService.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("Expected ID %s, got %s", created.ID, found.ID)
	}

	if _, err := userService.GetUser(ctx, "missing"); !errors.Is(err, user.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Authenticate(t *testing.T) {
	userRepo := newFakeUserRepo()
	userService := NewUserService(userRepo, bcrypt.MinCost)
	ctx := context.Background()

	if _, err := userService.CreateUser(ctx, &user.CreateUserRequest{UserName: "carol", Password: "password1"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := userService.Authenticate(ctx, "Carol", "password1"); err != nil {
		t.Errorf("Expected successful authentication, got %v", err)
	}
	if _, err := userService.Authenticate(ctx, "carol", "wrong-password"); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := userService.Authenticate(ctx, "nobody", "password1"); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestUserService_ListUsers(t *testing.T) {
	userRepo := newFakeUserRepo()
	userService := NewUserService(userRepo, bcrypt.MinCost)
	ctx := context.Background()

	for _, name := range []string{"dave", "erin", "frank"} {
		if _, err := userService.CreateUser(ctx, &user.CreateUserRequest{UserName: name, Password: "password1"}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	users, err := userService.ListUsers(ctx, 2, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(users) != 2 {
		t.Errorf("Expected 2 users, got %d", len(users))
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	userService := NewUserService(userRepo, bcrypt.MinCost)
	ctx := context.Background()

	created, err := userService.CreateUser(ctx, &user.CreateUserRequest{UserName: "alice", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	nickname, password := " Al ", "battery staple"
	updated, err := userService.UpdateUser(ctx, created.ID, created.ID, &user.UpdateUserRequest{
		Nickname: &nickname,
		Password: &password,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Nickname != "Al" {
		t.Errorf("Expected nickname Al, got %q", updated.Nickname)
	}

	if _, err := userService.Authenticate(ctx, "alice", "battery staple"); err != nil {
		t.Errorf("Expected new password to authenticate, got %v", err)
	}
	if _, err := userService.Authenticate(ctx, "alice", "correct horse"); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Errorf("Expected old password to be rejected, got %v", err)
	}
}

func TestUserService_UpdateUserErrors(t *testing.T) {
	userRepo := newFakeUserRepo()
	userService := NewUserService(userRepo, bcrypt.MinCost)
	ctx := context.Background()

	created, err := userService.CreateUser(ctx, &user.CreateUserRequest{UserName: "alice", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	short := "short"
	tests := []struct {
		name   string
		caller string
		id     string
		req    *user.UpdateUserRequest
		want   error
	}{
		{"other user", "someone-else", created.ID, &user.UpdateUserRequest{}, user.ErrForbidden},
		{"anonymous", "", created.ID, &user.UpdateUserRequest{}, schedule.ErrUnauthenticated},
		{"short password", created.ID, created.ID, &user.UpdateUserRequest{Password: &short}, schedule.ErrInvalidInput},
		{"missing user", "ghost", "ghost", &user.UpdateUserRequest{}, user.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := userService.UpdateUser(ctx, tt.caller, tt.id, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	userService := NewUserService(userRepo, bcrypt.MinCost)
	ctx := context.Background()

	created, err := userService.CreateUser(ctx, &user.CreateUserRequest{UserName: "alice", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := userService.DeleteUser(ctx, "someone-else", created.ID); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden, got %v", err)
	}
	if err := userService.DeleteUser(ctx, created.ID, created.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := userService.GetUser(ctx, created.ID); !errors.Is(err, user.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound after delete, got %v", err)
	}
	if err := userService.DeleteUser(ctx, created.ID, created.ID); !errors.Is(err, user.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound on second delete, got %v", err)
	}
}
