package users

import (
	"context"

	"github.com/shuzaifak/Property-Sync-Owner/internal/files"
)

// LoginResult is what the backend returns for a successful login
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Authenticator logs in and registers accounts against the backend
type Authenticator interface {
	Login(ctx context.Context, in LoginInput) (LoginResult, error)
	Register(ctx context.Context, in RegisterInput) (User, error)
}

// AvatarUploader replaces the signed-in user's avatar
type AvatarUploader interface {
	UploadAvatar(ctx context.Context, avatar files.File) (User, error)
}

// API is the account surface of the backend
type API interface {
	Authenticator
	AvatarUploader
}
