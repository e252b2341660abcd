package backend

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"

	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	"github.com/shuzaifak/Property-Sync-Owner/internal/files"
	"github.com/shuzaifak/Property-Sync-Owner/users"
)

const (
	opLogin        = "login"
	opRegister     = "register"
	opUploadAvatar = "upload_avatar"

	msgUploadFailed = "Failed to upload avatar"
)

var _ users.API = (*Client)(nil)

// Login exchanges credentials for the user and a token
func (c *Client) Login(ctx context.Context, in users.LoginInput) (users.LoginResult, error) {
	r, err := jsonRequest(opLogin, http.MethodPost, "/users/login", in, users.MsgLoginFailed)
	if err != nil {
		return users.LoginResult{}, err
	}
	body, err := c.do(ctx, r)
	if err != nil {
		return users.LoginResult{}, err
	}
	var res users.LoginResult
	if err := decode(opLogin, body, &res); err != nil {
		return users.LoginResult{}, err
	}
	return res, nil
}

// Register creates an account; the role is sent as given
func (c *Client) Register(ctx context.Context, in users.RegisterInput) (users.User, error) {
	r, err := jsonRequest(opRegister, http.MethodPost, "/users/register", in, users.MsgRegisterFailed)
	if err != nil {
		return users.User{}, err
	}
	body, err := c.do(ctx, r)
	if err != nil {
		return users.User{}, err
	}
	return decodeUser(opRegister, body)
}

// UploadAvatar sends the image as multipart field "avatar"
func (c *Client) UploadAvatar(ctx context.Context, avatar files.File) (users.User, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := writeFile(mw, "avatar", avatar); err != nil {
		return users.User{}, apperrors.Wrapf(err, "[%s] encode", opUploadAvatar)
	}
	if err := mw.Close(); err != nil {
		return users.User{}, apperrors.Wrapf(err, "[%s] encode", opUploadAvatar)
	}

	body, err := c.do(ctx, request{
		op:          opUploadAvatar,
		method:      http.MethodPost,
		path:        "/users/upload-avatar",
		body:        &buf,
		contentType: mw.FormDataContentType(),
		fallback:    msgUploadFailed,
	})
	if err != nil {
		return users.User{}, err
	}
	return decodeUser(opUploadAvatar, body)
}

func decodeUser(op string, body []byte) (users.User, error) {
	var res struct {
		User *users.User `json:"user"`
	}
	if err := decode(op, body, &res); err != nil {
		return users.User{}, err
	}
	if res.User == nil {
		return users.User{}, apperrors.Wrapf(apperrors.ErrDataShape, "[%s] missing user", op)
	}
	return *res.User, nil
}
