package user

import (
	"errors"
	"time"
)

type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type userResponse struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip"`
	CreatedAt     time.Time  `json:"created"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  *userResponse `json:"user,omitempty"`
}

var (
	errBadCredentials    = errors.New("邮箱或密码不正确")
	errEmailTaken        = errors.New("该邮箱已被注册")
	errUsernameTaken     = errors.New("该用户名已被使用")
	errPasswordSameAsOld = errors.New("新密码不能与旧密码相同")
)
