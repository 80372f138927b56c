package user

import (
	"errors"
	"net/http"

	"github.com/SlpAus/fmk-game-backend/pkg/response"
	"github.com/SlpAus/fmk-game-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

// --- 请求体 ---

type RegisterRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Username string `json:"username" binding:"required"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	GoogleID string `json:"googleId" binding:"required"`
	Username string `json:"username" binding:"required"`
}

// AuthResponse 是注册和登录成功后的响应数据。
type AuthResponse struct {
	AccessToken string  `json:"access_token"`
	User        Profile `json:"user"`
}

// issueAuthResponse 为指定用户签发令牌并组装响应。
func issueAuthResponse(u *User) (*AuthResponse, error) {
	accessToken, err := token.GenerateToken(u.ID, u.Email, u.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{AccessToken: accessToken, User: u.ToProfile()}, nil
}

// Register 处理 POST /auth/register
func Register(c *gin.Context) {
	var body RegisterRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求格式错误: "+err.Error())
		return
	}

	newUser, err := CreateUser(body.Email, body.Password, body.Username)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Fail(c, http.StatusConflict, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	authResp, err := issueAuthResponse(newUser)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Registration failed")
		return
	}
	response.OK(c, http.StatusCreated, authResp, "User registered successfully")
}

// Login 处理 POST /auth/login
func Login(c *gin.Context) {
	var body LoginRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求格式错误: "+err.Error())
		return
	}

	u, err := ValidatePassword(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, "Login failed")
		return
	}

	authResp, err := issueAuthResponse(u)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Login failed")
		return
	}
	response.OK(c, http.StatusOK, authResp, "Login successful")
}

// GoogleLogin 处理 POST /auth/google
func GoogleLogin(c *gin.Context) {
	var body GoogleLoginRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求格式错误: "+err.Error())
		return
	}

	u, err := FindOrCreateGoogleUser(body.Email, body.GoogleID, body.Username)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Google login failed")
		return
	}

	authResp, err := issueAuthResponse(u)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Google login failed")
		return
	}
	response.OK(c, http.StatusOK, authResp, "Login successful")
}

// GetProfile 处理 GET /auth/profile
// 返回数据库中的完整资料，保证拿到的是最新的用户名和邮箱。
func GetProfile(c *gin.Context) {
	identity, _ := CurrentIdentity(c)

	u, err := FindByID(identity.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if u == nil {
		response.Fail(c, http.StatusUnauthorized, "User not found")
		return
	}
	response.OK(c, http.StatusOK, u.ToProfile(), "Profile retrieved successfully")
}

// GetCurrentUser 处理 GET /auth/me
// 直接回显令牌中的身份信息，不访问数据库。
func GetCurrentUser(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	response.OK(c, http.StatusOK, Profile{
		ID:       identity.ID,
		Email:    identity.Email,
		Username: identity.Username,
	}, "Current user retrieved successfully")
}

// VerifyToken 处理 POST /auth/verify
func VerifyToken(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	response.OK(c, http.StatusOK, gin.H{
		"valid": true,
		"user": Profile{
			ID:       identity.ID,
			Email:    identity.Email,
			Username: identity.Username,
		},
	}, "Token is valid")
}
