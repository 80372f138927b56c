package user

import (
	"errors"
	"fmt"

	"github.com/SlpAus/fmk-game-backend/internal/platform/database"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost 是密码哈希的计算强度。
const bcryptCost = 12

// ErrEmailTaken 表示注册或改绑时邮箱已被占用。
var ErrEmailTaken = errors.New("User with this email already exists")

// ErrInvalidCredentials 表示邮箱或密码不正确。
var ErrInvalidCredentials = errors.New("Invalid email or password")

// newUserID 生成一个新用户的主键。
func newUserID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return id.String(), nil
}

// cacheKnownUser 将新注册用户的ID写入Redis缓存。
// 缓存只是加速存在性检查的旁路，写入失败不影响注册结果。
func cacheKnownUser(id string) {
	if !database.IsRedisHealthy() {
		return
	}
	if err := database.RDB.SAdd(database.Ctx, KnownUsersKey, id).Err(); err != nil {
		fmt.Printf("警告: 无法将新用户 %s 写入Redis缓存: %v\n", id, err)
	}
}

// CreateUser 创建一个使用邮箱+密码注册的新用户。
func CreateUser(email, password, username string) (*User, error) {
	// 1. 检查邮箱唯一性
	var existing User
	err := database.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("无法检查邮箱唯一性: %w", err)
	}

	// 2. 哈希密码
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("无法哈希密码: %w", err)
	}

	// 3. 创建用户
	id, err := newUserID()
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)
	newUser := User{
		ID:           id,
		Email:        email,
		Username:     username,
		PasswordHash: &hashStr,
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		return nil, fmt.Errorf("无法创建新用户: %w", err)
	}

	cacheKnownUser(newUser.ID)
	return &newUser, nil
}

// ValidatePassword 校验邮箱+密码组合，成功时返回对应用户。
// 用户不存在、无密码（Google用户）或密码不匹配均返回ErrInvalidCredentials。
func ValidatePassword(email, password string) (*User, error) {
	var u User
	if err := database.DB.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("无法查询用户: %w", err)
	}
	if u.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// FindByID 根据主键查找用户，未找到时返回nil而非错误。
func FindByID(id string) (*User, error) {
	var u User
	if err := database.DB.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("无法查询用户: %w", err)
	}
	return &u, nil
}

// Exists 检查指定ID的用户是否存在。
// Redis健康时优先命中已知用户缓存；缓存未命中时仍回退数据库确认，
// 保证缓存滞后不会造成误判。
func Exists(id string) (bool, error) {
	if database.IsRedisHealthy() {
		cached, err := database.RDB.SIsMember(database.Ctx, KnownUsersKey, id).Result()
		if err == nil && cached {
			return true, nil
		}
	}

	u, err := FindByID(id)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

// FindOrCreateGoogleUser 处理Google OAuth登录。
// 依次尝试：按GoogleID查找；按邮箱查找并绑定GoogleID；创建无密码新用户。
func FindOrCreateGoogleUser(email, googleID, username string) (*User, error) {
	// 1. 已绑定过Google的老用户
	var u User
	err := database.DB.Where("google_id = ?", googleID).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("无法查询Google用户: %w", err)
	}

	// 2. 邮箱已注册，补绑GoogleID
	err = database.DB.Where("email = ?", email).First(&u).Error
	if err == nil {
		if err := database.DB.Model(&u).Update("google_id", googleID).Error; err != nil {
			return nil, fmt.Errorf("无法绑定GoogleID: %w", err)
		}
		u.GoogleID = &googleID
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("无法查询用户: %w", err)
	}

	// 3. 全新用户，密码留空
	id, err := newUserID()
	if err != nil {
		return nil, err
	}
	newUser := User{
		ID:       id,
		Email:    email,
		Username: username,
		GoogleID: &googleID,
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		return nil, fmt.Errorf("无法创建Google用户: %w", err)
	}

	cacheKnownUser(newUser.ID)
	return &newUser, nil
}
