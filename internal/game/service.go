package game

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SlpAus/fmk-game-backend/internal/platform/database"
	"github.com/google/uuid"
)

// ErrUserNotFound 表示指定的用户不存在，在任何写入发生前返回。
var ErrUserNotFound = errors.New("User not found")

// ErrCharacterNotFound 表示选择列表引用了不存在的角色，在任何写入发生前返回。
var ErrCharacterNotFound = errors.New("Some characters not found")

// ErrInvalidChoiceType 表示选择类型不在FUCK/MARRY/KILL之内。
var ErrInvalidChoiceType = errors.New("Invalid choice type")

// Service 是游戏模块的核心服务。
// 数据库句柄和缓存客户端通过构造函数显式注入，便于测试时替换。
type Service struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewService 创建一个游戏服务实例。
// rdb可以为nil，此时所有缓存路径都被跳过。
func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{db: db, rdb: rdb}
}

// cacheReady 判断缓存是否可用。
func (s *Service) cacheReady() bool {
	return s.rdb != nil && database.IsRedisHealthy()
}

// newID 生成一个新记录的主键。
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return id.String(), nil
}
