package user

import (
	"fmt"

	"github.com/SlpAus/fmk-game-backend/internal/platform/database"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("无法迁移user表: %w", err)
	}
	return nil
}

// WarmupCache 从数据库加载所有已注册用户的ID，并预热到Redis的Set中
func WarmupCache() error {
	if !database.IsRedisHealthy() {
		return nil
	}

	var users []User
	// 1. 从数据库读取所有用户的ID
	if err := database.DB.Select("id").Find(&users).Error; err != nil {
		return fmt.Errorf("无法从数据库读取用户ID: %w", err)
	}

	if len(users) == 0 {
		return nil
	}

	// 2. 将ID转换为interface{}切片以用于SAdd
	ids := make([]interface{}, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	// 3. 使用Pipeline批量将所有ID添加到Redis的Set中
	pipe := database.RDB.Pipeline()
	// 先清空旧的缓存，确保数据一致性
	pipe.Del(database.Ctx, KnownUsersKey)
	pipe.SAdd(database.Ctx, KnownUsersKey, ids...)

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热用户ID到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个用户ID到Redis。\n", len(users))
	return nil
}

// PrimeModule 是user模块的初始化总入口
func PrimeModule() error {
	if err := migrateDB(); err != nil {
		return err
	}
	return WarmupCache()
}
