package game

import (
	"fmt"

	"github.com/SlpAus/fmk-game-backend/internal/platform/database"
)

// PrimeModule 是game模块的初始化总入口。
// 迁移表结构并装配供HTTP层使用的服务实例。
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&Session{}, &Choice{}, &CharacterStats{}); err != nil {
		return fmt.Errorf("无法迁移game相关表: %w", err)
	}
	defaultService = NewService(database.DB, database.RDB)
	return nil
}
