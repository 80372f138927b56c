package set

import (
	"fmt"

	"github.com/SlpAus/fmk-game-backend/internal/platform/database"
)

// PrimeModule 是set模块的初始化总入口
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&Set{}, &Character{}); err != nil {
		return fmt.Errorf("无法迁移set相关表: %w", err)
	}
	return nil
}
