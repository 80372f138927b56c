package startup

import (
	"fmt"

	"github.com/SlpAus/fmk-game-backend/internal/game"
	"github.com/SlpAus/fmk-game-backend/internal/platform/config"
	"github.com/SlpAus/fmk-game-backend/internal/set"
	"github.com/SlpAus/fmk-game-backend/internal/upload"
	"github.com/SlpAus/fmk-game-backend/internal/user"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := upload.Init(config.Cfg.Upload.Dir); err != nil {
		return err
	}
	if err := user.PrimeModule(); err != nil {
		return err
	}
	if err := set.PrimeModule(); err != nil {
		return err
	}
	if err := game.PrimeModule(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 在运行时热重建Redis缓存。
// 由健康检查器在检测到Redis重启后调用。
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")
	if err := user.WarmupCache(); err != nil {
		return err
	}
	fmt.Println("缓存热重建完成。")
	return nil
}
