package health

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/SlpAus/fmk-game-backend/internal/platform/database"
	"github.com/SlpAus/fmk-game-backend/internal/platform/startup"
	"github.com/SlpAus/fmk-game-backend/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

// lastKnownRunID 记录上一次看到的Redis实例run_id，用于检测Redis重启。
var lastKnownRunID string

// getRedisRunID 从Redis服务器信息中提取run_id
func getRedisRunID() (string, error) {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()
	info, err := database.RDB.Info(ctx, "server").Result()
	if err != nil {
		return "", err
	}
	re := regexp.MustCompile(`run_id:([a-f0-9]+)`)
	matches := re.FindStringSubmatch(info)
	if len(matches) < 2 {
		return "", fmt.Errorf("无法在Redis INFO中找到run_id")
	}
	return matches[1], nil
}

// InitializeRunID 在应用启动时执行一次，获取并记录初始的run_id。
func InitializeRunID() {
	if database.RDB == nil {
		return
	}
	runID, err := getRedisRunID()
	if err != nil {
		panic(fmt.Sprintf("无法在启动时获取Redis Run ID，请检查Redis服务: %v", err))
	}
	lastKnownRunID = runID
}

// PerformCheck 执行一次完整的健康检查和可能的修复操作。
func PerformCheck() {
	if database.RDB == nil {
		return
	}

	currentRunID, err := getRedisRunID()
	if err != nil {
		// 无法连接到Redis，直接标记为不可用
		database.UpdateStatus(false)
		return
	}

	if currentRunID != lastKnownRunID {
		// 检测到Redis重启，缓存内容已丢失，重建后才恢复可用
		fmt.Println("健康检查: 检测到Redis重启，正在重建缓存...")
		if err := startup.RebuildCache(); err != nil {
			fmt.Printf("健康检查错误: 缓存热重建失败: %v\n", err)
			database.UpdateStatus(false)
			return
		}
		lastKnownRunID = currentRunID
	}
	database.UpdateStatus(true)
}

// StartRedisHealthCheck 以后台Goroutine的形式定期执行健康检查，
// 直到生命周期句柄收到停机信号。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()

	if database.RDB == nil {
		return
	}
	fmt.Println("Redis健康检查器已启动。")

	for {
		if err := handle.Sleep(checkInterval); err != nil {
			fmt.Println("Redis健康检查器已停止。")
			return
		}
		PerformCheck()
	}
}
