package game

import (
	"context"
	"time"
)

// cacheCtx 是游戏模块Redis操作使用的上下文。
var cacheCtx = context.Background()

// setStatsCacheTTL 是单个集合统计缓存的过期时间。
// 缓存会在统计变化时被主动失效，TTL只是兜底。
const setStatsCacheTTL = 5 * time.Minute

// setStatsCacheKey 返回指定集合的带统计角色列表的缓存键。
func setStatsCacheKey(setID string) string {
	return "game:set_stats:" + setID
}
