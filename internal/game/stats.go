package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/fmk-game-backend/internal/set"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// batchCounts 是一个批次内单个角色的各类型选择计数。
type batchCounts struct {
	fuck  int
	marry int
	kill  int
}

// ApplyChoices 将一个批次的选择合并进角色累计统计。
//
// 按角色分组后，每个角色用一条原子的upsert语句完成：
// 统计行不存在时以批次计数创建，存在时按批次计数递增。
// 并发批次对同一角色的更新在数据库层串行化，彼此叠加而不会互相覆盖。
//
// 单个角色的失败不阻塞其他角色，所有失败汇总后一起返回。
func (s *Service) ApplyChoices(choices []ChoiceInput) error {
	// 1. 按角色分组，统计本批次内的各类型计数
	counts := make(map[string]*batchCounts)
	order := make([]string, 0)
	for _, input := range choices {
		c, ok := counts[input.CharacterID]
		if !ok {
			c = &batchCounts{}
			counts[input.CharacterID] = c
			order = append(order, input.CharacterID)
		}
		switch input.Type {
		case ChoiceFuck:
			c.fuck++
		case ChoiceMarry:
			c.marry++
		case ChoiceKill:
			c.kill++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	// 2. 逐角色执行原子upsert，失败不中断
	var errs []error
	for _, characterID := range order {
		if err := s.upsertStats(characterID, *counts[characterID]); err != nil {
			errs = append(errs, fmt.Errorf("角色 %s: %w", characterID, err))
		}
	}

	// 3. 失效这些角色所在集合的统计缓存
	s.invalidateSetStatsCache(order)

	return errors.Join(errs...)
}

// upsertStats 用单条语句为一个角色创建或递增统计行。
// 递增发生在数据库内部，不做读取-修改-写入，避免并发丢失更新。
func (s *Service) upsertStats(characterID string, c batchCounts) error {
	id, err := newID()
	if err != nil {
		return err
	}

	stats := CharacterStats{
		ID:          id,
		CharacterID: characterID,
		FuckCount:   c.fuck,
		MarryCount:  c.marry,
		KillCount:   c.kill,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "character_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"fuck_count":  gorm.Expr("fuck_count + ?", c.fuck),
			"marry_count": gorm.Expr("marry_count + ?", c.marry),
			"kill_count":  gorm.Expr("kill_count + ?", c.kill),
			"updated_at":  time.Now(),
		}),
	}).Create(&stats).Error
}

// invalidateSetStatsCache 删除受影响集合的统计缓存。
// 缓存失效是旁路操作，失败只记录日志。
func (s *Service) invalidateSetStatsCache(characterIDs []string) {
	if !s.cacheReady() || len(characterIDs) == 0 {
		return
	}

	var setIDs []string
	err := s.db.Model(&set.Character{}).
		Where("id IN ?", characterIDs).
		Distinct().
		Pluck("set_id", &setIDs).Error
	if err != nil {
		fmt.Printf("警告: 无法查询受影响的集合，跳过缓存失效: %v\n", err)
		return
	}

	keys := make([]string, len(setIDs))
	for i, setID := range setIDs {
		keys[i] = setStatsCacheKey(setID)
	}
	if len(keys) > 0 {
		if err := s.rdb.Del(cacheCtx, keys...).Err(); err != nil {
			fmt.Printf("警告: 集合统计缓存失效失败: %v\n", err)
		}
	}
}

// MostPopularChoice 返回三项计数中的最高者。
// 全为0时返回nil；三方平局FUCK优先，MARRY与KILL平局MARRY优先。
func MostPopularChoice(fuckCount, marryCount, killCount int) *ChoiceType {
	if fuckCount == 0 && marryCount == 0 && killCount == 0 {
		return nil
	}

	var winner ChoiceType
	switch {
	case fuckCount >= marryCount && fuckCount >= killCount:
		winner = ChoiceFuck
	case marryCount >= killCount:
		winner = ChoiceMarry
	default:
		winner = ChoiceKill
	}
	return &winner
}
