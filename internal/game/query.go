package game

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/SlpAus/fmk-game-backend/internal/set"
)

// GetUserGameHistory 返回用户的全部游戏会话，按创建时间从新到旧排列。
// 每个会话展开其全部选择，每个选择附带角色和所属集合的摘要。
// 用户没有会话时返回空切片而不是错误。
func (s *Service) GetUserGameHistory(userID string) ([]HistorySession, error) {
	// 1. 查询用户的全部会话
	var sessions []Session
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询游戏会话: %w", err)
	}
	if len(sessions) == 0 {
		return []HistorySession{}, nil
	}

	// 2. 批量加载这些会话的全部选择
	sessionIDs := make([]string, len(sessions))
	for i, sess := range sessions {
		sessionIDs[i] = sess.ID
	}
	var choices []Choice
	err = s.db.Where("session_id IN ?", sessionIDs).
		Order("created_at ASC").
		Find(&choices).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询选择记录: %w", err)
	}

	// 3. 批量加载被引用的角色和集合
	characterIDSet := make(map[string]bool)
	for _, c := range choices {
		characterIDSet[c.CharacterID] = true
	}
	characterByID := make(map[string]set.Character, len(characterIDSet))
	setByID := make(map[string]set.Set)
	if len(characterIDSet) > 0 {
		characterIDs := make([]string, 0, len(characterIDSet))
		for id := range characterIDSet {
			characterIDs = append(characterIDs, id)
		}
		var characters []set.Character
		if err := s.db.Where("id IN ?", characterIDs).Find(&characters).Error; err != nil {
			return nil, fmt.Errorf("无法查询角色: %w", err)
		}
		setIDSet := make(map[string]bool)
		for _, ch := range characters {
			characterByID[ch.ID] = ch
			setIDSet[ch.SetID] = true
		}
		setIDs := make([]string, 0, len(setIDSet))
		for id := range setIDSet {
			setIDs = append(setIDs, id)
		}
		var sets []set.Set
		if err := s.db.Where("id IN ?", setIDs).Find(&sets).Error; err != nil {
			return nil, fmt.Errorf("无法查询集合: %w", err)
		}
		for _, st := range sets {
			setByID[st.ID] = st
		}
	}

	// 4. 组装显式的历史结果
	choicesBySession := make(map[string][]HistoryChoice, len(sessions))
	for _, c := range choices {
		ch := characterByID[c.CharacterID]
		st := setByID[ch.SetID]
		choicesBySession[c.SessionID] = append(choicesBySession[c.SessionID], HistoryChoice{
			ID:        c.ID,
			Type:      c.Type,
			CreatedAt: c.CreatedAt,
			Character: HistoryCharacter{
				ID:       ch.ID,
				Name:     ch.Name,
				ImageUrl: ch.ImageUrl,
				Set: set.SetSummary{
					ID:       st.ID,
					Name:     st.Name,
					CoverUrl: st.CoverUrl,
				},
			},
		})
	}

	history := make([]HistorySession, len(sessions))
	for i, sess := range sessions {
		sessionChoices := choicesBySession[sess.ID]
		if sessionChoices == nil {
			sessionChoices = []HistoryChoice{}
		}
		history[i] = HistorySession{
			ID:        sess.ID,
			CreatedAt: sess.CreatedAt,
			Choices:   sessionChoices,
		}
	}
	return history, nil
}

// GetGameStats 返回用户的游戏统计。
// 三项数据各自独立查询；ChoicesByType只包含实际出现过的类型。
func (s *Service) GetGameStats(userID string) (*UserStats, error) {
	stats := &UserStats{ChoicesByType: make(map[ChoiceType]int64)}

	// 1. 会话总数
	err := s.db.Model(&Session{}).Where("user_id = ?", userID).Count(&stats.TotalGames).Error
	if err != nil {
		return nil, fmt.Errorf("无法统计会话数量: %w", err)
	}

	// 2. 选择总数
	err = s.db.Model(&Choice{}).
		Joins("JOIN sessions ON sessions.id = choices.session_id").
		Where("sessions.user_id = ?", userID).
		Count(&stats.TotalChoices).Error
	if err != nil {
		return nil, fmt.Errorf("无法统计选择数量: %w", err)
	}

	// 3. 按类型分组计数
	var rows []struct {
		Type  ChoiceType
		Count int64
	}
	err = s.db.Model(&Choice{}).
		Select("choices.type AS type, COUNT(*) AS count").
		Joins("JOIN sessions ON sessions.id = choices.session_id").
		Where("sessions.user_id = ?", userID).
		Group("choices.type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("无法按类型统计选择: %w", err)
	}
	for _, row := range rows {
		stats.ChoicesByType[row.Type] = row.Count
	}

	return stats, nil
}

// GetCharactersWithStats 返回指定集合的全部角色及其统计，按角色名升序。
// 没有统计行的角色返回全0的合成统计。结果在Redis中按集合缓存，
// 统计变化时由聚合器失效。
func (s *Service) GetCharactersWithStats(setID string) ([]CharacterWithStats, error) {
	// 1. 缓存命中则直接返回
	if s.cacheReady() {
		cached, err := s.rdb.Get(cacheCtx, setStatsCacheKey(setID)).Result()
		if err == nil {
			var result []CharacterWithStats
			if json.Unmarshal([]byte(cached), &result) == nil {
				return result, nil
			}
		}
	}

	// 2. 查询集合的全部角色
	var characters []set.Character
	err := s.db.Where("set_id = ?", setID).Order("name ASC").Find(&characters).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询角色: %w", err)
	}

	// 3. 批量加载已有的统计行
	statsByCharacter := make(map[string]CharacterStats)
	if len(characters) > 0 {
		characterIDs := make([]string, len(characters))
		for i, ch := range characters {
			characterIDs[i] = ch.ID
		}
		var statsRows []CharacterStats
		if err := s.db.Where("character_id IN ?", characterIDs).Find(&statsRows).Error; err != nil {
			return nil, fmt.Errorf("无法查询角色统计: %w", err)
		}
		for _, row := range statsRows {
			statsByCharacter[row.CharacterID] = row
		}
	}

	// 4. 组装条目，没有统计行的角色给出全0统计
	result := make([]CharacterWithStats, len(characters))
	for i, ch := range characters {
		view := StatsView{}
		if row, ok := statsByCharacter[ch.ID]; ok {
			view.FuckCount = row.FuckCount
			view.MarryCount = row.MarryCount
			view.KillCount = row.KillCount
		}
		view.TotalChoices = view.FuckCount + view.MarryCount + view.KillCount
		view.MostPopularChoice = MostPopularChoice(view.FuckCount, view.MarryCount, view.KillCount)

		result[i] = CharacterWithStats{
			ID:       ch.ID,
			Name:     ch.Name,
			ImageUrl: ch.ImageUrl,
			SetID:    ch.SetID,
			Stats:    view,
		}
	}

	// 数据库排序在不同驱动下对大小写的处理不一致，这里统一排序语义
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	// 5. 回填缓存
	if s.cacheReady() {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.rdb.Set(cacheCtx, setStatsCacheKey(setID), payload, setStatsCacheTTL).Err(); err != nil {
				fmt.Printf("警告: 无法写入集合统计缓存: %v\n", err)
			}
		}
	}

	return result, nil
}
