package game

import (
	"fmt"

	"github.com/SlpAus/fmk-game-backend/internal/set"
	"github.com/SlpAus/fmk-game-backend/internal/user"
	"gorm.io/gorm"
)

// userExists 检查指定ID的用户是否存在。
// Redis健康时优先命中已知用户缓存；缓存未命中时回退数据库确认。
func (s *Service) userExists(id string) (bool, error) {
	if s.cacheReady() {
		cached, err := s.rdb.SIsMember(cacheCtx, user.KnownUsersKey, id).Result()
		if err == nil && cached {
			return true, nil
		}
	}

	var count int64
	if err := s.db.Model(&user.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("无法查询用户: %w", err)
	}
	return count > 0, nil
}

// RecordSession 校验并原子性地保存一次游戏的全部选择。
//
// 写入前的前置检查（任一失败则零行写入）：
//  1. userID非空时，对应用户必须存在；
//  2. 选择列表引用的每个角色都必须存在（按去重后的ID计数）。
//
// 会话和全部选择在一个数据库事务中创建。事务提交后触发统计聚合，
// 聚合失败只记录日志，不回滚也不影响返回结果。
func (s *Service) RecordSession(userID *string, choices []ChoiceInput) (*SessionResult, error) {
	// 1. 校验选择类型
	for _, input := range choices {
		if !input.Type.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidChoiceType, input.Type)
		}
	}

	// 2. 校验用户存在性（匿名会话跳过）
	if userID != nil {
		exists, err := s.userExists(*userID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrUserNotFound
		}
	}

	// 3. 去重后校验所有被引用的角色都存在
	distinctIDs := make([]string, 0, len(choices))
	seen := make(map[string]bool, len(choices))
	for _, input := range choices {
		if !seen[input.CharacterID] {
			seen[input.CharacterID] = true
			distinctIDs = append(distinctIDs, input.CharacterID)
		}
	}

	characterByID := make(map[string]set.Character, len(distinctIDs))
	if len(distinctIDs) > 0 {
		var characters []set.Character
		if err := s.db.Where("id IN ?", distinctIDs).Find(&characters).Error; err != nil {
			return nil, fmt.Errorf("无法查询角色: %w", err)
		}
		if len(characters) != len(distinctIDs) {
			return nil, ErrCharacterNotFound
		}
		for _, ch := range characters {
			characterByID[ch.ID] = ch
		}
	}

	// 4. 在一个事务中创建会话和全部选择
	sessionID, err := newID()
	if err != nil {
		return nil, err
	}
	session := Session{ID: sessionID, UserID: userID}

	createdChoices := make([]CreatedChoice, 0, len(choices))
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		for _, input := range choices {
			choiceID, err := newID()
			if err != nil {
				return err
			}
			choice := Choice{
				ID:          choiceID,
				SessionID:   session.ID,
				CharacterID: input.CharacterID,
				Type:        input.Type,
			}
			if err := tx.Create(&choice).Error; err != nil {
				return err
			}

			ch := characterByID[input.CharacterID]
			createdChoices = append(createdChoices, CreatedChoice{
				ID:          choice.ID,
				CharacterID: choice.CharacterID,
				Type:        choice.Type,
				Character: set.CharacterSummary{
					ID:       ch.ID,
					Name:     ch.Name,
					ImageUrl: ch.ImageUrl,
				},
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("无法保存游戏会话: %w", err)
	}

	// 5. 事务已提交，统计更新是尽力而为的后置步骤
	if len(choices) > 0 {
		if err := s.ApplyChoices(choices); err != nil {
			fmt.Printf("警告: 会话 %s 的统计更新失败（会话已保存）: %v\n", session.ID, err)
		}
	}

	return &SessionResult{
		SessionID: session.ID,
		Choices:   createdChoices,
		CreatedAt: session.CreatedAt,
	}, nil
}
