package game

import (
	"time"

	"github.com/SlpAus/fmk-game-backend/internal/set"
)

// ChoiceType 定义了玩家对单个角色可做的三种选择。
// 枚举封闭且大小写敏感，没有扩展机制。
type ChoiceType string

const (
	ChoiceFuck  ChoiceType = "FUCK"
	ChoiceMarry ChoiceType = "MARRY"
	ChoiceKill  ChoiceType = "KILL"
)

// Valid 检查选择类型是否是三个合法值之一。
func (t ChoiceType) Valid() bool {
	switch t {
	case ChoiceFuck, ChoiceMarry, ChoiceKill:
		return true
	}
	return false
}

// Session 定义了一次完整游戏的持久化模型。
// UserID 为null表示匿名游戏。
type Session struct {
	ID        string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	UserID    *string   `gorm:"type:varchar(36);index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	Choices []Choice `gorm:"foreignKey:SessionID" json:"choices,omitempty"`
}

// Choice 定义了会话中单个选择的持久化模型。
// 记录创建后不可修改。
type Choice struct {
	ID          string     `gorm:"primarykey;type:varchar(36)" json:"id"`
	SessionID   string     `gorm:"type:varchar(36);not null;index" json:"sessionId"`
	CharacterID string     `gorm:"type:varchar(36);not null;index" json:"characterId"`
	Type        ChoiceType `gorm:"type:varchar(8);not null" json:"type"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CharacterStats 定义了每个角色的累计选择统计。
// 每个角色至多一行，在第一次被选择时惰性创建，此后只做增量更新。
type CharacterStats struct {
	ID          string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	CharacterID string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"characterId"`
	FuckCount   int       `gorm:"not null;default:0" json:"fuckCount"`
	MarryCount  int       `gorm:"not null;default:0" json:"marryCount"`
	KillCount   int       `gorm:"not null;default:0" json:"killCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// --- 各查询形状的显式结果模型 ---

// ChoiceInput 是保存游戏结果时的单个选择输入。
type ChoiceInput struct {
	CharacterID string     `json:"characterId" binding:"required"`
	Type        ChoiceType `json:"type" binding:"required"`
}

// CreatedChoice 是新建会话响应中的单个选择。
type CreatedChoice struct {
	ID          string               `json:"id"`
	CharacterID string               `json:"characterId"`
	Type        ChoiceType           `json:"type"`
	Character   set.CharacterSummary `json:"character"`
}

// SessionResult 是保存游戏结果成功后的响应数据。
type SessionResult struct {
	SessionID string          `json:"sessionId"`
	Choices   []CreatedChoice `json:"choices"`
	CreatedAt time.Time       `json:"createdAt"`
}

// HistoryCharacter 是历史记录中嵌入的角色信息。
type HistoryCharacter struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	ImageUrl string         `json:"imageUrl"`
	Set      set.SetSummary `json:"set"`
}

// HistoryChoice 是历史记录中的单个选择。
type HistoryChoice struct {
	ID        string           `json:"id"`
	Type      ChoiceType       `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
	Character HistoryCharacter `json:"character"`
}

// HistorySession 是历史记录中的一次会话。
type HistorySession struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Choices   []HistoryChoice `json:"choices"`
}

// UserStats 是用户游戏统计的响应数据。
// ChoicesByType 只包含实际出现过的选择类型。
type UserStats struct {
	TotalGames    int64                `json:"totalGames"`
	TotalChoices  int64                `json:"totalChoices"`
	ChoicesByType map[ChoiceType]int64 `json:"choicesByType"`
}

// StatsView 是对外展示的角色统计，包含派生字段。
// MostPopularChoice在三项计数全为0时缺省。
type StatsView struct {
	FuckCount         int         `json:"fuckCount"`
	MarryCount        int         `json:"marryCount"`
	KillCount         int         `json:"killCount"`
	TotalChoices      int         `json:"totalChoices"`
	MostPopularChoice *ChoiceType `json:"mostPopularChoice,omitempty"`
}

// CharacterWithStats 是带统计的角色条目。
type CharacterWithStats struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	ImageUrl string    `json:"imageUrl"`
	SetID    string    `json:"setId"`
	Stats    StatsView `json:"stats"`
}
