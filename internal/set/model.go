package set

import (
	"time"
)

// Set 定义了角色集合在数据库中的持久化模型。
// 一个集合由一名用户创建，包含若干角色和一张封面图。
type Set struct {
	ID          string `gorm:"primarykey;type:varchar(36)" json:"id"`
	Name        string `gorm:"not null;index" json:"name"`
	Description string `json:"description"`

	// CoverUrl 指向上传目录中的封面图，例如 "/uploads/sets/<uuid>.png"
	CoverUrl string `gorm:"not null" json:"coverUrl"`

	// OwnerID 是创建者的用户ID。
	OwnerID string `gorm:"type:varchar(36);not null;index" json:"ownerId"`

	// Characters 是集合中的角色，随集合一起创建和删除。
	Characters []Character `gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE" json:"characters,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Character 定义了单个角色（图片）的持久化模型。
// 角色只属于一个集合，被游戏选择和统计记录引用。
type Character struct {
	ID   string `gorm:"primarykey;type:varchar(36)" json:"id"`
	Name string `gorm:"not null" json:"name"`

	// ImageUrl 指向上传目录中的角色图片。
	ImageUrl string `gorm:"not null" json:"imageUrl"`

	// SetID 是所属集合的ID。
	SetID string `gorm:"type:varchar(36);not null;index" json:"setId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerSummary 是集合列表中嵌入的创建者信息。
type OwnerSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// CharacterSummary 是嵌入在其他响应中的角色信息子集。
type CharacterSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageUrl string `json:"imageUrl"`
}

// SetSummary 是嵌入在游戏历史响应中的集合信息子集。
type SetSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	CoverUrl string `json:"coverUrl"`
}
