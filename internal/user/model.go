package user

import (
	"time"
)

// User 定义了用户在数据库中的持久化模型。
type User struct {
	// ID 是用户的主键，UUID字符串，在创建时生成。
	ID string `gorm:"primarykey;type:varchar(36)" json:"id"`

	// Email 是用户的登录邮箱，全局唯一。
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	// Username 是用户的展示名。
	Username string `gorm:"not null" json:"username"`

	// PasswordHash 是bcrypt哈希后的密码。
	// 通过Google注册的用户没有密码，此字段为null。
	PasswordHash *string `gorm:"type:varchar(255)" json:"-"`

	// GoogleID 是Google OAuth的外部标识，存在时全局唯一。
	GoogleID *string `gorm:"uniqueIndex" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile 是对外暴露的用户信息子集，绝不包含密码哈希。
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// ToProfile 将持久化模型转换为对外的用户信息。
func (u *User) ToProfile() Profile {
	return Profile{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}
