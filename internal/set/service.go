package set

import (
	"errors"
	"fmt"

	"github.com/SlpAus/fmk-game-backend/internal/platform/database"
	"github.com/SlpAus/fmk-game-backend/internal/upload"
	"github.com/SlpAus/fmk-game-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSetNotFound 表示集合不存在。
var ErrSetNotFound = errors.New("Set not found")

// ErrNotOwner 表示操作者不是集合的创建者。
var ErrNotOwner = errors.New("You do not own this set")

// CharacterInput 是创建集合时的单个角色输入。
type CharacterInput struct {
	Name     string `json:"name" binding:"required"`
	ImageUrl string `json:"imageUrl" binding:"required"`
}

// CreateInput 是创建集合的完整输入。
type CreateInput struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	CoverUrl    string           `json:"coverUrl" binding:"required"`
	Characters  []CharacterInput `json:"characters" binding:"required,min=1,dive"`
}

// UpdateInput 是更新集合的输入，零值字段不修改。
type UpdateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CoverUrl    string `json:"coverUrl"`
}

// ListEntry 是集合列表中的一项。
type ListEntry struct {
	Set
	Owner          OwnerSummary `json:"owner"`
	CharacterCount int64        `json:"characterCount"`
}

// ListResult 是分页查询的结果。
type ListResult struct {
	Data       []ListEntry     `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return id.String(), nil
}

// validateImages 校验封面和所有角色图片都已经上传到磁盘。
func validateImages(coverUrl string, characters []CharacterInput) error {
	if !upload.ImageExists(coverUrl, upload.KindSetCover) {
		return fmt.Errorf("Cover image not found: %s", coverUrl)
	}
	var missing []string
	for _, ch := range characters {
		if !upload.ImageExists(ch.ImageUrl, upload.KindCharacter) {
			missing = append(missing, ch.ImageUrl)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("Character images not found: %v", missing)
	}
	return nil
}

// Create 在一个事务中创建集合及其全部角色。
func Create(input CreateInput, ownerID string) (*Set, error) {
	if err := validateImages(input.CoverUrl, input.Characters); err != nil {
		return nil, err
	}

	setID, err := newID()
	if err != nil {
		return nil, err
	}

	newSet := Set{
		ID:          setID,
		Name:        input.Name,
		Description: input.Description,
		CoverUrl:    input.CoverUrl,
		OwnerID:     ownerID,
	}
	newSet.Characters = make([]Character, 0, len(input.Characters))
	for _, ch := range input.Characters {
		charID, err := newID()
		if err != nil {
			return nil, err
		}
		newSet.Characters = append(newSet.Characters, Character{
			ID:       charID,
			Name:     ch.Name,
			ImageUrl: ch.ImageUrl,
			SetID:    setID,
		})
	}

	// 集合和角色要么全部写入，要么全部回滚
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&newSet).Error
	})
	if err != nil {
		return nil, fmt.Errorf("无法创建集合: %w", err)
	}
	return &newSet, nil
}

// list 是带筛选条件的分页查询的公共实现。
func list(query pagination.Query, search string, ownerID string) (*ListResult, error) {
	query.Normalize()

	base := database.DB.Model(&Set{})
	if ownerID != "" {
		base = base.Where("owner_id = ?", ownerID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("无法统计集合数量: %w", err)
	}

	var sets []Set
	err := base.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.Limit).
		Find(&sets).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询集合列表: %w", err)
	}

	entries := make([]ListEntry, 0, len(sets))
	for _, s := range sets {
		entry := ListEntry{Set: s}

		var owner struct {
			ID       string
			Username string
		}
		if err := database.DB.Table("users").Select("id, username").Where("id = ?", s.OwnerID).Scan(&owner).Error; err == nil {
			entry.Owner = OwnerSummary{ID: owner.ID, Username: owner.Username}
		}

		if err := database.DB.Model(&Character{}).Where("set_id = ?", s.ID).Count(&entry.CharacterCount).Error; err != nil {
			return nil, fmt.Errorf("无法统计角色数量: %w", err)
		}

		entries = append(entries, entry)
	}

	return &ListResult{
		Data:       entries,
		Pagination: pagination.NewMeta(query, total),
	}, nil
}

// List 返回公开的集合列表，支持按名称/描述搜索。
func List(query pagination.Query, search string) (*ListResult, error) {
	return list(query, search, "")
}

// ListByOwner 返回指定用户创建的集合列表。
func ListByOwner(ownerID string, query pagination.Query, search string) (*ListResult, error) {
	return list(query, search, ownerID)
}

// FindByID 返回单个集合及其全部角色。
func FindByID(id string) (*Set, error) {
	var s Set
	err := database.DB.Preload("Characters").Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, fmt.Errorf("无法查询集合: %w", err)
	}
	return &s, nil
}

// Update 更新集合的基础信息，只有创建者可以操作。
func Update(id string, input UpdateInput, userID string) (*Set, error) {
	s, err := FindByID(id)
	if err != nil {
		return nil, err
	}
	if s.OwnerID != userID {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.CoverUrl != "" {
		if !upload.ImageExists(input.CoverUrl, upload.KindSetCover) {
			return nil, fmt.Errorf("Cover image not found: %s", input.CoverUrl)
		}
		updates["cover_url"] = input.CoverUrl
	}
	if len(updates) == 0 {
		return s, nil
	}

	if err := database.DB.Model(s).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("无法更新集合: %w", err)
	}
	return FindByID(id)
}

// Delete 删除集合及其角色，只有创建者可以操作。
// 已上传的图片文件随后尽力删除，失败只记录日志。
func Delete(id string, userID string) error {
	s, err := FindByID(id)
	if err != nil {
		return err
	}
	if s.OwnerID != userID {
		return ErrNotOwner
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// 级联清理引用这些角色的统计和选择记录，避免悬空引用
		if err := tx.Exec("DELETE FROM character_stats WHERE character_id IN (SELECT id FROM characters WHERE set_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM choices WHERE character_id IN (SELECT id FROM characters WHERE set_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Where("set_id = ?", id).Delete(&Character{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Set{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("无法删除集合: %w", err)
	}

	if !upload.DeleteImage(s.CoverUrl, upload.KindSetCover) {
		fmt.Printf("警告: 无法删除封面文件: %s\n", s.CoverUrl)
	}
	for _, ch := range s.Characters {
		if !upload.DeleteImage(ch.ImageUrl, upload.KindCharacter) {
			fmt.Printf("警告: 无法删除角色图片文件: %s\n", ch.ImageUrl)
		}
	}
	return nil
}
