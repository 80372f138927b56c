package game

import (
	"fmt"
	"strings"
	"testing"

	"github.com/SlpAus/fmk-game-backend/internal/set"
	"github.com/SlpAus/fmk-game-backend/internal/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 为单个测试创建一个独立的内存数据库。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// 每个测试使用独立的共享缓存内存库，避免连接池拿到不同的空库
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&user.User{}, &set.Set{}, &set.Character{},
		&Session{}, &Choice{}, &CharacterStats{},
	))
	return db
}

// newTestService 创建一个不带缓存的游戏服务和它的数据库。
func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewService(db, nil), db
}

func seedUser(t *testing.T, db *gorm.DB) user.User {
	t.Helper()
	u := user.User{
		ID:       uuid.NewString(),
		Email:    uuid.NewString() + "@example.com",
		Username: "player",
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedSet(t *testing.T, db *gorm.DB, ownerID string) set.Set {
	t.Helper()
	s := set.Set{
		ID:       uuid.NewString(),
		Name:     "Test Set",
		CoverUrl: "/uploads/sets/cover.png",
		OwnerID:  ownerID,
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func seedCharacter(t *testing.T, db *gorm.DB, setID, name string) set.Character {
	t.Helper()
	ch := set.Character{
		ID:       uuid.NewString(),
		Name:     name,
		ImageUrl: "/uploads/characters/" + name + ".png",
		SetID:    setID,
	}
	require.NoError(t, db.Create(&ch).Error)
	return ch
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
