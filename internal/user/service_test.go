package user

import (
	"fmt"
	"strings"
	"testing"

	"github.com/SlpAus/fmk-game-backend/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// useTestDB 将全局数据库句柄指向一个测试专用的内存库，测试结束后还原。
func useTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	previous := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = previous })
}

func TestCreateUserAndValidatePassword(t *testing.T) {
	useTestDB(t)

	created, err := CreateUser("alice@example.com", "s3cret", "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alice@example.com", created.Email)
	require.NotNil(t, created.PasswordHash)
	// 数据库中只存哈希
	assert.NotEqual(t, "s3cret", *created.PasswordHash)

	found, err := ValidatePassword("alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	useTestDB(t)

	_, err := CreateUser("bob@example.com", "s3cret", "bob")
	require.NoError(t, err)

	_, err = CreateUser("bob@example.com", "other", "bobby")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestValidatePasswordRejects(t *testing.T) {
	useTestDB(t)

	_, err := CreateUser("carol@example.com", "right", "carol")
	require.NoError(t, err)

	// 密码错误
	_, err = ValidatePassword("carol@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 用户不存在
	_, err = ValidatePassword("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidatePasswordGoogleOnlyUser(t *testing.T) {
	useTestDB(t)

	_, err := FindOrCreateGoogleUser("dave@example.com", "google-123", "dave")
	require.NoError(t, err)

	// 无密码用户不能走密码登录
	_, err = ValidatePassword("dave@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestFindByIDNotFound(t *testing.T) {
	useTestDB(t)

	u, err := FindByID("missing")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestExistsFallsBackToDatabase(t *testing.T) {
	useTestDB(t)

	created, err := CreateUser("erin@example.com", "s3cret", "erin")
	require.NoError(t, err)

	ok, err := Exists(created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindOrCreateGoogleUser(t *testing.T) {
	useTestDB(t)

	// 全新Google用户
	first, err := FindOrCreateGoogleUser("frank@example.com", "google-f", "frank")
	require.NoError(t, err)
	require.NotNil(t, first.GoogleID)
	assert.Nil(t, first.PasswordHash)

	// 再次登录命中同一用户
	again, err := FindOrCreateGoogleUser("frank@example.com", "google-f", "frank")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestFindOrCreateGoogleUserBindsExistingEmail(t *testing.T) {
	useTestDB(t)

	created, err := CreateUser("grace@example.com", "s3cret", "grace")
	require.NoError(t, err)

	bound, err := FindOrCreateGoogleUser("grace@example.com", "google-g", "grace")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bound.ID)
	require.NotNil(t, bound.GoogleID)
	assert.Equal(t, "google-g", *bound.GoogleID)

	// 绑定后原密码仍然有效
	_, err = ValidatePassword("grace@example.com", "s3cret")
	assert.NoError(t, err)
}
