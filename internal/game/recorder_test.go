package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSessionPersistsSessionAndChoices(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db)
	s := seedSet(t, db, u.ID)
	alice := seedCharacter(t, db, s.ID, "alice")
	bob := seedCharacter(t, db, s.ID, "bob")

	// 同一角色出现两次是允许的
	result, err := svc.RecordSession(&u.ID, []ChoiceInput{
		{CharacterID: alice.ID, Type: ChoiceFuck},
		{CharacterID: bob.ID, Type: ChoiceMarry},
		{CharacterID: alice.ID, Type: ChoiceKill},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.SessionID)
	assert.False(t, result.CreatedAt.IsZero())
	require.Len(t, result.Choices, 3)
	assert.Equal(t, alice.ID, result.Choices[0].Character.ID)
	assert.Equal(t, "alice", result.Choices[0].Character.Name)
	assert.Equal(t, alice.ImageUrl, result.Choices[0].Character.ImageUrl)
	assert.Equal(t, ChoiceMarry, result.Choices[1].Type)

	assert.EqualValues(t, 1, countRows(t, db, &Session{}))
	assert.EqualValues(t, 3, countRows(t, db, &Choice{}))

	var persisted Session
	require.NoError(t, db.First(&persisted, "id = ?", result.SessionID).Error)
	require.NotNil(t, persisted.UserID)
	assert.Equal(t, u.ID, *persisted.UserID)
}

func TestRecordSessionUserNotFound(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db)
	s := seedSet(t, db, u.ID)
	ch := seedCharacter(t, db, s.ID, "alice")

	missing := "does-not-exist"
	_, err := svc.RecordSession(&missing, []ChoiceInput{
		{CharacterID: ch.ID, Type: ChoiceFuck},
	})
	require.ErrorIs(t, err, ErrUserNotFound)

	// 前置检查失败时零行写入
	assert.EqualValues(t, 0, countRows(t, db, &Session{}))
	assert.EqualValues(t, 0, countRows(t, db, &Choice{}))
	assert.EqualValues(t, 0, countRows(t, db, &CharacterStats{}))
}

func TestRecordSessionCharacterNotFound(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db)
	s := seedSet(t, db, u.ID)
	ch := seedCharacter(t, db, s.ID, "alice")

	// 批次中其他选择合法也不允许部分保存
	_, err := svc.RecordSession(&u.ID, []ChoiceInput{
		{CharacterID: ch.ID, Type: ChoiceFuck},
		{CharacterID: "ghost", Type: ChoiceKill},
	})
	require.ErrorIs(t, err, ErrCharacterNotFound)

	assert.EqualValues(t, 0, countRows(t, db, &Session{}))
	assert.EqualValues(t, 0, countRows(t, db, &Choice{}))
	assert.EqualValues(t, 0, countRows(t, db, &CharacterStats{}))
}

func TestRecordSessionAnonymous(t *testing.T) {
	svc, db := newTestService(t)
	s := seedSet(t, db, "someone")
	a := seedCharacter(t, db, s.ID, "alice")
	b := seedCharacter(t, db, s.ID, "bob")

	// 数据库中没有任何用户，匿名路径不做用户存在性检查
	result, err := svc.RecordSession(nil, []ChoiceInput{
		{CharacterID: a.ID, Type: ChoiceFuck},
		{CharacterID: b.ID, Type: ChoiceKill},
	})
	require.NoError(t, err)
	assert.Len(t, result.Choices, 2)

	var persisted Session
	require.NoError(t, db.First(&persisted, "id = ?", result.SessionID).Error)
	assert.Nil(t, persisted.UserID)
}

func TestRecordSessionEmptyChoices(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db)

	result, err := svc.RecordSession(&u.ID, []ChoiceInput{})
	require.NoError(t, err)
	assert.Empty(t, result.Choices)

	assert.EqualValues(t, 1, countRows(t, db, &Session{}))
	assert.EqualValues(t, 0, countRows(t, db, &Choice{}))
	// 空会话不触发任何统计更新
	assert.EqualValues(t, 0, countRows(t, db, &CharacterStats{}))
}

func TestRecordSessionInvalidChoiceType(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db)
	s := seedSet(t, db, u.ID)
	ch := seedCharacter(t, db, s.ID, "alice")

	_, err := svc.RecordSession(&u.ID, []ChoiceInput{
		{CharacterID: ch.ID, Type: ChoiceType("HUG")},
	})
	require.ErrorIs(t, err, ErrInvalidChoiceType)
	assert.EqualValues(t, 0, countRows(t, db, &Session{}))
}

func TestRecordSessionUpdatesStats(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db)
	s := seedSet(t, db, u.ID)
	a := seedCharacter(t, db, s.ID, "alice")
	b := seedCharacter(t, db, s.ID, "bob")

	_, err := svc.RecordSession(&u.ID, []ChoiceInput{
		{CharacterID: a.ID, Type: ChoiceFuck},
		{CharacterID: a.ID, Type: ChoiceFuck},
		{CharacterID: b.ID, Type: ChoiceKill},
	})
	require.NoError(t, err)

	var statsA CharacterStats
	require.NoError(t, db.First(&statsA, "character_id = ?", a.ID).Error)
	assert.Equal(t, 2, statsA.FuckCount)
	assert.Equal(t, 0, statsA.MarryCount)
	assert.Equal(t, 0, statsA.KillCount)

	var statsB CharacterStats
	require.NoError(t, db.First(&statsB, "character_id = ?", b.ID).Error)
	assert.Equal(t, 1, statsB.KillCount)
}
