package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyChoicesCreatesRowLazily(t *testing.T) {
	svc, db := newTestService(t)
	s := seedSet(t, db, "owner")
	ch := seedCharacter(t, db, s.ID, "alice")

	err := svc.ApplyChoices([]ChoiceInput{
		{CharacterID: ch.ID, Type: ChoiceMarry},
		{CharacterID: ch.ID, Type: ChoiceMarry},
		{CharacterID: ch.ID, Type: ChoiceKill},
	})
	require.NoError(t, err)

	var stats CharacterStats
	require.NoError(t, db.First(&stats, "character_id = ?", ch.ID).Error)
	// 批次中未出现的类型从0开始
	assert.Equal(t, 0, stats.FuckCount)
	assert.Equal(t, 2, stats.MarryCount)
	assert.Equal(t, 1, stats.KillCount)
}

func TestApplyChoicesIncrementsExistingRow(t *testing.T) {
	svc, db := newTestService(t)
	s := seedSet(t, db, "owner")
	ch := seedCharacter(t, db, s.ID, "alice")

	require.NoError(t, db.Create(&CharacterStats{
		ID:          "stats-1",
		CharacterID: ch.ID,
		FuckCount:   5,
		MarryCount:  3,
		KillCount:   2,
	}).Error)

	err := svc.ApplyChoices([]ChoiceInput{
		{CharacterID: ch.ID, Type: ChoiceFuck},
		{CharacterID: ch.ID, Type: ChoiceFuck},
		{CharacterID: ch.ID, Type: ChoiceKill},
	})
	require.NoError(t, err)

	// 合并是递增而不是覆盖
	var stats CharacterStats
	require.NoError(t, db.First(&stats, "character_id = ?", ch.ID).Error)
	assert.Equal(t, 7, stats.FuckCount)
	assert.Equal(t, 3, stats.MarryCount)
	assert.Equal(t, 3, stats.KillCount)

	// 仍然只有一行
	assert.EqualValues(t, 1, countRows(t, db, &CharacterStats{}))
}

func TestApplyChoicesMultipleCharactersIndependent(t *testing.T) {
	svc, db := newTestService(t)
	s := seedSet(t, db, "owner")
	a := seedCharacter(t, db, s.ID, "alice")
	b := seedCharacter(t, db, s.ID, "bob")

	err := svc.ApplyChoices([]ChoiceInput{
		{CharacterID: a.ID, Type: ChoiceFuck},
		{CharacterID: b.ID, Type: ChoiceMarry},
		{CharacterID: a.ID, Type: ChoiceMarry},
	})
	require.NoError(t, err)

	var statsA, statsB CharacterStats
	require.NoError(t, db.First(&statsA, "character_id = ?", a.ID).Error)
	require.NoError(t, db.First(&statsB, "character_id = ?", b.ID).Error)
	assert.Equal(t, 1, statsA.FuckCount)
	assert.Equal(t, 1, statsA.MarryCount)
	assert.Equal(t, 1, statsB.MarryCount)
	assert.Equal(t, 0, statsB.FuckCount)
}

func TestApplyChoicesEmptyBatch(t *testing.T) {
	svc, db := newTestService(t)

	require.NoError(t, svc.ApplyChoices(nil))
	assert.EqualValues(t, 0, countRows(t, db, &CharacterStats{}))
}

func TestMostPopularChoice(t *testing.T) {
	tests := []struct {
		name             string
		fuck, marry, kill int
		want             *ChoiceType
	}{
		{"all zero is absent", 0, 0, 0, nil},
		{"fuck wins two-way tie with marry", 3, 3, 1, choicePtr(ChoiceFuck)},
		{"marry wins two-way tie with kill", 1, 3, 3, choicePtr(ChoiceMarry)},
		{"kill wins outright", 1, 1, 5, choicePtr(ChoiceKill)},
		{"fuck wins three-way tie", 2, 2, 2, choicePtr(ChoiceFuck)},
		{"fuck wins tie with kill", 4, 1, 4, choicePtr(ChoiceFuck)},
		{"marry wins outright", 0, 9, 2, choicePtr(ChoiceMarry)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MostPopularChoice(tt.fuck, tt.marry, tt.kill)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func choicePtr(t ChoiceType) *ChoiceType {
	return &t
}
