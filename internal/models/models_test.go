package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	var user User
	require.NoError(t, user.SetPassword("correct horse battery staple"))

	assert.NotEqual(t, "correct horse battery staple", user.PasswordHash)
	assert.True(t, user.CheckPassword("correct horse battery staple"))
	assert.False(t, user.CheckPassword("wrong password"))
}

func TestValidDifficulty(t *testing.T) {
	assert.True(t, ValidDifficulty(DifficultyEasy))
	assert.True(t, ValidDifficulty(DifficultyMedium))
	assert.True(t, ValidDifficulty(DifficultyHard))
	assert.False(t, ValidDifficulty("extreme"))
	assert.False(t, ValidDifficulty(""))
}

func TestValidQuestionType(t *testing.T) {
	assert.True(t, ValidQuestionType(QuestionFreeResponse))
	assert.True(t, ValidQuestionType(QuestionMCQ))
	assert.True(t, ValidQuestionType(QuestionTrueFalse))
	assert.False(t, ValidQuestionType("essay"))
}

func TestStringListScan(t *testing.T) {
	var list StringList
	require.NoError(t, list.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringList{"a", "b"}, list)

	require.NoError(t, list.Scan(`["c"]`))
	assert.Equal(t, StringList{"c"}, list)

	require.NoError(t, list.Scan(nil))
	assert.Nil(t, list)

	assert.Error(t, list.Scan(42))
}

func TestStringListValue(t *testing.T) {
	value, err := StringList{"x", "y"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["x","y"]`, string(value.([]byte)))

	// nil slices serialize as an empty array, not null
	value, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(value.([]byte)))
}

func TestSessionAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		correct   int
		incorrect int
		want      float64
	}{
		{name: "no answers", want: 0},
		{name: "all correct", correct: 5, want: 100},
		{name: "half correct", correct: 2, incorrect: 2, want: 50},
		{name: "two thirds", correct: 2, incorrect: 1, want: 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := StudySession{CorrectAnswers: tt.correct, IncorrectAnswers: tt.incorrect}
			assert.InDelta(t, tt.want, session.Accuracy(), 0.001)
		})
	}
}
