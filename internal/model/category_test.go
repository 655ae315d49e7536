package model

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "food", want: "Food"},
		{input: "  groceries  ", want: "Groceries"},
		{input: "EATING OUT", want: "Eating Out"},
		{input: "footwear", want: "Footwear"},
		{input: "  food  court ", want: "Food  Court"},
		{input: "", want: ""},
		{input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.input))
		})
	}
}

func TestNormalizeCategory_Idempotent(t *testing.T) {
	inputs := []string{
		"food", "  Food ", "eating out", "mcdonald's", "CAFÉ crème",
		"x-ray bills", "3d printing", "\tsalary\n", "a  b", "ÉCOLE", "caf\xe9",
	}

	for _, in := range inputs {
		once := NormalizeCategory(in)
		assert.Equal(t, once, NormalizeCategory(once), "input %q", in)
	}
}

func TestNormalizeCategory_InvalidUTF8(t *testing.T) {
	got := NormalizeCategory("caf\xe9 ")

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, NormalizeCategory("caf\uFFFD"), got)
	assert.Contains(t, got, "\uFFFD")
}

func TestFoldCategory(t *testing.T) {
	assert.Equal(t, FoldCategory("FOOD"), FoldCategory("food"))
	assert.Equal(t, FoldCategory("Café"), FoldCategory("CAFÉ"))
}
