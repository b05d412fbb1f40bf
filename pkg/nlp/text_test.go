package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello world"},
		{"  what's  UP?? ", "what s up"},
		{"", ""},
		{"---", ""},
		{"Go1.25 rocks", "go1 25 rocks"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestContainsPhrase(t *testing.T) {
	text := Normalize("Can we schedule a call tomorrow?")

	assert.True(t, ContainsPhrase(text, "schedule a call"))
	assert.True(t, ContainsPhrase(text, "call"))
	assert.False(t, ContainsPhrase(text, "calling"))
	assert.False(t, ContainsPhrase(Normalize("I was calling earlier"), "call"))
	assert.False(t, ContainsPhrase(text, ""))
}

func TestTokens(t *testing.T) {
	got := Tokens(Normalize("go go gadget"))

	assert.Len(t, got, 2)
	assert.Contains(t, got, "go")
	assert.Contains(t, got, "gadget")
	assert.Empty(t, Tokens(""))
}
