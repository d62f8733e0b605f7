package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const botUsername = "smc_bot"

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{name: "plain command", text: "/start", want: "start", wantOK: true},
		{name: "command with arguments", text: "/echo hello world", want: "echo", wantOK: true},
		{name: "command addressed to us", text: "/help@smc_bot", want: "help", wantOK: true},
		{name: "addressed to us with arguments", text: "/help@smc_bot topic", want: "help", wantOK: true},
		{name: "case is preserved", text: "/Start", want: "Start", wantOK: true},
		{name: "punctuation is part of command", text: "/set_lang-ru", want: "set_lang-ru", wantOK: true},
		{name: "newline ends command", text: "/start\nsecond line", want: "start", wantOK: true},
		{name: "empty text", text: "", wantOK: false},
		{name: "no prefix", text: "start", wantOK: false},
		{name: "prefix in the middle", text: "hello /start", wantOK: false},
		{name: "lone prefix", text: "/", wantOK: false},
		{name: "lone prefix with space", text: "/ start", wantOK: false},
		{name: "other bot", text: "/start@other_bot", wantOK: false},
		{name: "bot name case differs", text: "/start@SMC_bot", wantOK: false},
		{name: "empty bot name", text: "/start@", wantOK: false},
		{name: "only bot suffix", text: "/@smc_bot", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.text, botUsername)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLength(t *testing.T) {
	assert.Equal(t, 0, Length(""))
	assert.Equal(t, 0, Length("text"))
	assert.Equal(t, 1, Length("/"))
	assert.Equal(t, 6, Length("/start"))
	assert.Equal(t, 6, Length("/start args"))
	assert.Equal(t, 14, Length("/start@smc_bot"))
	assert.Equal(t, 5, Length("/echoпривет"))
}

func TestTextWithoutCommand(t *testing.T) {
	assert.Equal(t, "", TextWithoutCommand("/start"))
	assert.Equal(t, " hello world", TextWithoutCommand("/echo hello world"))
	assert.Equal(t, " x", TextWithoutCommand("/echo@smc_bot x"))
	assert.Equal(t, "", TextWithoutCommand("no command here"))
	assert.Equal(t, "", TextWithoutCommand(""))
}

func FuzzParse(f *testing.F) {
	f.Add("/start")
	f.Add("/start@smc_bot args")
	f.Add("/")
	f.Add("")
	f.Fuzz(func(t *testing.T, text string) {
		token, ok := Parse(text, botUsername)
		if !ok {
			assert.Empty(t, token)
			return
		}
		assert.NotEmpty(t, token)
		assert.NotContains(t, token, " ")
		assert.Equal(t, byte(Prefix), text[0])
	})
}
