package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Parse(t *testing.T) {
	r := NewRouter("ledger")

	tests := []struct {
		name     string
		message  string
		wantOK   bool
		wantName string
		wantArgs []string
	}{
		{name: "not for the bot", message: "hello there", wantOK: false},
		{name: "bare prefix is help", message: "ledger", wantOK: true, wantName: "help"},
		{name: "simple command", message: "ledger dkp Aeris", wantOK: true, wantName: "dkp", wantArgs: []string{"Aeris"}},
		{name: "quoted argument", message: `ledger attend Aeris Naxxramas 25 "10/02/2024 19:30"`, wantOK: true, wantName: "attend", wantArgs: []string{"Aeris", "Naxxramas", "25", "10/02/2024 19:30"}},
		{name: "extra whitespace", message: "ledger   char   list", wantOK: true, wantName: "char", wantArgs: []string{"list"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := r.Parse(tt.message)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantName, cmd.Name)
			assert.Equal(t, tt.wantArgs, cmd.Args)
		})
	}
}

func TestRouter_Dispatch(t *testing.T) {
	r := NewRouter("ledger")
	var got Command
	r.Register("echo", "echo <text>", "Echo the first argument", func(_ context.Context, cmd Command) []Response {
		got = cmd
		return []Response{Textf("echo: %s", cmd.Args[0])}
	})

	cmd, ok := r.Parse("ledger echo hello")
	require.True(t, ok)
	responses := r.Dispatch(context.Background(), cmd)

	require.Len(t, responses, 1)
	assert.Equal(t, Text("echo: hello"), responses[0])
	assert.Equal(t, []string{"hello"}, got.Args)
}

func TestRouter_DispatchUnknownCommand(t *testing.T) {
	r := NewRouter("ledger")
	cmd, ok := r.Parse("ledger conjure")
	require.True(t, ok)

	responses := r.Dispatch(context.Background(), cmd)
	require.Len(t, responses, 1)
	assert.Contains(t, string(responses[0].(Text)), "not recognised")
}

func TestRouter_Help(t *testing.T) {
	r := NewRouter("ledger")
	r.Register("dkp", "dkp [character]", "Show a character's DKP balance", func(context.Context, Command) []Response { return nil })

	cmd, _ := r.Parse("ledger help")
	responses := r.Dispatch(context.Background(), cmd)
	require.Len(t, responses, 1)

	embed, ok := responses[0].(Embed)
	require.True(t, ok)
	require.Len(t, embed.Fields, 2) // dkp + help itself
	assert.Equal(t, "`ledger dkp [character]`", embed.Fields[0].Name)
}
