package sys

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"

	"github.com/leeineian/snailbot/reply"
)

func newTestRouter() *Router {
	r := NewRouter(context.Background())
	r.spawn = func(f func()) { f() }
	return r
}

func noopCommand(context.Context, *events.ApplicationCommandInteractionCreate) error { return nil }

func TestRunCommandSendsGenericFailure(t *testing.T) {
	tests := []struct {
		name    string
		handle  func(ctx context.Context) error
		replied bool
	}{
		{"success", func(context.Context) error { return nil }, false},
		{"error", func(context.Context) error { return errors.New("boom") }, true},
		{"panic", func(context.Context) error { panic("nil catalog") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter()
			var sent []reply.Payload
			r.runCommand("search", tt.handle, func(p reply.Payload) error {
				sent = append(sent, p)
				return nil
			})

			if tt.replied != (len(sent) == 1) {
				t.Fatalf("sent %d replies, want replied=%v", len(sent), tt.replied)
			}
			if !tt.replied {
				return
			}
			if sent[0].Kind() != reply.KindFailure {
				t.Errorf("kind = %s, want failure", sent[0].Kind())
			}
			msg := sent[0].MessageCreate()
			if msg.Content != reply.MsgGenericFailure {
				t.Errorf("content = %q", msg.Content)
			}
			if !msg.Flags.Has(discord.MessageFlagEphemeral) {
				t.Error("failure reply should be ephemeral")
			}
		})
	}
}

func TestRunComponentRecoversPanic(t *testing.T) {
	r := newTestRouter()
	r.runComponent("search:option:1", func(context.Context) error { panic("bad index") })
}

func TestComponentHandlerLookup(t *testing.T) {
	r := newTestRouter()
	var hit string
	r.RegisterComponentHandler("search:", func(context.Context, *events.ComponentInteractionCreate) error {
		hit = "prefix"
		return nil
	})
	r.RegisterComponentHandler("search:option:", func(context.Context, *events.ComponentInteractionCreate) error {
		hit = "longer"
		return nil
	})
	r.RegisterComponentHandler("search:help", func(context.Context, *events.ComponentInteractionCreate) error {
		hit = "exact"
		return nil
	})

	tests := []struct {
		customID string
		want     string
	}{
		{"search:help", "exact"},
		{"search:option:2", "longer"},
		{"search:disabled:1", "prefix"},
		{"other:1", ""},
	}
	for _, tt := range tests {
		hit = ""
		h, ok := r.ComponentHandler(tt.customID)
		if ok {
			_ = h(context.Background(), nil)
		}
		if hit != tt.want {
			t.Errorf("%s routed to %q, want %q", tt.customID, hit, tt.want)
		}
	}
}

func TestRegisterCommand(t *testing.T) {
	r := newTestRouter()
	r.RegisterCommand(discord.SlashCommandCreate{Name: "help", Description: "first"}, noopCommand)
	r.RegisterCommand(discord.SlashCommandCreate{Name: "snails", Description: "facts"}, noopCommand)
	r.RegisterCommand(discord.SlashCommandCreate{Name: "help", Description: "second"}, noopCommand)

	cmds := r.Commands()
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}
	last := cmds[1].(discord.SlashCommandCreate)
	if last.Name != "help" || last.Description != "second" {
		t.Errorf("re-registered command = %+v", last)
	}
	if _, ok := r.CommandHandler("unknown"); ok {
		t.Error("unknown commands must not resolve")
	}
}
