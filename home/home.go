// Package home holds the slash commands users see.
package home

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/omit"
	"github.com/disgoorg/snowflake/v2"

	"github.com/leeineian/snailbot/catalog"
	"github.com/leeineian/snailbot/reply"
	"github.com/leeineian/snailbot/session"
	"github.com/leeineian/snailbot/sys"
)

// Handlers answers the bot's commands from one catalog.
type Handlers struct {
	Catalog  *catalog.Catalog
	Sessions *session.Registry
}

// Register adds every command and the search prompt buttons to r.
func Register(r *sys.Router, h *Handlers) {
	r.RegisterCommand(helpCommand(), func(ctx context.Context, event *events.ApplicationCommandInteractionCreate) error {
		return h.help(newCommandInteraction(event))
	})
	r.RegisterCommand(socialsCommand(), func(ctx context.Context, event *events.ApplicationCommandInteractionCreate) error {
		return h.socials(newCommandInteraction(event))
	})
	r.RegisterCommand(snailsCommand(), func(ctx context.Context, event *events.ApplicationCommandInteractionCreate) error {
		return h.snails(ctx, newCommandInteraction(event))
	})
	r.RegisterCommand(searchCommand(), func(ctx context.Context, event *events.ApplicationCommandInteractionCreate) error {
		query := event.SlashCommandInteractionData().String("query")
		return h.search(ctx, newCommandInteraction(event), query)
	})
	r.RegisterComponentHandler(reply.ComponentPrefix, h.onOptionClick)
}

// everyone keeps a command visible to every member allowed to use application commands.
func everyone() omit.Omit[*discord.Permissions] {
	perm := discord.PermissionUseApplicationCommands
	return omit.New(&perm)
}

// interaction is the part of a slash command interaction the handlers use.
type interaction interface {
	UserID() snowflake.ID
	Respond(payload reply.Payload) error
	Defer(ephemeral bool) error
	EditResponse(ctx context.Context, update discord.MessageUpdate) error
	FollowUp(ctx context.Context, payload reply.Payload) error
	ResponseID(ctx context.Context) (snowflake.ID, error)
	Prompt() session.Prompt
}

type commandInteraction struct {
	event  *events.ApplicationCommandInteractionCreate
	prompt sys.InteractionPrompt
}

func newCommandInteraction(event *events.ApplicationCommandInteractionCreate) commandInteraction {
	return commandInteraction{
		event: event,
		prompt: sys.InteractionPrompt{
			Rest:          event.Client().Rest,
			ApplicationID: event.ApplicationID(),
			Token:         event.Token(),
		},
	}
}

func (c commandInteraction) UserID() snowflake.ID       { return c.event.User().ID }
func (c commandInteraction) Defer(ephemeral bool) error { return c.event.DeferCreateMessage(ephemeral) }
func (c commandInteraction) Prompt() session.Prompt     { return c.prompt }

func (c commandInteraction) Respond(payload reply.Payload) error {
	return c.event.CreateMessage(payload.MessageCreate())
}

func (c commandInteraction) EditResponse(ctx context.Context, update discord.MessageUpdate) error {
	return c.prompt.Edit(ctx, update)
}

func (c commandInteraction) FollowUp(ctx context.Context, payload reply.Payload) error {
	return c.prompt.FollowUp(ctx, payload)
}

func (c commandInteraction) ResponseID(ctx context.Context) (snowflake.ID, error) {
	return c.prompt.MessageID(ctx)
}
