package home

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"

	"github.com/leeineian/snailbot/catalog"
	"github.com/leeineian/snailbot/reply"
	"github.com/leeineian/snailbot/session"
	"github.com/leeineian/snailbot/sys"
)

func searchCommand() discord.SlashCommandCreate {
	return discord.SlashCommandCreate{
		Name:                     "search",
		Description:              "Search for an object",
		DefaultMemberPermissions: everyone(),
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionString{
				Name:        "query",
				Description: "The name to search for",
				Required:    true,
			},
		},
	}
}

func (h *Handlers) search(ctx context.Context, it interaction, query string) error {
	match := h.Catalog.Resolve(query)
	sys.LogSearch(MsgSearchQuery, it.UserID(), query, match.Kind)

	switch match.Kind {
	case catalog.DirectMatch:
		return it.Respond(reply.NewDirectAnswer(*match.Direct))
	case catalog.GroupMatch:
		return h.prompt(ctx, it, *match.Group)
	default:
		return it.Respond(reply.NotFound{Query: query})
	}
}

// prompt posts the option buttons and waits for the invoking user's click.
func (h *Handlers) prompt(ctx context.Context, it interaction, group catalog.OptionGroup) error {
	release := h.Sessions.Expect(it.UserID())
	defer release()

	if err := it.Respond(reply.NewChoicePrompt(group)); err != nil {
		return err
	}

	promptID, err := it.ResponseID(ctx)
	if err != nil {
		withdraw(ctx, it, len(group.Options))
		return fmt.Errorf(MsgSearchPromptLookupFail, err)
	}

	if _, err := h.Sessions.Open(it.UserID(), promptID, group.Options, it.Prompt()); err != nil {
		withdraw(ctx, it, len(group.Options))
		return fmt.Errorf(MsgSearchSessionFail, promptID, err)
	}
	return nil
}

// withdraw disables and deletes a posted prompt that has no session behind it.
func withdraw(ctx context.Context, it interaction, count int) {
	p := it.Prompt()
	if err := p.Edit(ctx, reply.ExpiredPrompt(count).MessageUpdate()); err != nil {
		sys.LogWarn(MsgSearchWithdrawEditFail, err)
	}
	if err := p.Delete(ctx); err != nil {
		sys.LogWarn(MsgSearchWithdrawDeleteFail, err)
	}
}

func (h *Handlers) onOptionClick(ctx context.Context, event *events.ComponentInteractionCreate) error {
	_, isButton := event.Data.(discord.ButtonInteractionData)
	_, err := h.Sessions.Click(ctx, session.Click{
		UserID:    event.User().ID,
		MessageID: event.Message.ID,
		CustomID:  event.Data.CustomID(),
		Button:    isButton,
		Respond: func(payload reply.Payload) error {
			return event.CreateMessage(payload.MessageCreate())
		},
	})
	return err
}
