package home

import (
	"context"
	"errors"

	"github.com/disgoorg/disgo/discord"

	"github.com/leeineian/snailbot/catalog"
	"github.com/leeineian/snailbot/reply"
	"github.com/leeineian/snailbot/sys"
)

func snailsCommand() discord.SlashCommandCreate {
	return discord.SlashCommandCreate{
		Name:                     "snails",
		Description:              "Get a random snail fact",
		DefaultMemberPermissions: everyone(),
	}
}

// snails posts a public fact. The reply is deferred first so the fact
// replaces the "thinking" state in place.
func (h *Handlers) snails(ctx context.Context, it interaction) error {
	if err := it.Defer(false); err != nil {
		return err
	}

	fact, err := h.Catalog.PickFact()
	if errors.Is(err, catalog.ErrNoFacts) {
		sys.LogCatalog(MsgSnailsNoFacts)
		return it.FollowUp(ctx, reply.FactUnavailable())
	}
	if err != nil {
		return err
	}

	return it.EditResponse(ctx, reply.Fact{Text: fact}.MessageUpdate())
}
