package sys

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"

	"github.com/leeineian/snailbot/reply"
)

// InteractionPrompt addresses the original response of an interaction
// through its webhook token. The token stays valid for 15 minutes.
type InteractionPrompt struct {
	Rest          rest.Rest
	ApplicationID snowflake.ID
	Token         string
}

func (p InteractionPrompt) Edit(ctx context.Context, update discord.MessageUpdate) error {
	_, err := p.Rest.UpdateInteractionResponse(p.ApplicationID, p.Token, update, rest.WithCtx(ctx))
	return err
}

func (p InteractionPrompt) Delete(ctx context.Context) error {
	return p.Rest.DeleteInteractionResponse(p.ApplicationID, p.Token, rest.WithCtx(ctx))
}

func (p InteractionPrompt) FollowUp(ctx context.Context, payload reply.Payload) error {
	_, err := p.Rest.CreateFollowupMessage(p.ApplicationID, p.Token, payload.MessageCreate(), rest.WithCtx(ctx))
	return err
}

// MessageID fetches the ID of the original response.
func (p InteractionPrompt) MessageID(ctx context.Context) (snowflake.ID, error) {
	msg, err := p.Rest.GetInteractionResponse(p.ApplicationID, p.Token, rest.WithCtx(ctx))
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}
