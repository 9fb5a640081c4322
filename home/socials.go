package home

import (
	"github.com/disgoorg/disgo/discord"

	"github.com/leeineian/snailbot/reply"
)

func socialsCommand() discord.SlashCommandCreate {
	return discord.SlashCommandCreate{
		Name:                     "socials",
		Description:              "Get our social media links",
		DefaultMemberPermissions: everyone(),
	}
}

func (h *Handlers) socials(it interaction) error {
	return it.Respond(reply.NewSocials())
}
