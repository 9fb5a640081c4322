package home

import (
	"github.com/disgoorg/disgo/discord"

	"github.com/leeineian/snailbot/reply"
)

func helpCommand() discord.SlashCommandCreate {
	return discord.SlashCommandCreate{
		Name:                     "help",
		Description:              "Get help with using the bot",
		DefaultMemberPermissions: everyone(),
	}
}

func (h *Handlers) help(it interaction) error {
	return it.Respond(reply.Help{})
}
