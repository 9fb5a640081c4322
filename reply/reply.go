// Package reply builds every message the bot sends. Each outcome is its own
// payload type; handlers never assemble disgo messages by hand.
package reply

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/leeineian/snailbot/catalog"
)

// ============================================================================
// Message Constants
// ============================================================================

const (
	MsgSelected        = "You selected: **%s**."
	MsgVisitLink       = "[Click here to visit](%s)"
	MsgNoURL           = "No URL available."
	MsgChoosePrompt    = "Please choose an option from the list below:"
	MsgNotFound        = "No matching object found for \"%s\"."
	MsgSocials         = "Check out our social media links below to stay connected with Snails!"
	MsgOptionDisabled  = "Option Disabled"
	MsgPromptResolved  = "You have selected an option."
	MsgPromptExpired   = "You took too long to respond. The options are now disabled."
	MsgTimeoutNotice   = "Hey <@%d>, looks like you took too long to respond!"
	MsgGenericFailure  = "An error occurred. Please try again later."
	MsgFactUnavailable = "Sorry, I couldn't fetch a snail fact right now. Please try again later."
	MsgHelp            = "**Available Commands:**\n\n" +
		"**/help** - Get help with using the bot\n" +
		"**/snails** - Get a random snail fact\n" +
		"**/search** - Search for an object\n" +
		"**/socials** - Get our social media links"
)

// Kind tags a payload variant.
type Kind int

const (
	KindDirectAnswer Kind = iota
	KindChoicePrompt
	KindNotFound
	KindSocials
	KindFact
	KindHelp
	KindTimeoutNotice
	KindFailure
)

var kindNames = [...]string{"direct answer", "choice prompt", "not found", "socials", "fact", "help", "timeout notice", "failure"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Payload is an outbound message.
type Payload interface {
	Kind() Kind
	Content() string
	Ephemeral() bool
	MessageCreate() discord.MessageCreate
}

// Button is a rendered button before it is turned into a disgo component.
type Button struct {
	Label    string
	CustomID string
	URL      string
	Style    discord.ButtonStyle
	Disabled bool
}

func (b Button) component() discord.InteractiveComponent {
	btn := discord.NewButton(b.Style, b.Label, b.CustomID, b.URL, 0)
	if b.Disabled {
		btn = btn.WithDisabled(true)
	}
	return btn
}

func actionRow(buttons []Button) discord.LayoutComponent {
	components := make([]discord.InteractiveComponent, 0, len(buttons))
	for _, b := range buttons {
		components = append(components, b.component())
	}
	return discord.NewActionRow(components...)
}

func build(content string, ephemeral bool, embeds []discord.Embed, buttons []Button) discord.MessageCreate {
	msg := discord.NewMessageCreate().WithContent(content)
	if ephemeral {
		msg.Flags = msg.Flags.Add(discord.MessageFlagEphemeral)
	}
	if len(embeds) > 0 {
		msg = msg.WithEmbeds(embeds...)
	}
	if len(buttons) > 0 {
		msg = msg.WithComponents(actionRow(buttons))
	}
	return msg
}

// ===========================
// Direct Answer
// ===========================

// DirectAnswer links straight to an entry. URL and Thumbnail may be empty.
type DirectAnswer struct {
	Name      string
	URL       string
	Thumbnail string
}

// NewDirectAnswer answers a direct catalog match.
func NewDirectAnswer(e catalog.DirectEntry) DirectAnswer {
	return DirectAnswer{Name: e.Name, URL: e.URL, Thumbnail: e.Thumbnail}
}

// NewSelectionAnswer answers an option picked from a choice prompt.
func NewSelectionAnswer(o catalog.OptionEntry) DirectAnswer {
	return DirectAnswer{Name: o.Name, URL: o.URL, Thumbnail: o.Thumbnail}
}

func (DirectAnswer) Kind() Kind      { return KindDirectAnswer }
func (DirectAnswer) Ephemeral() bool { return true }

func (d DirectAnswer) Content() string {
	content := fmt.Sprintf(MsgSelected, d.Name) + "\n"
	if d.URL != "" {
		return content + fmt.Sprintf(MsgVisitLink, d.URL)
	}
	return content + MsgNoURL
}

// Embed is the card shown under the answer.
func (d DirectAnswer) Embed() discord.Embed {
	embed := discord.Embed{Title: d.Name, URL: d.URL}
	if d.Thumbnail != "" {
		embed.Image = &discord.EmbedResource{URL: d.Thumbnail}
	}
	return embed
}

func (d DirectAnswer) MessageCreate() discord.MessageCreate {
	return build(d.Content(), true, []discord.Embed{d.Embed()}, nil)
}

// ===========================
// Choice Prompt
// ===========================

// ChoicePrompt asks the user to pick one option of a group.
type ChoicePrompt struct {
	Options []catalog.OptionEntry
}

func NewChoicePrompt(g catalog.OptionGroup) ChoicePrompt {
	return ChoicePrompt{Options: g.Options}
}

func (ChoicePrompt) Kind() Kind      { return KindChoicePrompt }
func (ChoicePrompt) Ephemeral() bool { return true }
func (ChoicePrompt) Content() string { return MsgChoosePrompt }

// Buttons returns one primary button per option, in order.
func (c ChoicePrompt) Buttons() []Button {
	buttons := make([]Button, len(c.Options))
	for i, o := range c.Options {
		buttons[i] = Button{
			Label:    o.Name,
			CustomID: OptionCustomID(i),
			Style:    discord.ButtonStylePrimary,
		}
	}
	return buttons
}

func (c ChoicePrompt) MessageCreate() discord.MessageCreate {
	return build(c.Content(), true, nil, c.Buttons())
}

// ===========================
// Not Found
// ===========================

type NotFound struct {
	Query string
}

func (NotFound) Kind() Kind        { return KindNotFound }
func (NotFound) Ephemeral() bool   { return true }
func (n NotFound) Content() string { return fmt.Sprintf(MsgNotFound, n.Query) }

func (n NotFound) MessageCreate() discord.MessageCreate {
	return build(n.Content(), true, nil, nil)
}

// ===========================
// Socials
// ===========================

// SocialLink is an external page opened directly by a link button.
type SocialLink struct {
	Name  string
	URL   string
	Emoji string
}

// DefaultSocialLinks are the project's public pages.
var DefaultSocialLinks = []SocialLink{
	{Name: "Linktree", URL: "https://linktr.ee/snailsnft", Emoji: "🔗"},
	{Name: "Medium", URL: "https://medium.com/@snailsnft/", Emoji: "📝"},
	{Name: "OmniFlix", URL: "https://omniflix.tv/snails", Emoji: "📺"},
	{Name: "YouTube", URL: "https://www.youtube.com/@SNAILS._/videos", Emoji: "🎥"},
}

type Socials struct {
	Links []SocialLink
}

func NewSocials() Socials {
	return Socials{Links: DefaultSocialLinks}
}

func (Socials) Kind() Kind      { return KindSocials }
func (Socials) Ephemeral() bool { return true }
func (Socials) Content() string { return MsgSocials }

// Buttons returns link buttons; link buttons never produce interactions.
func (s Socials) Buttons() []Button {
	buttons := make([]Button, len(s.Links))
	for i, l := range s.Links {
		buttons[i] = Button{
			Label: l.Emoji + " " + l.Name,
			URL:   l.URL,
			Style: discord.ButtonStyleLink,
		}
	}
	return buttons
}

func (s Socials) MessageCreate() discord.MessageCreate {
	return build(s.Content(), true, nil, s.Buttons())
}

// ===========================
// Fact & Help
// ===========================

// Fact is a templated snail fact, posted publicly.
type Fact struct {
	Text string
}

func (Fact) Kind() Kind        { return KindFact }
func (Fact) Ephemeral() bool   { return false }
func (f Fact) Content() string { return f.Text }

func (f Fact) MessageCreate() discord.MessageCreate {
	return build(f.Content(), false, nil, nil)
}

// MessageUpdate fills a deferred reply with the fact.
func (f Fact) MessageUpdate() discord.MessageUpdate {
	return discord.NewMessageUpdate().WithContent(f.Text)
}

type Help struct{}

func (Help) Kind() Kind      { return KindHelp }
func (Help) Ephemeral() bool { return true }
func (Help) Content() string { return MsgHelp }

func (h Help) MessageCreate() discord.MessageCreate {
	return build(h.Content(), true, nil, nil)
}

// ===========================
// Session & Failure Notices
// ===========================

// TimeoutNotice tells the prompt owner their selection window closed.
type TimeoutNotice struct {
	Owner snowflake.ID
}

func (TimeoutNotice) Kind() Kind        { return KindTimeoutNotice }
func (TimeoutNotice) Ephemeral() bool   { return true }
func (t TimeoutNotice) Content() string { return fmt.Sprintf(MsgTimeoutNotice, t.Owner) }

func (t TimeoutNotice) MessageCreate() discord.MessageCreate {
	return build(t.Content(), true, nil, nil)
}

// Failure is a private apology.
type Failure struct {
	Text string
}

// GenericFailure is what the router sends when a handler fails.
func GenericFailure() Failure { return Failure{Text: MsgGenericFailure} }

// FactUnavailable is sent when no fact can be picked.
func FactUnavailable() Failure { return Failure{Text: MsgFactUnavailable} }

func (Failure) Kind() Kind        { return KindFailure }
func (Failure) Ephemeral() bool   { return true }
func (f Failure) Content() string { return f.Text }

func (f Failure) MessageCreate() discord.MessageCreate {
	return build(f.Content(), true, nil, nil)
}

// DisabledPrompt replaces a choice prompt once it is finished.
type DisabledPrompt struct {
	Count int
	Text  string
}

// ResolvedPrompt is the prompt after the owner picked an option.
func ResolvedPrompt(count int) DisabledPrompt {
	return DisabledPrompt{Count: count, Text: MsgPromptResolved}
}

// ExpiredPrompt is the prompt after the selection window closed.
func ExpiredPrompt(count int) DisabledPrompt {
	return DisabledPrompt{Count: count, Text: MsgPromptExpired}
}

// Buttons returns Count disabled placeholders.
func (d DisabledPrompt) Buttons() []Button {
	buttons := make([]Button, d.Count)
	for i := range buttons {
		buttons[i] = Button{
			Label:    MsgOptionDisabled,
			CustomID: DisabledCustomID(i),
			Style:    discord.ButtonStyleSecondary,
			Disabled: true,
		}
	}
	return buttons
}

func (d DisabledPrompt) MessageUpdate() discord.MessageUpdate {
	upd := discord.NewMessageUpdate().WithContent(d.Text)
	if d.Count > 0 {
		upd = upd.WithComponents(actionRow(d.Buttons()))
	}
	return upd
}
