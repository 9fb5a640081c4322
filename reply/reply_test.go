package reply

import (
	"strings"
	"testing"

	"github.com/disgoorg/disgo/discord"

	"github.com/leeineian/snailbot/catalog"
)

func TestDirectAnswer(t *testing.T) {
	d := NewDirectAnswer(catalog.DirectEntry{Name: "Rock", URL: "https://example.com/rock", Thumbnail: "https://example.com/rock.png"})

	want := "You selected: **Rock**.\n[Click here to visit](https://example.com/rock)"
	if got := d.Content(); got != want {
		t.Fatalf("Content() = %q, want %q", got, want)
	}

	embed := d.Embed()
	if embed.Title != "Rock" || embed.URL != "https://example.com/rock" {
		t.Errorf("embed = %+v", embed)
	}
	if embed.Image == nil || embed.Image.URL != "https://example.com/rock.png" {
		t.Errorf("embed image = %+v, want thumbnail", embed.Image)
	}

	msg := d.MessageCreate()
	if msg.Content != want {
		t.Errorf("MessageCreate content = %q", msg.Content)
	}
	if !msg.Flags.Has(discord.MessageFlagEphemeral) {
		t.Error("direct answer is not ephemeral")
	}
	if len(msg.Embeds) != 1 {
		t.Errorf("got %d embeds, want 1", len(msg.Embeds))
	}
	if len(msg.Components) != 0 {
		t.Errorf("direct answer has %d component rows", len(msg.Components))
	}
}

func TestSelectionAnswerWithoutURL(t *testing.T) {
	d := NewSelectionAnswer(catalog.OptionEntry{Name: "Beanie"})

	want := "You selected: **Beanie**.\nNo URL available."
	if got := d.Content(); got != want {
		t.Fatalf("Content() = %q, want %q", got, want)
	}
	embed := d.Embed()
	if embed.URL != "" || embed.Image != nil {
		t.Errorf("embed = %+v, want title only", embed)
	}
}

func TestChoicePrompt(t *testing.T) {
	group := catalog.OptionGroup{Name: "Hat", Options: []catalog.OptionEntry{
		{Name: "Top Hat", URL: "a"},
		{Name: "Cowboy Hat", URL: "b"},
		{Name: "Beanie"},
	}}
	p := NewChoicePrompt(group)

	buttons := p.Buttons()
	if len(buttons) != 3 {
		t.Fatalf("got %d buttons, want 3", len(buttons))
	}
	for i, b := range buttons {
		if b.Label != group.Options[i].Name {
			t.Errorf("button %d label = %q, want %q", i, b.Label, group.Options[i].Name)
		}
		if b.Style != discord.ButtonStylePrimary || b.Disabled {
			t.Errorf("button %d = %+v, want enabled primary", i, b)
		}
		idx, ok := ParseOptionIndex(b.CustomID)
		if !ok || idx != i {
			t.Errorf("button %d custom ID %q parsed to (%d, %v)", i, b.CustomID, idx, ok)
		}
	}

	msg := p.MessageCreate()
	if msg.Content != MsgChoosePrompt {
		t.Errorf("content = %q", msg.Content)
	}
	if !msg.Flags.Has(discord.MessageFlagEphemeral) {
		t.Error("choice prompt is not ephemeral")
	}
	if len(msg.Components) != 1 {
		t.Errorf("got %d component rows, want 1", len(msg.Components))
	}
}

func TestNotFound(t *testing.T) {
	got := NotFound{Query: "Unicorn"}.Content()
	if got != `No matching object found for "Unicorn".` {
		t.Fatalf("Content() = %q", got)
	}
}

func TestSocials(t *testing.T) {
	s := NewSocials()
	buttons := s.Buttons()
	if len(buttons) != 4 {
		t.Fatalf("got %d buttons, want 4", len(buttons))
	}
	for i, b := range buttons {
		l := DefaultSocialLinks[i]
		if b.Style != discord.ButtonStyleLink || b.URL != l.URL || b.CustomID != "" {
			t.Errorf("button %d = %+v, want link to %s", i, b, l.URL)
		}
		if !strings.HasPrefix(b.Label, l.Emoji+" ") || !strings.HasSuffix(b.Label, l.Name) {
			t.Errorf("button %d label = %q", i, b.Label)
		}
	}
	if !s.MessageCreate().Flags.Has(discord.MessageFlagEphemeral) {
		t.Error("socials reply is not ephemeral")
	}
}

func TestFactIsPublic(t *testing.T) {
	f := Fact{Text: "🐌 did you know? slow"}
	if f.Ephemeral() || f.MessageCreate().Flags.Has(discord.MessageFlagEphemeral) {
		t.Fatal("fact reply should be public")
	}
	upd := f.MessageUpdate()
	if upd.Content == nil || *upd.Content != f.Text {
		t.Fatalf("MessageUpdate content = %v", upd.Content)
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	for _, cmd := range []string{"/help", "/snails", "/search", "/socials"} {
		if !strings.Contains(Help{}.Content(), cmd) {
			t.Errorf("help text missing %s", cmd)
		}
	}
}

func TestTimeoutNoticeMentionsOwner(t *testing.T) {
	n := TimeoutNotice{Owner: 123456789012345678}
	if !strings.Contains(n.Content(), "<@123456789012345678>") {
		t.Fatalf("Content() = %q, want owner mention", n.Content())
	}
	if !n.Ephemeral() {
		t.Fatal("timeout notice should be ephemeral")
	}
}

func TestDisabledPrompt(t *testing.T) {
	for _, tt := range []struct {
		prompt DisabledPrompt
		text   string
	}{
		{ResolvedPrompt(3), MsgPromptResolved},
		{ExpiredPrompt(2), MsgPromptExpired},
	} {
		buttons := tt.prompt.Buttons()
		if len(buttons) != tt.prompt.Count {
			t.Fatalf("got %d buttons, want %d", len(buttons), tt.prompt.Count)
		}
		for i, b := range buttons {
			if b.Label != MsgOptionDisabled || !b.Disabled || b.Style != discord.ButtonStyleSecondary {
				t.Errorf("button %d = %+v", i, b)
			}
			if _, ok := ParseOptionIndex(b.CustomID); ok {
				t.Errorf("disabled button %d custom ID %q parses as an option", i, b.CustomID)
			}
		}

		upd := tt.prompt.MessageUpdate()
		if upd.Content == nil || *upd.Content != tt.text {
			t.Errorf("update content = %v, want %q", upd.Content, tt.text)
		}
		if upd.Components == nil || len(*upd.Components) != 1 {
			t.Errorf("update components = %v, want one row", upd.Components)
		}
	}
}

func TestParseOptionIndex(t *testing.T) {
	tests := []struct {
		id   string
		want int
		ok   bool
	}{
		{"search:option:1", 0, true},
		{"search:option:5", 4, true},
		{"search:option:0", 0, false},
		{"search:option:-2", 0, false},
		{"search:option:x", 0, false},
		{"search:disabled:1", 0, false},
		{"option_1", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseOptionIndex(tt.id)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseOptionIndex(%q) = (%d, %v), want (%d, %v)", tt.id, got, ok, tt.want, tt.ok)
		}
	}
}
