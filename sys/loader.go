package sys

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/time/rate"

	"github.com/leeineian/snailbot/reply"
)

// safeGo runs a function in a new goroutine with panic recovery
func safeGo(f func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				LogError(MsgLoaderPanicRecovered, r)
				LogDebug("%s", debug.Stack())
			}
		}()
		f()
	}()
}

var StartupTime = time.Now()

// CommandHandler answers one slash command. A returned error is logged and
// the user gets the generic failure reply.
type CommandHandler func(ctx context.Context, event *events.ApplicationCommandInteractionCreate) error

// ComponentHandler answers a message component interaction.
type ComponentHandler func(ctx context.Context, event *events.ComponentInteractionCreate) error

// Router owns the command set and maps interactions to their handlers.
type Router struct {
	ctx               context.Context
	commands          []discord.SlashCommandCreate
	commandHandlers   map[string]CommandHandler
	componentHandlers map[string]ComponentHandler
	prefixes          []string
	spawn             func(func())
}

// NewRouter returns an empty router whose handlers run under ctx.
func NewRouter(ctx context.Context) *Router {
	return &Router{
		ctx:               ctx,
		commandHandlers:   map[string]CommandHandler{},
		componentHandlers: map[string]ComponentHandler{},
		spawn:             safeGo,
	}
}

// --- Command & Handler Registration ---

func (r *Router) RegisterCommand(cmd discord.SlashCommandCreate, handler CommandHandler) {
	name := cmd.Name
	if _, ok := r.commandHandlers[name]; ok {
		LogWarn(MsgLoaderDuplicateCommand, name)
		for i, c := range r.commands {
			if c.Name == name {
				r.commands = append(r.commands[:i], r.commands[i+1:]...)
				break
			}
		}
	}
	r.commands = append(r.commands, cmd)
	r.commandHandlers[name] = handler
}

// RegisterComponentHandler binds a custom ID. IDs ending in ":" also match
// every custom ID that starts with them.
func (r *Router) RegisterComponentHandler(customID string, handler ComponentHandler) {
	if _, ok := r.componentHandlers[customID]; !ok && strings.HasSuffix(customID, ":") {
		r.prefixes = append(r.prefixes, customID)
		sort.Slice(r.prefixes, func(i, j int) bool { return len(r.prefixes[i]) > len(r.prefixes[j]) })
	}
	r.componentHandlers[customID] = handler
}

// Commands returns the command definitions in registration order.
func (r *Router) Commands() []discord.ApplicationCommandCreate {
	cmds := make([]discord.ApplicationCommandCreate, 0, len(r.commands))
	for _, c := range r.commands {
		cmds = append(cmds, c)
	}
	return cmds
}

func (r *Router) CommandHandler(name string) (CommandHandler, bool) {
	h, ok := r.commandHandlers[name]
	return h, ok
}

// ComponentHandler resolves a custom ID: exact match first, then the longest registered prefix.
func (r *Router) ComponentHandler(customID string) (ComponentHandler, bool) {
	if h, ok := r.componentHandlers[customID]; ok {
		return h, true
	}
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(customID, prefix) {
			return r.componentHandlers[prefix], true
		}
	}
	return nil, false
}

// --- Dispatch ---

func (r *Router) onApplicationCommandInteraction(event *events.ApplicationCommandInteractionCreate) {
	name := event.Data.CommandName()
	h, ok := r.CommandHandler(name)
	if !ok {
		return
	}
	r.spawn(func() {
		r.runCommand(name, func(ctx context.Context) error { return h(ctx, event) }, func(payload reply.Payload) error {
			msg := payload.MessageCreate()
			if err := event.CreateMessage(msg); err == nil {
				return nil
			}
			// Already acknowledged, so the apology has to be a follow-up.
			_, err := event.Client().Rest.CreateFollowupMessage(event.ApplicationID(), event.Token(), msg)
			return err
		})
	})
}

func (r *Router) onComponentInteraction(event *events.ComponentInteractionCreate) {
	customID := event.Data.CustomID()
	h, ok := r.ComponentHandler(customID)
	if !ok {
		return
	}
	r.spawn(func() {
		r.runComponent(customID, func(ctx context.Context) error { return h(ctx, event) })
	})
}

// runCommand executes one command handler. Errors and panics both end in
// the generic ephemeral failure reply.
func (r *Router) runCommand(name string, handle func(ctx context.Context) error, respond func(reply.Payload) error) {
	err := r.protect(handle)
	if err == nil {
		return
	}
	LogError(MsgRouterCommandFail, name, err)
	if rerr := respond(reply.GenericFailure()); rerr != nil {
		LogError(MsgRouterApologyFail, name, rerr)
	}
}

func (r *Router) runComponent(customID string, handle func(ctx context.Context) error) {
	if err := r.protect(handle); err != nil {
		LogError(MsgRouterComponentFail, customID, err)
	}
}

func (r *Router) protect(handle func(ctx context.Context) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			LogDebug("%s", debug.Stack())
			err = fmt.Errorf(MsgRouterHandlerPanic, rec)
		}
	}()
	return handle(r.ctx)
}

// --- Bot Initialization ---

// CreateClient creates and configures a disgo client routed through r.
func CreateClient(cfg *Config, r *Router) (*bot.Client, error) {
	client, err := disgo.New(cfg.Token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
				gateway.IntentGuildMessages,
				gateway.IntentMessageContent,
			),
			gateway.WithPresenceOpts(
				gateway.WithPlayingActivity("/search"),
				gateway.WithOnlineStatus(discord.OnlineStatusOnline),
			),
		),
		bot.WithCacheConfigOpts(
			cache.WithCaches(cache.FlagGuilds),
		),
		bot.WithEventListenerFunc(r.onApplicationCommandInteraction),
		bot.WithEventListenerFunc(r.onComponentInteraction),
		bot.WithEventListenerFunc(onReady),
		bot.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, fmt.Errorf(MsgBotClientFail, err)
	}

	return client, nil
}

func onReady(event *events.Ready) {
	botUser := event.User
	duration := time.Since(StartupTime)
	LogInfo(MsgBotReady, botUser.Username, botUser.ID.String(), os.Getpid(), duration.Milliseconds())
}

// --- Command Syncing Logic ---

// RegisterCommands overwrites the command set globally, or in the
// configured guild in development mode. Development mode also clears stale
// global commands. forceScan walks every guild the bot is in and clears
// leftover guild commands.
func RegisterCommands(ctx context.Context, client *bot.Client, cmds []discord.ApplicationCommandCreate, cfg *Config, forceScan bool) error {
	isProduction := !cfg.DevMode()
	currentMode := "guild"
	if isProduction {
		currentMode = "global"
	}

	LogLoader(MsgLoaderSyncCommands, strings.ToUpper(currentMode))

	// 1. Production Mode (Global)
	if isProduction {
		LogLoader(MsgLoaderProdStarting)
		created, err := client.Rest.SetGlobalCommands(client.ApplicationID, cmds, rest.WithCtx(ctx))
		if err != nil {
			return fmt.Errorf(MsgLoaderProdFail, err)
		}
		for _, cmd := range created {
			LogLoader(MsgLoaderProdRegistered, cmd.Name())
		}

		if forceScan {
			clearGhostCommands(ctx, client, 0)
		}
		return nil
	}

	// 2. Development Mode (Guild)
	guildID, err := snowflake.Parse(cfg.GuildID)
	if err != nil {
		return fmt.Errorf(MsgConfigBadGuildID, cfg.GuildID)
	}

	LogLoader(MsgLoaderDevStarting, cfg.GuildID)
	created, err := client.Rest.SetGuildCommands(client.ApplicationID, guildID, cmds, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf(MsgLoaderDevFail, err)
	}
	for _, cmd := range created {
		LogLoader(MsgLoaderDevRegistered, cmd.Name())
	}

	if globals, err := client.Rest.GetGlobalCommands(client.ApplicationID, false, rest.WithCtx(ctx)); err == nil && len(globals) > 0 {
		LogLoader(MsgLoaderDevGlobalClear)
		if _, err := client.Rest.SetGlobalCommands(client.ApplicationID, []discord.ApplicationCommandCreate{}, rest.WithCtx(ctx)); err != nil {
			LogWarn(MsgLoaderDevGlobalClearFail, err)
		}
	}

	if forceScan {
		clearGhostCommands(ctx, client, guildID)
	}
	return nil
}

// clearGhostCommands empties the command list of every guild except keep.
func clearGhostCommands(ctx context.Context, client *bot.Client, keep snowflake.ID) {
	LogLoader(MsgLoaderScanStarting)
	guilds, err := client.Rest.GetCurrentUserGuilds("", 0, 0, 100, false, rest.WithCtx(ctx))
	if err != nil {
		LogWarn(MsgLoaderScanListFail, err)
		return
	}

	limiter := rate.NewLimiter(rate.Limit(4), 10)
	var wg sync.WaitGroup
	for _, g := range guilds {
		if g.ID == keep {
			continue
		}
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		wg.Add(1)
		go func(guild discord.OAuth2Guild) {
			defer wg.Done()
			cmds, err := client.Rest.GetGuildCommands(client.ApplicationID, guild.ID, false, rest.WithCtx(ctx))
			if err != nil || len(cmds) == 0 {
				return
			}
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			if _, err := client.Rest.SetGuildCommands(client.ApplicationID, guild.ID, []discord.ApplicationCommandCreate{}, rest.WithCtx(ctx)); err != nil {
				LogWarn(MsgLoaderScanClearFail, guild.Name, guild.ID.String(), err)
				return
			}
			LogLoader(MsgLoaderScanCleared, guild.Name, guild.ID.String())
		}(g)
	}
	wg.Wait()
}
