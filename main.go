package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leeineian/snailbot/catalog"
	"github.com/leeineian/snailbot/home"
	"github.com/leeineian/snailbot/session"
	"github.com/leeineian/snailbot/sys"
)

func main() {
	// 0. Recover from panics (LogFatal uses panic to ensure defers run)
	defer func() {
		if r := recover(); r != nil {
			if msg, ok := r.(string); ok {
				fmt.Fprintf(os.Stderr, "\n[FATAL] %s\n", msg)
				os.Exit(1)
			}
			panic(r)
		}
	}()

	silent := flag.Bool("silent", false, "Disable all log output")
	skipReg := flag.Bool("skip-reg", false, "Skip command registration")
	clearAll := flag.Bool("clear-all", false, "Force clear guild commands (scan all guilds)")
	dataPath := flag.String("data", "", "Catalog file (.json, .yaml, .db); overrides DATA_PATH")
	flag.Parse()

	// 1. Load configuration
	cfg, err := sys.LoadConfig()
	if err != nil {
		sys.InitLogger(*silent, false)
		sys.LogFatal(sys.MsgConfigFailedToLoad, err)
	}
	if *dataPath != "" {
		cfg.DataPath = *dataPath
	}

	// 2. Initialize Logger (flags win over env)
	sys.InitLogger(*silent || cfg.Silent, cfg.LogToFile)
	sys.LogInfo(sys.MsgBotStarting, sys.GetProjectName())
	if cfg.LogToFile {
		if path := sys.GetLogPath(); path != "" {
			sys.LogInfo(sys.MsgBotLogFile, path)
		}
	}

	// 3. Single instance
	release, err := sys.AcquirePIDLock(sys.PIDFile)
	if err != nil {
		sys.LogFatal(sys.MsgGenericError, err)
	}
	defer release()

	// 4. Run bot (blocks until shutdown signal)
	if err := run(cfg, *silent || cfg.Silent, *skipReg, *clearAll); err != nil {
		sys.LogFatal(sys.MsgGenericError, err)
	}
}

func run(cfg *sys.Config, silent bool, skipReg bool, clearAll bool) error {
	// 1. Setup global context that responds to shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Load the catalog
	cat, err := catalog.Load(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		sys.LogWarn("Catalog has problems:\n%v", err)
	}
	direct, groups, facts := cat.Stats()
	sys.LogCatalog("Loaded %d objects, %d option groups, %d facts", direct, groups, facts)

	// 3. Wire handlers
	sessions := session.NewRegistry(ctx, session.DefaultTimeout)
	defer sessions.Close()

	router := sys.NewRouter(ctx)
	home.Register(router, &home.Handlers{Catalog: cat, Sessions: sessions})

	// 4. Create disgo client
	client, err := sys.CreateClient(cfg, router)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client.Close(closeCtx)
	}()

	// 5. Command Registration
	if !skipReg {
		if err := sys.RegisterCommands(ctx, client, router.Commands(), cfg, clearAll); err != nil {
			sys.LogError(sys.MsgBotRegisterFail, err)
		}
	} else {
		sys.LogLoader(sys.MsgLoaderSkipped)
	}

	// 6. Connect to Gateway
	if err := client.OpenGateway(ctx); err != nil {
		return fmt.Errorf(sys.MsgBotGatewayFail, err)
	}

	<-ctx.Done()
	if !silent {
		fmt.Println()
	}

	if botUser, ok := client.Caches.SelfUser(); ok {
		sys.LogInfo(sys.MsgBotShutdown, botUser.Username)
	} else {
		sys.LogInfo(sys.MsgBotShutdown, sys.GetProjectName())
	}

	return nil
}
