package sys

// --- Message Constants ---

const (
	// --- Infrastructure & Lifecycle ---
	MsgConfigFailedToLoad = "Failed to load config: %v"
	MsgConfigMissingToken = "DISCORD_TOKEN is not set in .env file"
	MsgConfigBadGuildID   = "invalid GUILD_ID %q: must be a valid Snowflake"
	MsgBotStarting        = "Starting %s..."
	MsgBotLogFile         = "Writing logs to %s"
	MsgBotReady           = "%s is ready! (ID: %s) (PID: %d) (Took: %dms)"
	MsgBotShutdown        = "Shutting down %s..."
	MsgBotKillingOld      = "Killing running instance... (PID: %d)"
	MsgBotStubborn        = "Old process %d is stubborn. Sending SIGKILL..."
	MsgBotOldTerminated   = "Old instance terminated."
	MsgBotPIDOpenFail     = "failed to open PID file: %w"
	MsgBotPIDLockFail     = "failed to lock PID file: %w"
	MsgBotPIDWriteFail    = "failed to write PID file: %w"
	MsgBotRegisterFail    = "Command registration failed: %v"
	MsgBotGatewayFail     = "failed to open gateway: %w"
	MsgBotClientFail      = "failed to create Discord client: %w"
	MsgGenericError       = "%v"

	// --- Command Loader & Registry ---
	MsgLoaderSyncCommands       = "Syncing %s commands..."
	MsgLoaderSkipped            = "Skipping command registration."
	MsgLoaderDevStarting        = "[DEV] Registering commands to guild: %s"
	MsgLoaderDevRegistered      = "[DEV] Registered: %s"
	MsgLoaderDevFail            = "[DEV] guild registration failed: %w"
	MsgLoaderDevGlobalClear     = "[DEV] Clearing stale global commands..."
	MsgLoaderDevGlobalClearFail = "[DEV] Global clear skipped (likely rate limited): %v"
	MsgLoaderProdStarting       = "[PROD] Registering commands globally..."
	MsgLoaderProdRegistered     = "[PROD] Registered: %s"
	MsgLoaderProdFail           = "[PROD] global registration failed: %w"
	MsgLoaderScanStarting       = "[SCAN] Checking all guilds for ghost commands..."
	MsgLoaderScanListFail       = "[SCAN] Could not list guilds: %v"
	MsgLoaderScanCleared        = "[SCAN] Cleared ghost commands from: %s (%s)"
	MsgLoaderScanClearFail      = "[SCAN] Failed to clear %s (%s): %v"
	MsgLoaderPanicRecovered     = "Panic recovered in handler: %v"
	MsgLoaderDuplicateCommand   = "Command %q registered twice, keeping the latest handler"

	// --- Interaction Routing ---
	MsgRouterCommandFail   = "Command /%s failed: %v"
	MsgRouterComponentFail = "Component %s failed: %v"
	MsgRouterApologyFail   = "Failed to send error reply for /%s: %v"
	MsgRouterHandlerPanic  = "panic: %v"
)
