package sys

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// --- Globals & Styles ---

var (
	// Level colors
	infoColor  = color.New()
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	fatalColor = color.New(color.FgRed, color.Bold)
	debugColor = color.New(color.FgHiBlack)

	// Component colors
	catalogColor = color.New(color.FgGreen)
	searchColor  = color.New(color.FgMagenta)
	sessionColor = color.New(color.FgHiMagenta)
	loaderColor  = color.New(color.FgBlue)

	// Global state
	DefaultTimeFormat = "15:04:05"
	IsSilent          = false
	LogToFile         = false
	Logger            *slog.Logger

	// Internal state
	logFile *os.File
	logMu   sync.Mutex
)

// LevelFatal sits above slog.LevelError and is only used by LogFatal.
const LevelFatal = slog.LevelError + 4

// --- Initialization ---

func init() {
	InitLogger(false, false)
}

// InitLogger initializes the global structured logger
func InitLogger(silent bool, saveToFile bool) {
	logMu.Lock()
	defer logMu.Unlock()

	IsSilent = silent
	LogToFile = saveToFile
	level := slog.LevelInfo
	if strings.ToLower(os.Getenv("DEBUG")) == "true" {
		level = slog.LevelDebug
	}

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writer io.Writer = os.Stdout
	var err error

	if LogToFile {
		logName := GetProjectName() + ".log"
		logFile, err = os.OpenFile(logName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", logName, err)
		} else {
			writer = io.MultiWriter(os.Stdout, NewStripANSIWriter(logFile))
		}
	}

	handler := NewBotLogHandler(writer, &BotLogHandlerOptions{
		Silent: IsSilent,
		Level:  level,
	})
	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

// --- Public Logging API ---

func LogInfo(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...))
}

func LogWarn(format string, v ...any) {
	slog.Warn(fmt.Sprintf(format, v...))
}

func LogError(format string, v ...any) {
	slog.Error(fmt.Sprintf(format, v...))
}

// LogFatal logs and panics so deferred cleanup still runs. main recovers it.
func LogFatal(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	slog.Log(context.Background(), LevelFatal, msg)
	panic(msg)
}

func LogDebug(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...))
}

// Component Loggers

func LogCatalog(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "catalog"))
}

func LogSearch(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "search"))
}

func LogSession(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "session"))
}

func LogSessionWarn(format string, v ...any) {
	slog.Warn(fmt.Sprintf(format, v...), slog.String("component", "session"))
}

func LogLoader(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "loader"))
}

// --- Log Handler Implementation ---

type BotLogHandlerOptions struct {
	Silent bool
	Level  slog.Leveler
}

type BotLogHandler struct {
	w     io.Writer
	opts  *BotLogHandlerOptions
	mu    *sync.Mutex
	attrs []slog.Attr
}

func NewBotLogHandler(w io.Writer, opts *BotLogHandlerOptions) *BotLogHandler {
	if opts == nil {
		opts = &BotLogHandlerOptions{}
	}
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	return &BotLogHandler{
		w:    w,
		opts: opts,
		mu:   &sync.Mutex{},
	}
}

func (h *BotLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.opts.Silent {
		return false
	}
	return level >= h.opts.Level.Level()
}

func (h *BotLogHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.opts.Silent {
		return nil
	}

	timeStr := time.Now().Format(DefaultTimeFormat)
	levelStr, levelColor := levelStyle(r.Level)

	component := ""
	var extra []string
	collect := func(a slog.Attr) bool {
		if a.Key == "component" {
			component = strings.ToUpper(a.Value.String())
			return true
		}
		extra = append(extra, a.Key+"="+a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	msg := r.Message
	if len(extra) > 0 {
		msg += " " + strings.Join(extra, " ")
	}

	fmt.Fprintf(h.w, "%s", timeStr)

	if component != "" {
		if levelStr != "INFO" {
			fmt.Fprintf(h.w, " %s", levelColor.Sprintf("[%s]", levelStr))
		}
		fmt.Fprintf(h.w, " %s\n", getComponentColor(component).Sprintf("[%s] %s", component, msg))
		return nil
	}

	fmt.Fprintf(h.w, " %s\n", levelColor.Sprintf("[%s] %s", levelStr, msg))
	return nil
}

// WithAttrs keeps the attributes so disgo's sub-loggers still print their context.
func (h *BotLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &nh
}

func (h *BotLogHandler) WithGroup(name string) slog.Handler { return h }

// --- Formatting Helpers ---

func levelStyle(level slog.Level) (string, *color.Color) {
	switch {
	case level >= LevelFatal:
		return "FATAL", fatalColor
	case level >= slog.LevelError:
		return "ERROR", errorColor
	case level >= slog.LevelWarn:
		return "WARN", warnColor
	case level >= slog.LevelInfo:
		return "INFO", infoColor
	default:
		return "DEBUG", debugColor
	}
}

func getComponentColor(name string) *color.Color {
	switch name {
	case "CATALOG":
		return catalogColor
	case "SEARCH":
		return searchColor
	case "SESSION":
		return sessionColor
	case "LOADER":
		return loaderColor
	default:
		return color.New(color.FgCyan)
	}
}

// --- Utilities & State ---

// GetProjectName derives a display name from the executable, falling back to go.mod under `go run`.
func GetProjectName() string {
	exePath, err := os.Executable()
	projectName := "bot"
	if err == nil {
		projectName = filepath.Base(exePath)
		projectName = strings.TrimSuffix(projectName, ".exe")

		if projectName == "main" || strings.HasPrefix(projectName, "go_build_") {
			if modData, err := os.ReadFile("go.mod"); err == nil {
				lines := strings.Split(string(modData), "\n")
				if len(lines) > 0 && strings.HasPrefix(lines[0], "module ") {
					parts := strings.Split(lines[0], "/")
					projectName = strings.TrimSpace(parts[len(parts)-1])
				}
			}
		}
	}
	return projectName
}

// GetLogPath returns the absolute path of the log file, or "" when file logging is off.
func GetLogPath() string {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile == nil {
		return ""
	}
	if path, err := filepath.Abs(logFile.Name()); err == nil {
		return path
	}
	return logFile.Name()
}

// --- ANSI Stripper ---

type StripANSIWriter struct {
	w  io.Writer
	re *regexp.Regexp
}

func NewStripANSIWriter(w io.Writer) *StripANSIWriter {
	return &StripANSIWriter{
		w:  w,
		re: regexp.MustCompile(`\x1b\[[0-9;]*m`),
	}
}

func (s *StripANSIWriter) Write(p []byte) (n int, err error) {
	clean := s.re.ReplaceAll(p, []byte(""))
	_, err = s.w.Write(clean)
	return len(p), err
}
