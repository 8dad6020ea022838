package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tenk"
	"github.com/fwojciec/tenk/analyze"
	"github.com/fwojciec/tenk/fs"
	"github.com/fwojciec/tenk/gemini"
	"github.com/fwojciec/tenk/goldmark"
	"github.com/fwojciec/tenk/goquery"
	"github.com/fwojciec/tenk/htmltomarkdown"
	tenkhttp "github.com/fwojciec/tenk/http"
	"github.com/fwojciec/tenk/openai"
	tenkslog "github.com/fwojciec/tenk/slog"
	"github.com/fwojciec/tenk/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tenk"),
		kong.Description("Extract and summarize sections of SEC 10-K filings."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tenk --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = kongCtx.Selected().Name

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cmd == "sections" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TENK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.Analyses = sqlite.NewAnalysisService(m.DB)

	edgar := tenkhttp.NewClient(cli.UserAgent,
		tenkhttp.WithRate(cli.Rate),
		tenkhttp.WithLogger(func(format string, args ...any) {
			deps.Logger.Warn(fmt.Sprintf(format, args...))
		}),
	)

	deps.Analyzer = &analyze.Analyzer{
		Filings:   tenkslog.NewLoggingFilingService(edgar, deps.Logger),
		Converter: goquery.NewConverter(),
		Analyses:  deps.Analyses,
		Logger:    deps.Logger,
	}

	switch cmd {
	case "filing":
		deps.Markdown = htmltomarkdown.NewConverter()

	case "analyze", "serve":
		if cli.APIKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		speaker, err := newSpeaker(cli, client)
		if err != nil {
			return err
		}

		tokenCounter, err := gemini.NewTokenCounter(gemini.DefaultTokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		deps.Analyzer.Summarizer = tenkslog.NewLoggingSummarizer(gemini.NewSummarizer(client, cli.Model), deps.Logger)
		deps.Analyzer.Speaker = tenkslog.NewLoggingSpeaker(speaker, deps.Logger)
		deps.Analyzer.TokenCounter = tokenCounter

		if cmd == "serve" {
			deps.Renderer = goldmark.NewRenderer()
		}

		if cmd == "analyze" {
			policy, err := analyze.ParseFallbackPolicy(cli.Analyze.Fallback)
			if err != nil {
				return err
			}
			deps.Analyzer.Fallback = policy
			deps.Analyzer.MaxTokens = cli.Analyze.MaxTokens
			if deps.Analyzer.MaxTokens == 0 {
				deps.Analyzer.MaxTokens = -1
			}
			deps.Analyzer.Concurrency = cli.Analyze.Concurrency
			if cli.Analyze.AudioDir != "" {
				deps.Writer = fs.NewWriter(cli.Analyze.AudioDir)
			}
		}
	}

	return kongCtx.Run(deps)
}

// newSpeaker returns the configured speech provider.
func newSpeaker(cli *CLI, client *genai.Client) (tenk.Speaker, error) {
	switch cli.TTS {
	case "openai":
		if cli.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set. It is required with --tts-provider=openai")
		}
		return openai.NewSpeaker(cli.OpenAIKey, cli.TTSModel, cli.Voice), nil
	default:
		return gemini.NewSpeaker(client, cli.TTSModel, cli.Voice), nil
	}
}

func defaultDBPath() string {
	if path := os.Getenv("TENK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tenk.db"
	}
	dir := filepath.Join(home, ".tenk")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "tenk.db")
}
