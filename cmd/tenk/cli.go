package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/tenk"
	"github.com/fwojciec/tenk/analyze"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Analyses tenk.AnalysisService
	Analyzer *analyze.Analyzer
	Markdown tenk.Converter
	Writer   tenk.AnalysisWriter
	Renderer tenk.Renderer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool    `short:"v" help:"Enable debug logging"`
	UserAgent string  `name:"user-agent" env:"TENK_USER_AGENT" default:"tenk research tool admin@example.com" help:"User-Agent sent to EDGAR (SEC asks for a name and contact email)"`
	Rate      float64 `env:"TENK_RATE" default:"5" help:"EDGAR requests per second"`
	APIKey    string  `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Model     string  `env:"TENK_MODEL" default:"gemini-2.5-flash" help:"Gemini model used for summaries"`
	TTS       string  `name:"tts-provider" env:"TENK_TTS_PROVIDER" default:"gemini" enum:"gemini,openai" help:"Speech provider (gemini, openai)"`
	TTSModel  string  `name:"tts-model" env:"TENK_TTS_MODEL" help:"Speech model (defaults to the provider's)"`
	Voice     string  `env:"TENK_VOICE" help:"Speech voice (defaults to the provider's)"`
	OpenAIKey string  `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key, used when --tts-provider=openai"`

	Sections SectionsCmd `cmd:"" help:"List supported 10-K sections"`
	Extract  ExtractCmd  `cmd:"" help:"Print one section of a company's latest 10-K"`
	Filing   FilingCmd   `cmd:"" help:"Show a company's latest 10-K"`
	Analyze  AnalyzeCmd  `cmd:"" help:"Summarize sections of a company's latest 10-K"`
	History  HistoryCmd  `cmd:"" help:"List cached analyses"`
	Forget   ForgetCmd   `cmd:"" help:"Delete a cached analysis"`
	Serve    ServeCmd    `cmd:"" help:"Serve the HTTP API"`
}

// SectionsCmd is the "sections" subcommand.
type SectionsCmd struct{}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Ticker  string `arg:"" help:"Company ticker, e.g. AAPL"`
	Section string `arg:"" help:"Section ID, item number or title, e.g. risk_factors or 1A"`
	Offsets bool   `help:"Print character offsets instead of text"`
}

// FilingCmd is the "filing" subcommand.
type FilingCmd struct {
	Ticker   string `arg:"" help:"Company ticker"`
	Text     bool   `help:"Print the document as plain text" xor:"format"`
	Markdown bool   `help:"Print the document as Markdown" xor:"format"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Ticker      string   `arg:"" help:"Company ticker"`
	Sections    []string `arg:"" help:"Sections to summarize"`
	Speech      bool     `short:"s" help:"Synthesize audio of each summary"`
	AudioDir    string   `name:"audio-dir" type:"path" help:"Write summaries and audio under this directory"`
	Refresh     bool     `help:"Ignore cached analyses"`
	Fallback    string   `default:"none" enum:"none,document" help:"What to summarize when a section is missing (none, document)"`
	MaxTokens   int      `name:"max-tokens" default:"900000" help:"Truncate sections longer than this many tokens (0 disables)"`
	Concurrency int      `short:"c" default:"4" help:"Sections summarized at once"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Ticker string `help:"Only show analyses for this ticker"`
	Limit  int    `short:"n" default:"20" help:"Maximum analyses to show"`
}

// ForgetCmd is the "forget" subcommand.
type ForgetCmd struct {
	ID string `arg:"" help:"Analysis ID"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `env:"TENK_ADDR" default:":8080" help:"Listen address"`
}
