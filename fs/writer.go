// Package fs writes analyses to disk as Markdown summaries and audio files.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/tenk"
	"gopkg.in/yaml.v3"
)

// AnalysisPath returns the path of an analysis relative to the output
// directory, without extension.
// Example: AAPL, 0000320193-24-000123, risk_factors → AAPL/0000320193-24-000123/risk_factors
func AnalysisPath(a *tenk.Analysis) string {
	return filepath.Join(a.Ticker, a.AccessionNumber, string(a.Section))
}

// AudioExtension maps an audio MIME type to a file extension.
func AudioExtension(mimeType string) string {
	mt, _, _ := strings.Cut(strings.ToLower(mimeType), ";")
	switch strings.TrimSpace(mt) {
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/ogg":
		return ".ogg"
	default:
		return ".bin"
	}
}

// frontmatter is the YAML header written above each summary.
type frontmatter struct {
	Ticker    string `yaml:"ticker"`
	CIK       string `yaml:"cik,omitempty"`
	Accession string `yaml:"accession"`
	Source    string `yaml:"source"`
	Section   string `yaml:"section"`
	Fallback  bool   `yaml:"fallback,omitempty"`
	Truncated bool   `yaml:"truncated,omitempty"`
	Audio     string `yaml:"audio,omitempty"`
	Generated string `yaml:"generated"`
}

// FormatAnalysis formats an analysis summary with YAML frontmatter.
func FormatAnalysis(a *tenk.Analysis) (string, error) {
	title := string(a.Section)
	if s, ok := tenk.FindSection(a.Section); ok {
		title = s.Label()
	}

	fm := frontmatter{
		Ticker:    a.Ticker,
		CIK:       a.CIK,
		Accession: a.AccessionNumber,
		Source:    a.FilingURL,
		Section:   title,
		Fallback:  a.Fallback,
		Truncated: a.Truncated,
		Generated: a.CreatedAt.Format("2006-01-02"),
	}
	if a.Audio != nil && len(a.Audio.Data) > 0 {
		fm.Audio = string(a.Section) + AudioExtension(a.Audio.MIMEType)
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(a.Summary)
	b.WriteString("\n")
	return b.String(), nil
}

// Ensure Writer implements tenk.AnalysisWriter at compile time.
var _ tenk.AnalysisWriter = (*Writer)(nil)

// Writer writes analyses under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteAnalysis writes the summary as Markdown and, when present, the audio
// next to it. Each file is written to a temporary name and renamed into place.
func (w *Writer) WriteAnalysis(ctx context.Context, a *tenk.Analysis) ([]string, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	base := filepath.Join(w.baseDir, AnalysisPath(a))
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return nil, err
	}

	var written []string

	content, err := FormatAnalysis(a)
	if err != nil {
		return nil, err
	}

	mdPath := base + ".md"
	if err := writeFileAtomic(mdPath, []byte(content)); err != nil {
		return written, err
	}
	written = append(written, mdPath)

	if a.Audio != nil && len(a.Audio.Data) > 0 {
		audioPath := base + AudioExtension(a.Audio.MIMEType)
		if err := writeFileAtomic(audioPath, a.Audio.Data); err != nil {
			return written, err
		}
		written = append(written, audioPath)
	}

	return written, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp" + strconv.Itoa(os.Getpid())
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
