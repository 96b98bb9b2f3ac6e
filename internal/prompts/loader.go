package prompts

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Template paths inside the embedded FS and override directories.
const (
	NarratorTemplate    = "templates/narrator.md"
	SynthesizerTemplate = "templates/synthesizer.md"
	ComparisonTemplate  = "templates/comparison.md"
)

// Fallback temperatures for templates without frontmatter.
const (
	NarratorTemperature    = 0.2
	SynthesizerTemperature = 0.7
	ComparisonTemperature  = 0.5
)

// Loader manages prompt templates with override support.
type Loader struct {
	overrideDirs []string // Directories to check for overrides (in priority order)
	cache        map[string]*template.Template
	metaCache    map[string]*TemplateMeta
	mu           sync.RWMutex
}

// TemplateMeta holds frontmatter metadata of a prompt template.
type TemplateMeta struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Temperature *float64 `yaml:"temperature"`
}

// Prompt is a rendered template plus the sampling temperature it asks for.
type Prompt struct {
	Text        string
	Temperature float64
}

// NewLoader creates a loader with the given override directories.
// Directories are checked in order; first match wins.
func NewLoader(overrideDirs ...string) *Loader {
	return &Loader{
		overrideDirs: overrideDirs,
		cache:        make(map[string]*template.Template),
		metaCache:    make(map[string]*TemplateMeta),
	}
}

// DefaultLoader creates a loader with standard override paths:
// 1. The user supplied directory, if any
// 2. User config: ~/.config/cruxaudit/prompts/
func DefaultLoader(promptsDir string) *Loader {
	dirs := []string{}
	if promptsDir != "" {
		dirs = append(dirs, promptsDir)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "cruxaudit", "prompts"))
	}
	return NewLoader(dirs...)
}

// loadContent loads raw content from override dirs or embedded FS.
// Override files live next to each other without the templates/ prefix.
func (l *Loader) loadContent(name string) ([]byte, error) {
	for _, dir := range l.overrideDirs {
		if data, err := os.ReadFile(filepath.Join(dir, path.Base(name))); err == nil {
			return data, nil
		}
	}
	return fs.ReadFile(embeddedFS, name)
}

// parseFrontmatter splits content into frontmatter and body.
func parseFrontmatter(content []byte) (*TemplateMeta, string, error) {
	str := strings.ReplaceAll(string(content), "\r\n", "\n")

	if !strings.HasPrefix(str, "---\n") {
		return nil, str, nil // No frontmatter
	}

	end := strings.Index(str[4:], "\n---\n")
	if end == -1 {
		return nil, str, nil // Malformed, treat as no frontmatter
	}

	frontmatter := str[4 : 4+end]
	body := str[4+end+5:]

	var meta TemplateMeta
	if err := yaml.Unmarshal([]byte(frontmatter), &meta); err != nil {
		return nil, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	return &meta, body, nil
}

// LoadTemplate loads and parses a template by path (e.g., "templates/narrator.md").
func (l *Loader) LoadTemplate(name string) (*template.Template, *TemplateMeta, error) {
	l.mu.RLock()
	if tmpl, ok := l.cache[name]; ok {
		meta := l.metaCache[name]
		l.mu.RUnlock()
		return tmpl, meta, nil
	}
	l.mu.RUnlock()

	content, err := l.loadContent(name)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", name, err)
	}

	meta, body, err := parseFrontmatter(content)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", name, err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, nil, fmt.Errorf("compile template %s: %w", name, err)
	}

	l.mu.Lock()
	l.cache[name] = tmpl
	l.metaCache[name] = meta
	l.mu.Unlock()

	return tmpl, meta, nil
}

// Execute loads and executes a template with the given data. The temperature comes
// from the frontmatter when present, else from fallback.
func (l *Loader) Execute(name string, data any, fallback float64) (Prompt, error) {
	tmpl, meta, err := l.LoadTemplate(name)
	if err != nil {
		return Prompt{}, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return Prompt{}, fmt.Errorf("execute %s: %w", name, err)
	}

	temperature := fallback
	if meta != nil && meta.Temperature != nil {
		temperature = *meta.Temperature
	}
	return Prompt{Text: buf.String(), Temperature: temperature}, nil
}

// NarratorData holds template variables for the trend narrator prompt.
type NarratorData struct {
	Domain           string
	AnalysisJSON     string
	JumpThresholdPct int
}

// SynthesizerData holds template variables for the report synthesizer prompt.
type SynthesizerData struct {
	Domain     string
	InputJSON  string
	TrendNotes string
}

// ComparisonData holds template variables for the batch comparison prompt.
type ComparisonData struct {
	Count       int
	Scoreboard  string
	ResultsJSON string
}

// BuildNarratorPrompt loads and executes the narrator template.
func (l *Loader) BuildNarratorPrompt(data NarratorData) (Prompt, error) {
	return l.Execute(NarratorTemplate, data, NarratorTemperature)
}

// BuildSynthesizerPrompt loads and executes the synthesizer template.
func (l *Loader) BuildSynthesizerPrompt(data SynthesizerData) (Prompt, error) {
	return l.Execute(SynthesizerTemplate, data, SynthesizerTemperature)
}

// BuildComparisonPrompt loads and executes the batch comparison template.
func (l *Loader) BuildComparisonPrompt(data ComparisonData) (Prompt, error) {
	return l.Execute(ComparisonTemplate, data, ComparisonTemperature)
}

// ClearCache clears the template cache (useful for development/testing).
func (l *Loader) ClearCache() {
	l.mu.Lock()
	l.cache = make(map[string]*template.Template)
	l.metaCache = make(map[string]*TemplateMeta)
	l.mu.Unlock()
}
