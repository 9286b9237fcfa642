package llm

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"text/template"
)

// PromptTemplate is a prompt body loaded from disk. The parsed template and
// its content digest travel together as one snapshot, so Render and Digest
// stay consistent across a concurrent Reload.
type PromptTemplate struct {
	path  string
	funcs template.FuncMap

	current atomic.Pointer[promptSnapshot]
}

type promptSnapshot struct {
	tmpl   *template.Template
	digest string
}

// NewPromptTemplate reads and parses the template at path. Rendering fails
// on any missing field: a silently blank slot would corrupt the prompt the
// model sees, which is much harder to notice than an error.
func NewPromptTemplate(path string, funcs template.FuncMap) (*PromptTemplate, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("prompt template path is empty")
	}
	t := &PromptTemplate{path: path, funcs: funcs}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Render executes the template against data.
func (t *PromptTemplate) Render(data any) (string, error) {
	snap := t.current.Load()
	if snap == nil {
		return "", fmt.Errorf("prompt template %q not parsed", t.path)
	}

	var buf bytes.Buffer
	if err := snap.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute prompt template %q: %w", t.path, err)
	}
	return buf.String(), nil
}

// Reload re-reads the file and swaps in the new parse atomically. In-flight
// renders keep the snapshot they started with.
func (t *PromptTemplate) Reload() error {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return fmt.Errorf("read prompt template %q: %w", t.path, err)
	}

	tmpl := template.New(filepath.Base(t.path)).Option("missingkey=error")
	if len(t.funcs) > 0 {
		tmpl = tmpl.Funcs(t.funcs)
	}
	if _, err := tmpl.Parse(string(data)); err != nil {
		return fmt.Errorf("parse prompt template %q: %w", t.path, err)
	}

	t.current.Store(&promptSnapshot{
		tmpl:   tmpl,
		digest: DigestString(string(data)),
	})
	return nil
}

// Digest identifies the template content, letting conversation records pin
// the exact prompt revision that produced a completion.
func (t *PromptTemplate) Digest() string {
	if snap := t.current.Load(); snap != nil {
		return snap.digest
	}
	return ""
}

// DigestString returns the hex sha256 of s.
func DigestString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
