package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/briefcheck/internal/model"
)

// Renderer writes analyzed briefs
type Renderer struct {
	pretty bool
}

// NewRenderer creates a renderer; pretty indents JSON output
func NewRenderer(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// Marshal encodes the brief as JSON
func (r *Renderer) Marshal(b *model.Brief) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if r.pretty {
		data, err = json.MarshalIndent(b, "", "  ")
	} else {
		data, err = json.Marshal(b)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal brief: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteJSON writes the brief as JSON to w
func (r *Renderer) WriteJSON(w io.Writer, b *model.Brief) error {
	data, err := r.Marshal(b)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write brief: %w", err)
	}
	return nil
}

// RenderJSON writes the brief as JSON to path, creating parent directories
func (r *Renderer) RenderJSON(b *model.Brief, path string) error {
	data, err := r.Marshal(b)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	// Write through a temp file so a watcher never sees a half-written brief
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace JSON: %w", err)
	}
	return nil
}

// RenderSummary prints a short human-readable digest of the derived fields
func (r *Renderer) RenderSummary(w io.Writer, b *model.Brief) {
	if b == nil {
		return
	}

	title := b.Title
	if title == "" {
		title = "(untitled brief)"
	}
	if b.Version > 0 {
		title = fmt.Sprintf("%s (v%d)", title, b.Version)
	}

	fmt.Fprintln(w, strings.Repeat("═", 60))
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, strings.Repeat("═", 60))

	if len(b.EvidenceStrength) > 0 {
		fmt.Fprintln(w, "\nEvidence strength:")
		for _, item := range b.EvidenceStrength {
			fmt.Fprintf(w, "  • %s: %d primary, %d secondary\n",
				item.Theme, deref(item.PrimarySourcesCount), deref(item.SecondarySourcesCount))
		}
	}

	if n := b.EvidenceNetwork; n != nil {
		fmt.Fprintln(w, "\nEvidence network:")
		fmt.Fprintf(w, "  Central:  %s\n", nodeList(n.CentralNodes))
		fmt.Fprintf(w, "  Isolated: %s\n", nodeList(n.IsolatedNodes))
		fmt.Fprintf(w, "  Single points of failure: %d\n", len(n.SinglePointFailures))
		for _, spf := range n.SinglePointFailures {
			fmt.Fprintf(w, "    - [%s] %s → %s\n", spf.Area, spf.Claim, strings.Join(spf.Dependencies, ", "))
		}
	}

	fmt.Fprintf(w, "\nCoherence alerts: %d\n", len(b.CoherenceAlerts))
	for _, alert := range b.CoherenceAlerts {
		fmt.Fprintf(w, "  [%s] %s\n", strings.ToUpper(string(alert.Severity)), alert.Alert)
	}

	if b.Changes != nil {
		changes := *b.Changes
		fmt.Fprintf(w, "\nChanges since last version: %d\n", len(changes))
		for _, c := range changes {
			line := fmt.Sprintf("  %-8s %s: %s", c.Kind, c.Section, c.Label)
			if c.Detail != "" {
				line += " (" + c.Detail + ")"
			}
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w)
}

func nodeList(nodes []model.EvidenceNode) string {
	if len(nodes) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, fmt.Sprintf("%s×%d", n.ID, n.MentionCount))
	}
	return strings.Join(parts, ", ")
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
