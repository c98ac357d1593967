package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SessionMeta:
		o.printSessionMeta(v)
	case Connections:
		o.printConnections(v)
	case PurgeResult:
		o.printPurgeResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// SessionMeta response type (matches API)
type SessionMeta struct {
	ID        string    `json:"id"`
	Game      string    `json:"game,omitempty"`
	Ready     bool      `json:"ready"`
	Stand     bool      `json:"stand"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Connections response type
type Connections struct {
	ConnectionIDs []string `json:"connection_ids"`
}

// PurgeResult response type
type PurgeResult struct {
	Removed int `json:"removed"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSessionMeta(m SessionMeta) {
	fmt.Printf("Session: %s\n", m.ID)
	if m.Game != "" {
		fmt.Printf("Game: %s\n", m.Game)
	} else {
		fmt.Println("Game: (not seated)")
	}
	fmt.Printf("Ready: %s\n", yesNo(m.Ready))
	fmt.Printf("Stand: %s\n", yesNo(m.Stand))
	fmt.Printf("Created: %s\n", m.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Updated: %s\n", m.UpdatedAt.Format(time.RFC3339))
}

func (o *Output) printConnections(c Connections) {
	fmt.Printf("Connections (%d):\n", len(c.ConnectionIDs))
	for _, conn := range c.ConnectionIDs {
		fmt.Printf("  - %s\n", conn)
	}
}

func (o *Output) printPurgeResult(p PurgeResult) {
	fmt.Printf("Removed: %d\n", p.Removed)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
