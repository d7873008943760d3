package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notification is a short, transient message for the user.
type Notification struct {
	Level   Level
	Message string
}

func Info(msg string) Notification    { return Notification{Level: LevelInfo, Message: msg} }
func Success(msg string) Notification { return Notification{Level: LevelSuccess, Message: msg} }
func Error(msg string) Notification   { return Notification{Level: LevelError, Message: msg} }

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

type console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole writes one styled line per notification to w.
func NewConsole(w io.Writer) Notifier {
	return &console{w: w}
}

func (c *console) Notify(ctx context.Context, n Notification) {
	var line string
	switch n.Level {
	case LevelSuccess:
		line = successStyle.Render("✔ " + n.Message)
	case LevelError:
		line = errorStyle.Render("✘ " + n.Message)
	default:
		line = infoStyle.Render("• " + n.Message)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, line)
}
