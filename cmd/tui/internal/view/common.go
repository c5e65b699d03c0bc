package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const svcTimeout = 5 * time.Second

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct{}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// SvcCtx returns a context with a standard timeout for service calls.
func SvcCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), svcTimeout)
}
