package modals

import (
	"os"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/zhubert/sidepanel/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)

	// The ui package normally pushes these in; tests use plain values.
	plain := lipgloss.NewStyle()
	gray := lipgloss.Color("#9CA3AF")
	SetStyles(plain, plain, plain, gray, gray, gray, gray, gray, gray, gray, 56)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}
