package main

import tea "github.com/charmbracelet/bubbletea"

const (
	panStep     = 40.0 // screen pixels
	zoomInStep  = 1.2
	zoomOutStep = 0.8
)

func (m *model) handleNavigation(key string) (tea.Model, tea.Cmd) {
	speed := m.getMoveSpeed(key)
	return m.handlePan(key, speed), nil
}

// handlePan moves the view so the canvas appears to scroll in the arrow's
// direction.
func (m *model) handlePan(key string, speed float64) tea.Model {
	view := m.editor.View()
	switch key {
	case "left", "shift+left":
		view.Pan(panStep*speed, 0)
	case "right", "shift+right":
		view.Pan(-panStep*speed, 0)
	case "up", "shift+up":
		view.Pan(0, panStep*speed)
	case "down", "shift+down":
		view.Pan(0, -panStep*speed)
	}
	return m
}

func (m *model) handleZoom(key string) tea.Model {
	view := m.editor.View()
	switch key {
	case "+", "=":
		view.Zoom(zoomInStep)
	case "-", "_":
		view.Zoom(zoomOutStep)
	case "0":
		view.Reset()
	}
	m.successMessage = ""
	return m
}

func (m *model) getMoveSpeed(key string) float64 {
	switch key {
	case "shift+left", "shift+right", "shift+up", "shift+down":
		return 4
	default:
		return 1
	}
}
