package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Paleta del TUI. Los colores adaptativos mantienen el texto legible tanto
// en terminales claras como oscuras; el estilo "faint" solo se aplica sobre
// fondos oscuros porque en fondos claros resulta ilegible.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted   lipgloss.TerminalColor = ac("240", "243")
	colorAccent  lipgloss.TerminalColor = ac("27", "62")
	colorError   lipgloss.TerminalColor = ac("124", "203")
	colorOkNotic lipgloss.TerminalColor = ac("28", "77")

	colorModalBg     lipgloss.TerminalColor = ac("255", "235")
	colorModalFg     lipgloss.TerminalColor = ac("235", "252")
	colorModalBorder lipgloss.TerminalColor = ac("250", "243")

	colorButtonActiveBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func styleNotice() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorOkNotic)
}

// applyColorProfilePreference fija el perfil de color de Lip Gloss para la
// sesión interactiva. Solo se respeta NO_COLOR; CLICOLOR/CLICOLOR_FORCE se
// ignoran porque dentro de un TUI suelen desactivar colores por accidente.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configura la detección de fondo de Lip Gloss.
//
// Prioridad:
// 1) INVENTARIO_TUI_THEME=light|dark|auto
// 2) heurística COLORFGBG ("fg;bg"; el último segmento es el fondo)
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("INVENTARIO_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
