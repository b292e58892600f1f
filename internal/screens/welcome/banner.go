package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/akshayb/jacpath/internal/ui/theme"
)

const bannerArt = `
    ██╗ █████╗  ██████╗██████╗  █████╗ ████████╗██╗  ██╗
    ██║██╔══██╗██╔════╝██╔══██╗██╔══██╗╚══██╔══╝██║  ██║
    ██║███████║██║     ██████╔╝███████║   ██║   ███████║
██  ██║██╔══██║██║     ██╔═══╝ ██╔══██║   ██║   ██╔══██║
╚█████╔╝██║  ██║╚██████╗██║     ██║  ██║   ██║   ██║  ██║
 ╚════╝ ╚═╝  ╚═╝ ╚═════╝╚═╝     ╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝`

const bannerCompact = "J A C P A T H"

// RenderBanner returns the JACPATH banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 60 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 60 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
