// Package styles provides shared lipgloss v2 styles for the CLI and the
// thread view.
package styles

import (
	"image/color"

	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	lipgloss "github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// DefaultPalette is the built-in theme.
var DefaultPalette = Palette{
	Primary:    lipgloss.Color("#7aa2f7"),
	Secondary:  lipgloss.Color("#7dcfff"),
	Foreground: lipgloss.Color("#c0caf5"),
	Muted:      lipgloss.Color("#565f89"),
	Background: lipgloss.Color("#1a1b26"),
	Surface:    lipgloss.Color("#3b4261"),
	Success:    lipgloss.Color("#9ece6a"),
	Warning:    lipgloss.Color("#e0af68"),
	Error:      lipgloss.Color("#f7768e"),
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	DividerStyle lipgloss.Style

	// Thread view styles.
	TitleStyle       lipgloss.Style
	OwnerStyle       lipgloss.Style
	TimeStyle        lipgloss.Style
	SelectedBarStyle lipgloss.Style
	StarStyle        lipgloss.Style
	NoticeErrorStyle lipgloss.Style
	NoticeInfoStyle  lipgloss.Style
	HelpStyle        lipgloss.Style

	// Editor styles.
	EditorFrameStyle   lipgloss.Style
	EditorCaptionStyle lipgloss.Style
	EditorHelpStyle    lipgloss.Style

	// Confirm modal styles.
	ConfirmMessageStyle lipgloss.Style
	ConfirmPromptStyle  lipgloss.Style
	ModalStyle          lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorSurface)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	OwnerStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	TimeStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	SelectedBarStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)
	StarStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)
	NoticeErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
	NoticeInfoStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	EditorFrameStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	EditorCaptionStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	EditorHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ConfirmMessageStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	ConfirmPromptStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
}

// Faded returns the foreground color at the given opacity, blended toward
// the theme background. Opacity 1 is the full foreground, 0 disappears into
// the background. This is how the terminal renders the editor cross-fades.
func Faded(opacity float64) color.Color {
	if opacity >= 1 {
		return ColorForeground
	}
	if opacity < 0 {
		opacity = 0
	}
	fg, ok1 := colorful.MakeColor(ColorForeground)
	bg, ok2 := colorful.MakeColor(ColorBackground)
	if !ok1 || !ok2 {
		return ColorForeground
	}
	return bg.BlendLab(fg, opacity).Clamped()
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(DefaultPalette)
}

func colorHexPtr(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme,
// used to render comment markdown.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorHexPtr(ColorForeground)
	primary := colorHexPtr(ColorPrimary)
	secondary := colorHexPtr(ColorSecondary)
	muted := colorHexPtr(ColorMuted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	return cfg
}
