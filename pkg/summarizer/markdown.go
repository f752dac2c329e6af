package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator translates headings and labels.
func WithTranslator(translate func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = translate
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Recording Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("Session"))
	f.table(&b, [][2]string{
		{t("Session ID"), s.Session.ID},
		{t("Window"), fmt.Sprintf("%d", s.Session.Window)},
		{t("Geometry"), fmt.Sprintf("%dx%d", s.Session.Width, s.Session.Height)},
		{t("Frame Rate"), fmt.Sprintf("%d fps", s.Session.FPS)},
		{t("Started At"), formatTime(s.Session.StartedAt)},
	})

	fmt.Fprintf(&b, "## %s\n\n", t("Capture"))
	f.table(&b, [][2]string{
		{t("Frames"), fmt.Sprintf("%d", s.Capture.FrameCount)},
		{t("Discarded Frames"), fmt.Sprintf("%d", s.Capture.Discarded)},
		{t("Duration"), fmt.Sprintf("%.2f s", float64(s.Capture.DurationMs)/1000)},
	})

	fmt.Fprintf(&b, "## %s\n\n", t("Output"))
	rows := [][2]string{
		{t("GIF"), fmt.Sprintf("`%s` (%s)", s.Output.GIFPath, formatBytes(s.Output.GIFSize))},
	}
	switch {
	case s.Output.VideoPath == "":
		rows = append(rows, [2]string{t("Video"), t("Not requested")})
	case s.Output.TranscodeError != "":
		rows = append(rows, [2]string{t("Video"), fmt.Sprintf("%s: %s", t("Failed"), s.Output.TranscodeError)})
	default:
		video := fmt.Sprintf("`%s` (%s)", s.Output.VideoPath, formatBytes(s.Output.VideoSize))
		if s.Output.VideoCodec != "" {
			video += ", " + s.Output.VideoCodec
		}
		rows = append(rows, [2]string{t("Video"), video})
	}
	f.table(&b, rows)

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	maxWidth := t("Native")
	if s.Settings.MaxWidth > 0 {
		maxWidth = fmt.Sprintf("%d px", s.Settings.MaxWidth)
	}
	f.table(&b, [][2]string{
		{t("Shell"), s.Settings.Shell},
		{t("Max Width"), maxWidth},
		{t("Dithering"), onOff(t, s.Settings.Dither)},
		{t("Frame Buffer"), fmt.Sprintf("%d", s.Settings.BufferFrames)},
	})

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), formatTime(s.GeneratedAt))
	if f.version != "" {
		footer += fmt.Sprintf(" (wingif %s)", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func (f *MarkdownFormatter) table(b *strings.Builder, rows [][2]string) {
	fmt.Fprintf(b, "| %s | %s |\n", f.translate("Item"), f.translate("Value"))
	b.WriteString("|------|-------|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", r[0], r[1])
	}
	b.WriteString("\n")
}

func onOff(t func(string) string, v bool) string {
	if v {
		return t("On")
	}
	return t("Off")
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format(time.RFC3339)
}

// formatBytes renders a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}

var _ Formatter = (*MarkdownFormatter)(nil)
