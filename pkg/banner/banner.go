package banner

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

const (
	Title    = "Unity WebGL Server"
	StopHint = "Press Ctrl+C to stop the server"

	innerWidth = 50
)

var (
	frameColor = color.New(color.FgCyan)
	titleColor = color.New(color.FgCyan, color.Bold)
	valueColor = color.New(color.FgGreen)
)

// pad left-aligns the text in the inner width of the box, truncating it with an ellipsis when it does not fit.
func pad(text string) string {
	width := innerWidth - 2
	if utf8.RuneCountInString(text) > width {
		runes := []rune(text)
		text = string(runes[:width-1]) + "…"
	}
	return text + strings.Repeat(" ", width-utf8.RuneCountInString(text))
}

func rule(left, right string) string {
	return left + strings.Repeat("═", innerWidth) + right
}

// Lines renders the banner rows without color.
func Lines(directory string, url string) []string {
	return []string{
		rule("╔", "╗"),
		"║ " + pad(Title) + " ║",
		rule("╠", "╣"),
		"║ " + pad("Serving from: "+directory) + " ║",
		"║ " + pad("URL: "+url) + " ║",
		rule("╠", "╣"),
		"║ " + pad(StopHint) + " ║",
		rule("╚", "╝"),
	}
}

// Print writes the startup banner. Colors follow color.NoColor, which is set when standard output is not a terminal.
func Print(writer io.Writer, directory string, url string) error {
	lines := Lines(directory, url)

	for i, line := range lines {
		var err error
		switch i {
		case 1:
			_, err = fmt.Fprintln(writer, frameColor.Sprint("║ ")+titleColor.Sprint(pad(Title))+frameColor.Sprint(" ║"))
		case 3, 4:
			_, err = fmt.Fprintln(
				writer,
				frameColor.Sprint("║ ")+valueColor.Sprint(strings.TrimSuffix(strings.TrimPrefix(line, "║ "), " ║"))+
					frameColor.Sprint(" ║"),
			)
		default:
			_, err = fmt.Fprintln(writer, frameColor.Sprint(line))
		}
		if err != nil {
			return fmt.Errorf("fmt fprintln: %w", err)
		}
	}

	return nil
}
