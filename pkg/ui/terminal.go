package ui

import "fmt"

// ASCII logo for the application
const ASCIILogo = `
    ╔═══════════════════════════════════════════════════════════╗
    ║ ██╗   ██╗████████╗███████╗ ██████╗██████╗  █████╗ ██████╗  ║
    ║ ██║   ██║╚══██╔══╝██╔════╝██╔════╝██╔══██╗██╔══██╗██╔══██╗ ║
    ║ ██║   ██║   ██║   ███████╗██║     ██████╔╝███████║██████╔╝ ║
    ║ ██║   ██║   ██║   ╚════██║██║     ██╔══██╗██╔══██║██╔═══╝  ║
    ║ ╚██████╔╝   ██║   ███████║╚██████╗██║  ██║██║  ██║██║      ║
    ║  ╚═════╝    ╚═╝   ╚══════╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝      ║
    ║             UNTAPPD PHOTO GALLERY CRAWLER                  ║
    ╚═══════════════════════════════════════════════════════════╝
`

// colorFunc wraps text in an ANSI escape sequence
type colorFunc func(string) string

func ansi(code string) colorFunc {
	return func(text string) string {
		return "\033[" + code + "m" + text + "\033[0m"
	}
}

// Color functions for terminal output
var (
	Cyan    = ansi("36")
	Yellow  = ansi("33")
	Red     = ansi("31")
	Green   = ansi("32")
	Magenta = ansi("35")
	Dim     = ansi("2")
)

// PrintLogo prints the ASCII logo with color
func PrintLogo() {
	fmt.Print(Cyan(ASCIILogo))
}

// PrintError prints an error message in red
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	fmt.Println(Red(msg))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	fmt.Println(Yellow(msg))
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	fmt.Println(Green(msg))
}

// PrintInfo prints a labeled value in cyan and yellow
func PrintInfo(label string, value string) {
	fmt.Printf("%s: %s\n", Cyan(label), Yellow(value))
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	fmt.Println(Magenta(msg))
}
