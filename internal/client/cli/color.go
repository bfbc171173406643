package cli

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	green  = color.New(color.FgGreen)
	cyan   = color.New(color.FgCyan)
)

func (a *App) errorf(format string, args ...any) {
	red.Fprintf(a.out, format+"\n", args...)
}

func (a *App) warnf(format string, args ...any) {
	yellow.Fprintf(a.out, format+"\n", args...)
}

func (a *App) successf(format string, args ...any) {
	green.Fprintf(a.out, format+"\n", args...)
}

func (a *App) field(label, value string) {
	fmt.Fprintf(a.out, "  %s %s\n", cyan.Sprintf("%-6s", label+":"), value)
}
