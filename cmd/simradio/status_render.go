package main

import (
	"fmt"
	"io"
	"strings"

	"simradio/internal/logging"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	return paint(base, kind, colorize)
}

// renderOutcomeLine prints one per-track result, e.g. "OK    dj_solo_07 → out.m4a".
func renderOutcomeLine(kind statusKind, trackID, detail string, colorize bool) string {
	line := fmt.Sprintf("%-5s %s", statusKindLabel(kind), trackID)
	if detail != "" {
		line += " " + detail
	}
	return paint(line, kind, colorize)
}

func paint(line string, kind statusKind, colorize bool) string {
	if !colorize {
		return line
	}
	if color := statusKindColor(kind); color != "" {
		return color + line + ansiReset
	}
	return line
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	return logging.IsTerminal(writer)
}
