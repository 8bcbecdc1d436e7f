// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package bpaf

import (
	"strings"
)

// itemUsage renders one item the way the usage line and "expected"
// messages spell it.
func itemUsage(m *Meta) string {
	switch m.kind {
	case metaFlag:
		return m.visibleName()
	case metaArg:
		if len(m.longs) > 0 {
			return "--" + m.longs[0] + "=" + m.metavar
		}
		if len(m.shorts) > 0 {
			return "-" + string(m.shorts[0]) + " " + m.metavar
		}
		return m.metavar
	case metaPositional:
		if m.strict {
			return "-- " + m.metavar
		}
		return m.metavar
	case metaAnyToken:
		return m.metavar
	case metaCommand:
		return m.cmdName
	case metaHidden:
		// Fail leaves park their message in the metavar.
		return m.metavar
	}
	return ""
}

// usageLine derives the synopsis from the meta tree.
func usageLine(m *Meta) string {
	switch m.kind {
	case metaFlag, metaArg, metaPositional, metaAnyToken:
		return itemUsage(m)
	case metaCommand:
		return "COMMAND ..."
	case metaHidden, metaHideUsage:
		return ""
	case metaOptional:
		inner := usageLine(m.children[0])
		if inner == "" {
			return ""
		}
		return "[" + inner + "]"
	case metaMany:
		inner := usageLine(m.children[0])
		if inner == "" {
			return ""
		}
		return inner + "..."
	case metaSome:
		inner := usageLine(m.children[0])
		if inner == "" {
			return ""
		}
		return inner + "..."
	case metaOr:
		if allCommands(m) {
			return "COMMAND ..."
		}
		var parts []string
		for _, c := range m.children {
			if p := usageLine(c); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			return ""
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return "(" + strings.Join(parts, " | ") + ")"
	default:
		var parts []string
		for _, c := range m.children {
			if p := usageLine(c); p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, " ")
	}
}

func allCommands(m *Meta) bool {
	all := true
	m.walkItems(func(it *Meta) {
		if it.kind != metaCommand {
			all = false
		}
	})
	return all
}

// helpRow is one aligned entry in a help section.
type helpRow struct {
	left  string
	right string
}

// walkRender visits renderable items, optionally including ones
// demoted by HideUsage (the verbose listing shows them, the brief one
// does not).
func walkRender(m *Meta, includeHideUsage bool, visit func(*Meta)) {
	if m == nil || m.kind == metaHidden {
		return
	}
	if m.kind == metaHideUsage && !includeHideUsage {
		return
	}
	if m.isItem() {
		visit(m)
		return
	}
	for _, c := range m.children {
		walkRender(c, includeHideUsage, visit)
	}
}

func optionRow(it *Meta, verbose bool) helpRow {
	var left string
	switch {
	case len(it.shorts) > 0 && len(it.longs) > 0:
		left = "-" + string(it.shorts[0]) + ", --" + it.longs[0]
	case len(it.longs) > 0:
		left = "    --" + it.longs[0]
	default:
		left = "-" + string(it.shorts[0])
	}
	if it.kind == metaArg {
		left += "=" + it.metavar
	}
	right := it.help
	if !verbose {
		if nl := strings.IndexByte(right, '\n'); nl >= 0 {
			right = right[:nl]
		}
	}
	if it.env != "" {
		if right != "" {
			right += " "
		}
		right += "[env:" + it.env + "]"
	}
	return helpRow{left: left, right: right}
}

func renderRows(b *strings.Builder, title string, rows []helpRow) {
	if len(rows) == 0 {
		return
	}
	width := 0
	for _, r := range rows {
		if w := len(r.left); w > width {
			width = w
		}
	}
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString("    ")
		b.WriteString(r.left)
		if r.right != "" {
			b.WriteString(strings.Repeat(" ", width-len(r.left)+2))
			// Continuation lines align under the first one.
			indent := "\n" + strings.Repeat(" ", width+6)
			b.WriteString(strings.ReplaceAll(r.right, "\n", indent))
		}
		b.WriteString("\n")
	}
}

// helpText renders the terse default help, or the verbose variant
// shown when the help flag is given twice.
func helpText(m *Meta, cfg config, verbose bool) string {
	var b strings.Builder
	if cfg.descr != "" {
		b.WriteString(cfg.descr)
		b.WriteString("\n\n")
	}
	usage := cfg.usage
	if usage == "" {
		usage = usageLine(m)
	}
	b.WriteString("Usage: ")
	b.WriteString(strings.TrimSpace(usage))
	b.WriteString("\n")

	var positionals, options, commands []helpRow
	walkRender(m, verbose, func(it *Meta) {
		switch it.kind {
		case metaPositional, metaAnyToken:
			positionals = append(positionals, helpRow{left: it.metavar, right: it.help})
		case metaFlag, metaArg:
			options = append(options, optionRow(it, verbose))
		case metaCommand:
			commands = append(commands, helpRow{left: it.cmdName, right: it.help})
		}
	})
	options = append(options, helpRow{left: "-h, --help", right: "Prints help information"})
	if cfg.version != "" {
		options = append(options, helpRow{left: "-V, --version", right: "Prints version information"})
	}

	renderRows(&b, "Available positional items:", positionals)
	renderRows(&b, "Available options:", options)
	renderRows(&b, "Available commands:", commands)
	return strings.TrimRight(b.String(), "\n")
}
