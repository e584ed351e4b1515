package lexical

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Course material arrives either as plain text or as a Lexical editor
// export. The parser flattens the Lexical tree into markdown so the
// splitter, the embedder and the synthesis prompts all see the same
// clean text. Inline styling (colors, fonts) carries no meaning for
// retrieval and is discarded.

type document struct {
	Root node `json:"root"`
}

type node struct {
	Type     string `json:"type"`
	Children []node `json:"children,omitempty"`

	Text   string      `json:"text,omitempty"`
	Format interface{} `json:"format,omitempty"` // int bitmask on text nodes, alignment string elsewhere

	Tag      string `json:"tag,omitempty"`      // heading level: h1..h6
	URL      string `json:"url,omitempty"`
	Language string `json:"language,omitempty"` // code block language

	ListType string `json:"listType,omitempty"` // bullet, number, check
	Start    int    `json:"start,omitempty"`
	Checked  bool   `json:"checked,omitempty"`
}

const (
	formatBold          = 1
	formatItalic        = 2
	formatStrikethrough = 4
	formatCode          = 16
)

// ParseContent returns content as markdown. Lexical JSON is flattened;
// anything else passes through unchanged.
func ParseContent(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, `{"root":`) {
		return content
	}

	var doc document
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return content
	}

	var sb strings.Builder
	renderNode(doc.Root, &sb, 0)
	return sb.String()
}

func renderNode(n node, sb *strings.Builder, depth int) {
	switch n.Type {
	case "root":
		for _, child := range n.Children {
			renderNode(child, sb, depth)
			sb.WriteString("\n")
		}

	case "heading":
		level := 1
		if len(n.Tag) == 2 && n.Tag[0] == 'h' && n.Tag[1] >= '1' && n.Tag[1] <= '6' {
			level = int(n.Tag[1] - '0')
		}
		sb.WriteString(strings.Repeat("#", level) + " ")
		renderChildren(n, sb, depth)
		sb.WriteString("\n")

	case "paragraph":
		renderChildren(n, sb, depth)
		sb.WriteString("\n")

	case "quote":
		var inner strings.Builder
		renderChildren(n, &inner, depth)
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			sb.WriteString("> " + line + "\n")
		}

	case "code":
		sb.WriteString("```" + n.Language + "\n")
		renderChildren(n, sb, depth)
		sb.WriteString("\n```\n")

	case "linebreak":
		sb.WriteString("\n")

	case "text":
		renderText(n, sb)

	case "list":
		renderList(n, sb, depth)

	case "listitem":
		// Normally consumed by renderList; handle a loose one anyway.
		renderChildren(n, sb, depth)

	case "table":
		renderTable(n, sb)

	case "link":
		sb.WriteString("[")
		renderChildren(n, sb, depth)
		sb.WriteString(fmt.Sprintf("](%s)", n.URL))

	case "horizontalrule":
		sb.WriteString("---\n")

	default:
		renderChildren(n, sb, depth)
	}
}

func renderChildren(n node, sb *strings.Builder, depth int) {
	for _, child := range n.Children {
		renderNode(child, sb, depth)
	}
}

func renderText(n node, sb *strings.Builder) {
	mask := 0
	switch f := n.Format.(type) {
	case float64:
		mask = int(f)
	case int:
		mask = f
	}

	var prefix, suffix string
	if mask&formatCode != 0 {
		prefix, suffix = "`", "`"
	} else {
		if mask&formatBold != 0 {
			prefix += "**"
			suffix = "**" + suffix
		}
		if mask&formatItalic != 0 {
			prefix += "_"
			suffix = "_" + suffix
		}
		if mask&formatStrikethrough != 0 {
			prefix += "~~"
			suffix = "~~" + suffix
		}
	}

	sb.WriteString(prefix)
	sb.WriteString(n.Text)
	sb.WriteString(suffix)
}

func renderList(n node, sb *strings.Builder, depth int) {
	index := 1
	if n.Start > 0 {
		index = n.Start
	}

	for _, item := range n.Children {
		if item.Type != "listitem" {
			continue
		}

		sb.WriteString(strings.Repeat("  ", depth))

		switch n.ListType {
		case "number":
			sb.WriteString(fmt.Sprintf("%d. ", index))
			index++
		case "check":
			if item.Checked {
				sb.WriteString("- [x] ")
			} else {
				sb.WriteString("- [ ] ")
			}
		default:
			sb.WriteString("- ")
		}

		for _, child := range item.Children {
			if child.Type == "list" {
				sb.WriteString("\n")
				renderList(child, sb, depth+1)
			} else {
				renderNode(child, sb, depth)
			}
		}
		sb.WriteString("\n")
	}

	if depth == 0 {
		sb.WriteString("\n")
	}
}

func renderTable(n node, sb *strings.Builder) {
	var rows [][]string
	cols := 0

	for _, row := range n.Children {
		if row.Type != "tablerow" {
			continue
		}

		var cells []string
		for _, cell := range row.Children {
			var inner strings.Builder
			renderChildren(cell, &inner, 0)
			// Newlines inside a cell break the markdown table.
			cells = append(cells, strings.ReplaceAll(strings.TrimSpace(inner.String()), "\n", " "))
		}
		rows = append(rows, cells)
		if len(cells) > cols {
			cols = len(cells)
		}
	}

	if len(rows) == 0 {
		return
	}

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i := 0; i < cols; i++ {
			if i < len(cells) {
				sb.WriteString(" " + cells[i] + " |")
			} else {
				sb.WriteString("  |")
			}
		}
		sb.WriteString("\n")
	}

	writeRow(rows[0])
	sb.WriteString("|" + strings.Repeat("---|", cols) + "\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
	sb.WriteString("\n")
}
