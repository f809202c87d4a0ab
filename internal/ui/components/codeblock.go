// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bingogen/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeBlock renders an exported document with line numbers and syntax
// highlighting.
type CodeBlock struct {
	Language string
	Code     string
	// Plain disables highlighting, e.g. for terminals without color.
	Plain bool
}

// NewJSONBlock creates a code block for an export document.
func NewJSONBlock(doc []byte) CodeBlock {
	return CodeBlock{Language: "json", Code: string(doc)}
}

// Render returns the numbered, highlighted lines. The result is meant for a
// viewport, so it carries no frame.
func (c CodeBlock) Render() string {
	code := strings.TrimRight(c.Code, "\n")
	if code == "" {
		return ""
	}
	if !c.Plain {
		code = HighlightCode(code, c.Language)
	}

	lines := strings.Split(code, "\n")
	gutter := len(strconv.Itoa(len(lines)))
	lineNumStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(gutter).
		Align(lipgloss.Right).
		MarginRight(1)

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(lineNumStyle.Render(strconv.Itoa(i + 1)))
		b.WriteString(line)
	}
	return b.String()
}

// HighlightCode applies chroma highlighting for a terminal. On any failure
// the code is returned unchanged.
func HighlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
