package patch

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightLine colors one line of file content for a 256-color terminal,
// picking the lexer from the file name. It returns the input unchanged when
// no lexer matches or the formatter fails.
func HighlightLine(path, text string) string {
	if text == "" {
		return text
	}
	lexer := lexers.Match(path)
	if lexer == nil {
		return text
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return text
	}
	return strings.TrimRight(b.String(), "\n")
}
