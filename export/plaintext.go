package export

import (
	"strings"
	"sync"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

var (
	converterOnce sync.Once
	converter     *md.Converter
	converterMu   sync.Mutex
)

func markdownConverter() *md.Converter {
	converterOnce.Do(func() {
		converter = md.NewConverter("", true, nil)
		converter.Use(plugin.GitHubFlavored())
	})
	return converter
}

// PlainText flattens an HTML comment into markdown flavoured text for the
// literal based outputs. Text without markup is returned unchanged.
func PlainText(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	converterMu.Lock()
	out, err := markdownConverter().ConvertString(s)
	converterMu.Unlock()
	if err != nil {
		return s
	}
	return strings.TrimSpace(out)
}
