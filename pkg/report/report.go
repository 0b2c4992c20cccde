// Package report renders matched messages into a static HTML document.
package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/browser"

	"github.com/raesene/slackdump-searcher/pkg/archive"
	"github.com/raesene/slackdump-searcher/pkg/models"
	"github.com/raesene/slackdump-searcher/pkg/permalink"
)

// Lookups carries the resolved identity tables consulted while rendering.
type Lookups struct {
	Users    map[string]string
	Channels map[string]string
}

// block is one rendered match.
type block struct {
	MessageID  string
	ChannelURL string
	Channel    string
	User       string
	When       string
	Permalink  string
	// Text is inserted verbatim. Slack exports ship message text with
	// markup characters already entity-escaped.
	Text template.HTML
}

var fragmentTmpl = template.Must(template.New("fragment").Parse(`<h2>Found {{.Count}} matches:</h2>
{{- range .Blocks}}
<article class="message">
    <header class="message-header" id="{{.MessageID}}">
        <span class="message-sender">
            <a href="{{.ChannelURL}}">{{.Channel}}</a>
        </span>
        <span class="message-sender">
            <a href="#">{{.User}}</a>
        </span>
        <span class="message-timestamp grey">{{.When}}</span>
        <span class="message-link"><a href="{{.Permalink}}">open</a></span>
    </header>
    <div class="message-content">
        <p>{{.Text}}</p>
    </div>
</article>
{{- end}}
`))

// Render sorts matches by message ID, newest first, and renders the result
// fragment. The sort compares the raw timestamp keys as strings, the same
// ordering the archive files themselves use. A limit above zero caps the
// number of rendered blocks; the heading always reports the full count.
func Render(matches []models.Match, lk Lookups, links permalink.Builder, limit int) (string, error) {
	sorted := make([]models.Match, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MessageID > sorted[j].MessageID
	})

	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}

	blocks := make([]block, 0, len(sorted))
	for _, m := range sorted {
		blocks = append(blocks, block{
			MessageID:  m.MessageID,
			ChannelURL: links.Channel(m.ChannelID),
			Channel:    displayOr(lk.Channels, m.ChannelID),
			User:       displayOr(lk.Users, m.UserID),
			When:       formatTimestamp(m.MessageID),
			Permalink:  m.Permalink,
			Text:       template.HTML(m.Text),
		})
	}

	var b strings.Builder
	data := struct {
		Count  int
		Blocks []block
	}{Count: len(matches), Blocks: blocks}
	if err := fragmentTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render results: %w", err)
	}
	return b.String(), nil
}

// displayOr resolves id through lookup, falling back to the raw id.
func displayOr(lookup map[string]string, id string) string {
	if name, ok := lookup[id]; ok {
		return name
	}
	return id
}

// formatTimestamp converts a message ID to a local date and time. IDs that
// do not parse render as-is.
func formatTimestamp(ts string) string {
	t, err := archive.Timestamp(ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

var documentTmpl = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
  <head>
    <title>Search results</title>
    <style>
        body {
            font-family: -apple-system, system-ui, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", sans-serif;
        }

        @media (prefers-color-scheme: dark) {
            body {
                background-color: #202224;
                color: #fff;
            }

            a {
                color: #72b2ff;
            }

            a:hover {
                color: #ff7b72;
            }

            a:visited {
                color: #9669ff;
            }
        }

        blockquote {
            margin: 0;
            padding: 0;
            border-left: 2px solid gray;
            margin-left: 1em;
        }

        .message {
            margin-left: 1em;
        }

        .message-content {
            margin-left: 1em;
        }

        .message-timestamp,
        .message-link {
            font-size: 12px;
        }

        .grey {
            color: #777;
        }
    </style>
  </head>
  <body>
    {{.Body}}
  </body>
</html>
`))

// WriteFile wraps the rendered fragment in the report document and writes
// it to path, replacing any previous report.
func WriteFile(path, fragment string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	data := struct{ Body template.HTML }{Body: template.HTML(fragment)}
	if err := documentTmpl.Execute(f, data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}

// Open opens the written report in the default browser.
func Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve report path: %w", err)
	}
	return browser.OpenFile(abs)
}
