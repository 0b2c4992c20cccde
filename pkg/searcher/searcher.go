// Package searcher streams chunk archive lines and filters message batches
// against a search pattern.
package searcher

import (
	"fmt"
	"io"
	"regexp"

	"github.com/tidwall/gjson"

	"github.com/raesene/slackdump-searcher/pkg/archive"
	"github.com/raesene/slackdump-searcher/pkg/models"
	"github.com/raesene/slackdump-searcher/pkg/permalink"
)

// Searcher runs the search pipeline: pick a line source for the input,
// scan it for matching messages, and hand back resolved match tuples.
type Searcher struct {
	raw     string
	pattern *regexp.Regexp
	zgrep   string
	links   permalink.Builder
}

// New compiles pattern as a case-insensitive regular expression and returns
// a Searcher using it. zgrep names the external pre-filter binary.
func New(pattern, zgrep string, links permalink.Builder) (*Searcher, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern: %w", err)
	}
	return &Searcher{raw: pattern, pattern: re, zgrep: zgrep, links: links}, nil
}

// Run opens the line source for input, scans it, and collects the matches
// in input order.
func (s *Searcher) Run(input string) ([]models.Match, error) {
	lines, err := s.Open(input)
	if err != nil {
		return nil, err
	}
	defer lines.Close()

	var matches []models.Match
	err = s.Scan(lines, func(m models.Match) error {
		matches = append(matches, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Scan consumes chunk lines from r and yields a Match for every message
// whose text matches the pattern. Lines without a message list are skipped,
// as are messages lacking a text body or a timestamp. A line that is not
// valid JSON aborts the scan with archive.ErrMalformedInput.
func (s *Searcher) Scan(r io.Reader, yield func(models.Match) error) error {
	sc := archive.NewLineScanner(r)
	for sc.Scan() {
		line := sc.Bytes()
		if !gjson.ValidBytes(line) {
			return fmt.Errorf("%w: invalid JSON line", archive.ErrMalformedInput)
		}
		if !gjson.GetBytes(line, "m").Exists() {
			continue
		}

		chunk, err := archive.DecodeChunk(line)
		if err != nil {
			return err
		}
		for _, msg := range chunk.Messages {
			if msg.Text == "" || msg.Timestamp == "" {
				continue
			}
			if !s.pattern.MatchString(msg.Text) {
				continue
			}

			m := models.Match{
				ChannelID: chunk.ChannelID,
				UserID:    msg.User,
				MessageID: msg.Timestamp,
				Text:      msg.Text,
			}
			if chunk.IsThread() {
				m.Permalink = s.links.Thread(chunk.ChannelID, chunk.ThreadTS, msg.Timestamp)
			} else {
				m.Permalink = s.links.Message(chunk.ChannelID, msg.Timestamp)
			}
			if err := yield(m); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read line stream: %w", err)
	}
	return nil
}
