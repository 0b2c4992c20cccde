// Package permalink builds deep links into a locally served archive viewer.
package permalink

import (
	"fmt"
	"strings"
)

// DefaultBaseURL is the local viewer origin permalinks point at.
const DefaultBaseURL = "http://localhost:8080"

// Builder formats archive deep links against a fixed base URL. Channel and
// message IDs are inserted as-is; no URL escaping is applied.
type Builder struct {
	base string
}

// New returns a Builder for base. An empty base selects DefaultBaseURL.
func New(base string) Builder {
	if base == "" {
		base = DefaultBaseURL
	}
	return Builder{base: strings.TrimRight(base, "/")}
}

// Channel links to a channel's message list.
func (b Builder) Channel(channel string) string {
	return fmt.Sprintf("%s/archives/%s", b.base, channel)
}

// Message links to a single top-level message.
func (b Builder) Message(channel, messageID string) string {
	return fmt.Sprintf("%s/archives/%s#%s", b.base, channel, messageID)
}

// Thread links to a reply inside the thread rooted at threadTS.
func (b Builder) Thread(channel, threadTS, messageID string) string {
	return fmt.Sprintf("%s/archives/%s/%s#%s", b.base, channel, threadTS, messageID)
}
