package models

import "github.com/slack-go/slack"

// ChunkType is the numeric tag discriminating the payload of an archive
// record.
type ChunkType int

// Chunk type tags used by the slackdump chunk format.
const (
	CMessages ChunkType = iota
	CThreadMessages
	CFiles
	CUsers
	CChannels
	CChannelInfo
	CWorkspaceInfo
	CChannelUsers
)

// Chunk is one decoded line of a chunk archive file. Depending on Type it
// carries a batch of channel messages, a batch of thread replies, the
// channel's own metadata, or a slice of the workspace user table.
type Chunk struct {
	Type      ChunkType       `json:"t"`
	ChannelID string          `json:"id,omitempty"`
	ThreadTS  string          `json:"r,omitempty"`
	Channel   *slack.Channel  `json:"ci,omitempty"`
	Messages  []slack.Message `json:"m,omitempty"`
	Users     []slack.User    `json:"u,omitempty"`
}

// IsThread reports whether the chunk holds thread replies rather than
// top-level channel messages.
func (c Chunk) IsThread() bool {
	return c.Type == CThreadMessages
}

// Match is one message matched by a search, carrying everything the report
// needs: where it was said, by whom, when, and how to deep-link it.
type Match struct {
	ChannelID string
	UserID    string
	MessageID string
	Text      string
	Permalink string
}
