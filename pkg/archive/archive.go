// Package archive reads slackdump chunk archives: gzip-compressed files
// holding one JSON chunk record per line.
package archive

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"github.com/tidwall/gjson"

	"github.com/raesene/slackdump-searcher/pkg/models"
)

// UsersFile is the distinguished user table file inside an archive folder.
const UsersFile = "users.json.gz"

// ErrMalformedInput marks archive lines that fail to parse or lack a
// required field. Loaders abort on the first malformed line rather than
// return partial results.
var ErrMalformedInput = errors.New("malformed archive input")

// maxLineSize bounds a single archive line. Chunk lines carry whole message
// batches, so the default bufio limit is far too small for real archives.
const maxLineSize = 10 * 1024 * 1024

// NewLineScanner returns a bufio.Scanner sized for chunk archive lines.
func NewLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024*1024), maxLineSize)
	return sc
}

// Files lists the chunk archive files ("*.json.gz") directly inside dir,
// in lexical order.
func Files(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json.gz"))
	if err != nil {
		return nil, fmt.Errorf("failed to list archive files: %w", err)
	}
	return matches, nil
}

// Open opens an archive file for line reading, transparently decompressing
// files with a .gz suffix. The caller closes the returned reader.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	return &gzipReadCloser{zr: zr, f: f}, nil
}

// gzipReadCloser closes both the gzip stream and the file underneath it.
type gzipReadCloser struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.zr.Read(p)
}

func (g *gzipReadCloser) Close() error {
	zerr := g.zr.Close()
	ferr := g.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

// DecodeChunk parses a single archive line.
func DecodeChunk(line []byte) (models.Chunk, error) {
	var c models.Chunk
	if err := json.Unmarshal(line, &c); err != nil {
		return models.Chunk{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return c, nil
}

// UserLookup loads the user table at path into a map from user ID to
// display name. Later duplicates of an ID overwrite earlier ones. The load
// aborts on the first malformed line.
func UserLookup(path string) (map[string]string, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open user table: %w", err)
	}
	defer rc.Close()

	users := make(map[string]string)
	sc := NewLineScanner(rc)
	for sc.Scan() {
		chunk, err := DecodeChunk(sc.Bytes())
		if err != nil {
			return nil, fmt.Errorf("user table %s: %w", filepath.Base(path), err)
		}
		if chunk.Users == nil {
			return nil, fmt.Errorf("user table %s: %w: record has no user list", filepath.Base(path), ErrMalformedInput)
		}
		for _, u := range chunk.Users {
			if u.ID == "" {
				return nil, fmt.Errorf("user table %s: %w: user record has no id", filepath.Base(path), ErrMalformedInput)
			}
			users[u.ID] = u.Profile.DisplayName
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user table: %w", err)
	}
	return users, nil
}

// ChannelLookup resolves channel IDs to display names by taking the first
// channel info chunk of every archive file in dir. A channel resolved by an
// earlier file is not overwritten by a later one. Files carrying no channel
// metadata contribute nothing.
func ChannelLookup(dir string, users map[string]string) (map[string]string, error) {
	files, err := Files(dir)
	if err != nil {
		return nil, err
	}

	channels := make(map[string]string)
	for _, path := range files {
		id, name, err := channelInfo(path, users)
		if err != nil {
			return nil, err
		}
		if id == "" {
			continue
		}
		if _, ok := channels[id]; !ok {
			channels[id] = name
		}
	}
	return channels, nil
}

// channelInfo scans one file's lines up to its first channel info chunk and
// returns the channel ID and resolved display name. Lines are tag-sniffed
// before a full decode; a line that is not valid JSON aborts the scan.
func channelInfo(path string, users map[string]string) (id, name string, err error) {
	rc, err := Open(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer rc.Close()

	sc := NewLineScanner(rc)
	for sc.Scan() {
		line := sc.Bytes()
		if !gjson.ValidBytes(line) {
			return "", "", fmt.Errorf("%s: %w: invalid JSON line", filepath.Base(path), ErrMalformedInput)
		}
		if models.ChunkType(gjson.GetBytes(line, "t").Int()) != models.CChannelInfo {
			continue
		}
		chunk, err := DecodeChunk(line)
		if err != nil {
			return "", "", fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		return chunk.ChannelID, DisplayName(chunk.Channel, chunk.ChannelID, users), nil
	}
	if err := sc.Err(); err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return "", "", nil
}

// DisplayName derives the human-readable name for a channel. Direct
// messages resolve to the peer's display name, named channels prefer name
// over name_normalized, and anything else falls back to the raw channel ID.
func DisplayName(ch *slack.Channel, channelID string, users map[string]string) string {
	switch {
	case ch == nil:
		return channelID
	case ch.IsIM:
		if name, ok := users[ch.User]; ok {
			return "@" + name
		}
		return "@" + ch.User
	case ch.Name != "":
		return ch.Name
	case ch.NameNormalized != "":
		return ch.NameNormalized
	default:
		return channelID
	}
}

// Timestamp converts a Slack message timestamp to a time.Time.
// Slack timestamps are Unix timestamps with microseconds, "1565852586.087600";
// the fractional part is optional.
func Timestamp(ts string) (time.Time, error) {
	secs, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", ts, err)
	}
	sec := int64(secs)
	nsec := int64((secs - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec), nil
}
