package permalink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelURL(t *testing.T) {
	b := New("")
	assert.Equal(t, "http://localhost:8080/archives/C1", b.Channel("C1"))
}

func TestMessageURL(t *testing.T) {
	b := New("")
	assert.Equal(t, "http://localhost:8080/archives/C1#T1", b.Message("C1", "T1"))
}

func TestThreadURL(t *testing.T) {
	b := New("")
	assert.Equal(t, "http://localhost:8080/archives/C1/R1#T1", b.Thread("C1", "R1", "T1"))
}

func TestCustomBaseURL(t *testing.T) {
	b := New("http://127.0.0.1:9999")
	assert.Equal(t, "http://127.0.0.1:9999/archives/C1#1565852586.087600", b.Message("C1", "1565852586.087600"))
}

func TestTrailingSlashTrimmed(t *testing.T) {
	b := New("http://localhost:8080/")
	assert.Equal(t, "http://localhost:8080/archives/C1", b.Channel("C1"))
}
