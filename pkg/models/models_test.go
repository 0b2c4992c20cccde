package models

import (
	"encoding/json"
	"testing"
)

func TestChunkDecodeMessages(t *testing.T) {
	line := `{"t":0,"id":"C024BE91L","m":[{"ts":"1565852586.087600","user":"U024BE7LH","text":"deploy finished"},{"ts":"1565852600.000100","user":"U024BE7LH","text":"and rolled back"}]}`

	var c Chunk
	if err := json.Unmarshal([]byte(line), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if c.Type != CMessages {
		t.Errorf("expected type %d, got %d", CMessages, c.Type)
	}
	if c.ChannelID != "C024BE91L" {
		t.Errorf("expected channel C024BE91L, got %q", c.ChannelID)
	}
	if c.IsThread() {
		t.Error("message chunk reported as thread")
	}
	if len(c.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(c.Messages))
	}
	if c.Messages[0].Timestamp != "1565852586.087600" {
		t.Errorf("unexpected timestamp %q", c.Messages[0].Timestamp)
	}
	if c.Messages[0].User != "U024BE7LH" {
		t.Errorf("unexpected user %q", c.Messages[0].User)
	}
	if c.Messages[1].Text != "and rolled back" {
		t.Errorf("unexpected text %q", c.Messages[1].Text)
	}
}

func TestChunkDecodeThreadMessages(t *testing.T) {
	line := `{"t":1,"id":"C024BE91L","r":"1565852586.087600","m":[{"ts":"1565852590.000200","user":"U2","text":"reply"}]}`

	var c Chunk
	if err := json.Unmarshal([]byte(line), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !c.IsThread() {
		t.Error("thread chunk not reported as thread")
	}
	if c.ThreadTS != "1565852586.087600" {
		t.Errorf("unexpected thread root %q", c.ThreadTS)
	}
}

func TestChunkDecodeChannelInfo(t *testing.T) {
	line := `{"t":5,"id":"D024BE91L","ci":{"id":"D024BE91L","is_im":true,"user":"U024BE7LH"}}`

	var c Chunk
	if err := json.Unmarshal([]byte(line), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if c.Type != CChannelInfo {
		t.Errorf("expected type %d, got %d", CChannelInfo, c.Type)
	}
	if c.Channel == nil {
		t.Fatal("channel metadata missing")
	}
	if !c.Channel.IsIM {
		t.Error("expected an IM channel")
	}
	if c.Channel.User != "U024BE7LH" {
		t.Errorf("unexpected peer %q", c.Channel.User)
	}
}

func TestChunkDecodeUsers(t *testing.T) {
	line := `{"t":3,"u":[{"id":"U024BE7LH","name":"spengler","profile":{"display_name":"Egon Spengler"}}]}`

	var c Chunk
	if err := json.Unmarshal([]byte(line), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if c.Type != CUsers {
		t.Errorf("expected type %d, got %d", CUsers, c.Type)
	}
	if len(c.Users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(c.Users))
	}
	if c.Users[0].ID != "U024BE7LH" {
		t.Errorf("unexpected user ID %q", c.Users[0].ID)
	}
	if c.Users[0].Profile.DisplayName != "Egon Spengler" {
		t.Errorf("unexpected display name %q", c.Users[0].Profile.DisplayName)
	}
}
