package domain

import (
	"errors"
	"testing"
)

func TestNewIndividualChatValidation(t *testing.T) {
	tests := []struct {
		name string
		a, b UserID
	}{
		{"empty first", "", "u-2"},
		{"empty second", "u-1", ""},
		{"same user", "u-1", "u-1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewIndividualChat(tc.a, tc.b); !errors.Is(err, ErrNotParticipants) {
				t.Fatalf("expected ErrNotParticipants, got %v", err)
			}
		})
	}
}

func TestNewIndividualChat(t *testing.T) {
	chat, err := NewIndividualChat("u-1", "u-2")
	if err != nil {
		t.Fatalf("new individual chat: %v", err)
	}
	if chat.Type != ChatIndividual {
		t.Fatalf("expected individual type, got %q", chat.Type)
	}
	if len(chat.Members) != 2 {
		t.Fatalf("expected two participants, got %d", len(chat.Members))
	}
	if chat.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestNewGroupChatIncludesCreator(t *testing.T) {
	chat, err := NewGroupChat("team", "", "u-owner", []UserID{"u-1", "u-2"})
	if err != nil {
		t.Fatalf("new group chat: %v", err)
	}
	if !containsUser(chat.Members, "u-owner") {
		t.Fatal("creator must always be a member")
	}
	if chat.Owner != "u-owner" {
		t.Fatalf("expected owner u-owner, got %q", chat.Owner)
	}
	if len(chat.Admins) != 1 || chat.Admins[0] != "u-owner" {
		t.Fatalf("expected creator as first admin, got %v", chat.Admins)
	}
}

func TestNewGroupChatCreatorNotDuplicated(t *testing.T) {
	chat, err := NewGroupChat("team", "", "u-owner", []UserID{"u-owner", "u-1"})
	if err != nil {
		t.Fatalf("new group chat: %v", err)
	}
	count := 0
	for _, m := range chat.Members {
		if m == "u-owner" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected creator listed once, got %d", count)
	}
}

func TestCounterpart(t *testing.T) {
	chat, err := NewIndividualChat("u-1", "u-2")
	if err != nil {
		t.Fatalf("new individual chat: %v", err)
	}
	other, ok := chat.Counterpart("u-1")
	if !ok || other != "u-2" {
		t.Fatalf("expected u-2, got %q (%v)", other, ok)
	}

	group, err := NewGroupChat("team", "", "u-1", []UserID{"u-2"})
	if err != nil {
		t.Fatalf("new group chat: %v", err)
	}
	if _, ok := group.Counterpart("u-1"); ok {
		t.Fatal("group chats have no counterpart")
	}
}
