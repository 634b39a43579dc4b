package app

import "testing"

func TestRoomBroadcastExcludesSender(t *testing.T) {
	rt := NewRoomTable()
	a := &fakeSession{id: "conn-a"}
	b := &fakeSession{id: "conn-b"}
	c := &fakeSession{id: "conn-c"}
	rt.Join("chat-1", a)
	rt.Join("chat-1", b)
	rt.Join("chat-1", c)

	rt.Broadcast("chat-1", a.ID(), "hello")

	if len(a.received()) != 0 {
		t.Fatalf("sender must not receive its own broadcast, got %v", a.received())
	}
	for _, sess := range []*fakeSession{b, c} {
		got := sess.received()
		if len(got) != 1 || got[0] != "hello" {
			t.Fatalf("conn %s: expected one delivery, got %v", sess.id, got)
		}
	}
}

func TestRoomBroadcastScopedToRoom(t *testing.T) {
	rt := NewRoomTable()
	in := &fakeSession{id: "conn-in"}
	out := &fakeSession{id: "conn-out"}
	rt.Join("chat-1", in)
	rt.Join("chat-2", out)

	rt.Broadcast("chat-1", "conn-elsewhere", "hello")

	if len(in.received()) != 1 {
		t.Fatalf("expected delivery inside the room, got %v", in.received())
	}
	if len(out.received()) != 0 {
		t.Fatalf("expected no delivery outside the room, got %v", out.received())
	}
}

func TestRoomDropReleasesAllMemberships(t *testing.T) {
	rt := NewRoomTable()
	sess := &fakeSession{id: "conn-1"}
	rt.Join("chat-1", sess)
	rt.Join("chat-2", sess)

	rt.Drop(sess.ID())

	if rt.Joined("chat-1", sess.ID()) || rt.Joined("chat-2", sess.ID()) {
		t.Fatal("expected all memberships to be released")
	}
	if rt.MemberCount("chat-1") != 0 || rt.MemberCount("chat-2") != 0 {
		t.Fatal("expected empty rooms to be gone")
	}
}

func TestRoomJoinIsIdempotentPerConnection(t *testing.T) {
	rt := NewRoomTable()
	sess := &fakeSession{id: "conn-1"}
	rt.Join("chat-1", sess)
	rt.Join("chat-1", sess)

	if rt.MemberCount("chat-1") != 1 {
		t.Fatalf("expected one membership, got %d", rt.MemberCount("chat-1"))
	}
}
