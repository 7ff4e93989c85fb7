package network

import (
	"testing"

	"deepfall-server/pkg/api"
)

func TestBroadcaster_RegisterAndSendTo(t *testing.T) {
	b := NewBroadcaster()

	ch := b.Register("client_1")
	if !b.HasSubscriber("client_1") {
		t.Fatal("subscriber must be visible after Register")
	}

	b.SendTo("client_1", api.ServerResponse{Type: "UPDATE", Tick: 7})

	select {
	case msg := <-ch:
		if msg.Tick != 7 {
			t.Errorf("tick = %d, want 7", msg.Tick)
		}
	default:
		t.Fatal("message not delivered")
	}
}

func TestBroadcaster_SendToUnknownIsNoop(t *testing.T) {
	b := NewBroadcaster()
	// Не должно паниковать и не должно блокировать.
	b.SendTo("ghost", api.ServerResponse{Type: "UPDATE"})
}

func TestBroadcaster_Broadcast(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Register("a")
	ch2 := b.Register("b")

	b.Broadcast(api.ServerResponse{Type: "UPDATE", Tick: 1})

	for _, ch := range []chan api.ServerResponse{ch1, ch2} {
		select {
		case <-ch:
		default:
			t.Fatal("broadcast must reach every subscriber")
		}
	}
}

func TestBroadcaster_FullChannelDoesNotBlock(t *testing.T) {
	b := NewBroadcaster()
	b.Register("slow")

	// Канал на 100 сообщений; лишние должны молча теряться.
	for i := 0; i < 250; i++ {
		b.SendTo("slow", api.ServerResponse{Type: "UPDATE", Tick: i})
	}
}

func TestBroadcaster_ReRegisterClosesOldChannel(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("player")
	fresh := b.Register("player")

	if _, ok := <-old; ok {
		t.Error("old channel must be closed on re-register")
	}

	b.SendTo("player", api.ServerResponse{Type: "UPDATE"})
	select {
	case <-fresh:
	default:
		t.Error("fresh channel must receive after re-register")
	}

	if b.SubscriberCount() != 1 {
		t.Errorf("subscriber count = %d, want 1", b.SubscriberCount())
	}
}

func TestBroadcaster_Unregister(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("player")
	b.Unregister("player")

	if b.HasSubscriber("player") {
		t.Error("subscriber must be gone after Unregister")
	}
	if _, ok := <-ch; ok {
		t.Error("channel must be closed after Unregister")
	}
}
