package network

import (
	"sync"

	"deepfall-server/pkg/api"
)

// Broadcaster занимается только рассылкой снапшотов подписчикам.
// Движок ничего не знает про WebSocket: он кладет api.ServerResponse
// в хаб, а хаб раскидывает по личным каналам.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID подписчика (клиента или бота) -> личный канал
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для подписчика.
// Повторная регистрация того же ID закрывает старый канал.
func (b *Broadcaster) Register(id string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал.
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// SendTo отправляет снапшот конкретному подписчику (Unicast).
// Полный канал - снапшот молча теряется: следующий тик пришлет свежий.
func (b *Broadcaster) SendTo(id string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[id]; ok {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Broadcast отправляет всем подписчикам (игрок + зрители + боты).
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// HasSubscriber - есть ли кто живой на том конце.
// Движок не собирает снапшоты, которые некому слать.
func (b *Broadcaster) HasSubscriber(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[id]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
