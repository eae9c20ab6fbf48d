package webhookpubsub

import (
	"sort"

	"github.com/sasha-s/go-deadlock"
)

// webhookStore indexes the registered webhooks by id and by topic.
type webhookStore struct {
	lock    *deadlock.RWMutex
	hooks   map[string][]byte
	byTopic map[string][]string
}

func newWebhookStore() *webhookStore {
	return &webhookStore{
		lock:    &deadlock.RWMutex{},
		hooks:   map[string][]byte{},
		byTopic: map[string][]string{},
	}
}

// add stores the hook unless another one with the same id already exists.
func (s *webhookStore) add(hook *Webhook) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.hooks[hook.ID]; ok {
		return
	}
	s.hooks[hook.ID] = hook.Serialize()
	s.byTopic[hook.Event] = append(s.byTopic[hook.Event], hook.ID)
}

func (s *webhookStore) remove(hookID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	buf, ok := s.hooks[hookID]
	if !ok {
		return ErrWebhookNotFound
	}
	hook, err := NewWebhookFromBytes(buf)
	if err != nil {
		return err
	}

	delete(s.hooks, hookID)

	ids := s.byTopic[hook.Event]
	for i, id := range ids {
		if id == hookID {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) <= 0 {
		delete(s.byTopic, hook.Event)
		return nil
	}
	s.byTopic[hook.Event] = ids
	return nil
}

// getByTopic returns the hooks registered for topic sorted by id.
func (s *webhookStore) getByTopic(topic string) []*Webhook {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ids := s.byTopic[topic]
	hooks := make([]*Webhook, 0, len(ids))
	for _, id := range ids {
		hook, err := NewWebhookFromBytes(s.hooks[id])
		if err != nil {
			continue
		}
		hooks = append(hooks, hook)
	}
	sort.SliceStable(hooks, func(i, j int) bool {
		return hooks[i].ID < hooks[j].ID
	})
	return hooks
}

func (s *webhookStore) getAll() []*Webhook {
	s.lock.RLock()
	topics := make([]string, 0, len(s.byTopic))
	for topic := range s.byTopic {
		topics = append(topics, topic)
	}
	s.lock.RUnlock()

	sort.Strings(topics)
	hooks := make([]*Webhook, 0)
	for _, topic := range topics {
		hooks = append(hooks, s.getByTopic(topic)...)
	}
	return hooks
}
