package storage

import (
	"time"

	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/notify"
)

// notifyingStore publishes a change after every successful mutation.
type notifyingStore struct {
	Storage
	bus *notify.Bus
}

// WithNotifications wraps s so that successful Create, Update, Delete and
// Restore calls publish a notify.Change on bus. Failed calls publish nothing.
func WithNotifications(s Storage, bus *notify.Bus) Storage {
	return &notifyingStore{Storage: s, bus: bus}
}

func (n *notifyingStore) Create(p entry.Payload) (entry.Entry, error) {
	e, err := n.Storage.Create(p)
	if err != nil {
		return e, err
	}
	n.publishFor(e.Date)
	return e, nil
}

func (n *notifyingStore) Update(id string, p entry.Payload) (entry.Entry, error) {
	e, err := n.Storage.Update(id, p)
	if err != nil {
		return e, err
	}
	n.publishFor(e.Date)
	return e, nil
}

func (n *notifyingStore) Delete(id string) error {
	// Look up the date first so subscribers learn which day went away.
	existing, getErr := n.Storage.Get(id)
	if err := n.Storage.Delete(id); err != nil {
		return err
	}
	if getErr != nil {
		n.bus.Publish(notify.AllChanged)
		return nil
	}
	n.publishFor(existing.Date)
	return nil
}

func (n *notifyingStore) Restore(payloads []entry.Payload) (int, error) {
	count, err := n.Storage.Restore(payloads)
	if err != nil {
		return count, err
	}
	n.bus.Publish(notify.AllChanged)
	return count, nil
}

func (n *notifyingStore) publishFor(date *time.Time) {
	if date == nil {
		n.bus.Publish(notify.AllChanged)
		return
	}
	n.bus.Publish(notify.DayChanged(date.In(time.Local)))
}
