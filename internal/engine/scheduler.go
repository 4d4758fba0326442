package engine

import (
	"container/heap"

	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"
)

// TurnScheduler manages the priority queue of actor turns.
// Invariant: at most one queue entry per actor. Schedule on an actor that is
// already queued replaces its entry instead of duplicating it.
type TurnScheduler struct {
	queue   TurnQueue
	itemMap map[domain.ActorID]*TurnItem
	nextSeq uint64
}

func NewTurnScheduler() *TurnScheduler {
	return &TurnScheduler{
		queue:   make(TurnQueue, 0),
		itemMap: make(map[domain.ActorID]*TurnItem),
	}
}

// Schedule inserts the actor at the given eligibility time, or updates the
// existing entry. Every call consumes a fresh insertion sequence number, so
// reschedules of equal times keep resolving in the order they were made.
func (ts *TurnScheduler) Schedule(id domain.ActorID, at uint64) {
	seq := ts.nextSeq
	ts.nextSeq++

	if item, ok := ts.itemMap[id]; ok {
		ts.queue.Update(item, at, seq)
		return
	}

	item := &TurnItem{ID: id, Time: at, Seq: seq}
	heap.Push(&ts.queue, item)
	ts.itemMap[id] = item

	logger.Log.WithField("actor", id).Debug("Actor scheduled")
}

// PeekNext returns the head of the queue without removing it.
func (ts *TurnScheduler) PeekNext() (domain.ActorID, uint64, bool) {
	if ts.queue.Len() == 0 {
		return domain.ActorNone, 0, false
	}
	head := ts.queue[0]
	return head.ID, head.Time, true
}

// AdvanceToNext removes and returns the head entry. This is the only
// mutating pop operation.
func (ts *TurnScheduler) AdvanceToNext() (domain.ActorID, uint64, bool) {
	if ts.queue.Len() == 0 {
		return domain.ActorNone, 0, false
	}
	item := heap.Pop(&ts.queue).(*TurnItem)
	delete(ts.itemMap, item.ID)
	return item.ID, item.Time, true
}

// Remove drops an actor from the queue (e.g. death). Returns false if the
// actor was not queued.
func (ts *TurnScheduler) Remove(id domain.ActorID) bool {
	item, ok := ts.itemMap[id]
	if !ok {
		return false
	}
	heap.Remove(&ts.queue, item.Index)
	delete(ts.itemMap, id)
	return true
}

// Contains reports whether the actor has a queue entry.
func (ts *TurnScheduler) Contains(id domain.ActorID) bool {
	_, ok := ts.itemMap[id]
	return ok
}

func (ts *TurnScheduler) Len() int {
	return ts.queue.Len()
}
