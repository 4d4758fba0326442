package engine

import (
	"container/heap"

	"rogue-server/internal/domain"
)

// TurnItem обертка для элемента очереди приоритетов
type TurnItem struct {
	ID    domain.ActorID // Чей ход
	Time  uint64         // next_turn_time. Чем меньше, тем раньше ход.
	Seq   uint64         // Порядок вставки: тай-брейк для равных Time
	Index int            // Индекс в куче (нужен для update)
}

// TurnQueue реализует heap.Interface и хранит TurnItems
type TurnQueue []*TurnItem

func (pq TurnQueue) Len() int { return len(pq) }

func (pq TurnQueue) Less(i, j int) bool {
	// MinHeap по времени. При равном времени побеждает более ранняя вставка:
	// это дает детерминированный порядок ходов между запусками.
	if pq[i].Time != pq[j].Time {
		return pq[i].Time < pq[j].Time
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq TurnQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *TurnQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*TurnItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *TurnQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// Update изменяет время и порядок вставки элемента в очереди
func (pq *TurnQueue) Update(item *TurnItem, time uint64, seq uint64) {
	item.Time = time
	item.Seq = seq
	heap.Fix(pq, item.Index)
}
