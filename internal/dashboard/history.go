package dashboard

import (
	"sort"
	"sync"

	"github.com/patternd/patternd/internal/monitor"
)

// DefaultHistorySize is the default number of data points retained per
// metric series.
const DefaultHistorySize = 60

// History keeps recent metric values in fixed-size ring buffers for
// sparkline rendering. Safe for concurrent use.
type History struct {
	mu      sync.Mutex
	size    int
	cpu     *ringBuffer
	mem     *ringBuffer
	network map[string]*netHistory
}

// netHistory holds per-interface rate series.
type netHistory struct {
	sent *ringBuffer
	recv *ringBuffer
}

// ringBuffer is a fixed-size circular buffer of float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a history tracker retaining size points per series.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:    size,
		cpu:     newRingBuffer(size),
		mem:     newRingBuffer(size),
		network: make(map[string]*netHistory),
	}
}

// Push records one snapshot's worth of data points. A nil snapshot is
// ignored.
func (h *History) Push(snap *monitor.Snapshot) {
	if snap == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.cpu.push(snap.CPUPercent)
	h.mem.push(snap.MemoryPercent)

	for name, io := range snap.NetworkIO {
		nh, ok := h.network[name]
		if !ok {
			nh = &netHistory{
				sent: newRingBuffer(h.size),
				recv: newRingBuffer(h.size),
			}
			h.network[name] = nh
		}
		nh.sent.push(io.SentPerSec)
		nh.recv.push(io.RecvPerSec)
	}
}

// CPU returns the CPU percentage series, oldest first.
func (h *History) CPU() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cpu.values()
}

// Memory returns the memory percentage series, oldest first.
func (h *History) Memory() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mem.values()
}

// NetworkRates returns the send and receive rate series for one
// interface, oldest first. Unknown interfaces return nil slices.
func (h *History) NetworkRates(iface string) (sent, recv []float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	nh, ok := h.network[iface]
	if !ok {
		return nil, nil
	}
	return nh.sent.values(), nh.recv.values()
}

// Interfaces returns the tracked interface names, sorted.
func (h *History) Interfaces() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.network))
	for name := range h.network {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

// push adds a value, overwriting the oldest once the buffer is full.
func (r *ringBuffer) push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// values returns the buffered values in insertion order, oldest first.
func (r *ringBuffer) values() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, 0, r.count)
	start := r.head - r.count
	if start < 0 {
		start += r.size
	}
	for i := 0; i < r.count; i++ {
		out = append(out, r.data[(start+i)%r.size])
	}
	return out
}
