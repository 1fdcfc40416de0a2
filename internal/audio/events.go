package audio

import (
	"sync"

	"github.com/llehouerou/folio/internal/player"
)

type delivery struct {
	ev player.Event
	to uint64 // 0 means every subscriber
}

// dispatcher delivers events in order from a single goroutine so that
// emitters (the mixer callback included) never block on subscribers.
type dispatcher struct {
	mu      sync.Mutex
	queue   []delivery
	subs    map[uint64]func(player.Event)
	order   []uint64
	nextID  uint64
	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once

	// before runs on the dispatch goroutine ahead of delivering ev.
	before func(ev player.Event)
}

func newDispatcher(before func(player.Event)) *dispatcher {
	d := &dispatcher{
		subs:    make(map[uint64]func(player.Event)),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		before:  before,
	}
	go d.run()
	return d
}

func (d *dispatcher) subscribe(fn func(player.Event)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.subs[id] = fn
	d.order = append(d.order, id)
	return id
}

func (d *dispatcher) unsubscribe(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.subs, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func (d *dispatcher) emit(ev player.Event) {
	d.send(delivery{ev: ev})
}

func (d *dispatcher) emitTo(id uint64, ev player.Event) {
	d.send(delivery{ev: ev, to: id})
}

func (d *dispatcher) send(dl delivery) {
	d.mu.Lock()
	d.queue = append(d.queue, dl)
	d.mu.Unlock()
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *dispatcher) run() {
	defer close(d.stopped)
	for {
		select {
		case <-d.done:
			return
		case <-d.wake:
		}
		for {
			select {
			case <-d.done:
				return
			default:
			}
			d.mu.Lock()
			if len(d.queue) == 0 {
				d.mu.Unlock()
				break
			}
			dl := d.queue[0]
			d.queue = d.queue[1:]
			var fns []func(player.Event)
			if dl.to != 0 {
				if fn, ok := d.subs[dl.to]; ok {
					fns = append(fns, fn)
				}
			} else {
				for _, id := range d.order {
					fns = append(fns, d.subs[id])
				}
			}
			d.mu.Unlock()

			if d.before != nil && dl.to == 0 {
				d.before(dl.ev)
			}
			for _, fn := range fns {
				fn(dl.ev)
			}
		}
	}
}

// close stops delivery; queued events are dropped. It waits for an
// in-progress delivery unless called from the dispatch goroutine itself.
func (d *dispatcher) close(wait bool) {
	d.once.Do(func() { close(d.done) })
	if wait {
		<-d.stopped
	}
}
