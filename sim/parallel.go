package sim

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/grit/world"
)

// regionTask is one 2x2-chunk region's worth of movement work.
type regionTask struct {
	id     int
	chunks []*world.Chunk
}

// taskRange is a contiguous slice of the task list for one worker.
type taskRange struct {
	start, end int
}

// parallelState holds the persistent worker pool for movement. Workers
// only ever touch chunks of the regions handed to them; same-parity regions
// are far enough apart that no two workers contend for a cell.
type parallelState struct {
	numWorkers int

	workChan chan taskRange // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup
	running  bool

	tasks   []regionTask
	results []moveStats
}

func newParallelState(workers int) *parallelState {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &parallelState{numWorkers: workers}
}

// startWorkers launches the persistent worker goroutines.
func (p *parallelState) startWorkers(s *Sim) {
	if p.running {
		return
	}
	p.workChan = make(chan taskRange, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(s)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}
	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *parallelState) worker(s *Sim) {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			return
		case tr, ok := <-p.workChan:
			if !ok {
				return
			}
			for i := tr.start; i < tr.end; i++ {
				s.runRegion(&p.tasks[i], &p.results[i])
			}
			p.doneChan <- struct{}{}
		}
	}
}

// dispatch runs one parity group's regions on the pool and returns the
// summed movement counters. The per-region RNG streams keep the outcome
// identical to a sequential run. At most one work item goes to each
// worker, so sends never outrun the channel capacities and the tick stays
// bounded no matter how many regions are active.
func (p *parallelState) dispatch(s *Sim, tasks []regionTask) moveStats {
	if !p.running {
		p.startWorkers(s)
	}

	p.tasks = tasks
	if cap(p.results) < len(tasks) {
		p.results = make([]moveStats, len(tasks))
	}
	p.results = p.results[:len(tasks)]
	for i := range p.results {
		p.results[i] = moveStats{}
	}

	rangeSize := (len(tasks) + p.numWorkers - 1) / p.numWorkers
	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * rangeSize
		end := start + rangeSize
		if end > len(tasks) {
			end = len(tasks)
		}
		if start >= end {
			continue
		}
		p.workChan <- taskRange{start: start, end: end}
		dispatched++
	}
	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}

	var total moveStats
	for _, st := range p.results {
		total.moves += st.moves
		total.swaps += st.swaps
	}
	p.tasks = nil
	return total
}
