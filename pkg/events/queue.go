package events

import "sync"

// Scheduler runs tasks on a later turn of the host's event loop. Post must
// not run the task before returning.
type Scheduler interface {
	Post(task func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(task func())

// Post implements Scheduler.
func (f SchedulerFunc) Post(task func()) { f(task) }

// Queue is a FIFO Scheduler drained explicitly by the host with
// [Queue.RunPending]. Post is safe to call from any goroutine.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
}

// NewQueue returns an empty queue.
func NewQueue() *Queue { return &Queue{} }

// Post implements Scheduler.
func (q *Queue) Post(task func()) {
	if task == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
}

// Len returns the number of tasks waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// RunPending runs the tasks queued before the call, in order, and returns
// how many ran. Tasks posted while draining wait for the next call.
func (q *Queue) RunPending() int {
	q.mu.Lock()
	batch := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, task := range batch {
		task()
	}
	return len(batch)
}

// Drain calls RunPending until the queue stays empty or max turns have
// run, and returns the total number of tasks run.
func (q *Queue) Drain(max int) int {
	total := 0
	for i := 0; i < max; i++ {
		n := q.RunPending()
		if n == 0 {
			break
		}
		total += n
	}
	return total
}
