package memory

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

// Option customizes a taskRepository.
type Option func(*taskRepository)

// WithClock replaces time.Now as the source of task timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *taskRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// taskRepository keeps tasks in a map guarded by a single RWMutex.
// Ids come from a counter that is never reset, so deleted ids are never reissued.
type taskRepository struct {
	mu     sync.RWMutex
	tasks  map[int64]domain.Task
	nextID int64
	now    func() time.Time
}

// NewTaskRepository returns an empty in-memory TaskRepository.
func NewTaskRepository(opts ...Option) repository.TaskRepository {
	r := &taskRepository{
		tasks:  make(map[int64]domain.Task),
		nextID: 1,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *taskRepository) Create(fields domain.TaskFields) domain.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	task := domain.Task{ID: r.nextID}
	task.Apply(fields)
	task.StampCreated(r.now())

	r.nextID++
	r.tasks[task.ID] = task
	return task
}

func (r *taskRepository) List() []domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		out = append(out, task)
	}
	slices.SortFunc(out, func(a, b domain.Task) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func (r *taskRepository) Get(id int64) (domain.Task, bool) {
	r.mu.RLock()
	task, ok := r.tasks[id]
	r.mu.RUnlock()

	return task, ok
}

func (r *taskRepository) Update(id int64, fields domain.TaskFields) (domain.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, false
	}
	task.Apply(fields)
	task.StampUpdated(r.now())
	r.tasks[id] = task
	return task, true
}

func (r *taskRepository) Patch(id int64, patch repository.TaskPatch) (domain.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, false
	}
	// an empty patch still counts as a touch
	patch.ApplyTo(&task)
	task.StampUpdated(r.now())
	r.tasks[id] = task
	return task, true
}

func (r *taskRepository) Delete(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return false
	}
	delete(r.tasks, id)
	return true
}

func (r *taskRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}
