package reminder

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"task-reminder/internal/model"
)

const escalateTimeout = 30 * time.Second

// TaskSource is the slice of the store facade the scheduler needs.
type TaskSource interface {
	Loaded() bool
	Tasks() []model.Task
	MarkReminded(ctx context.Context, id string) (*model.Task, error)
}

// Notifier receives escalation events. Optional.
type Notifier interface {
	TaskEscalated(task model.Task) error
}

// Scheduler periodically re-evaluates every loaded task and escalates the
// ones that are due. It is stateless: each tick re-derives everything from
// the store, so a missed or duplicated tick cannot corrupt anything.
type Scheduler struct {
	source   TaskSource
	notifier Notifier
	cron     *cron.Cron
}

func New(source TaskSource, notifier Notifier, loc *time.Location) *Scheduler {
	return &Scheduler{
		source:   source,
		notifier: notifier,
		cron:     cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// Start registers the periodic check and starts ticking.
func (s *Scheduler) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	spec := fmt.Sprintf("@every %ds", seconds)
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop cancels the recurring tick and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// CheckNow runs one evaluation pass immediately. Called once after the
// initial load so overdue tasks escalate without waiting a full tick.
func (s *Scheduler) CheckNow() {
	s.tick()
}

// tick evaluates the current snapshot. Escalations are issued concurrently;
// a failure on one task never blocks the others. If the escalated status has
// not landed by the next tick, the WORKING precondition in the evaluator
// keeps the retry harmless.
func (s *Scheduler) tick() {
	if !s.source.Loaded() {
		return
	}

	now := time.Now()
	var wg sync.WaitGroup
	for _, task := range s.source.Tasks() {
		if !NeedsAttention(task, now) {
			continue
		}
		wg.Add(1)
		go func(t model.Task) {
			defer wg.Done()
			s.escalate(t)
		}(task)
	}
	wg.Wait()
}

func (s *Scheduler) escalate(task model.Task) {
	ctx, cancel := context.WithTimeout(context.Background(), escalateTimeout)
	defer cancel()

	escalated, err := s.source.MarkReminded(ctx, task.ID)
	if err != nil {
		log.Printf("escalate task %s: %v", task.ID, err)
		return
	}
	log.Printf("[info] task escalated id=%s interval=%dh", task.ID, task.ReminderInterval)

	if s.notifier == nil {
		return
	}
	if err := s.notifier.TaskEscalated(*escalated); err != nil {
		log.Printf("notify escalation %s: %v", task.ID, err)
	}
}
