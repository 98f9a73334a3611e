package job

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// SemesterStore is the slice of the persistence gateway the lifecycle job
// needs: one bulk select-and-update.
type SemesterStore interface {
	DeactivateExpired(now time.Time) (int64, error)
}

// SemesterLifecycleJob retires expired semesters on a fixed schedule. It is
// the sole writer of the active flag. A failed tick is logged and dropped;
// the next scheduled tick picks the sweep back up.
type SemesterLifecycleJob struct {
	store SemesterStore
	spec  string
	now   func() time.Time

	cron *cron.Cron
}

func NewSemesterLifecycleJob(store SemesterStore, spec string) *SemesterLifecycleJob {
	if spec == "" {
		spec = "0 0 * * *"
	}
	return &SemesterLifecycleJob{
		store: store,
		spec:  spec,
		now:   time.Now,
	}
}

// Start schedules the sweep. With runOnStart the first tick runs
// synchronously before the schedule begins, so a process that was down past
// a semester boundary catches up immediately.
func (j *SemesterLifecycleJob) Start(runOnStart bool) error {
	if j.cron != nil {
		return nil
	}

	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddFunc(j.spec, j.tick); err != nil {
		return fmt.Errorf("schedule semester lifecycle failed: %w", err)
	}
	j.cron = c

	if runOnStart {
		j.tick()
	}
	c.Start()
	return nil
}

func (j *SemesterLifecycleJob) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
}

func (j *SemesterLifecycleJob) tick() {
	count, err := j.store.DeactivateExpired(j.now())
	if err != nil {
		log.Printf("semester lifecycle tick failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("semester lifecycle: marked %d expired semesters inactive", count)
	}
}
