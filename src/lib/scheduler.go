package lib

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var scheduler gocron.Scheduler

func NewScheduler(s gocron.Scheduler) {
	scheduler = s
}

func GetScheduler() (gocron.Scheduler, error) {
	if scheduler != nil {
		return scheduler, nil
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("Error initializing Scheduler: %s\n", err.Error())
		return nil, err
	}
	scheduler = sched
	return sched, nil
}

// CreateIntervalJob registers a repeating job on the owned scheduler. Jobs
// run in singleton mode: a tick that fires while the previous run is still
// going is skipped, so slow passes never overlap themselves.
func CreateIntervalJob(name string, interval time.Duration, handler func()) (*string, error) {
	sched, err := GetScheduler()
	if err != nil {
		return nil, err
	}
	j, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(handler),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}
	id := j.ID().String()
	log.Printf("Job: %s %s every %s\n", id, name, interval)
	return &id, nil
}

// StartScheduler begins executing registered jobs.
func StartScheduler() error {
	sched, err := GetScheduler()
	if err != nil {
		return err
	}
	sched.Start()
	log.Printf("Scheduler started with %d jobs\n", len(sched.Jobs()))
	return nil
}

// StopScheduler waits for running jobs and releases the scheduler.
func StopScheduler() error {
	if scheduler == nil {
		return nil
	}
	err := scheduler.Shutdown()
	scheduler = nil
	return err
}
