package service

import (
	"log"
)

type JobService struct {
	Calls *CallService
}

func NewJobService(calls *CallService) *JobService {
	return &JobService{Calls: calls}
}

// DispatchDueCalls is the cron entry point that drains the deferred-call
// queue once the business window for each parked call has opened.
func (s *JobService) DispatchDueCalls() error {
	log.Println("Cron Job: Checking for deferred calls to dispatch...")

	dispatched, err := s.Calls.DispatchDueCalls()
	if err != nil {
		return err
	}

	if dispatched == 0 {
		log.Println("Cron Job: No deferred calls due for dispatch.")
		return nil
	}

	log.Printf("Cron Job: Successfully dispatched %d deferred calls.", dispatched)
	return nil
}
