package jobs

import (
	"context"
	"log"
	"time"

	"freelancer-dao/internal/repository"
	"freelancer-dao/internal/services"
)

// AssignmentSweeper periodically closes voting on projects whose window has
// elapsed. Assignment normally happens lazily on the vote path, but projects
// that stop receiving votes would otherwise stay open forever.
type AssignmentSweeper struct {
	repo          *repository.Repository
	voteService   *services.VoteService
	paramsService *services.ParamsService
	interval      time.Duration
	stopChan      chan struct{}
}

// NewAssignmentSweeper creates a new assignment sweeper job
func NewAssignmentSweeper(
	repo *repository.Repository,
	voteService *services.VoteService,
	paramsService *services.ParamsService,
	interval time.Duration,
) *AssignmentSweeper {
	return &AssignmentSweeper{
		repo:          repo,
		voteService:   voteService,
		paramsService: paramsService,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the sweep loop
func (as *AssignmentSweeper) Start() {
	log.Printf("[AssignmentSweeper] Starting assignment sweep job (interval: %v)", as.interval)

	ticker := time.NewTicker(as.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			as.sweepExpiredProjects()
		case <-as.stopChan:
			log.Println("[AssignmentSweeper] Stopping assignment sweep job")
			return
		}
	}
}

// Stop stops the sweep loop
func (as *AssignmentSweeper) Stop() {
	close(as.stopChan)
}

// sweepExpiredProjects finds open projects past their voting deadline and
// triggers assignment on each.
func (as *AssignmentSweeper) sweepExpiredProjects() {
	ctx := context.Background()

	params, err := as.paramsService.Current(ctx)
	if err != nil {
		log.Printf("[AssignmentSweeper] Error loading params: %v", err)
		return
	}

	cutoff := time.Now().Add(-params.VotingPeriod())
	projects, err := as.repo.ListOpenProjectsCreatedBefore(ctx, cutoff, 100)
	if err != nil {
		log.Printf("[AssignmentSweeper] Error fetching open projects: %v", err)
		return
	}

	if len(projects) == 0 {
		return
	}

	log.Printf("[AssignmentSweeper] Checking %d expired projects", len(projects))

	assignedCount := 0
	for _, project := range projects {
		assigned, err := as.voteService.TryAssign(ctx, project.ID)
		if err != nil {
			log.Printf("[AssignmentSweeper] Error assigning project %d: %v", project.ID, err)
			continue
		}
		if assigned {
			assignedCount++
			log.Printf("[AssignmentSweeper] Assigned project %d", project.ID)
		}
	}

	if assignedCount > 0 {
		log.Printf("[AssignmentSweeper] Assigned %d projects", assignedCount)
	}
}
