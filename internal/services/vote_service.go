package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"freelancer-dao/internal/models"
	"freelancer-dao/internal/repository"

	"gorm.io/gorm"
)

// VoteService implements the vote tally engine and the assignment trigger.
// One live ballot per (project, voter); weight is frozen at cast time.
type VoteService struct {
	db           *gorm.DB
	repo         *repository.Repository
	params       *ParamsService
	eventService *EventService
	locks        *KeyedMutex
}

func NewVoteService(
	db *gorm.DB,
	repo *repository.Repository,
	params *ParamsService,
	eventService *EventService,
	locks *KeyedMutex,
) *VoteService {
	return &VoteService{
		db:           db,
		repo:         repo,
		params:       params,
		eventService: eventService,
		locks:        locks,
	}
}

// VotingWeight computes floor(stake * reputation / 1000).
func VotingWeight(stake, reputation int64) int64 {
	return stake * reputation / 1000
}

// CastVote records a ballot for a project. Constraints are checked in a
// fixed order and the first failing one is reported. After recording, the
// assignment trigger runs: casting a vote is one of the points where an
// elapsed voting window is acted on.
func (s *VoteService) CastVote(ctx context.Context, voterID, projectID, candidateID uint) (*models.Vote, error) {
	unlock := s.locks.Lock(ProjectKey(projectID))

	vote, err := s.castLocked(ctx, voterID, projectID, candidateID)
	unlock()
	if err != nil {
		return nil, err
	}

	// The trigger takes the project lock itself, so it runs after the vote's
	// lock is released. A no-op here is normal: the window is usually open.
	if _, err := s.TryAssign(ctx, projectID); err != nil {
		log.Printf("Warning: assignment trigger after vote on project %d failed: %v", projectID, err)
	}

	return vote, nil
}

func (s *VoteService) castLocked(ctx context.Context, voterID, projectID, candidateID uint) (*models.Vote, error) {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err == gorm.ErrRecordNotFound {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	if project.Status != models.ProjectStatusOpen {
		return nil, ErrProjectNotOpen
	}

	params, err := s.params.Current(ctx)
	if err != nil {
		return nil, err
	}

	if !time.Now().Before(project.VotingDeadline(params.VotingPeriod())) {
		return nil, ErrVotingClosed
	}

	voter, err := s.repo.GetUserByID(ctx, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load voter: %w", err)
	}
	if !voter.Active {
		return nil, ErrVoterNotActive
	}

	candidate, err := s.repo.GetUserByID(ctx, candidateID)
	if err != nil || !candidate.Active {
		return nil, ErrCandidateNotActive
	}

	candidateStake, err := s.repo.GetStake(ctx, candidateID, project.Category)
	if err != nil {
		return nil, err
	}
	if candidateStake < params.MinimumStake {
		return nil, ErrCandidateUnderqualified
	}

	voterStake, err := s.repo.GetStake(ctx, voterID, project.Category)
	if err != nil {
		return nil, err
	}
	weight := VotingWeight(voterStake, voter.Reputation)
	if weight <= 0 {
		return nil, ErrNoVotingPower
	}

	vote := &models.Vote{
		ProjectID:   projectID,
		VoterID:     voterID,
		CandidateID: candidateID,
		Weight:      weight,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.UpsertVote(ctx, vote); err != nil {
			return err
		}
		if err := txRepo.AddCandidate(ctx, projectID, candidateID); err != nil {
			return err
		}
		return s.eventService.Emit(tx, models.EventVoteCast, &projectID, &voterID, models.JSONB{
			"candidate_id": candidateID,
			"weight":       weight,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Vote cast on project %d: voter=%d candidate=%d weight=%d", projectID, voterID, candidateID, weight)
	return vote, nil
}

// ResolveWinner determines the weighted-plurality winner of a project.
// Candidates are scanned in first-appearance order with a strict greater-than
// comparison, so the earliest-nominated candidate wins ties. Returns nil when
// there are no candidates or every total is zero.
func (s *VoteService) ResolveWinner(ctx context.Context, projectID uint) (*uint, error) {
	candidates, err := s.repo.ListCandidates(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	totals, err := s.repo.SumWeightsByCandidate(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var winner *uint
	var best int64
	for _, candidate := range candidates {
		total := totals[candidate.CandidateID]
		if total > best {
			best = total
			id := candidate.CandidateID
			winner = &id
		}
	}
	return winner, nil
}

// TryAssign advances a project from Open to InProgress once the voting
// window has elapsed and a winner exists. Calling it on a project that is
// past Open, still inside its window, or without a winner is a no-op, so
// repeated invocations are safe.
func (s *VoteService) TryAssign(ctx context.Context, projectID uint) (bool, error) {
	unlock := s.locks.Lock(ProjectKey(projectID))
	defer unlock()

	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err == gorm.ErrRecordNotFound {
		return false, ErrProjectNotFound
	}
	if err != nil {
		return false, err
	}
	if project.Status != models.ProjectStatusOpen {
		return false, nil
	}

	params, err := s.params.Current(ctx)
	if err != nil {
		return false, err
	}
	if time.Now().Before(project.VotingDeadline(params.VotingPeriod())) {
		return false, nil
	}

	winner, err := s.ResolveWinner(ctx, projectID)
	if err != nil {
		return false, err
	}
	if winner == nil {
		// No winner yet: the project stays Open and is reconsidered on the
		// next qualifying call or sweeper pass.
		return false, nil
	}

	project.AssigneeID = winner
	project.Status = models.ProjectStatusInProgress

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).UpdateProject(ctx, project); err != nil {
			return err
		}
		return s.eventService.Emit(tx, models.EventProjectAssigned, &projectID, winner, models.JSONB{
			"assignee_id": *winner,
		})
	})
	if err != nil {
		return false, err
	}

	log.Printf("Project %d assigned to freelancer %d", projectID, *winner)
	return true, nil
}

// Tally returns the per-candidate weight totals in first-appearance order,
// for inspection while voting is underway.
func (s *VoteService) Tally(ctx context.Context, projectID uint) ([]models.CandidateTally, error) {
	candidates, err := s.repo.ListCandidates(ctx, projectID)
	if err != nil {
		return nil, err
	}
	totals, err := s.repo.SumWeightsByCandidate(ctx, projectID)
	if err != nil {
		return nil, err
	}

	tally := make([]models.CandidateTally, 0, len(candidates))
	for _, candidate := range candidates {
		tally = append(tally, models.CandidateTally{
			CandidateID: candidate.CandidateID,
			Position:    candidate.Position,
			TotalWeight: totals[candidate.CandidateID],
		})
	}
	return tally, nil
}

// ListVotes returns all live ballots for a project.
func (s *VoteService) ListVotes(ctx context.Context, projectID uint) ([]*models.Vote, error) {
	return s.repo.ListVotes(ctx, projectID)
}
