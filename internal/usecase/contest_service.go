package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crickarena/fantasy-cricket/internal/domain/contest"
	"github.com/crickarena/fantasy-cricket/internal/domain/fantasy"
	"github.com/crickarena/fantasy-cricket/internal/domain/match"
	"github.com/crickarena/fantasy-cricket/internal/domain/wallet"
	"github.com/crickarena/fantasy-cricket/internal/platform/id"
	"github.com/crickarena/fantasy-cricket/internal/platform/logging"
)

type CreateContestInput struct {
	MatchID    string
	Name       string
	EntryFee   int64
	MaxEntries int
	Payouts    []contest.PayoutSlot
}

type JoinContestInput struct {
	UserID    string
	ContestID string
	TeamID    string
}

// ContestService owns the contest lifecycle and the join orchestration.
// Joining reserves a slot before touching money, debits the entry fee,
// and records the entry; each later step compensates the earlier ones
// on failure so a rejected join never leaves a slot held or a wallet
// debited.
type ContestService struct {
	contestRepo contest.Repository
	matchRepo   match.Repository
	teamRepo    fantasy.Repository
	walletRepo  wallet.Repository
	idGen       id.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewContestService(
	contestRepo contest.Repository,
	matchRepo match.Repository,
	teamRepo fantasy.Repository,
	walletRepo wallet.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *ContestService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ContestService{
		contestRepo: contestRepo,
		matchRepo:   matchRepo,
		teamRepo:    teamRepo,
		walletRepo:  walletRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ContestService) Create(ctx context.Context, input CreateContestInput) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "ContestService.Create")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.Name = strings.TrimSpace(input.Name)

	item, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return contest.Contest{}, fmt.Errorf("%w: match %s", ErrNotFound, input.MatchID)
	}
	if item.Status != match.StatusUpcoming {
		return contest.Contest{}, fmt.Errorf("%w: contests can only be created for upcoming matches", ErrInvalidInput)
	}

	contestID, err := s.idGen.NewID()
	if err != nil {
		return contest.Contest{}, fmt.Errorf("generate contest id: %w", err)
	}

	c := contest.Contest{
		ID:         contestID,
		MatchID:    input.MatchID,
		Name:       input.Name,
		EntryFee:   input.EntryFee,
		PrizePool:  input.EntryFee * int64(input.MaxEntries),
		MaxEntries: input.MaxEntries,
		Status:     contest.StatusOpen,
		Payouts:    input.Payouts,
		CreatedAt:  s.now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return contest.Contest{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.contestRepo.Create(ctx, c); err != nil {
		return contest.Contest{}, fmt.Errorf("create contest: %w", err)
	}

	return c, nil
}

func (s *ContestService) List(ctx context.Context, matchID string, status contest.Status) ([]contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "ContestService.List")
	defer span.End()

	if status != "" {
		if _, ok := contest.AllStatuses[status]; !ok {
			return nil, fmt.Errorf("%w: unknown contest status %q", ErrInvalidInput, status)
		}
	}

	items, err := s.contestRepo.List(ctx, strings.TrimSpace(matchID), status)
	if err != nil {
		return nil, fmt.Errorf("list contests: %w", err)
	}

	return items, nil
}

func (s *ContestService) GetByID(ctx context.Context, contestID string) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "ContestService.GetByID")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return contest.Contest{}, fmt.Errorf("%w: contest_id is required", ErrInvalidInput)
	}

	item, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get contest by id: %w", err)
	}
	if !exists {
		return contest.Contest{}, fmt.Errorf("%w: contest %s", ErrNotFound, contestID)
	}

	return item, nil
}

// Join runs the entry pipeline: validate ownership and contest state,
// reject duplicates, reserve a slot, debit the entry fee, record the
// entry. The slot reservation is the only step allowed to race; the
// repository guarantees at most MaxEntries reservations ever succeed.
func (s *ContestService) Join(ctx context.Context, input JoinContestInput) (contest.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "ContestService.Join")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.ContestID = strings.TrimSpace(input.ContestID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.UserID == "" {
		return contest.Entry{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if input.ContestID == "" {
		return contest.Entry{}, fmt.Errorf("%w: contest_id is required", ErrInvalidInput)
	}
	if input.TeamID == "" {
		return contest.Entry{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	c, err := s.GetByID(ctx, input.ContestID)
	if err != nil {
		return contest.Entry{}, err
	}

	team, exists, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return contest.Entry{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return contest.Entry{}, fmt.Errorf("%w: team %s", ErrNotFound, input.TeamID)
	}
	if team.UserID != input.UserID {
		return contest.Entry{}, fmt.Errorf("%w: team %s does not belong to caller", ErrUnauthorized, input.TeamID)
	}
	if team.MatchID != c.MatchID {
		return contest.Entry{}, fmt.Errorf("%w: team %s was built for a different match", ErrInvalidInput, input.TeamID)
	}

	if _, exists, err := s.contestRepo.GetEntry(ctx, input.ContestID, input.UserID); err != nil {
		return contest.Entry{}, fmt.Errorf("check existing entry: %w", err)
	} else if exists {
		return contest.Entry{}, contest.ErrDuplicateEntry
	}

	// Reserve before debiting so a full contest never touches the
	// wallet. The repository re-checks status and capacity atomically.
	if err := s.contestRepo.ReserveSlot(ctx, input.ContestID); err != nil {
		if errors.Is(err, contest.ErrContestNotOpen) || errors.Is(err, contest.ErrContestFull) {
			return contest.Entry{}, err
		}
		return contest.Entry{}, fmt.Errorf("reserve contest slot: %w", err)
	}

	if c.EntryFee > 0 {
		if err := s.debitEntryFee(ctx, input, c.EntryFee); err != nil {
			s.releaseSlot(ctx, input.ContestID)
			return contest.Entry{}, err
		}
	}

	entry, err := s.recordEntry(ctx, input)
	if err != nil {
		if c.EntryFee > 0 {
			s.refundEntryFee(ctx, input, c.EntryFee)
		}
		s.releaseSlot(ctx, input.ContestID)
		return contest.Entry{}, err
	}

	return entry, nil
}

func (s *ContestService) debitEntryFee(ctx context.Context, input JoinContestInput, fee int64) error {
	txnID, err := s.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate transaction id: %w", err)
	}

	txn := wallet.Transaction{
		ID:          txnID,
		UserID:      input.UserID,
		Type:        wallet.TypeContestEntry,
		Amount:      fee,
		Status:      wallet.StatusCompleted,
		ReferenceID: input.ContestID,
		Description: "contest entry fee",
		CreatedAt:   s.now().UTC(),
	}
	if err := s.walletRepo.Debit(ctx, txn); err != nil {
		if errors.Is(err, wallet.ErrInsufficientBalance) {
			return err
		}
		return fmt.Errorf("debit entry fee: %w", err)
	}

	return nil
}

func (s *ContestService) recordEntry(ctx context.Context, input JoinContestInput) (contest.Entry, error) {
	entryID, err := s.idGen.NewID()
	if err != nil {
		return contest.Entry{}, fmt.Errorf("generate entry id: %w", err)
	}

	entry := contest.Entry{
		ID:        entryID,
		ContestID: input.ContestID,
		UserID:    input.UserID,
		TeamID:    input.TeamID,
		JoinedAt:  s.now().UTC(),
	}
	if err := s.contestRepo.CreateEntry(ctx, entry); err != nil {
		if errors.Is(err, contest.ErrDuplicateEntry) {
			return contest.Entry{}, err
		}
		return contest.Entry{}, fmt.Errorf("create contest entry: %w", err)
	}

	return entry, nil
}

// refundEntryFee compensates a debit after a later join step failed.
// Compensation failures are logged, not returned: the caller already
// has the join error, and the refund can be replayed from the ledger.
func (s *ContestService) refundEntryFee(ctx context.Context, input JoinContestInput, fee int64) {
	txnID, err := s.idGen.NewID()
	if err != nil {
		s.logger.ErrorContext(ctx, "generate refund transaction id", "error", err, "contest_id", input.ContestID, "user_id", input.UserID)
		return
	}

	txn := wallet.Transaction{
		ID:          txnID,
		UserID:      input.UserID,
		Type:        wallet.TypeContestRefund,
		Amount:      fee,
		Status:      wallet.StatusCompleted,
		ReferenceID: input.ContestID,
		Description: "contest entry refund",
		CreatedAt:   s.now().UTC(),
	}
	if err := s.walletRepo.Credit(ctx, txn); err != nil {
		s.logger.ErrorContext(ctx, "refund entry fee", "error", err, "contest_id", input.ContestID, "user_id", input.UserID)
	}
}

func (s *ContestService) releaseSlot(ctx context.Context, contestID string) {
	if err := s.contestRepo.ReleaseSlot(ctx, contestID); err != nil {
		s.logger.ErrorContext(ctx, "release contest slot", "error", err, "contest_id", contestID)
	}
}

func (s *ContestService) ListEntries(ctx context.Context, contestID string) ([]contest.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "ContestService.ListEntries")
	defer span.End()

	if _, err := s.GetByID(ctx, contestID); err != nil {
		return nil, err
	}

	entries, err := s.contestRepo.ListEntriesByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("list contest entries: %w", err)
	}

	return entries, nil
}

func (s *ContestService) ListUserEntries(ctx context.Context, userID string) ([]contest.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "ContestService.ListUserEntries")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	entries, err := s.contestRepo.ListEntriesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries by user: %w", err)
	}

	return entries, nil
}
