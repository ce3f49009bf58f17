package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/centsible/centsible/internal/event_bus"
	"github.com/centsible/centsible/internal/utils"
	"github.com/centsible/centsible/pkg/category"
	"github.com/centsible/centsible/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidAmount      = errors.New("amount must be a positive number")
	ErrInvalidDescription = errors.New("description must be between 1 and 255 characters")
	ErrInvalidType        = errors.New("type must be either income or expense")
)

type Service interface {
	Create(ctx context.Context, txn Transaction) (Transaction, error)
	GetAll(ctx context.Context) ([]Transaction, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo       Repo
	categories category.Repo
	bus        *event_bus.EventBus
	clock      utils.Clock
}

func NewTransactionService(repo Repo, categories category.Repo, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		repo:       repo,
		categories: categories,
		bus:        bus,
		clock:      &utils.SystemClock{},
	}
}

func (s *ServiceImpl) Create(ctx context.Context, txn Transaction) (Transaction, error) {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}

	if txn.Amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	if len(txn.Description) < 1 || len(txn.Description) > 255 {
		return Transaction{}, ErrInvalidDescription
	}
	if txn.Type != TypeIncome && txn.Type != TypeExpense {
		return Transaction{}, ErrInvalidType
	}
	if txn.CategoryID != 0 {
		if _, err := s.categories.FindByID(ctx, txn.CategoryID); err != nil {
			return Transaction{}, err
		}
	}
	if txn.Date.IsZero() {
		txn.Date = s.clock.Now().UTC()
	}

	id, err := s.repo.Store(ctx, userId, txn)
	if err != nil {
		return Transaction{}, err
	}

	// The write is committed at this point. Budget reconciliation runs
	// synchronously via the bus, but its failure must not undo the ledger
	// entry, only be flagged.
	s.publish(ctx, event_bus.TransactionCreated, userId, txn)

	stored, err := s.repo.FindByID(ctx, userId, id)
	if err != nil {
		return Transaction{}, err
	}
	return stored, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Transaction, error) {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.FindAllForUser(ctx, userId)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	txn, err := s.repo.FindByID(ctx, userId, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}

	s.publish(ctx, event_bus.TransactionDeleted, userId, txn)
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, userId int, txn Transaction) {
	event := event_bus.NewEvent(ctx, eventType, event_bus.TransactionChanged{
		UserID:     userId,
		CategoryID: txn.CategoryID,
		Type:       string(txn.Type),
		Amount:     txn.Amount,
		OccurredAt: txn.Date,
	})
	if err := s.bus.Publish(event); err != nil {
		log.Warnf("budget update failed after %s for user %d, category %d: %v; spent amount is stale until the next reconciliation",
			eventType, userId, txn.CategoryID, err)
	}
}
