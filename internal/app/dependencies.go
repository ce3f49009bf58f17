package app

import (
	"database/sql"
	"time"

	"github.com/centsible/centsible/internal/config"
	"github.com/centsible/centsible/internal/event_bus"
	"github.com/centsible/centsible/internal/utils"
	"github.com/centsible/centsible/pkg/budget"
	"github.com/centsible/centsible/pkg/category"
	"github.com/centsible/centsible/pkg/transaction"
	"github.com/centsible/centsible/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	Tokens      *user.TokenIssuer
	UserService user.Service
	UserHandler *user.Handler

	CategoryRepo    category.Repo
	CategoryService category.Service
	CategoryHandler *category.Handler

	TransactionRepo    transaction.Repo
	TransactionService transaction.Service
	TransactionHandler *transaction.Handler

	BudgetRepo      budget.Repo
	Reconciler      *budget.Reconciler
	BudgetService   budget.Service
	OverviewService budget.OverviewService
	BudgetHandler   *budget.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.Tokens = user.NewTokenIssuer(cfg.Auth.TokenSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	deps.UserService = user.NewUserService(user.NewUserRepo(db), deps.Tokens)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.CategoryRepo = category.NewCategoryRepo(db)
	deps.CategoryService = category.NewCategoryService(deps.CategoryRepo)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.TransactionRepo = transaction.NewTransactionRepo(db)
	deps.TransactionService = transaction.NewTransactionService(deps.TransactionRepo, deps.CategoryRepo, deps.EventBus)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.Reconciler = budget.NewReconciler(deps.BudgetRepo, deps.TransactionRepo)
	// ledger writes flow into spent amounts through the bus
	deps.Reconciler.SubscribeTo(deps.EventBus)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo, deps.CategoryRepo, deps.Reconciler, cfg.Budget)
	deps.OverviewService = budget.NewOverviewService(deps.BudgetRepo, deps.TransactionRepo)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService, deps.OverviewService)

	return deps
}
