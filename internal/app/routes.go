package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Auth
	r.HandleFunc("/api/auth/register", deps.UserHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", deps.UserHandler.Login).Methods("POST")

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/category", deps.CategoryHandler.Create).Methods("POST")

	// Transactions
	r.HandleFunc("/api/transaction", deps.TransactionHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/transaction", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budget/overview", deps.BudgetHandler.GetOverview).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.Set).Methods("POST")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Delete).Methods("DELETE")
}
