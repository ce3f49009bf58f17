package transaction

import (
	"context"
	"sort"
	"time"
)

type StubTransactionRepo struct {
	nextID int
	data   map[int]Transaction
	owners map[int]int
}

func NewStubTransactionRepo() *StubTransactionRepo {
	return &StubTransactionRepo{nextID: 0, data: map[int]Transaction{}, owners: map[int]int{}}
}

func (s *StubTransactionRepo) Store(ctx context.Context, userId int, txn Transaction) (int, error) {
	s.nextID++
	txn.ID = s.nextID
	s.data[txn.ID] = txn
	s.owners[txn.ID] = userId
	return txn.ID, nil
}

func (s *StubTransactionRepo) FindAllForUser(ctx context.Context, userId int) ([]Transaction, error) {
	var transactions []Transaction
	for id, txn := range s.data {
		if s.owners[id] == userId {
			transactions = append(transactions, txn)
		}
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
	return transactions, nil
}

func (s *StubTransactionRepo) FindByID(ctx context.Context, userId int, id int) (Transaction, error) {
	txn, ok := s.data[id]
	if !ok || s.owners[id] != userId {
		return Transaction{}, ErrTransactionNotFound
	}
	return txn, nil
}

func (s *StubTransactionRepo) Delete(ctx context.Context, userId int, id int) (bool, error) {
	if _, ok := s.data[id]; !ok || s.owners[id] != userId {
		return false, nil
	}
	delete(s.data, id)
	delete(s.owners, id)
	return true, nil
}

func (s *StubTransactionRepo) SumExpenses(ctx context.Context, userId int, categoryId int, from, to time.Time) (float64, error) {
	sum := 0.0
	for id, txn := range s.data {
		if s.owners[id] != userId || txn.Type != TypeExpense || txn.CategoryID != categoryId {
			continue
		}
		if txn.Date.Before(from) || txn.Date.After(to) {
			continue
		}
		sum += txn.Amount
	}
	return sum, nil
}

func (s *StubTransactionRepo) ListExpensesByDate(ctx context.Context, userId int, from, to time.Time) ([]DailyAmount, error) {
	byDate := map[time.Time]float64{}
	for id, txn := range s.data {
		if s.owners[id] != userId || txn.Type != TypeExpense {
			continue
		}
		if txn.Date.Before(from) || txn.Date.After(to) {
			continue
		}
		day := time.Date(txn.Date.Year(), txn.Date.Month(), txn.Date.Day(), 0, 0, 0, 0, time.UTC)
		byDate[day] += txn.Amount
	}

	daily := make([]DailyAmount, 0, len(byDate))
	for date, amount := range byDate {
		daily = append(daily, DailyAmount{Date: date, Amount: amount})
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date.Before(daily[j].Date)
	})
	return daily, nil
}

func (s *StubTransactionRepo) Cleanup() {
	s.data = map[int]Transaction{}
	s.owners = map[int]int{}
}
