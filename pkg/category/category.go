package category

type CategoryType string

const (
	TypeIncome  CategoryType = "income"
	TypeExpense CategoryType = "expense"
)

// Category is shared across all users. Default categories are seeded by
// migration; user-created ones carry IsDefault = false.
type Category struct {
	ID        int
	Name      string
	Type      CategoryType
	Icon      string
	Color     string
	IsDefault bool
}
