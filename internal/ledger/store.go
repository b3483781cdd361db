// Package ledger implements the term/expense ledger store: the single
// source of truth for terms, expenses, categories, the active-term
// pointer and the global currency preference. Every mutation validates
// its input, rebuilds the affected collections, persists them through
// the KV port and only then commits the result to memory, so a failed
// durable write never leaves half-applied state behind.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"termly/internal/core"
	applog "termly/internal/log"
)

// ErrNoActiveTerm is returned by operations that require an open term.
var ErrNoActiveTerm = errors.New("no active term")

// DefaultCurrency seeds the global preference when no configured
// default is supplied and none is stored yet.
const DefaultCurrency = "USD"

var defaultCategories = []core.Category{
	{ID: "cat-food", Name: "Food", IsDefault: true},
	{ID: "cat-travel", Name: "Travel", IsDefault: true},
	{ID: "cat-rent", Name: "Rent", IsDefault: true},
	{ID: "cat-bills", Name: "Bills", IsDefault: true},
	{ID: "cat-shopping", Name: "Shopping", IsDefault: true},
	{ID: "cat-other", Name: "Other", IsDefault: true},
}

// Store owns the persisted collections. One instance per application
// session; collaborators are injected (no ambient singletons).
type Store struct {
	mu    sync.Mutex
	kv    KV
	clock Clock
	newID IDFunc

	globalCurrency string
	terms          []core.Term
	activeTermID   string // empty means no active term
	expenses       []core.Expense
	categories     []core.Category

	// version increments on every committed mutation; read-side caches
	// key derived views by it.
	version uint64
}

// ExpenseInput carries the caller-supplied fields of a new expense. The
// id and term id are assigned by the store.
type ExpenseInput struct {
	Amount     core.Money
	CategoryID string
	Type       core.PaymentType
	Date       core.Date
	Note       string
}

// ExpensePatch updates individual expense fields in place; nil fields
// are left untouched.
type ExpensePatch struct {
	Amount     *core.Money
	CategoryID *string
	Type       *core.PaymentType
	Date       *core.Date
	Note       *string
}

// Open loads the collections from the KV store and seeds the default
// categories on first use. defaultCurrency applies only when no global
// currency has been stored yet; a persisted preference always wins.
func Open(ctx context.Context, kv KV, clock Clock, newID IDFunc, defaultCurrency string) (*Store, error) {
	s := &Store{
		kv:             kv,
		clock:          clock,
		newID:          newID,
		globalCurrency: strings.TrimSpace(defaultCurrency),
	}
	if s.globalCurrency == "" {
		s.globalCurrency = DefaultCurrency
	}

	if _, err := kv.Get(ctx, KeyGlobalCurrency, &s.globalCurrency); err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyGlobalCurrency, err)
	}
	if _, err := kv.Get(ctx, KeyTerms, &s.terms); err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyTerms, err)
	}
	if _, err := kv.Get(ctx, KeyActiveTermID, &s.activeTermID); err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyActiveTermID, err)
	}
	if _, err := kv.Get(ctx, KeyExpenses, &s.expenses); err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyExpenses, err)
	}

	found, err := kv.Get(ctx, KeyCategories, &s.categories)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyCategories, err)
	}
	if !found {
		seed := append([]core.Category(nil), defaultCategories...)
		if err := kv.Set(ctx, KeyCategories, seed); err != nil {
			return nil, fmt.Errorf("seed %s: %w", KeyCategories, err)
		}
		s.categories = seed
		slog.InfoContext(ctx, "Seeded default categories",
			applog.FieldComponent, applog.ComponentLedger,
			"count", len(seed))
	}

	// A dangling active pointer (term deleted out from under it) is
	// repaired to null rather than rejected.
	if s.activeTermID != "" && s.findTerm(s.activeTermID) < 0 {
		slog.WarnContext(ctx, "Active term pointer references a missing term, clearing",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldTermID, s.activeTermID)
		s.activeTermID = ""
	}

	return s, nil
}

type kvEntry struct {
	key   string
	value any
}

// persist writes the given entries through the KV port. Callers commit
// to memory only after it returns nil.
func (s *Store) persist(ctx context.Context, entries ...kvEntry) error {
	for _, e := range entries {
		if err := s.kv.Set(ctx, e.key, e.value); err != nil {
			return fmt.Errorf("persist %s: %w", e.key, err)
		}
	}
	return nil
}

// StartNewTerm opens a new budgeting period running from startDate to
// the end of that calendar month, priced in the global currency, and
// makes it the active term. Overlap with existing terms is permitted;
// the user controls term switching explicitly.
func (s *Store) StartNewTerm(ctx context.Context, startDate core.Date, budget core.Money) (core.Term, error) {
	if err := startDate.Validate(); err != nil {
		return core.Term{}, err
	}
	if err := budget.Validate(); err != nil {
		return core.Term{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	term := core.Term{
		ID:        s.newID(),
		StartDate: startDate,
		EndDate:   startDate.EndOfMonth(),
		Budget:    budget,
		Currency:  s.globalCurrency,
	}

	terms := append(append([]core.Term(nil), s.terms...), term)
	sortTermsByStartDesc(terms)

	if err := s.persist(ctx,
		kvEntry{KeyTerms, terms},
		kvEntry{KeyActiveTermID, term.ID},
	); err != nil {
		return core.Term{}, err
	}
	s.terms = terms
	s.activeTermID = term.ID
	s.version++

	slog.InfoContext(ctx, "Term started",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpCreate,
		applog.FieldTermID, term.ID,
		applog.FieldAmountCents, term.Budget.Cents,
		applog.FieldCurrency, term.Currency)
	return term, nil
}

// UpdateTermBudget replaces a term's budget. Unknown ids are a no-op.
func (s *Store) UpdateTermBudget(ctx context.Context, termID string, budget core.Money) error {
	if err := budget.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTerm(termID)
	if i < 0 {
		return nil
	}

	terms := append([]core.Term(nil), s.terms...)
	terms[i].Budget = budget

	if err := s.persist(ctx, kvEntry{KeyTerms, terms}); err != nil {
		return err
	}
	s.terms = terms
	s.version++
	return nil
}

// UpdateTermCurrency replaces a term's currency code. This is the only
// path that changes a term's currency after creation; the global
// preference never cascades. Unknown ids are a no-op.
func (s *Store) UpdateTermCurrency(ctx context.Context, termID, code string) error {
	if strings.TrimSpace(code) == "" {
		return core.ErrInvalidCurrency
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTerm(termID)
	if i < 0 {
		return nil
	}

	terms := append([]core.Term(nil), s.terms...)
	terms[i].Currency = code

	if err := s.persist(ctx, kvEntry{KeyTerms, terms}); err != nil {
		return err
	}
	s.terms = terms
	s.version++
	return nil
}

// EndCurrentTerm closes the active term on today's date and clears the
// active pointer. Expenses dated past the new end date are kept as-is;
// the term itself remains in history.
func (s *Store) EndCurrentTerm(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTerm(s.activeTermID)
	if s.activeTermID == "" || i < 0 {
		return ErrNoActiveTerm
	}

	today := s.clock.Today()
	if today.Before(s.terms[i].StartDate.Time) {
		// Ending a term before it started collapses it to a single day,
		// keeping endDate >= startDate.
		today = s.terms[i].StartDate
	}

	terms := append([]core.Term(nil), s.terms...)
	terms[i].EndDate = today

	if err := s.persist(ctx,
		kvEntry{KeyTerms, terms},
		kvEntry{KeyActiveTermID, ""},
	); err != nil {
		return err
	}
	s.terms = terms
	s.activeTermID = ""
	s.version++

	slog.InfoContext(ctx, "Term ended",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpEnd,
		applog.FieldTermID, terms[i].ID,
		"end_date", terms[i].EndDate.String())
	return nil
}

// DeleteTerm removes a term together with every expense that references
// it, and clears the active pointer when it pointed at the deleted term.
// Unknown ids are a no-op.
func (s *Store) DeleteTerm(ctx context.Context, termID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findTerm(termID) < 0 {
		return nil
	}

	terms := make([]core.Term, 0, len(s.terms)-1)
	for _, t := range s.terms {
		if t.ID != termID {
			terms = append(terms, t)
		}
	}
	expenses := make([]core.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if e.TermID != termID {
			expenses = append(expenses, e)
		}
	}

	entries := []kvEntry{
		{KeyTerms, terms},
		{KeyExpenses, expenses},
	}
	activeTermID := s.activeTermID
	if activeTermID == termID {
		activeTermID = ""
		entries = append(entries, kvEntry{KeyActiveTermID, ""})
	}

	if err := s.persist(ctx, entries...); err != nil {
		return err
	}
	s.terms = terms
	s.expenses = expenses
	s.activeTermID = activeTermID
	s.version++

	slog.InfoContext(ctx, "Term deleted",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpDelete,
		applog.FieldTermID, termID)
	return nil
}

// ResetCurrentTerm deletes every expense of the active term but leaves
// the term record (budget, dates, currency) intact.
func (s *Store) ResetCurrentTerm(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeTermID == "" || s.findTerm(s.activeTermID) < 0 {
		return ErrNoActiveTerm
	}

	expenses := make([]core.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if e.TermID != s.activeTermID {
			expenses = append(expenses, e)
		}
	}

	if err := s.persist(ctx, kvEntry{KeyExpenses, expenses}); err != nil {
		return err
	}
	s.expenses = expenses
	s.version++

	slog.InfoContext(ctx, "Term reset",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpReset,
		applog.FieldTermID, s.activeTermID)
	return nil
}

// AddExpense records a new expense against the active term. The store
// assigns the id and term id; range-checking the date against the term
// is left to the caller, since historical data may legitimately sit
// outside a shortened term.
func (s *Store) AddExpense(ctx context.Context, in ExpenseInput) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeTermID == "" || s.findTerm(s.activeTermID) < 0 {
		return core.Expense{}, ErrNoActiveTerm
	}

	expense := core.Expense{
		ID:         s.newID(),
		TermID:     s.activeTermID,
		Amount:     in.Amount,
		CategoryID: in.CategoryID,
		Type:       in.Type,
		Date:       in.Date,
		Note:       in.Note,
	}
	if err := expense.Validate(); err != nil {
		return core.Expense{}, err
	}

	expenses := append(append([]core.Expense(nil), s.expenses...), expense)
	sortExpensesByDateDesc(expenses)

	if err := s.persist(ctx, kvEntry{KeyExpenses, expenses}); err != nil {
		return core.Expense{}, err
	}
	s.expenses = expenses
	s.version++

	slog.InfoContext(ctx, "Expense added",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpCreate,
		applog.FieldExpenseID, expense.ID,
		applog.FieldTermID, expense.TermID,
		applog.FieldCategoryID, expense.CategoryID,
		applog.FieldAmountCents, expense.Amount.Cents)
	return expense, nil
}

// UpdateExpense patches an expense in place. Unknown ids are a no-op.
func (s *Store) UpdateExpense(ctx context.Context, id string, patch ExpensePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findExpense(id)
	if i < 0 {
		return nil
	}

	updated := s.expenses[i]
	if patch.Amount != nil {
		updated.Amount = *patch.Amount
	}
	if patch.CategoryID != nil {
		updated.CategoryID = *patch.CategoryID
	}
	if patch.Type != nil {
		updated.Type = *patch.Type
	}
	if patch.Date != nil {
		updated.Date = *patch.Date
	}
	if patch.Note != nil {
		updated.Note = *patch.Note
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	expenses := append([]core.Expense(nil), s.expenses...)
	expenses[i] = updated
	sortExpensesByDateDesc(expenses)

	if err := s.persist(ctx, kvEntry{KeyExpenses, expenses}); err != nil {
		return err
	}
	s.expenses = expenses
	s.version++
	return nil
}

// DeleteExpense removes an expense by id. Unknown ids are a no-op.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findExpense(id) < 0 {
		return nil
	}

	expenses := make([]core.Expense, 0, len(s.expenses)-1)
	for _, e := range s.expenses {
		if e.ID != id {
			expenses = append(expenses, e)
		}
	}

	if err := s.persist(ctx, kvEntry{KeyExpenses, expenses}); err != nil {
		return err
	}
	s.expenses = expenses
	s.version++
	return nil
}

// AddCategory creates a user category. Names are not required to be
// unique; ids are.
func (s *Store) AddCategory(ctx context.Context, name string) (core.Category, error) {
	category := core.Category{Name: strings.TrimSpace(name)}
	if err := category.Validate(); err != nil {
		return core.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category.ID = "cat-" + s.newID()
	for s.findCategory(category.ID) >= 0 {
		category.ID = "cat-" + s.newID()
	}

	categories := append(append([]core.Category(nil), s.categories...), category)

	if err := s.persist(ctx, kvEntry{KeyCategories, categories}); err != nil {
		return core.Category{}, err
	}
	s.categories = categories
	s.version++
	return category, nil
}

// UpdateCategory renames a category. Unknown ids are a no-op.
func (s *Store) UpdateCategory(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findCategory(id)
	if i < 0 {
		return nil
	}

	categories := append([]core.Category(nil), s.categories...)
	categories[i].Name = name

	if err := s.persist(ctx, kvEntry{KeyCategories, categories}); err != nil {
		return err
	}
	s.categories = categories
	s.version++
	return nil
}

// DeleteCategory removes a category by id. Expenses referencing it are
// left untouched; aggregation renders them under "Unknown". Unknown ids
// are a no-op.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCategory(id) < 0 {
		return nil
	}

	categories := make([]core.Category, 0, len(s.categories)-1)
	for _, c := range s.categories {
		if c.ID != id {
			categories = append(categories, c)
		}
	}

	if err := s.persist(ctx, kvEntry{KeyCategories, categories}); err != nil {
		return err
	}
	s.categories = categories
	s.version++
	return nil
}

// SetActiveTerm switches the active pointer to any existing term,
// including a past one the user wants to revisit. Unknown ids are a
// no-op, as is re-selecting the current active term.
func (s *Store) SetActiveTerm(ctx context.Context, termID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findTerm(termID) < 0 || s.activeTermID == termID {
		return nil
	}

	if err := s.persist(ctx, kvEntry{KeyActiveTermID, termID}); err != nil {
		return err
	}
	s.activeTermID = termID
	s.version++
	return nil
}

// SetGlobalCurrency updates the preference used to seed new terms.
// Existing terms keep their currency.
func (s *Store) SetGlobalCurrency(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		return core.ErrInvalidCurrency
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, kvEntry{KeyGlobalCurrency, code}); err != nil {
		return err
	}
	s.globalCurrency = code
	s.version++
	return nil
}

// Terms returns all terms, sorted by start date descending.
func (s *Store) Terms() []core.Term {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Term(nil), s.terms...)
}

// ActiveTerm returns the active term, if any.
func (s *Store) ActiveTerm() (core.Term, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.findTerm(s.activeTermID); s.activeTermID != "" && i >= 0 {
		return s.terms[i], true
	}
	return core.Term{}, false
}

// Term returns a term by id.
func (s *Store) Term(id string) (core.Term, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.findTerm(id); i >= 0 {
		return s.terms[i], true
	}
	return core.Term{}, false
}

// ActiveTermExpenses returns the expenses of the active term, newest
// first; nil when no term is active.
func (s *Store) ActiveTermExpenses() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeTermID == "" {
		return nil
	}
	return s.expensesForLocked(s.activeTermID)
}

// ExpensesForTerm returns all expenses referencing the given term.
func (s *Store) ExpensesForTerm(termID string) []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expensesForLocked(termID)
}

// Categories returns the category collection in insertion order.
func (s *Store) Categories() []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.categories...)
}

// GlobalCurrency returns the currency preference for new terms.
func (s *Store) GlobalCurrency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.globalCurrency
}

// Version increments on every committed mutation; derived-view caches
// use it as part of their keys.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *Store) expensesForLocked(termID string) []core.Expense {
	out := make([]core.Expense, 0)
	for _, e := range s.expenses {
		if e.TermID == termID {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) findTerm(id string) int {
	for i, t := range s.terms {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) findExpense(id string) int {
	for i, e := range s.expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) findCategory(id string) int {
	for i, c := range s.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func sortTermsByStartDesc(terms []core.Term) {
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].StartDate.After(terms[j].StartDate.Time)
	})
}

func sortExpensesByDateDesc(expenses []core.Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date.Time)
	})
}
