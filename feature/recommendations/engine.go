package recommendations

import (
	"context"
	"fmt"
	"sync"
	"time"

	"circulation/core/identity"
	"circulation/core/policy"
	"circulation/feature/ledger"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	ReasonCategory = "category"
	ReasonPopular  = "popular"
)

// recentCategories is how many of the user's latest categories seed the list.
const recentCategories = 3

// Recommendation is a suggested book.
type Recommendation struct {
	ledger.Book
	BorrowCount int64  `json:"borrow_count"`
	Reason      string `json:"reason" gorm:"-"`
}

type entry struct {
	books []Recommendation
	built time.Time
}

// Engine suggests available books from a user's loan history. Results are
// cached per user for the configured TTL; concurrent misses for one user
// share a single query. A build that overlaps Invalidate is returned but not
// cached.
type Engine struct {
	store *ledger.Store
	limit int
	ttl   time.Duration

	mu    sync.RWMutex
	cache map[uint]entry
	gen   map[uint]uint64
	sf    singleflight.Group
}

// NewEngine creates a recommendation engine.
func NewEngine(store *ledger.Store, pol policy.Config) *Engine {
	limit := pol.RecommendationLimit
	if limit <= 0 {
		limit = 10
	}
	return &Engine{
		store: store,
		limit: limit,
		ttl:   pol.RecommendationTTL(),
		cache: make(map[uint]entry),
		gen:   make(map[uint]uint64),
	}
}

// For returns up to the configured number of suggestions for the caller.
func (e *Engine) For(ctx context.Context, who identity.Identity) ([]Recommendation, error) {
	if books, ok := e.cached(who.UserID); ok {
		return books, nil
	}

	gen := e.generation(who.UserID)
	result, err, _ := e.sf.Do(fmt.Sprintf("%d:%d", who.UserID, gen), func() (any, error) {
		if books, ok := e.cached(who.UserID); ok {
			return books, nil
		}

		books, err := e.build(ctx, who.UserID)
		if err != nil {
			return nil, err
		}

		if e.ttl > 0 {
			e.mu.Lock()
			if e.gen[who.UserID] == gen {
				e.cache[who.UserID] = entry{books: books, built: e.store.Now()}
			}
			e.mu.Unlock()
		}
		return books, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Recommendation), nil
}

// Invalidate drops the cached suggestions of one user. A build already in
// flight for them still answers its callers but is not cached.
func (e *Engine) Invalidate(userID uint) {
	e.mu.Lock()
	delete(e.cache, userID)
	e.gen[userID]++
	e.mu.Unlock()
}

func (e *Engine) generation(userID uint) uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gen[userID]
}

func (e *Engine) cached(userID uint) ([]Recommendation, bool) {
	e.mu.RLock()
	c, ok := e.cache[userID]
	e.mu.RUnlock()
	if !ok || e.store.Now().Sub(c.built) > e.ttl {
		return nil, false
	}
	return c.books, true
}

func (e *Engine) build(ctx context.Context, userID uint) ([]Recommendation, error) {
	out := []Recommendation{}

	err := e.store.Read(ctx, func(db *gorm.DB) error {
		var categories []string
		if err := db.Table("borrow_records AS br").
			Select("b.category").
			Joins("JOIN books AS b ON b.id = br.book_id").
			Where("br.user_id = ?", userID).
			Group("b.category").
			Order("MAX(br.borrowed_at) DESC").
			Limit(recentCategories).
			Pluck("b.category", &categories).Error; err != nil {
			return err
		}

		if len(categories) > 0 {
			var picks []ledger.Book
			borrowed := db.Model(&ledger.BorrowRecord{}).Select("book_id").Where("user_id = ?", userID)
			if err := db.
				Where("category IN ? AND status = ? AND quantity > 0", categories, ledger.StatusAvailable).
				Where("id NOT IN (?)", borrowed).
				Order("title ASC, id ASC").
				Limit(e.limit).
				Find(&picks).Error; err != nil {
				return err
			}
			for _, b := range picks {
				out = append(out, Recommendation{Book: b, Reason: ReasonCategory})
			}
		}

		if len(out) >= e.limit {
			return nil
		}

		exclude := []uint{0}
		for _, r := range out {
			exclude = append(exclude, r.ID)
		}

		var popular []Recommendation
		if err := db.Table("books AS b").
			Select("b.*, COUNT(br.id) AS borrow_count").
			Joins("LEFT JOIN borrow_records AS br ON br.book_id = b.id").
			Where("b.status = ? AND b.quantity > 0 AND b.id NOT IN ?", ledger.StatusAvailable, exclude).
			Group("b.id").
			Order("borrow_count DESC, b.id ASC").
			Limit(e.limit - len(out)).
			Scan(&popular).Error; err != nil {
			return err
		}
		for i := range popular {
			popular[i].Reason = ReasonPopular
		}
		out = append(out, popular...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
