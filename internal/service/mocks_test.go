package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/events"
	"github.com/spec-kit/campus-community/internal/repository"
)

// recordingDispatcher captures published events synchronously so tests can
// assert on them without racing a background goroutine.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

type memUserRepo struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*domain.User
	listings *memListingRepo
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[int64]*domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) findBy(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if match(user) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.findBy(func(u *domain.User) bool { return u.Email == email })
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.findBy(func(u *domain.User) bool { return u.Username == username })
}

func (r *memUserRepo) GetBySchoolEmail(_ context.Context, schoolEmail string) (*domain.User, error) {
	return r.findBy(func(u *domain.User) bool { return u.SchoolEmail == schoolEmail })
}

func (r *memUserRepo) GetSuperadminByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.findBy(func(u *domain.User) bool {
		return u.Email == email && u.Role == domain.RoleSuperadmin
	})
}

func (r *memUserRepo) HasSuperadmin(_ context.Context) (bool, error) {
	_, err := r.findBy(func(u *domain.User) bool { return u.Role == domain.RoleSuperadmin })
	if err == pgx.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *memUserRepo) ListPendingVerification(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, user := range r.users {
		if !user.IsVerified {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListPendingContactApproval(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, user := range r.users {
		if user.IsVerified && !user.CanShowContact {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListVerifiedActiveIDs(_ context.Context) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []int64
	for _, user := range r.users {
		if user.IsVerified && user.Status == domain.UserStatusActive {
			out = append(out, user.ID)
		}
	}
	return out, nil
}

func (r *memUserRepo) ApproveContact(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	user, ok := r.users[userID]
	if !ok {
		r.mu.Unlock()
		return 0, pgx.ErrNoRows
	}
	user.CanShowContact = true
	r.mu.Unlock()

	if r.listings == nil {
		return 0, nil
	}
	return r.listings.approveAllForUser(userID), nil
}

func (r *memUserRepo) Stats(_ context.Context) (*repository.UserStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repository.UserStats{}
	for _, user := range r.users {
		stats.Total++
		if user.IsVerified {
			stats.Verified++
			if !user.CanShowContact {
				stats.PendingContactApproval++
			}
		} else {
			stats.PendingVerification++
		}
	}
	return stats, nil
}

type memListingRepo struct {
	mu       sync.Mutex
	nextID   int64
	listings map[int64]*domain.Listing
}

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{nextID: 1, listings: map[int64]*domain.Listing{}}
}

func (r *memListingRepo) Create(_ context.Context, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing.ID = r.nextID
	r.nextID++
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	clone := *listing
	r.listings[listing.ID] = &clone
	return nil
}

func (r *memListingRepo) Update(_ context.Context, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[listing.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *listing
	r.listings[listing.ID] = &clone
	return nil
}

func (r *memListingRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.listings, id)
	return nil
}

func (r *memListingRepo) GetByID(_ context.Context, id int64) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.listings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *listing
	return &clone, nil
}

func (r *memListingRepo) ListWithFilter(_ context.Context, _ repository.ListingFilter) ([]domain.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Listing, 0, len(r.listings))
	for _, listing := range r.listings {
		out = append(out, *listing)
	}
	return out, int64(len(out)), nil
}

func (r *memListingRepo) ListByUser(_ context.Context, userID int64) ([]domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Listing
	for _, listing := range r.listings {
		if listing.UserID == userID {
			out = append(out, *listing)
		}
	}
	return out, nil
}

func (r *memListingRepo) ApproveContact(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.listings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	listing.ContactApproved = true
	return nil
}

func (r *memListingRepo) Stats(_ context.Context) (*repository.ListingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repository.ListingStats{}
	for _, listing := range r.listings {
		stats.Total++
		switch listing.Status {
		case domain.ListingStatusAvailable:
			stats.Available++
		case domain.ListingStatusPending:
			stats.Pending++
		case domain.ListingStatusSold:
			stats.Sold++
		}
	}
	return stats, nil
}

func (r *memListingRepo) approveAllForUser(userID int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var covered int64
	for _, listing := range r.listings {
		if listing.UserID == userID && !listing.ContactApproved {
			listing.ContactApproved = true
			covered++
		}
	}
	return covered
}

type memInterestRepo struct {
	mu        sync.Mutex
	nextID    int64
	interests map[int64]*domain.Interest
}

func newMemInterestRepo() *memInterestRepo {
	return &memInterestRepo{nextID: 1, interests: map[int64]*domain.Interest{}}
}

func (r *memInterestRepo) Create(_ context.Context, interest *domain.Interest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	interest.ID = r.nextID
	r.nextID++
	interest.CreatedAt = time.Now()
	clone := *interest
	r.interests[interest.ID] = &clone
	return nil
}

func (r *memInterestRepo) GetByListingAndBuyer(_ context.Context, listingID, buyerID int64) (*domain.Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, interest := range r.interests {
		if interest.ListingID == listingID && interest.BuyerID == buyerID {
			clone := *interest
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memInterestRepo) ListByListing(_ context.Context, listingID int64) ([]domain.Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Interest
	for _, interest := range r.interests {
		if interest.ListingID == listingID {
			out = append(out, *interest)
		}
	}
	return out, nil
}

func (r *memInterestRepo) ListBySeller(_ context.Context, sellerID int64) ([]domain.Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Interest
	for _, interest := range r.interests {
		if interest.SellerID == sellerID {
			out = append(out, *interest)
		}
	}
	return out, nil
}

func (r *memInterestRepo) Stats(_ context.Context) (*repository.InterestStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repository.InterestStats{}
	for _, interest := range r.interests {
		stats.Total++
		if interest.Status == domain.InterestStatusPending {
			stats.Pending++
		}
	}
	return stats, nil
}

type memNotificationRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Notification
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{nextID: 1, rows: map[int64]*domain.Notification{}}
}

func (r *memNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = r.nextID
	r.nextID++
	n.CreatedAt = time.Now()
	clone := *n
	r.rows[n.ID] = &clone
	return nil
}

func (r *memNotificationRepo) CreateMany(ctx context.Context, ns []domain.Notification) error {
	for i := range ns {
		if err := r.Create(ctx, &ns[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *memNotificationRepo) ListByUser(_ context.Context, userID int64, _ repository.NotificationFilter) ([]domain.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notification
	for _, n := range r.rows {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memNotificationRepo) MarkRead(_ context.Context, id, userID int64) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok || n.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	n.IsRead = true
	clone := *n
	return &clone, nil
}

func (r *memNotificationRepo) MarkAllRead(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.rows {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *memNotificationRepo) Delete(_ context.Context, id, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok || n.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(r.rows, id)
	return nil
}

func (r *memNotificationRepo) CountUnread(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.rows {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type memLostFoundRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*domain.LostFound
}

func newMemLostFoundRepo() *memLostFoundRepo {
	return &memLostFoundRepo{nextID: 1, posts: map[int64]*domain.LostFound{}}
}

func (r *memLostFoundRepo) Create(_ context.Context, post *domain.LostFound) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = r.nextID
	r.nextID++
	post.CreatedAt = time.Now()
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *memLostFoundRepo) Update(_ context.Context, post *domain.LostFound) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *memLostFoundRepo) GetByID(_ context.Context, id int64) (*domain.LostFound, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *post
	return &clone, nil
}

func (r *memLostFoundRepo) ListWithFilter(_ context.Context, _ repository.LostFoundFilter) ([]domain.LostFound, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.LostFound, 0, len(r.posts))
	for _, post := range r.posts {
		out = append(out, *post)
	}
	return out, int64(len(out)), nil
}

func (r *memLostFoundRepo) Stats(_ context.Context) (*repository.LostFoundStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repository.LostFoundStats{}
	for _, post := range r.posts {
		stats.Total++
		if post.Status == domain.LostFoundStatusActive {
			stats.Active++
		}
	}
	return stats, nil
}
