package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "gymslot/database/repository/booking"
	corporateRepo "gymslot/database/repository/corporate"
	gymRepo "gymslot/database/repository/gym"
	rewardsRepo "gymslot/database/repository/rewards"
	"gymslot/models"
	"gymslot/services/payment"
)

// fakeBookingRepo is an in-memory BookingRepository mirroring the conditional
// update semantics of the Mongo implementation.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) clone(b *models.Booking) *models.Booking {
	cp := *b
	if b.QRTokenExpiry != nil {
		t := *b.QRTokenExpiry
		cp.QRTokenExpiry = &t
	}
	if b.CheckInTime != nil {
		t := *b.CheckInTime
		cp.CheckInTime = &t
	}
	return &cp
}

func (r *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = r.clone(b)
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return r.clone(b), nil
}

func (r *fakeBookingRepo) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *r.clone(b))
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) SetPaymentOrder(_ context.Context, id, orderID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != models.StatusPending || b.PaymentOrderID != "" {
		return nil, bookingRepo.ErrNoTransition
	}
	b.PaymentOrderID = orderID
	return r.clone(b), nil
}

func (r *fakeBookingRepo) ConfirmPayment(_ context.Context, id, paymentRef, qrToken string, expiry time.Time) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != models.StatusPending || b.PaymentReference != "" {
		return nil, bookingRepo.ErrNoTransition
	}
	b.Status = models.StatusConfirmed
	b.PaymentReference = paymentRef
	b.QRToken = qrToken
	b.QRTokenExpiry = &expiry
	return r.clone(b), nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || (b.Status != models.StatusPending && b.Status != models.StatusConfirmed) {
		return nil, bookingRepo.ErrNoTransition
	}
	b.Status = models.StatusCancelled
	b.QRToken = ""
	b.QRTokenExpiry = nil
	return r.clone(b), nil
}

func (r *fakeBookingRepo) CheckIn(_ context.Context, id string, at time.Time) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != models.StatusConfirmed {
		return nil, bookingRepo.ErrNoTransition
	}
	b.Status = models.StatusCheckedIn
	b.CheckInTime = &at
	return r.clone(b), nil
}

func (r *fakeBookingRepo) ReplaceQRToken(_ context.Context, id, token string, expiry time.Time) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != models.StatusConfirmed {
		return nil, bookingRepo.ErrNoTransition
	}
	b.QRToken = token
	b.QRTokenExpiry = &expiry
	return r.clone(b), nil
}

func (r *fakeBookingRepo) ExpirePendingBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.Status == models.StatusPending && b.CreatedAt.Before(cutoff) {
			b.Status = models.StatusCancelled
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) CompleteCheckedInBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.Status == models.StatusCheckedIn && b.SessionDate.Before(cutoff) {
			b.Status = models.StatusCompleted
			n++
		}
	}
	return n, nil
}

// fakeRewardsRepo is an in-memory RewardLedgerRepository with guarded debits.
type fakeRewardsRepo struct {
	mu       sync.Mutex
	balances map[string]int64
	debits   int
}

func newFakeRewardsRepo(balances map[string]int64) *fakeRewardsRepo {
	if balances == nil {
		balances = make(map[string]int64)
	}
	return &fakeRewardsRepo{balances: balances}
}

func (r *fakeRewardsRepo) GetBalance(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[userID], nil
}

func (r *fakeRewardsRepo) Debit(_ context.Context, userID string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.balances[userID] < amount {
		return rewardsRepo.ErrInsufficientBalance
	}
	r.balances[userID] -= amount
	r.debits++
	return nil
}

func (r *fakeRewardsRepo) Credit(_ context.Context, userID string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[userID] += amount
	return nil
}

// fakeCorporateRepo is an in-memory CorporateCodeRepository with an atomic
// session decrement.
type fakeCorporateRepo struct {
	mu    sync.Mutex
	codes map[string]*models.CorporateAccessCode
}

func newFakeCorporateRepo(codes ...*models.CorporateAccessCode) *fakeCorporateRepo {
	m := make(map[string]*models.CorporateAccessCode)
	for _, c := range codes {
		m[c.Code] = c
	}
	return &fakeCorporateRepo{codes: m}
}

func (r *fakeCorporateRepo) GetByCode(_ context.Context, code string) (*models.CorporateAccessCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[code]
	if !ok {
		return nil, corporateRepo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCorporateRepo) ConsumeSession(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[code]
	if !ok || c.RemainingSessions <= 0 {
		return corporateRepo.ErrNoSessionsLeft
	}
	c.RemainingSessions--
	return nil
}

// fakeGrantStore is an in-memory GrantStore with single-use take semantics.
type fakeGrantStore struct {
	mu     sync.Mutex
	grants map[string]string
}

func newFakeGrantStore() *fakeGrantStore {
	return &fakeGrantStore{grants: make(map[string]string)}
}

func (s *fakeGrantStore) Put(_ context.Context, token, code string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants[token] = code
	return nil
}

func (s *fakeGrantStore) Take(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.grants[token]
	if !ok {
		return "", ErrGrantNotFound
	}
	delete(s.grants, token)
	return code, nil
}

// fakeGymService serves fixed gyms without a backing store.
type fakeGymService struct {
	gyms map[string]*models.Gym
}

func newFakeGymService(gyms ...*models.Gym) *fakeGymService {
	m := make(map[string]*models.Gym)
	for _, g := range gyms {
		m[g.ID] = g
	}
	return &fakeGymService{gyms: m}
}

func (s *fakeGymService) GetGym(_ context.Context, gymID string) (*models.Gym, error) {
	g, ok := s.gyms[gymID]
	if !ok {
		return nil, gymRepo.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

// fakeGateway records orders and verifies against a configurable secret.
type fakeGateway struct {
	mu         sync.Mutex
	secret     string
	orders     map[string]int64 // orderID -> amount
	nextOrder  int
	failOrders bool
}

func newFakeGateway(secret string) *fakeGateway {
	return &fakeGateway{secret: secret, orders: make(map[string]int64)}
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, _ string, bookingID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failOrders {
		return "", &payment.GatewayError{Op: "createOrder", Err: context.DeadlineExceeded}
	}
	g.nextOrder++
	orderID := "order_" + bookingID[:8] + "_" + string(rune('a'+g.nextOrder-1))
	g.orders[orderID] = amount
	return orderID, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) (bool, error) {
	return payment.Sign(orderID, paymentID, g.secret) == signature, nil
}
