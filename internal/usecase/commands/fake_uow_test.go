//go:build unit

package commands_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"court-reserve/internal/domain/booking"
	"court-reserve/internal/infra"
	"court-reserve/internal/infra/db"
	"court-reserve/internal/usecase/queries"
	"court-reserve/internal/usecase/shared"
)

// fakeState is the in-memory store backing the fake unit of work. Within
// snapshots it before each transaction and restores it on error, so aborted
// transactions leave no writes behind, matching a rollback.
type fakeState struct {
	courts       map[uuid.UUID]shared.CourtSnapshot
	promos       map[string]*shared.PromoSnapshot
	rules        []shared.RuleSnapshot
	idsByPhone   map[string][]uuid.UUID
	reservations map[uuid.UUID]*booking.Reservation
	byPaymentRef map[string]uuid.UUID
	jobs         []fakeJob

	// failNextConsume makes that many Consume calls report a lost race.
	failNextConsume int
	consumeCalls    int
	releaseCalls    int
}

type fakeJob struct {
	kind  string
	topic string
	runAt time.Time
}

func newFakeState() *fakeState {
	return &fakeState{
		courts:       make(map[uuid.UUID]shared.CourtSnapshot),
		promos:       make(map[string]*shared.PromoSnapshot),
		idsByPhone:   make(map[string][]uuid.UUID),
		reservations: make(map[uuid.UUID]*booking.Reservation),
		byPaymentRef: make(map[string]uuid.UUID),
	}
}

func (s *fakeState) clone() *fakeState {
	c := newFakeState()
	for k, v := range s.courts {
		c.courts[k] = v
	}
	for k, v := range s.promos {
		snap := *v
		snap.UsedBy = append([]uuid.UUID(nil), v.UsedBy...)
		c.promos[k] = &snap
	}
	c.rules = append([]shared.RuleSnapshot(nil), s.rules...)
	for k, v := range s.idsByPhone {
		c.idsByPhone[k] = append([]uuid.UUID(nil), v...)
	}
	for k, v := range s.reservations {
		c.reservations[k] = v
	}
	for k, v := range s.byPaymentRef {
		c.byPaymentRef[k] = v
	}
	c.jobs = append([]fakeJob(nil), s.jobs...)
	c.failNextConsume = s.failNextConsume
	c.consumeCalls = s.consumeCalls
	c.releaseCalls = s.releaseCalls
	return c
}

func (s *fakeState) addPromo(snap shared.PromoSnapshot) {
	s.promos[snap.Code] = &snap
}

func (s *fakeState) flatRules(pricePerHour int64) {
	s.rules = nil
	for _, day := range []string{"sun_wed", "thu", "fri", "sat"} {
		for _, tb := range []string{"day", "night"} {
			s.rules = append(s.rules, shared.RuleSnapshot{
				ID: uuid.New(), DayBucket: day, TimeBucket: tb, PricePerHour: pricePerHour, Active: true,
			})
		}
	}
}

type fakeUoW struct {
	state *fakeState
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	backup := u.state.clone()
	if err := fn(ctx, &fakeTx{state: u.state}); err != nil {
		// Counters track calls, not data; they survive the rollback.
		backup.failNextConsume = u.state.failNextConsume
		backup.consumeCalls = u.state.consumeCalls
		backup.releaseCalls = u.state.releaseCalls
		*u.state = *backup
		return err
	}
	return nil
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{state: u.state}
}

type fakeTx struct {
	state *fakeState
}

func (t *fakeTx) Reservations() shared.ReservationRepository { return &fakeReservationRepo{t.state} }
func (t *fakeTx) Promos() shared.PromoRepository             { return &fakePromoRepo{t.state} }
func (t *fakeTx) PricingRules() shared.PricingRuleRepository { return &fakePricingRuleRepo{t.state} }
func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &fakeNotificationRepo{t.state}
}
func (t *fakeTx) Reads() shared.CommandReads { return &fakeReads{state: t.state} }
func (t *fakeTx) DB() db.DBTX                { return nil }

type fakeReads struct {
	state *fakeState
}

func (r *fakeReads) CourtByID(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
	court, ok := r.state.courts[id]
	if !ok {
		return nil, infra.WrapRepoErr("court not found", nil, infra.KindNotFound)
	}
	return &court, nil
}

func (r *fakeReads) PromoByCode(_ context.Context, code string) (*shared.PromoSnapshot, error) {
	promo, ok := r.state.promos[code]
	if !ok {
		return nil, infra.WrapRepoErr("promo code not found", nil, infra.KindNotFound)
	}
	snap := *promo
	snap.UsedBy = append([]uuid.UUID(nil), promo.UsedBy...)
	return &snap, nil
}

func (r *fakeReads) ActiveRules(context.Context) ([]shared.RuleSnapshot, error) {
	return append([]shared.RuleSnapshot(nil), r.state.rules...), nil
}

func (r *fakeReads) CustomerIDsByPhone(_ context.Context, phone string) ([]uuid.UUID, error) {
	return append([]uuid.UUID(nil), r.state.idsByPhone[phone]...), nil
}

func (r *fakeReads) ReservationByID(_ context.Context, id uuid.UUID) (*booking.Reservation, error) {
	res, ok := r.state.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return res, nil
}

func (r *fakeReads) ReservationIDByPaymentRef(_ context.Context, ref string) (*uuid.UUID, error) {
	id, ok := r.state.byPaymentRef[ref]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (r *fakeReads) ReservationsForSlot(_ context.Context, courtID uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]*booking.Reservation, error) {
	var out []*booking.Reservation
	for id, res := range r.state.reservations {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if res.CourtID() == courtID && res.Interval().Date().Equal(date) && res.Status().Occupies() {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeReads) PendingReservations(context.Context) ([]*booking.Reservation, error) {
	var out []*booking.Reservation
	for _, res := range r.state.reservations {
		if res.Status() == booking.StatusPending {
			out = append(out, res)
		}
	}
	return out, nil
}

type fakeReservationRepo struct {
	state *fakeState
}

func (r *fakeReservationRepo) Create(_ context.Context, _ db.DBTX, res *booking.Reservation) (uuid.UUID, error) {
	r.state.reservations[res.ID()] = res
	if ref := res.PaymentRef(); ref != nil && *ref != "" {
		if _, exists := r.state.byPaymentRef[*ref]; exists {
			return uuid.Nil, infra.WrapRepoErr("payment ref exists", nil, infra.KindDuplicateKey)
		}
		r.state.byPaymentRef[*ref] = res.ID()
	}
	return res.ID(), nil
}

func (r *fakeReservationRepo) UpdateStatus(_ context.Context, _ db.DBTX, res *booking.Reservation) error {
	if _, ok := r.state.reservations[res.ID()]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	r.state.reservations[res.ID()] = res
	return nil
}

type fakePromoRepo struct {
	state *fakeState
}

func (r *fakePromoRepo) Consume(_ context.Context, _ db.DBTX, promoID, customerID uuid.UUID) error {
	r.state.consumeCalls++
	if r.state.failNextConsume > 0 {
		r.state.failNextConsume--
		return infra.WrapRepoErr("promo not consumable", nil, infra.KindConflict)
	}
	for _, snap := range r.state.promos {
		if snap.ID == promoID {
			snap.UsedBy = append(snap.UsedBy, customerID)
			return nil
		}
	}
	return infra.WrapRepoErr("promo not consumable", nil, infra.KindConflict)
}

func (r *fakePromoRepo) Release(_ context.Context, _ db.DBTX, promoID, customerID uuid.UUID) error {
	r.state.releaseCalls++
	for _, snap := range r.state.promos {
		if snap.ID != promoID {
			continue
		}
		for i, id := range snap.UsedBy {
			if id == customerID {
				snap.UsedBy = append(snap.UsedBy[:i], snap.UsedBy[i+1:]...)
				break
			}
		}
	}
	return nil
}

type fakePricingRuleRepo struct {
	state *fakeState
}

func (r *fakePricingRuleRepo) Upsert(_ context.Context, _ db.DBTX, rule shared.RuleSnapshot) (uuid.UUID, error) {
	for i := range r.state.rules {
		existing := &r.state.rules[i]
		if existing.Active && existing.DayBucket == rule.DayBucket && existing.TimeBucket == rule.TimeBucket {
			existing.Active = false
		}
	}
	rule.ID = uuid.New()
	rule.Active = true
	r.state.rules = append(r.state.rules, rule)
	return rule.ID, nil
}

type fakeNotificationRepo struct {
	state *fakeState
}

func (r *fakeNotificationRepo) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, _ []byte, runAt time.Time) error {
	r.state.jobs = append(r.state.jobs, fakeJob{kind: kind, topic: topic, runAt: runAt})
	return nil
}

// fakeReservationQueries projects the aggregate into a minimal view; command
// tests only inspect the identity and money fields.
type fakeReservationQueries struct {
	state *fakeState
}

func (q *fakeReservationQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	res, ok := q.state.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	view := &queries.ReservationView{
		ID:         res.ID(),
		CourtID:    res.CourtID(),
		CustomerID: res.CustomerID(),
		Date:       res.Interval().Date(),
		StartTime:  res.Interval().Start().String(),
		EndTime:    res.Interval().End().String(),
		Status:     res.Status().String(),
		BasePrice:  res.BasePrice().Halalas(),
		Discount:   res.Discount().Halalas(),
		FinalPrice: res.FinalPrice().Halalas(),
		PaymentRef: res.PaymentRef(),
	}
	return view, nil
}

func (q *fakeReservationQueries) ListByCourtDate(_ context.Context, _ uuid.UUID, _ time.Time) ([]*queries.ReservationListItem, error) {
	return nil, nil
}

func (q *fakeReservationQueries) ListByCustomer(_ context.Context, _ uuid.UUID, _ int) ([]*queries.ReservationListItem, error) {
	return nil, nil
}
