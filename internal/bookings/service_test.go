package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
	"github.com/beemsaisuoy/my-salon-app/pkg/pagination"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type fakeCatalog struct {
	services map[uuid.UUID]*models.SalonService
}

func (f *fakeCatalog) GetSalonService(ctx context.Context, id uuid.UUID) (*models.SalonService, error) {
	if svc, ok := f.services[id]; ok {
		return svc, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "salon service not found")
}

type recordingNotifier struct {
	bookings []*models.Booking
}

func (n *recordingNotifier) BookingCreated(ctx context.Context, booking *models.Booking) {
	n.bookings = append(n.bookings, booking)
}

func newTestService(t *testing.T) (Service, *gorm.DB, *fakeCatalog, *recordingNotifier) {
	t.Helper()
	dsn := "file:bookings_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Booking{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	catalog := &fakeCatalog{services: map[uuid.UUID]*models.SalonService{}}
	notifier := &recordingNotifier{}
	svc, err := NewService(NewRepository(db), gormTxRunner{db: db}, catalog, notifier)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, db, catalog, notifier
}

func addService(catalog *fakeCatalog, price int, active bool) *models.SalonService {
	svc := &models.SalonService{
		ID:          uuid.New(),
		Name:        "ทำสีผม",
		Category:    enums.ServiceCategoryColoring,
		PriceSatang: price,
		IsActive:    active,
	}
	catalog.services[svc.ID] = svc
	return svc
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format(DateLayout)
}

func TestCreateBookingSnapshotsService(t *testing.T) {
	t.Parallel()

	svc, _, catalog, notifier := newTestService(t)
	ctx := context.Background()
	salon := addService(catalog, 150000, true)
	actor := Actor{UserID: uuid.New(), Name: "มะลิ", Role: enums.UserRoleCustomer}

	booking, err := svc.Create(ctx, actor, CreateInput{
		ServiceID: salon.ID,
		Date:      tomorrow(),
		TimeSlot:  "14:00",
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.ServiceName != "ทำสีผม" || booking.PriceSatang != 150000 {
		t.Fatalf("expected service snapshot, got %+v", booking)
	}
	if booking.Status != enums.BookingStatusPending {
		t.Fatalf("expected pending status, got %s", booking.Status)
	}

	// A later price change must not touch the booking.
	salon.PriceSatang = 200000
	if booking.PriceSatang != 150000 {
		t.Fatal("booking price must be a snapshot")
	}

	if len(notifier.bookings) != 1 {
		t.Fatalf("expected booking notification, got %d", len(notifier.bookings))
	}
}

func TestCreateBookingSlotConflict(t *testing.T) {
	t.Parallel()

	svc, _, catalog, _ := newTestService(t)
	ctx := context.Background()
	salon := addService(catalog, 30000, true)
	date := tomorrow()

	first := Actor{UserID: uuid.New(), Name: "มะลิ", Role: enums.UserRoleCustomer}
	if _, err := svc.Create(ctx, first, CreateInput{ServiceID: salon.ID, Date: date, TimeSlot: "11:00"}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	second := Actor{UserID: uuid.New(), Name: "สมชาย", Role: enums.UserRoleCustomer}
	_, err := svc.Create(ctx, second, CreateInput{ServiceID: salon.ID, Date: date, TimeSlot: "11:00"})
	if err == nil {
		t.Fatal("expected slot conflict")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeSlotTaken {
		t.Fatalf("unexpected error: %v", err)
	}

	// A different slot on the same day is fine.
	if _, err := svc.Create(ctx, second, CreateInput{ServiceID: salon.ID, Date: date, TimeSlot: "12:00"}); err != nil {
		t.Fatalf("different slot: %v", err)
	}
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	t.Parallel()

	svc, _, catalog, _ := newTestService(t)
	ctx := context.Background()
	salon := addService(catalog, 30000, true)
	date := tomorrow()
	actor := Actor{UserID: uuid.New(), Name: "มะลิ", Role: enums.UserRoleCustomer}

	booking, err := svc.Create(ctx, actor, CreateInput{ServiceID: salon.ID, Date: date, TimeSlot: "15:00"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Cancel(ctx, actor, booking.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	slots, err := svc.Availability(ctx, date)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	for _, slot := range slots {
		if slot.Time == "15:00" && !slot.Available {
			t.Fatal("expected cancelled slot to be available again")
		}
	}

	// Slot can be rebooked.
	if _, err := svc.Create(ctx, actor, CreateInput{ServiceID: salon.ID, Date: date, TimeSlot: "15:00"}); err != nil {
		t.Fatalf("rebook: %v", err)
	}
}

func TestAvailabilityMarksTakenSlots(t *testing.T) {
	t.Parallel()

	svc, _, catalog, _ := newTestService(t)
	ctx := context.Background()
	salon := addService(catalog, 30000, true)
	date := tomorrow()
	actor := Actor{UserID: uuid.New(), Name: "มะลิ", Role: enums.UserRoleCustomer}

	if _, err := svc.Create(ctx, actor, CreateInput{ServiceID: salon.ID, Date: date, TimeSlot: "10:00"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	slots, err := svc.Availability(ctx, date)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if len(slots) != len(OpenSlots) {
		t.Fatalf("expected %d slots, got %d", len(OpenSlots), len(slots))
	}
	for _, slot := range slots {
		want := slot.Time != "10:00"
		if slot.Available != want {
			t.Fatalf("slot %s availability = %v, want %v", slot.Time, slot.Available, want)
		}
	}
}

func TestCreateBookingValidation(t *testing.T) {
	t.Parallel()

	svc, _, catalog, _ := newTestService(t)
	ctx := context.Background()
	salon := addService(catalog, 30000, true)
	inactive := addService(catalog, 30000, false)
	actor := Actor{UserID: uuid.New(), Name: "มะลิ", Role: enums.UserRoleCustomer}

	cases := map[string]CreateInput{
		"past date":        {ServiceID: salon.ID, Date: "2020-01-01", TimeSlot: "10:00"},
		"bad date":         {ServiceID: salon.ID, Date: "01/01/2030", TimeSlot: "10:00"},
		"closed slot":      {ServiceID: salon.ID, Date: tomorrow(), TimeSlot: "03:00"},
		"inactive service": {ServiceID: inactive.ID, Date: tomorrow(), TimeSlot: "10:00"},
		"unknown service":  {ServiceID: uuid.New(), Date: tomorrow(), TimeSlot: "10:00"},
	}
	for name, input := range cases {
		if _, err := svc.Create(ctx, actor, input); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestBookingStatusFlow(t *testing.T) {
	t.Parallel()

	svc, _, catalog, _ := newTestService(t)
	ctx := context.Background()
	salon := addService(catalog, 30000, true)
	actor := Actor{UserID: uuid.New(), Name: "มะลิ", Role: enums.UserRoleCustomer}

	booking, err := svc.Create(ctx, actor, CreateInput{ServiceID: salon.ID, Date: tomorrow(), TimeSlot: "16:00"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	confirmed, err := svc.UpdateStatus(ctx, booking.ID, StatusUpdateInput{Status: "confirmed"})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != enums.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", confirmed.Status)
	}

	if _, err := svc.UpdateStatus(ctx, booking.ID, StatusUpdateInput{Status: "pending"}); err == nil {
		t.Fatal("expected state conflict for backwards move")
	}

	completed, err := svc.UpdateStatus(ctx, booking.ID, StatusUpdateInput{Status: "completed"})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.Cancel(ctx, actor, completed.ID); err == nil {
		t.Fatal("expected cancel of completed booking to fail")
	}
}

func TestListScopesToCustomer(t *testing.T) {
	t.Parallel()

	svc, db, catalog, _ := newTestService(t)
	ctx := context.Background()
	salon := addService(catalog, 30000, true)
	mine := Actor{UserID: uuid.New(), Name: "มะลิ", Role: enums.UserRoleCustomer}
	other := Actor{UserID: uuid.New(), Name: "สมชาย", Role: enums.UserRoleCustomer}

	if _, err := svc.Create(ctx, mine, CreateInput{ServiceID: salon.ID, Date: tomorrow(), TimeSlot: "10:00"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, other, CreateInput{ServiceID: salon.ID, Date: tomorrow(), TimeSlot: "11:00"}); err != nil {
		t.Fatalf("create other: %v", err)
	}

	var count int64
	if err := db.Model(&models.Booking{}).Count(&count).Error; err != nil || count != 2 {
		t.Fatalf("expected 2 bookings stored, got %d (%v)", count, err)
	}

	page, err := svc.List(ctx, mine, ListInput{Pagination: pagination.Params{Limit: 10}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Bookings) != 1 || page.Bookings[0].CustomerID != mine.UserID {
		t.Fatalf("unexpected listing: %+v", page.Bookings)
	}

	adminPage, err := svc.List(ctx, Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}, ListInput{Pagination: pagination.Params{Limit: 10}})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(adminPage.Bookings) != 2 {
		t.Fatalf("expected 2 bookings for admin, got %d", len(adminPage.Bookings))
	}
}
