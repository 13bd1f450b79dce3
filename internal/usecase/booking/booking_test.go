package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MeetupServices/meetup-scheduler/internal/audit"
	domain "github.com/MeetupServices/meetup-scheduler/internal/domain/booking"
	"github.com/MeetupServices/meetup-scheduler/internal/domain/user"
	"github.com/MeetupServices/meetup-scheduler/internal/httperr"
	"github.com/MeetupServices/meetup-scheduler/internal/models"
	"github.com/MeetupServices/meetup-scheduler/internal/policy"
	ucBooking "github.com/MeetupServices/meetup-scheduler/internal/usecase/booking"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

// fakeRepo keeps everything in memory and performs the slot claim
// under a mutex so concurrent create calls behave like the
// conditional update against the database.
type fakeRepo struct {
	mu       sync.Mutex
	users    map[uint]models.User
	slots    map[uint]*models.TimeSlot
	bookings map[uint]*models.Booking
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    make(map[uint]models.User),
		slots:    make(map[uint]*models.TimeSlot),
		bookings: make(map[uint]*models.Booking),
	}
}

func (r *fakeRepo) GetSlotByID(_ context.Context, id uint) (*models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	if !ok {
		return nil, httperr.ErrBusiness("not_found")
	}
	cp := *slot
	cp.Teacher = r.users[slot.TeacherID]
	return &cp, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[b.SlotID]
	if !ok || !slot.IsAvailable {
		return httperr.ErrBusiness("slot_unavailable")
	}

	slot.IsAvailable = false
	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Now()

	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) GetBookingByID(_ context.Context, id uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, httperr.ErrBusiness("not_found")
	}

	cp := *b
	if slot, ok := r.slots[b.SlotID]; ok {
		cp.Slot = *slot
		cp.Slot.Teacher = r.users[slot.TeacherID]
	}
	cp.Student = r.users[b.StudentID]
	return &cp, nil
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slot, ok := r.slots[b.SlotID]; ok {
		slot.IsAvailable = b.Slot.IsAvailable
	}

	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) DeleteBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.bookings, b.ID)
	return nil
}

func (r *fakeRepo) ListForTeacher(_ context.Context, teacherID uint) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if slot, ok := r.slots[b.SlotID]; ok && slot.TeacherID == teacherID {
			cp := *b
			cp.Slot = *slot
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListForStudent(_ context.Context, studentID uint) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.StudentID == studentID {
			cp := *b
			if slot, ok := r.slots[b.SlotID]; ok {
				cp.Slot = *slot
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// FIXTURES
// ======================================================

const (
	teacherID  = uint(1)
	studentID  = uint(2)
	studentBID = uint(3)
	slotID     = uint(100)
)

func seededRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.users[teacherID] = models.User{ID: teacherID, Username: "teacher", Role: "teacher"}
	repo.users[studentID] = models.User{ID: studentID, Username: "student-a", Role: "student"}
	repo.users[studentBID] = models.User{ID: studentBID, Username: "student-b", Role: "student"}

	start := time.Now().Add(24 * time.Hour)
	repo.slots[slotID] = &models.TimeSlot{
		ID:          slotID,
		TeacherID:   teacherID,
		Start:       start,
		End:         start.Add(30 * time.Minute),
		IsAvailable: true,
	}
	return repo
}

func noAudit() *audit.Dispatcher {
	return audit.NewDispatcher(nil, zap.NewNop())
}

func student(id uint) policy.Identity {
	return policy.Identity{UserID: id, Role: user.RoleStudent}
}

func teacher(id uint) policy.Identity {
	return policy.Identity{UserID: id, Role: user.RoleTeacher}
}

// ======================================================
// CREATE
// ======================================================

func TestCreateBooking(t *testing.T) {
	repo := seededRepo()
	uc := ucBooking.NewCreateBooking(repo, noAudit())

	b, err := uc.Execute(context.Background(), ucBooking.CreateBookingInput{
		StudentID: studentID,
		SlotID:    slotID,
		Purpose:   "algebra help",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.Equal(t, studentID, b.StudentID)
	assert.Equal(t, slotID, b.SlotID)
	assert.Equal(t, "online", b.MeetingMode, "meeting mode defaults to online")
	assert.False(t, b.Slot.IsAvailable, "slot is claimed")

	slot, err := repo.GetSlotByID(context.Background(), slotID)
	require.NoError(t, err)
	assert.False(t, slot.IsAvailable)
}

func TestCreateBookingUnknownSlot(t *testing.T) {
	uc := ucBooking.NewCreateBooking(seededRepo(), noAudit())

	_, err := uc.Execute(context.Background(), ucBooking.CreateBookingInput{
		StudentID: studentID,
		SlotID:    999,
	})
	assert.True(t, httperr.IsBusiness(err, "slot_not_found"))
}

func TestCreateBookingSlotAlreadyBooked(t *testing.T) {
	repo := seededRepo()
	uc := ucBooking.NewCreateBooking(repo, noAudit())

	_, err := uc.Execute(context.Background(), ucBooking.CreateBookingInput{
		StudentID: studentID,
		SlotID:    slotID,
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), ucBooking.CreateBookingInput{
		StudentID: studentBID,
		SlotID:    slotID,
	})
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))

	bookings, err := repo.ListForStudent(context.Background(), studentBID)
	require.NoError(t, err)
	assert.Empty(t, bookings, "no booking persisted for the loser")
}

func TestCreateBookingConcurrentClaims(t *testing.T) {
	repo := seededRepo()
	uc := ucBooking.NewCreateBooking(repo, noAudit())

	const attempts = 16

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), ucBooking.CreateBookingInput{
				StudentID: studentID,
				SlotID:    slotID,
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
		}
	}
	assert.Equal(t, 1, successes, "exactly one claim wins")
}

// ======================================================
// CANCEL
// ======================================================

func TestCancelBookingByStudent(t *testing.T) {
	repo := seededRepo()
	createUC := ucBooking.NewCreateBooking(repo, noAudit())
	cancelUC := ucBooking.NewCancelBooking(repo, noAudit())

	created, err := createUC.Execute(context.Background(), ucBooking.CreateBookingInput{
		StudentID: studentID,
		SlotID:    slotID,
	})
	require.NoError(t, err)

	cancelled, err := cancelUC.Execute(context.Background(), student(studentID), created.ID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	slot, err := repo.GetSlotByID(context.Background(), slotID)
	require.NoError(t, err)
	assert.True(t, slot.IsAvailable, "cancellation releases the slot")
}

func TestCancelBookingBySlotTeacher(t *testing.T) {
	repo := seededRepo()
	createUC := ucBooking.NewCreateBooking(repo, noAudit())
	cancelUC := ucBooking.NewCancelBooking(repo, noAudit())

	created, err := createUC.Execute(context.Background(), ucBooking.CreateBookingInput{
		StudentID: studentID,
		SlotID:    slotID,
	})
	require.NoError(t, err)

	_, err = cancelUC.Execute(context.Background(), teacher(teacherID), created.ID)
	assert.NoError(t, err)
}

func TestCancelBookingForbidden(t *testing.T) {
	repo := seededRepo()
	createUC := ucBooking.NewCreateBooking(repo, noAudit())
	cancelUC := ucBooking.NewCancelBooking(repo, noAudit())

	created, err := createUC.Execute(context.Background(), ucBooking.CreateBookingInput{
		StudentID: studentID,
		SlotID:    slotID,
	})
	require.NoError(t, err)

	_, err = cancelUC.Execute(context.Background(), student(studentBID), created.ID)
	assert.True(t, httperr.IsBusiness(err, "not_allowed"), "another student cannot cancel")

	_, err = cancelUC.Execute(context.Background(), teacher(99), created.ID)
	assert.True(t, httperr.IsBusiness(err, "not_allowed"), "another teacher cannot cancel")

	slot, err := repo.GetSlotByID(context.Background(), slotID)
	require.NoError(t, err)
	assert.False(t, slot.IsAvailable, "slot stays claimed")
}

func TestCancelBookingTwice(t *testing.T) {
	repo := seededRepo()
	createUC := ucBooking.NewCreateBooking(repo, noAudit())
	cancelUC := ucBooking.NewCancelBooking(repo, noAudit())

	created, err := createUC.Execute(context.Background(), ucBooking.CreateBookingInput{
		StudentID: studentID,
		SlotID:    slotID,
	})
	require.NoError(t, err)

	_, err = cancelUC.Execute(context.Background(), student(studentID), created.ID)
	require.NoError(t, err)

	_, err = cancelUC.Execute(context.Background(), student(studentID), created.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelUnknownBooking(t *testing.T) {
	cancelUC := ucBooking.NewCancelBooking(seededRepo(), noAudit())

	_, err := cancelUC.Execute(context.Background(), student(studentID), 999)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

// ======================================================
// LIST
// ======================================================

func TestListBookingsByRole(t *testing.T) {
	repo := seededRepo()

	// a second teacher with their own slot and booking
	otherTeacher := uint(7)
	otherSlot := uint(200)
	repo.users[otherTeacher] = models.User{ID: otherTeacher, Username: "teacher-2", Role: "teacher"}
	start := time.Now().Add(48 * time.Hour)
	repo.slots[otherSlot] = &models.TimeSlot{
		ID: otherSlot, TeacherID: otherTeacher,
		Start: start, End: start.Add(30 * time.Minute), IsAvailable: true,
	}

	createUC := ucBooking.NewCreateBooking(repo, noAudit())
	listUC := ucBooking.NewListBookings(repo)

	_, err := createUC.Execute(context.Background(), ucBooking.CreateBookingInput{
		StudentID: studentID, SlotID: slotID,
	})
	require.NoError(t, err)

	_, err = createUC.Execute(context.Background(), ucBooking.CreateBookingInput{
		StudentID: studentBID, SlotID: otherSlot,
	})
	require.NoError(t, err)

	forTeacher, err := listUC.Execute(context.Background(), teacher(teacherID))
	require.NoError(t, err)
	require.Len(t, forTeacher, 1)
	assert.Equal(t, teacherID, forTeacher[0].Slot.TeacherID)

	forStudent, err := listUC.Execute(context.Background(), student(studentBID))
	require.NoError(t, err)
	require.Len(t, forStudent, 1)
	assert.Equal(t, studentBID, forStudent[0].StudentID)

	forAdmin, err := listUC.Execute(context.Background(), policy.Identity{UserID: 1, Role: user.RoleAdmin})
	require.NoError(t, err)
	assert.Empty(t, forAdmin, "other roles see nothing")
}

// ======================================================
// END-TO-END LIFECYCLE
// ======================================================

// Book, reject second claim, cancel, rebook.
func TestBookingLifecycle(t *testing.T) {
	repo := seededRepo()
	createUC := ucBooking.NewCreateBooking(repo, noAudit())
	cancelUC := ucBooking.NewCancelBooking(repo, noAudit())

	ctx := context.Background()

	first, err := createUC.Execute(ctx, ucBooking.CreateBookingInput{
		StudentID: studentID, SlotID: slotID,
	})
	require.NoError(t, err)

	_, err = createUC.Execute(ctx, ucBooking.CreateBookingInput{
		StudentID: studentBID, SlotID: slotID,
	})
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))

	_, err = cancelUC.Execute(ctx, student(studentID), first.ID)
	require.NoError(t, err)

	second, err := createUC.Execute(ctx, ucBooking.CreateBookingInput{
		StudentID: studentBID, SlotID: slotID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), second.Status)

	slot, err := repo.GetSlotByID(ctx, slotID)
	require.NoError(t, err)
	assert.False(t, slot.IsAvailable)
}
