package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mddanishyusuf/listyouridea/internal/config"
	"github.com/mddanishyusuf/listyouridea/internal/models"
	"github.com/mddanishyusuf/listyouridea/internal/payment"
	"github.com/mddanishyusuf/listyouridea/internal/repository"
)

type BookingCheckout struct {
	SessionID   string `json:"sessionId"`
	CheckoutURL string `json:"checkoutUrl"`
	ScheduleID  string `json:"scheduleId"`
	SlotNumber  int    `json:"slotNumber"`
}

type BookingConfirmation struct {
	PostID      string    `json:"postId"`
	PublishedAt time.Time `json:"publishedAt"`
}

// BookingService ties slot reservation, external payment and post
// publication into one consistent transition, and handles the inverse
// cancel path. Between checkout creation and confirmation no lock is held;
// the pending state lives entirely in the slot row, so the server may
// restart freely while the user is at the payment page.
type BookingService interface {
	BookSlot(ctx context.Context, user *models.User, postID string, weekStart time.Time, slotNumber int) (*BookingCheckout, error)
	ConfirmPayment(ctx context.Context, userID, sessionID, scheduleID string, slotNumber int, postID string) (*BookingConfirmation, error)
	CancelPending(ctx context.Context, userID, scheduleID string, slotNumber int, postID string) error
}

type bookingService struct {
	schedules    ScheduleService
	scheduleRepo repository.ScheduleRepository
	postRepo     repository.PostRepository
	gateway      payment.Gateway
	cfg          *config.Config
}

func NewBookingService(schedules ScheduleService, scheduleRepo repository.ScheduleRepository, postRepo repository.PostRepository, gateway payment.Gateway, cfg *config.Config) BookingService {
	return &bookingService{
		schedules:    schedules,
		scheduleRepo: scheduleRepo,
		postRepo:     postRepo,
		gateway:      gateway,
		cfg:          cfg,
	}
}

// BookSlot reserves the slot and opens a checkout session for it. If the
// gateway refuses the session, the fresh hold is released again so a failed
// booking attempt leaves no state behind.
func (s *bookingService) BookSlot(ctx context.Context, user *models.User, postID string, weekStart time.Time, slotNumber int) (*BookingCheckout, error) {
	schedule, post, err := s.schedules.ReserveSlot(ctx, user.UserID, postID, weekStart, slotNumber)
	if err != nil {
		return nil, err
	}

	amount := int64(models.DefaultSlotPrice)
	for _, slot := range schedule.Slots {
		if slot.SlotNumber == slotNumber {
			amount = int64(slot.PaymentAmount)
		}
	}

	weekStartStr := schedule.WeekStartDate.Format("2006-01-02")

	session, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		AmountCents:   amount * 100,
		ProductName:   "Featured Product Listing - " + post.Title,
		Description:   "Week of " + formatWeekDisplay(schedule.WeekStartDate, schedule.WeekEndDate),
		ImageURL:      post.LogoURL,
		SuccessURL:    s.successURL(schedule.ScheduleID, slotNumber, postID),
		CancelURL:     s.cancelURL(schedule.ScheduleID, slotNumber, postID),
		CustomerEmail: user.Email,
		Metadata: map[string]string{
			payment.MetaScheduleID:    schedule.ScheduleID,
			payment.MetaSlotNumber:    strconv.Itoa(slotNumber),
			payment.MetaPostID:        postID,
			payment.MetaUserID:        user.UserID,
			payment.MetaWeekStartDate: weekStartStr,
		},
	})
	if err != nil {
		// Give the slot back; the reservation must not outlive the
		// failed attempt. Best effort: the hold stays reclaimable via
		// the cancel path if this release also fails.
		if relErr := s.schedules.ReleaseSlot(ctx, schedule.ScheduleID, slotNumber, user.UserID, postID); relErr != nil {
			return nil, fmt.Errorf("%w (slot release also failed: %v)", err, relErr)
		}
		return nil, err
	}

	return &BookingCheckout{
		SessionID:   session.SessionID,
		CheckoutURL: session.URL,
		ScheduleID:  schedule.ScheduleID,
		SlotNumber:  slotNumber,
	}, nil
}

func (s *bookingService) successURL(scheduleID string, slotNumber int, postID string) string {
	return fmt.Sprintf("%s/schedule/success?session_id={CHECKOUT_SESSION_ID}&schedule_id=%s&slot_number=%d&post_id=%s",
		s.cfg.BaseURL, scheduleID, slotNumber, postID)
}

func (s *bookingService) cancelURL(scheduleID string, slotNumber int, postID string) string {
	return fmt.Sprintf("%s/schedule?cancelled=true&schedule_id=%s&slot_number=%d&post_id=%s",
		s.cfg.BaseURL, scheduleID, slotNumber, postID)
}

// ConfirmPayment verifies the checkout session with the gateway, marks the
// slot paid and publishes the post. The slot and the post are separate
// aggregates updated without a shared transaction; every step is idempotent,
// so a crash between the two writes is recovered by calling this again with
// the same arguments, not by compensating rollback.
func (s *bookingService) ConfirmPayment(ctx context.Context, userID, sessionID, scheduleID string, slotNumber int, postID string) (*BookingConfirmation, error) {
	status, err := s.gateway.GetSessionStatus(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !status.Paid {
		return nil, models.ErrPaymentIncomplete
	}

	// The session metadata is the only link between the payment and the
	// reservation. Any divergence means tampering or a wiring bug; never
	// auto-correct it.
	if status.Metadata[payment.MetaScheduleID] != scheduleID ||
		status.Metadata[payment.MetaSlotNumber] != strconv.Itoa(slotNumber) ||
		status.Metadata[payment.MetaPostID] != postID ||
		status.Metadata[payment.MetaUserID] != userID {
		return nil, models.ErrMetadataMismatch
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.MarkSlotPaid(ctx, schedule.ScheduleID, slotNumber, postID, userID, sessionID); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.Status == models.StatusPublished && post.PublishedAt.Valid {
		// Already confirmed on a previous invocation.
		return &BookingConfirmation{PostID: post.PostID, PublishedAt: post.PublishedAt.Time}, nil
	}

	weekStart, err := time.Parse("2006-01-02", status.Metadata[payment.MetaWeekStartDate])
	if err != nil {
		return nil, fmt.Errorf("bad weekStartDate in session metadata: %w", models.ErrMetadataMismatch)
	}

	publishedAt := time.Now()
	if err := s.postRepo.Publish(ctx, postID, weekStart, publishedAt); err != nil {
		return nil, err
	}

	return &BookingConfirmation{PostID: postID, PublishedAt: publishedAt}, nil
}

// CancelPending releases a held slot when the user abandons checkout. The
// cancel callback can fire more than once; cancelling an already-released
// slot is a no-op success.
func (s *bookingService) CancelPending(ctx context.Context, userID, scheduleID string, slotNumber int, postID string) error {
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}

	return s.schedules.ReleaseSlot(ctx, schedule.ScheduleID, slotNumber, userID, postID)
}
