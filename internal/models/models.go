package models

import (
	"database/sql"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
)

const (
	// SlotsPerWeek is the fixed number of featured-listing slots in a week.
	SlotsPerWeek = 10

	// DefaultSlotPrice is the listing price in whole dollars.
	DefaultSlotPrice = 29
)

type User struct {
	UserID    string    `json:"userId" db:"user_id"`
	UID       string    `json:"uid" db:"uid"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Username  string    `json:"username" db:"username"`
	PhotoURL  string    `json:"photoURL" db:"photo_url"`
	APIKey    string    `json:"-" db:"api_key"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID        string       `json:"postId" db:"post_id"`
	AuthorID      string       `json:"authorId" db:"author_id"`
	Title         string       `json:"productTitle" db:"title"`
	Description   string       `json:"productDescription" db:"description"`
	LogoURL       string       `json:"productImage" db:"logo_url"`
	Category      string       `json:"category" db:"category"`
	ProductURL    string       `json:"productUrl" db:"product_url"`
	Status        string       `json:"status" db:"status"`
	ScheduledWeek sql.NullTime `json:"scheduledWeek" db:"scheduled_week"`
	PublishedAt   sql.NullTime `json:"publishedAt" db:"published_at"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`
	Images        []Image      `json:"featuredImages" db:"-"`
	LikesCount    int          `json:"likesCount" db:"-"`
}

type Image struct {
	ImageID   string    `json:"imageId" db:"image_id"`
	PostID    string    `json:"postId" db:"post_id"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Schedule is the per-week container of 10 slots. It exclusively owns its
// slot rows; a slot's post/user references are weak back-references.
type Schedule struct {
	ScheduleID    string    `json:"scheduleId" db:"schedule_id"`
	WeekStartDate time.Time `json:"weekStartDate" db:"week_start_date"`
	WeekEndDate   time.Time `json:"weekEndDate" db:"week_end_date"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	Slots         []Slot    `json:"slots" db:"-"`
}

type Slot struct {
	ScheduleID       string         `json:"-" db:"schedule_id"`
	SlotNumber       int            `json:"slotNumber" db:"slot_number"`
	PostID           sql.NullString `json:"postId" db:"post_id"`
	UserID           sql.NullString `json:"userId" db:"user_id"`
	BookedAt         sql.NullTime   `json:"bookedAt" db:"booked_at"`
	Paid             bool           `json:"paid" db:"paid"`
	PaymentPending   bool           `json:"paymentPending" db:"payment_pending"`
	PaymentAmount    int            `json:"paymentAmount" db:"payment_amount"`
	PaymentSessionID sql.NullString `json:"-" db:"payment_session_id"`
}

// Available reports whether the slot counts as free for listing purposes.
// A stale pending hold does not permanently hide a slot from the count, but
// claiming still requires post_id to be NULL.
func (s *Slot) Available() bool {
	return !s.PostID.Valid || (!s.Paid && !s.PaymentPending)
}

// AvailableSlots derives the free-slot count from current slot contents.
// Never cached: slot state changes through reserve, confirm and cancel.
func (sc *Schedule) AvailableSlots() int {
	count := 0
	for i := range sc.Slots {
		if sc.Slots[i].Available() {
			count++
		}
	}
	return count
}
