package domain

import "time"

// RecordStatus represents lifecycle states for a borrow record.
type RecordStatus string

const (
	RecordStatusBorrowed RecordStatus = "BORROWED"
	RecordStatusReturned RecordStatus = "RETURNED"
	RecordStatusOverdue  RecordStatus = "OVERDUE"
)

// Record is the domain model for a book loan.
type Record struct {
	Metadata
	UserID     string       `json:"userId"`
	BookID     string       `json:"bookId"`
	BorrowedAt time.Time    `json:"borrowedAt"`
	DueAt      time.Time    `json:"dueAt"`
	ReturnedAt *time.Time   `json:"returnedAt,omitempty"`
	Status     RecordStatus `json:"status"`
}
