// Package model contains the gorm models persisted by the bookshelf server.
package model

import "time"

// DefaultImageFile is the cover shown for books without their own image.
const DefaultImageFile = "default.jpg"

// User is a registered principal. Password holds the bcrypt hash, never the
// plaintext.
type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName    string `json:"firstName" gorm:"size:100;not null"`
	LastName     string `json:"lastName" gorm:"size:100;not null;default:''"`
	EmailAddress string `json:"emailAddress" gorm:"size:100;uniqueIndex;not null"`
	Password     string `json:"-" gorm:"size:100;not null"`
	IsAdmin      bool   `json:"isAdmin" gorm:"not null;default:false"`
}

type Author struct {
	Id   int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" form:"name" gorm:"size:100;not null"`
}

// Book is a lendable title. UserId is the current borrower, nil when the book
// is on the shelf.
type Book struct {
	Id        int     `json:"id" gorm:"primaryKey;autoIncrement"`
	BookName  string  `json:"bookName" gorm:"size:100;uniqueIndex;not null"`
	ImageFile string  `json:"imageFile" gorm:"size:20;not null;default:default.jpg"`
	UserId    *int    `json:"userId"`
	User      *User   `json:"borrower,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	AuthorId  *int    `json:"authorId"`
	Author    *Author `json:"author,omitempty" gorm:"constraint:OnDelete:SET NULL"`
}

// IsBorrowed reports whether someone currently holds the book.
func (b *Book) IsBorrowed() bool {
	return b.UserId != nil
}

// Review is immutable once written.
type Review struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	DatePosted time.Time `json:"datePosted" gorm:"not null;index"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	UserId     int       `json:"userId" gorm:"not null;index"`
	User       *User     `json:"author,omitempty"`
	BooksId    *int      `json:"booksId" gorm:"index"`
	Books      *Book     `json:"-" gorm:"foreignKey:BooksId;constraint:OnDelete:SET NULL"`
}

type Setting struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key" gorm:"uniqueIndex"`
	Value string `json:"value" form:"value"`
}

// AuditLog records one mutation of the lending or review ledgers, or an
// account event.
type AuditLog struct {
	ID         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     int       `json:"userId" gorm:"index"`
	Username   string    `json:"username"`
	Action     string    `json:"action" gorm:"index"`
	Resource   string    `json:"resource"`
	ResourceID int       `json:"resourceId"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"userAgent"`
	Details    string    `json:"details"`
	Timestamp  time.Time `json:"timestamp" gorm:"index"`
}
