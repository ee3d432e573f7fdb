package domain

import (
	"strings"

	"gorm.io/datatypes"
)

// User is one enrolled person. The fingerprint id is assigned by the
// scanner terminal and is only unique per owning client, so two terminals
// may hand out the same id to different people.
type User struct {
	ID            uint   `json:"id" gorm:"column:user_id;primaryKey;autoIncrement"`
	FullName      string `json:"fullName" gorm:"not null"`
	FingerprintID int    `json:"fingerprintId" gorm:"not null;uniqueIndex:idx_users_fingerprint_client"`
	ClientID      string `json:"clientId" gorm:"not null;uniqueIndex:idx_users_fingerprint_client"`

	Info       UserInfo           `json:"info" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE"`
	Attendance []AttendanceRecord `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE"`
}

func (User) TableName() string { return "users" }

// UserInfo holds the personal details captured at enrollment. It never
// exists without its User; both rows are written in one transaction and
// the cascade removes it together with the User.
type UserInfo struct {
	UserID      uint   `json:"userId" gorm:"column:user_id;primaryKey;autoIncrement:false"`
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	LastName    string `json:"lastName"`
	Age         int    `json:"age" gorm:"type:smallint"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

func (UserInfo) TableName() string { return "user_info" }

// AttendanceRecord is one proof-of-presence entry. At most one record may
// exist per user and calendar date, enforced by the composite unique index.
type AttendanceRecord struct {
	ID            uint           `json:"id" gorm:"column:attendance_id;primaryKey;autoIncrement"`
	UserID        uint           `json:"userId" gorm:"not null;uniqueIndex:idx_attendance_user_date"`
	DateAttended  datatypes.Date `json:"dateAttended" gorm:"not null;uniqueIndex:idx_attendance_user_date"`
	TimeAttended  datatypes.Time `json:"timeAttended" gorm:"not null"`
	EventName     string         `json:"eventName"`
	EventLocation string         `json:"eventLocation"`
}

func (AttendanceRecord) TableName() string { return "attendance" }

// AttendanceEntry is a read projection of one attendance record joined
// with the owning user's full name, used by the export reports.
type AttendanceEntry struct {
	ID            uint
	UserID        uint
	FullName      string
	DateAttended  datatypes.Date
	TimeAttended  datatypes.Time
	EventName     string
	EventLocation string
}

// JoinName builds the stored full name from its parts, skipping empty
// middle names.
func JoinName(first, middle, last string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{first, middle, last} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
