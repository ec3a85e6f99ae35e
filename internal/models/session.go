package models

import "time"

// Session statuses derived at read time, never stored.
const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"
	StatusTimeout   = "Timeout"
)

type Session struct {
	ID         int        `json:"id" db:"id"`
	StudentID  string     `json:"student_id" db:"student_id"`
	Section    string     `json:"section,omitempty" db:"section"`
	PCNumber   string     `json:"pc_number" db:"pc_number"`
	Teacher    string     `json:"teacher,omitempty" db:"teacher"`
	Room       string     `json:"room,omitempty" db:"room"`
	LoginTime  *time.Time `json:"login_time" db:"login_time"`
	LogoutTime *time.Time `json:"logout_time,omitempty" db:"logout_time"`
	Visible    bool       `json:"visible" db:"visible"`
}

type LoginRequest struct {
	StudentID string `json:"id"`
	Section   string `json:"section"`
	PCNumber  string `json:"pc"`
	Teacher   string `json:"teacher"`
	Room      string `json:"room"`
}

type LogoutRequest struct {
	StudentID string `json:"id"`
	PCNumber  string `json:"pc"`
}

type ForceLogoutRequest struct {
	StudentID string `json:"id"`
}

// SessionView is the row shape the dashboard and print page consume.
// TimeIn/TimeOut are pre-formatted 12-hour clock strings so the frontend
// renders them as-is.
type SessionView struct {
	ID        int    `json:"id"`
	StudentID string `json:"studentId"`
	Section   string `json:"section"`
	PC        string `json:"pc"`
	Teacher   string `json:"teacher"`
	TimeIn    string `json:"timeIn"`
	TimeOut   string `json:"timeOut"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}
