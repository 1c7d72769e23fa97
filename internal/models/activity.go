// internal/models/activity.go
package models

// ActivityLog is an append-only audit trail of security and commerce
// events. Nothing reads it transactionally.
type ActivityLog struct {
	BaseModel
	ActorID   int64     `json:"actor_id" gorm:"index"`
	ActorType ActorType `json:"actor_type" gorm:"type:varchar(10)"`
	Action    string    `json:"action" gorm:"size:100;not null;index"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
}

// Message is an inbound contact-form submission.
type Message struct {
	BaseModel
	SenderName  string `json:"sender_name" gorm:"size:255;not null"`
	SenderEmail string `json:"sender_email" gorm:"size:255;not null"`
	Subject     string `json:"subject" gorm:"size:255;not null"`
	Body        string `json:"message" gorm:"column:message;type:text;not null"`
}
