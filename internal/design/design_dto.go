package design

import (
	"io"
	"time"
)

type DraftFile struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	PublicID     string `json:"publicId"`
	ResourceType string `json:"resourceType,omitempty"`
	ContentType  string `json:"contentType"`
	Size         int64  `json:"size"`
}

// Draft is the wizard state kept in the session under DraftStorageKey.
type Draft struct {
	Step        int         `json:"step"`
	ServiceType string      `json:"serviceType"`
	Files       []DraftFile `json:"files"`
	ContactInfo string      `json:"contactInfo"`
	Notes       string      `json:"notes"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type StepInfo struct {
	Index int    `json:"index"`
	Title string `json:"title"`
}

type DraftResponse struct {
	Draft
	StepCount int        `json:"stepCount"`
	IsFirst   bool       `json:"isFirst"`
	IsLast    bool       `json:"isLast"`
	Steps     []StepInfo `json:"steps"`
}

// UpdateDraftRequest only touches the fields that are present.
type UpdateDraftRequest struct {
	ServiceType *string `json:"serviceType" binding:"omitempty,max=64"`
	ContactInfo *string `json:"contactInfo" binding:"omitempty,max=500"`
	Notes       *string `json:"notes" binding:"omitempty,max=2000"`
}

type FileUpload struct {
	Name string
	Size int64
	Body io.Reader
}

type NextResponse struct {
	Draft            *DraftResponse `json:"draft,omitempty"`
	Submitted        bool           `json:"submitted"`
	NotificationSent bool           `json:"notificationSent"`
}
