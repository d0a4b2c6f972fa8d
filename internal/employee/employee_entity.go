package employee

import (
	"time"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusOnLeave    Status = "onLeave"
	StatusTerminated Status = "terminated"
)

var (
	personalInfoFields = []string{"dateOfBirth", "fathersName", "pan", "contactEmail", "mobile", "address"}
	paymentInfoFields  = []string{"accountNumber", "paymentMode", "pfAccountNumber"}
)

type PersonalInfo struct {
	DateOfBirth  string `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	FathersName  string `json:"fathersName,omitempty" bson:"fathersName,omitempty"`
	PAN          string `json:"pan,omitempty" bson:"pan,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	Mobile       string `json:"mobile,omitempty" bson:"mobile,omitempty"`
	Address      string `json:"address,omitempty" bson:"address,omitempty"`
}

type PaymentInfo struct {
	PaymentMode     string `json:"paymentMode,omitempty" bson:"paymentMode,omitempty"`
	AccountNumber   string `json:"accountNumber,omitempty" bson:"accountNumber,omitempty"`
	PFAccountNumber string `json:"pfAccountNumber,omitempty" bson:"pfAccountNumber,omitempty"`
}

type FieldSnapshot struct {
	FieldID string `json:"fieldId,omitempty" bson:"fieldId,omitempty"`
	Name    string `json:"name" bson:"name"`
	Value   any    `json:"value" bson:"value"`
}

// SectionSnapshot is a point-in-time copy of a section's values. SectionID is
// a lookup hint only; the section may have changed or been removed since.
type SectionSnapshot struct {
	SectionID   string          `json:"sectionId" bson:"sectionId"`
	SectionName string          `json:"sectionName" bson:"sectionName"`
	Fields      []FieldSnapshot `json:"fields" bson:"fields"`
}

func (s SectionSnapshot) Get(name string) (any, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Set overwrites the value of name, appending it when missing. A snapshot
// never holds two entries for one name.
func (s *SectionSnapshot) Set(name string, value any) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			s.Fields[i].Value = value
			return
		}
	}
	s.Fields = append(s.Fields, FieldSnapshot{Name: name, Value: value})
}

type Employee struct {
	ID           string            `json:"id"`
	EmployeeID   string            `json:"employeeId" validate:"required"`
	FirstName    string            `json:"firstName" validate:"required"`
	LastName     string            `json:"lastName" validate:"required"`
	Title        string            `json:"title"`
	Department   string            `json:"department"`
	Location     string            `json:"location"`
	WorkEmail    string            `json:"workEmail" validate:"required"`
	ProfileImage string            `json:"profileImage"`
	JoiningDate  time.Time         `json:"joiningDate" validate:"required"`
	Status       Status            `json:"status" validate:"oneof=active inactive onLeave terminated"`
	Sections     []SectionSnapshot `json:"sections"`
	PersonalInfo PersonalInfo      `json:"personalInfo"`
	PaymentInfo  PaymentInfo       `json:"paymentInfo"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// Snapshot returns the embedded snapshot named sectionName, or nil.
func (e *Employee) Snapshot(sectionName string) *SectionSnapshot {
	for i := range e.Sections {
		if e.Sections[i].SectionName == sectionName {
			return &e.Sections[i]
		}
	}
	return nil
}
