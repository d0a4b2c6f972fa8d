package employee

import (
	"strings"
	"time"
)

// CreateEmployeeRequest accepts the business key as employeeId or id and
// the joining date as joiningDate or createdAt; older clients send the
// latter names.
type CreateEmployeeRequest struct {
	ID           string         `json:"id"`
	EmployeeID   string         `json:"employeeId"`
	FirstName    string         `json:"firstName" binding:"required"`
	LastName     string         `json:"lastName" binding:"required"`
	Title        string         `json:"title"`
	Department   string         `json:"department"`
	Location     string         `json:"location"`
	WorkEmail    string         `json:"workEmail" binding:"required"`
	JoiningDate  string         `json:"joiningDate"`
	CreatedAt    string         `json:"createdAt"`
	PersonalInfo map[string]any `json:"personalInfo"`
	PaymentInfo  map[string]any `json:"paymentInfo"`
}

func (r CreateEmployeeRequest) businessKey() string {
	if key := strings.TrimSpace(r.EmployeeID); key != "" {
		return key
	}
	return strings.TrimSpace(r.ID)
}

func (r CreateEmployeeRequest) joiningDate() string {
	if r.JoiningDate != "" {
		return r.JoiningDate
	}
	return r.CreatedAt
}

type EmployeeResponse struct {
	ID           string            `json:"id"`
	EmployeeID   string            `json:"employeeId"`
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	Title        string            `json:"title"`
	Department   string            `json:"department"`
	Location     string            `json:"location"`
	WorkEmail    string            `json:"workEmail"`
	ProfileImage string            `json:"profileImage"`
	JoiningDate  time.Time         `json:"joiningDate"`
	Status       Status            `json:"status"`
	Sections     []SectionSnapshot `json:"sections"`
	PersonalInfo PersonalInfo      `json:"personalInfo"`
	PaymentInfo  PaymentInfo       `json:"paymentInfo"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// EmployeeSummaryResponse is the list projection. It never carries
// personal, payment or section data.
type EmployeeSummaryResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Status       Status `json:"status"`
	Department   string `json:"department"`
	Title        string `json:"title"`
	ProfileImage string `json:"profileImage"`
}

func mapToResponse(e Employee) EmployeeResponse {
	sections := e.Sections
	if sections == nil {
		sections = []SectionSnapshot{}
	}
	return EmployeeResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Title:        e.Title,
		Department:   e.Department,
		Location:     e.Location,
		WorkEmail:    e.WorkEmail,
		ProfileImage: e.ProfileImage,
		JoiningDate:  e.JoiningDate,
		Status:       e.Status,
		Sections:     sections,
		PersonalInfo: e.PersonalInfo,
		PaymentInfo:  e.PaymentInfo,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func mapToSummaryList(employees []Employee) []EmployeeSummaryResponse {
	res := make([]EmployeeSummaryResponse, len(employees))
	for i, e := range employees {
		res[i] = EmployeeSummaryResponse{
			ID:           e.ID,
			EmployeeID:   e.EmployeeID,
			FirstName:    e.FirstName,
			LastName:     e.LastName,
			Status:       e.Status,
			Department:   e.Department,
			Title:        e.Title,
			ProfileImage: e.ProfileImage,
		}
	}
	return res
}
