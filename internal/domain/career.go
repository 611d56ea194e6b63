package domain

// JobType is the closed set of employment types.
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeInternship JobType = "Internship"
	JobTypeRemote     JobType = "Remote"
)

// Valid reports whether t is a known job type.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeRemote:
		return true
	}
	return false
}

// JobStatus marks a posting as accepting applications or not.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// Valid reports whether s is a known job status.
func (s JobStatus) Valid() bool {
	return s == JobStatusOpen || s == JobStatusClosed
}

// Job represents a career posting.
type Job struct {
	Meta             `bson:",inline"`
	Title            string    `bson:"title" json:"title"`
	Department       string    `bson:"department" json:"department"`
	Location         string    `bson:"location" json:"location"`
	Type             JobType   `bson:"type" json:"type"`
	Skills           []string  `bson:"skills" json:"skills"`
	Responsibilities []string  `bson:"responsibilities" json:"responsibilities"`
	SalaryRange      string    `bson:"salaryRange,omitempty" json:"salaryRange,omitempty"`
	Education        string    `bson:"education,omitempty" json:"education,omitempty"`
	Status           JobStatus `bson:"status" json:"status"`
}

// ApplicationStatus tracks screening of a job application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "Pending"
	ApplicationStatusSelected ApplicationStatus = "Selected"
	ApplicationStatusRejected ApplicationStatus = "Rejected"
)

// Valid reports whether s is a known application status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusSelected, ApplicationStatusRejected:
		return true
	}
	return false
}

// JobApplication represents a submitted application with an uploaded resume.
type JobApplication struct {
	Meta      `bson:",inline"`
	JobID     string            `bson:"jobId" json:"jobId"`
	Name      string            `bson:"name" json:"name"`
	Email     string            `bson:"email" json:"email"`
	Phone     string            `bson:"phone" json:"phone"`
	ResumeURL string            `bson:"resumeUrl" json:"resumeUrl"`
	Status    ApplicationStatus `bson:"status" json:"status"`
}
