package enums

import "fmt"

// JobStatus tracks the lifecycle of a posting.
type JobStatus string

const (
	JobStatusActive  JobStatus = "Active"
	JobStatusClosed  JobStatus = "Closed"
	JobStatusDraft   JobStatus = "Draft"
	JobStatusPaused  JobStatus = "Paused"
	JobStatusExpired JobStatus = "Expired"
)

var validJobStatuses = []JobStatus{
	JobStatusActive,
	JobStatusClosed,
	JobStatusDraft,
	JobStatusPaused,
	JobStatusExpired,
}

func (s JobStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known JobStatus.
func (s JobStatus) IsValid() bool {
	for _, candidate := range validJobStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseJobStatus converts raw input into a JobStatus.
func ParseJobStatus(value string) (JobStatus, error) {
	for _, candidate := range validJobStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid job status %q", value)
}

// JobType is the employment arrangement offered by a posting.
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"
	JobTypeFreelance  JobType = "Freelance"
)

var validJobTypes = []JobType{
	JobTypeFullTime,
	JobTypePartTime,
	JobTypeContract,
	JobTypeInternship,
	JobTypeFreelance,
}

func (j JobType) IsValid() bool {
	for _, candidate := range validJobTypes {
		if candidate == j {
			return true
		}
	}
	return false
}

// ExperienceLevel is the seniority a posting targets.
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "Entry Level"
	ExperienceJunior    ExperienceLevel = "Junior"
	ExperienceMid       ExperienceLevel = "Mid Level"
	ExperienceSenior    ExperienceLevel = "Senior"
	ExperienceExecutive ExperienceLevel = "Executive"
)

var validExperienceLevels = []ExperienceLevel{
	ExperienceEntry,
	ExperienceJunior,
	ExperienceMid,
	ExperienceSenior,
	ExperienceExecutive,
}

func (e ExperienceLevel) IsValid() bool {
	for _, candidate := range validExperienceLevels {
		if candidate == e {
			return true
		}
	}
	return false
}

// EducationLevel is the minimum schooling a posting asks for.
type EducationLevel string

const (
	EducationHighSchool  EducationLevel = "High School"
	EducationBachelors   EducationLevel = "Bachelor's Degree"
	EducationMasters     EducationLevel = "Master's Degree"
	EducationPhD         EducationLevel = "PhD"
	EducationDiploma     EducationLevel = "Diploma"
	EducationCertificate EducationLevel = "Certificate"
)

var validEducationLevels = []EducationLevel{
	EducationHighSchool,
	EducationBachelors,
	EducationMasters,
	EducationPhD,
	EducationDiploma,
	EducationCertificate,
}

func (e EducationLevel) IsValid() bool {
	for _, candidate := range validEducationLevels {
		if candidate == e {
			return true
		}
	}
	return false
}

// Gender is the posting's stated preference field.
type Gender string

const (
	GenderMale        Gender = "Male"
	GenderFemale      Gender = "Female"
	GenderAny         Gender = "Any"
	GenderUndisclosed Gender = "Prefer not to say"
)

var validGenders = []Gender{
	GenderMale,
	GenderFemale,
	GenderAny,
	GenderUndisclosed,
}

func (g Gender) IsValid() bool {
	for _, candidate := range validGenders {
		if candidate == g {
			return true
		}
	}
	return false
}
