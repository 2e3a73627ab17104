package enums

import "fmt"

// ApplicationStatus tracks an application through the employer's review.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationHired       ApplicationStatus = "hired"
)

var validApplicationStatuses = []ApplicationStatus{
	ApplicationPending,
	ApplicationReviewed,
	ApplicationShortlisted,
	ApplicationRejected,
	ApplicationHired,
}

func (s ApplicationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ApplicationStatus.
func (s ApplicationStatus) IsValid() bool {
	for _, candidate := range validApplicationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseApplicationStatus converts raw input into an ApplicationStatus.
func ParseApplicationStatus(value string) (ApplicationStatus, error) {
	for _, candidate := range validApplicationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid application status %q", value)
}

// ApplicantExperience is the self-reported experience band on a submission.
type ApplicantExperience string

const (
	ApplicantFresher     ApplicantExperience = "fresher"
	ApplicantOneToTwo    ApplicantExperience = "1-2 years"
	ApplicantThreeToFive ApplicantExperience = "3-5 years"
	ApplicantFiveToTen   ApplicantExperience = "5-10 years"
	ApplicantTenPlus     ApplicantExperience = "10+ years"
)

var validApplicantExperiences = []ApplicantExperience{
	ApplicantFresher,
	ApplicantOneToTwo,
	ApplicantThreeToFive,
	ApplicantFiveToTen,
	ApplicantTenPlus,
}

func (e ApplicantExperience) IsValid() bool {
	for _, candidate := range validApplicantExperiences {
		if candidate == e {
			return true
		}
	}
	return false
}
