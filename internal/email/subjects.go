package email

const (
	subjectLeadAssignedFmt = "New lead assigned: %s"
)
