package models

// CompareReport is one aggregated per-day row fetched from the reporting
// service, comparing reported hours against the agreement.
type CompareReport struct {
	WorkDate          string  `json:"workDate"`
	DayInWeek         string  `json:"dayInWeek"`
	AgreementName     string  `json:"agnName"`
	TotalServiceHours float64 `json:"totalServiceHours"`
	AgreementHours    float64 `json:"agreementTotalHours"`
	DiffHours         float64 `json:"diffAgreementAndServiceHours"`
	OpenRangeStart    *string `json:"openReportingMinTime"`
	OpenRangeEnd      *string `json:"openReportingManTime"`
	LastDocID         *int64  `json:"lastDocID"`
	ShortDescription  string  `json:"shortDescription,omitempty"`
}

// Reported reports whether the day has been submitted. A nil LastDocID marks
// an open (unreported) day.
func (r CompareReport) Reported() bool {
	return r.LastDocID != nil
}

// DailyReport is one per-line daily record fetched from the reporting service.
type DailyReport struct {
	StartDate        string  `json:"dStartDate"`
	EndDate          string  `json:"dEndDate"`
	StartTime        string  `json:"dStartTime"`
	EndTime          string  `json:"dEndTime"`
	Quantity         float64 `json:"quantity"`
	Location         string  `json:"location"`
	ShortDescription string  `json:"shortDescription"`
	AccountName      string  `json:"accName"`
	Status           string  `json:"status"`
	AgreementName    string  `json:"agnName"`
	Code             string  `json:"dCode"`
}

// ReportLine is one project/date/time-range record inside a submission.
type ReportLine struct {
	ReportDate       string `json:"reportDate"`
	StartTime        string `json:"startTime"` // HH:MM
	EndTime          string `json:"endTime"`   // HH:MM
	Location         int    `json:"location"`
	OriginalLocation int    `json:"originalLocation"`
	Notes            string `json:"notes"`
}

// SubmissionPayload is the request body for sending a batch of report lines,
// grouped by project code.
type SubmissionPayload struct {
	MinStartDate   string                  `json:"minStartDate"`
	MaxEndDate     string                  `json:"maxEndDate"`
	Identity       string                  `json:"identity"`
	ProjectReports map[string][]ReportLine `json:"projectReports"`
}

// LineResult echoes one submitted line back from the service. Reason is set
// only on invalid lines.
type LineResult struct {
	Project    string `json:"project"`
	ReportDate string `json:"reportDate"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Location   int    `json:"location"`
	Notes      string `json:"notes"`
	Reason     string `json:"reason,omitempty"`
}

// SendResult is the service's verdict on a submission.
type SendResult struct {
	Success      bool         `json:"success"`
	ValidLines   []LineResult `json:"validLines"`
	InvalidLines []LineResult `json:"invalidLines"`
}
