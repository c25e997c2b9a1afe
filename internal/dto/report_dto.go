package dto

// EmailReportRequest requests the filtered client registry PDF to be
// mailed to a comma-separated recipient list.
type EmailReportRequest struct {
	Recipients string `json:"recipients" form:"recipients"`
	Program    string `json:"program" form:"program"`
	After      string `json:"after" form:"after"`
}
