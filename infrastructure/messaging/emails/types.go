package emails

// ReceiptData fills the attendance receipt template.
type ReceiptData struct {
	FullName string
	Date     string
	CheckIn  string
	CheckOut string
	Duration string
}

type EmailServiceType interface {
	SendAttendanceReceipt(toEmail string, subject string, data ReceiptData) bool
}

var EmailService EmailServiceType = &ResendService{}
