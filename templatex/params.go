package templatex

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Abraxas-365/pesantren-notify/msgx"
)

// Params is a typed parameter record for one template
type Params interface {
	TemplateName() string
	Values() []string
}

type PaymentReminder struct {
	ParentName  string
	BillType    string
	StudentName string
	Amount      string
	DueDate     string
	PaymentURL  string
}

func (PaymentReminder) TemplateName() string { return NamePaymentReminder }
func (p PaymentReminder) Values() []string {
	return []string{p.ParentName, p.BillType, p.StudentName, p.Amount, p.DueDate, p.PaymentURL}
}

type PaymentConfirmation struct {
	ParentName    string
	StudentName   string
	BillType      string
	Amount        string
	PaidAt        string
	ReceiptNumber string
}

func (PaymentConfirmation) TemplateName() string { return NamePaymentConfirmation }
func (p PaymentConfirmation) Values() []string {
	return []string{p.ParentName, p.StudentName, p.BillType, p.Amount, p.PaidAt, p.ReceiptNumber}
}

type AttendanceAlert struct {
	ParentName  string
	StudentName string
	Date        string
	Status      string
	ClassName   string
}

func (AttendanceAlert) TemplateName() string { return NameAttendanceAlert }
func (p AttendanceAlert) Values() []string {
	return []string{p.ParentName, p.StudentName, p.Date, p.Status, p.ClassName}
}

type GradeReport struct {
	ParentName  string
	StudentName string
	Semester    string
	Average     string
	ReportURL   string
}

func (GradeReport) TemplateName() string { return NameGradeReport }
func (p GradeReport) Values() []string {
	return []string{p.ParentName, p.StudentName, p.Semester, p.Average, p.ReportURL}
}

type Announcement struct {
	Title   string
	Message string
}

func (Announcement) TemplateName() string { return NameAnnouncement }
func (p Announcement) Values() []string { return []string{p.Title, p.Message} }

type DonationReceipt struct {
	DonorName     string
	CampaignName  string
	Amount        string
	Date          string
	ReceiptNumber string
}

func (DonationReceipt) TemplateName() string { return NameDonationReceipt }
func (p DonationReceipt) Values() []string {
	return []string{p.DonorName, p.CampaignName, p.Amount, p.Date, p.ReceiptNumber}
}

type PPDBRegistration struct {
	ApplicantName      string
	RegistrationNumber string
	Program            string
	NextStep           string
}

func (PPDBRegistration) TemplateName() string { return NamePPDBRegistration }
func (p PPDBRegistration) Values() []string {
	return []string{p.ApplicantName, p.RegistrationNumber, p.Program, p.NextStep}
}

type VerificationCode struct {
	Code string
}

func (VerificationCode) TemplateName() string { return NameVerificationCode }
func (p VerificationCode) Values() []string { return []string{p.Code} }

// Message builds the template message for p
func Message(to string, p Params) msgx.Message {
	return msgx.NewTemplateMessage(to, p.TemplateName(), DefaultLanguage, p.Values())
}

// Fallback renders p as plain text, for when the template itself cannot be sent
func Fallback(p Params) string {
	text, _ := Render(p.TemplateName(), p.Values())
	return text
}

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah formats an amount the way bills are written locally: "Rp 1.500.000"
func FormatRupiah(amount int64) string {
	return idPrinter.Sprintf("Rp %d", amount)
}
