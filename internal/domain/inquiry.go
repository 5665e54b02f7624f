package domain

type InquiryStatus string

const (
	InquiryStatusOpen    InquiryStatus = "OPEN"
	InquiryStatusReplied InquiryStatus = "REPLIED"
	InquiryStatusClosed  InquiryStatus = "CLOSED"
)

type Inquiry struct {
	ID        int32         `json:"id"`
	UserID    int32         `json:"user_id"`
	User      *User         `json:"user,omitempty"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Reply     string        `json:"reply,omitempty"`
	Status    InquiryStatus `json:"status"`
	CreatedOn string        `json:"created_on"`
	UpdatedOn string        `json:"updated_on"`
}
