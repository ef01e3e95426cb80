package models

// EmailMessage is a ready-to-send e-mail with a plain-text body and an
// optional HTML alternative.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}
