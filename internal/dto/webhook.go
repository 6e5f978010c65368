package dto

import "encoding/xml"

// InboundMessageRequest is the JSON form of a chat delivery.
type InboundMessageRequest struct {
	Sender string `json:"sender" binding:"required,chataddress"`
	Body   string `json:"body"`
}

// InboundFormRequest is the form-encoded delivery sent by Twilio.
type InboundFormRequest struct {
	From       string `form:"From" binding:"required,chataddress"`
	Body       string `form:"Body"`
	MessageSid string `form:"MessageSid"`
}

// ReplyResponse is the JSON reply to an inbound message.
type ReplyResponse struct {
	Reply string `json:"reply"`
}

// TwiMLResponse renders a single outbound message in TwiML.
type TwiMLResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}
