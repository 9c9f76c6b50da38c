package requests

// EmailPayload is the message enqueued for the mailer worker. Template names
// resolve against the worker's parsed template set; Variables feed the
// template's data map.
type EmailPayload struct {
	To        string            `json:"to"`
	Subject   string            `json:"subject"`
	Template  string            `json:"template"`
	Variables map[string]string `json:"variables,omitempty"`
}
