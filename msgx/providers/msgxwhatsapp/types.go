package msgxwhatsapp

// ========== WhatsApp API Structures ==========

type whatsappMessage struct {
	MessagingProduct string                   `json:"messaging_product"`
	RecipientType    string                   `json:"recipient_type"`
	To               string                   `json:"to"`
	Type             string                   `json:"type"`
	Text             *whatsappTextMessage     `json:"text,omitempty"`
	Image            *whatsappMediaMessage    `json:"image,omitempty"`
	Document         *whatsappDocumentMessage `json:"document,omitempty"`
	Template         *whatsappTemplateMessage `json:"template,omitempty"`
}

type whatsappTextMessage struct {
	Body       string `json:"body"`
	PreviewURL bool   `json:"preview_url,omitempty"`
}

type whatsappMediaMessage struct {
	Link    string `json:"link"`
	Caption string `json:"caption,omitempty"`
}

type whatsappDocumentMessage struct {
	Link     string `json:"link"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

type whatsappTemplateMessage struct {
	Name       string                      `json:"name"`
	Language   whatsappLanguage            `json:"language"`
	Components []whatsappTemplateComponent `json:"components,omitempty"`
}

type whatsappLanguage struct {
	Code string `json:"code"`
}

type whatsappTemplateComponent struct {
	Type       string                      `json:"type"`
	Parameters []whatsappTemplateParameter `json:"parameters,omitempty"`
}

type whatsappTemplateParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type whatsappSendResponse struct {
	MessagingProduct string                    `json:"messaging_product"`
	Contacts         []whatsappContact         `json:"contacts"`
	Messages         []whatsappMessageResponse `json:"messages"`
}

type whatsappContact struct {
	Input string `json:"input"`
	WaID  string `json:"wa_id"`
}

type whatsappMessageResponse struct {
	ID string `json:"id"`
}

type whatsappErrorResponse struct {
	Error whatsappError `json:"error"`
}

type whatsappError struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode"`
	FbtraceID    string `json:"fbtrace_id"`
}

// ========== Webhook Structures ==========

// WebhookPayload is the body of a webhook POST
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Value WebhookValue `json:"value"`
	Field string       `json:"field"`
}

type WebhookValue struct {
	MessagingProduct string            `json:"messaging_product"`
	Metadata         WebhookMetadata   `json:"metadata"`
	Contacts         []WebhookContact  `json:"contacts,omitempty"`
	Messages         []IncomingMessage `json:"messages,omitempty"`
	Statuses         []StatusUpdate    `json:"statuses,omitempty"`
}

type WebhookMetadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

type WebhookContact struct {
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
	WaID string `json:"wa_id"`
}

// IncomingMessage is one inbound message. Only text bodies are read.
type IncomingMessage struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *struct {
		Body string `json:"body"`
	} `json:"text,omitempty"`
}

// StatusUpdate reports the delivery state of a message we sent
type StatusUpdate struct {
	ID          string        `json:"id"`
	Status      string        `json:"status"`
	Timestamp   string        `json:"timestamp"`
	RecipientID string        `json:"recipient_id"`
	Errors      []StatusError `json:"errors,omitempty"`
}

type StatusError struct {
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
}
