package domain

import (
	"time"

	"github.com/google/uuid"
)

type FormType string

const (
	FormTypeContact  FormType = "contact"
	FormTypeProperty FormType = "property"
	FormTypeAnnounce FormType = "announce"
)

// Lead - заявка с формы обратной связи
type Lead struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	Message      string
	PropertyID   string
	PropertyCode string
	Source       string
	FormType     FormType
	CreatedAt    time.Time
}

// LeadReceipt - то, что получает фронт после отправки формы
type LeadReceipt struct {
	ID          uuid.UUID
	WhatsAppURL string
	// Delivered - список каналов, принявших заявку (postgres, rabbitmq, formspark)
	Delivered []string
}

// WhatsAppText - текст, который подставляется в ссылку wa.me
func (l Lead) WhatsAppText() string {
	text := "Olá! Meu nome é " + l.Name + "."
	switch {
	case l.PropertyCode != "":
		text += " Tenho interesse no imóvel código " + l.PropertyCode + "."
	case l.FormType == FormTypeAnnounce:
		text += " Gostaria de anunciar meu imóvel."
	}
	if l.Message != "" {
		text += " " + l.Message
	}
	return text
}
