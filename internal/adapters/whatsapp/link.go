package whatsapp

import (
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// LinkBuilder строит deep link wa.me с подставленным текстом
type LinkBuilder struct {
	number string
}

// NewLinkBuilder ожидает номер в международном формате, только цифры
func NewLinkBuilder(number string) *LinkBuilder {
	return &LinkBuilder{number: number}
}

func (b *LinkBuilder) BuildURL(text string) string {
	link := baseURL + b.number
	if text == "" {
		return link
	}
	// wa.me понимает %20, а не "+"
	return link + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
