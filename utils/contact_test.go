package utils

import "testing"

func TestDigitsOnly(t *testing.T) {
	if got := DigitsOnly("(19) 99876-5432"); got != "19998765432" {
		t.Errorf("expected 19998765432, got %s", got)
	}
}

func TestWhatsAppLinkAddsCountryCode(t *testing.T) {
	got := WhatsAppLink("(19) 3422-1000", "")
	if got != "https://wa.me/551934221000" {
		t.Errorf("unexpected link: %s", got)
	}
}

func TestWhatsAppLinkKeepsInternationalNumber(t *testing.T) {
	got := WhatsAppLink("+55 19 99876-5432", "")
	if got != "https://wa.me/5519998765432" {
		t.Errorf("unexpected link: %s", got)
	}
}

func TestWhatsAppLinkEncodesMessage(t *testing.T) {
	got := WhatsAppLink("19998765432", "Olá, vi no Guia")
	want := "https://wa.me/5519998765432?text=Ol%C3%A1%2C+vi+no+Guia"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
