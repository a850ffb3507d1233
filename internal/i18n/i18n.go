// Package i18n provides internationalization support for the print quote service.
// It handles translation of API error messages and of the form status messages.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found, and to the key itself
// when no locale knows it.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// Translatef translates key and formats the result with args.
func (t *Translator) Translatef(key, locale string, args ...any) string {
	return fmt.Sprintf(t.Translate(key, locale), args...)
}

// Supported reports whether locale has a message table.
func (t *Translator) Supported(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	return ParseLocale(c.GetHeader(AcceptLanguageHeader))
}

// ParseLocale reduces an Accept-Language style value (e.g. "pt-BR,pt;q=0.9") to a supported base locale.
func ParseLocale(acceptLang string) string {
	if acceptLang == "" {
		return DefaultLocale
	}

	parts := strings.Split(acceptLang, ",")
	lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
	if idx := strings.IndexAny(lang, "-_"); idx > 0 {
		lang = lang[:idx]
	}
	lang = strings.ToLower(lang)
	if GetTranslator().Supported(lang) {
		return lang
	}

	return DefaultLocale
}

func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":       "Invalid request",
			"error.invalid_request_body":  "Invalid request body",
			"error.internal_error":        "An unexpected error occurred",
			"error.unauthorized":          "Unauthorized",
			"error.invalid_credentials":   "Invalid email or password",
			"error.api_key_required":      "API key is required",
			"error.invalid_api_key":       "Invalid API key",
			"error.not_found":             "Not found",
			"error.quote_not_found":       "Quote not found",
			"error.invalid_status":        "Invalid status",
			"error.rate_limit_exceeded":   "Too many requests, please try again later",
			"error.conflict":              "Conflict",
			"error.invalid_token":         "Invalid or expired token",
			"error.token_required":        "Authentication token is required",
			"error.timeout":               "Request timed out",
			"error.service_unavailable":   "Quote store is unavailable",
			"error.export_failed":         "Failed to export quote",

			"success.quote_created":  "Quote created successfully",
			"success.status_updated": "Status updated successfully",
			"success.quote_deleted":  "Quote deleted successfully",

			"form.submitted":        "Quote generated successfully! Quote ID: %s",
			"form.rejected":         "Error generating quote. Please try again.",
			"form.unreachable":      "Error connecting to server. Please try again.",
			"form.invalid_draft":    "Please check page count, quantity and PMS colour count.",
			"form.exported":         "Quote exported to %s",
			"form.export_failed":    "Error exporting quote. Please try again.",
			"form.submit_in_flight": "A quote is already being generated.",
		},
		"pt": {
			"error.invalid_request":       "Requisição inválida",
			"error.invalid_request_body":  "Corpo da requisição inválido",
			"error.internal_error":        "Ocorreu um erro inesperado",
			"error.unauthorized":          "Não autorizado",
			"error.invalid_credentials":   "E-mail ou senha inválidos",
			"error.api_key_required":      "Chave de API é obrigatória",
			"error.invalid_api_key":       "Chave de API inválida",
			"error.not_found":             "Não encontrado",
			"error.quote_not_found":       "Orçamento não encontrado",
			"error.invalid_status":        "Status inválido",
			"error.rate_limit_exceeded":   "Muitas requisições, tente novamente mais tarde",
			"error.conflict":              "Conflito",
			"error.invalid_token":         "Token inválido ou expirado",
			"error.token_required":        "Token de autenticação é obrigatório",
			"error.timeout":               "Tempo da requisição esgotado",
			"error.service_unavailable":   "Armazenamento de orçamentos indisponível",
			"error.export_failed":         "Falha ao exportar o orçamento",

			"success.quote_created":  "Orçamento criado com sucesso",
			"success.status_updated": "Status atualizado com sucesso",
			"success.quote_deleted":  "Orçamento removido com sucesso",

			"form.submitted":        "Orçamento gerado com sucesso! ID do orçamento: %s",
			"form.rejected":         "Erro ao gerar o orçamento. Tente novamente.",
			"form.unreachable":      "Erro ao conectar ao servidor. Tente novamente.",
			"form.invalid_draft":    "Verifique o número de páginas, a quantidade e o número de cores PMS.",
			"form.exported":         "Orçamento exportado para %s",
			"form.export_failed":    "Erro ao exportar o orçamento. Tente novamente.",
			"form.submit_in_flight": "Um orçamento já está sendo gerado.",
		},
		"nl": {
			"error.invalid_request":       "Ongeldig verzoek",
			"error.invalid_request_body":  "Ongeldige aanvraag body",
			"error.internal_error":        "Er is een onverwachte fout opgetreden",
			"error.unauthorized":          "Niet geautoriseerd",
			"error.invalid_credentials":   "Ongeldig e-mailadres of wachtwoord",
			"error.api_key_required":      "API-sleutel is vereist",
			"error.invalid_api_key":       "Ongeldige API-sleutel",
			"error.not_found":             "Niet gevonden",
			"error.quote_not_found":       "Offerte niet gevonden",
			"error.invalid_status":        "Ongeldige status",
			"error.rate_limit_exceeded":   "Te veel verzoeken, probeer het later opnieuw",
			"error.conflict":              "Conflict",
			"error.invalid_token":         "Ongeldig of verlopen token",
			"error.token_required":        "Authenticatietoken is vereist",
			"error.timeout":               "Time-out van verzoek",
			"error.service_unavailable":   "Offerteopslag is niet beschikbaar",
			"error.export_failed":         "Offerte exporteren mislukt",

			"success.quote_created":  "Offerte succesvol aangemaakt",
			"success.status_updated": "Status succesvol bijgewerkt",
			"success.quote_deleted":  "Offerte succesvol verwijderd",

			"form.submitted":        "Offerte succesvol gegenereerd! Offerte-ID: %s",
			"form.rejected":         "Fout bij het genereren van de offerte. Probeer het opnieuw.",
			"form.unreachable":      "Fout bij het verbinden met de server. Probeer het opnieuw.",
			"form.invalid_draft":    "Controleer het aantal pagina's, de oplage en het aantal PMS-kleuren.",
			"form.exported":         "Offerte geëxporteerd naar %s",
			"form.export_failed":    "Fout bij het exporteren van de offerte. Probeer het opnieuw.",
			"form.submit_in_flight": "Er wordt al een offerte gegenereerd.",
		},
	}
}
