// Package i18n provides internationalization support for the voice agent webhooks.
// It holds the spoken prompts returned when a tool call cannot be completed.
package i18n

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
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
		messages: defaultMessages,
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
// Falls back to DefaultLocale, then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Translatef translates key and fills its placeholders with args.
func (t *Translator) Translatef(key, locale string, args ...any) string {
	msg := t.Translate(key, locale)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// supportedLocales is ordered to match the matcher below; the first entry is the fallback.
var (
	supportedLocales = []string{DefaultLocale, "es"}
	localeMatcher    = language.NewMatcher([]language.Tag{language.English, language.Spanish})
)

// GetLocale picks the best supported locale for the Accept-Language header, so
// "es-MX,es;q=0.9" reads as Spanish. Anything unmatched falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return supportedLocales[idx]
}

var defaultMessages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:       "Invalid request",
		ErrKeyInvalidRequestBody:   "Invalid request body",
		ErrKeyInternalError:        "An unexpected error occurred",
		ErrKeyUnauthorized:         "Unauthorized",
		ErrKeyAPIKeyRequired:       "API key is required",
		ErrKeyInvalidAPIKey:        "Invalid API key",
		ErrKeyNotFound:             "Not found",
		ErrKeyRateLimitExceeded:    "Too many requests, please try again later",
		ErrKeyConflict:             "Conflict",
		ErrKeyInvalidToken:         "Invalid or expired token",
		ErrKeyTokenRequired:        "Authentication token is required",
		ErrKeyTimeout:              "Request timed out",
		ErrKeyMaterialNotFound:     "I don't know that material. We carry crusher run, #57 stone, #304 gravel, riprap and driveway gravel.",
		ErrKeyInvalidTruckCapacity: "Truck capacity must be greater than zero",

		PromptZipRequired:               "I need your delivery ZIP code to check if we service your area. What ZIP code would you like me to check?",
		PromptZipInvalid:                "\"%s\" doesn't look like a valid ZIP code. Can you give me the 5-digit ZIP code for your delivery address?",
		PromptProjectTypeRequired:       "What kind of project are you working on? Is it a driveway, walkway, patio, drainage project, or landscaping?",
		PromptRecommendationZipRequired: "I need to know your ZIP code first to see what materials are available in your area. What's your delivery ZIP code?",
		PromptDimensionsRequired:        "I need the dimensions to calculate materials. What's the length, width, and depth you're looking for?",
		PromptMaterialsRequired:         "I need to know which materials to calculate. Let me recommend some based on your project first.",
		PromptDimensionsUnreadable:      "I couldn't understand those measurements. Can you give me the length and width in feet, and the depth in inches?",
		PromptDimensionsNotPositive:     "The measurements need to be greater than zero. What are the actual dimensions of your project area?",
		PromptNoValidMaterials:          "I couldn't find the materials you specified. Let me help you pick the right ones for your project.",
		PromptDeliveryZipRequired:       "I need your delivery ZIP code to calculate the delivery fee.",
		PromptWeightRequired:            "I need to know the total weight to calculate delivery. Let me calculate your material quantities first.",
		PromptWeightUnreadable:          "I couldn't understand the weight. Let me recalculate your material quantities.",
		PromptSessionRequired:           "There was a technical issue. Let me start over - what materials did you want to order?",
		PromptCartItemsRequired:         "I don't have any items to add to your cart. Let me help you calculate what you need first.",
		PromptCartIDRequired:            "I don't have your cart information. Let me add your items to the cart first.",
		PromptNameRequired:              "I'll need your name for the order. What name should I put this under?",
		PromptPhoneRequired:             "I'll need a phone number so our driver can reach you before delivery. What's the best number?",
		PromptOrderLookupRequired:       "I can look up your order, but I'll need either your order number, phone number, or email address. Which one can you give me?",
		PromptOrderNotFound:             "I couldn't find an order with number %s. Can you double-check the order number? It should have been in your confirmation email.",
		PromptOrdersNotFound:            "I couldn't find any orders with that %s. Do you have your order number handy? It would have been in your confirmation email.",

		TroubleServiceArea:     "I'm having trouble checking our service areas right now. Can you give me a moment and try again, or I can give you our phone number to check directly?",
		TroubleRecommendations: "I'm having trouble getting recommendations right now. Let me try again - what kind of project are you working on?",
		TroubleCalculation:     "I'm having trouble calculating the quantities right now. Can you give me the dimensions again?",
		TroubleDelivery:        "I'm having trouble calculating delivery costs right now. The exact fee will be shown at checkout, or I can give you our phone number to get a quote.",
		TroubleCart:            "I had trouble adding items to your cart. Let me try again - what materials did you want to order?",
		TroubleCheckout:        "I had trouble setting up checkout. Let me give you the checkout link and you can enter your information there. Or I can give you our phone number to complete the order.",
		TroubleOrderStatus:     "I'm having trouble looking up your order right now. Can you call us at our main number and someone can help you with your order status?",
	},
	"es": {
		ErrKeyInvalidRequest:       "Solicitud inválida",
		ErrKeyInvalidRequestBody:   "Cuerpo de la solicitud inválido",
		ErrKeyInternalError:        "Ocurrió un error inesperado",
		ErrKeyUnauthorized:         "No autorizado",
		ErrKeyAPIKeyRequired:       "Se requiere una clave de API",
		ErrKeyInvalidAPIKey:        "Clave de API inválida",
		ErrKeyNotFound:             "No encontrado",
		ErrKeyRateLimitExceeded:    "Demasiadas solicitudes, intente más tarde",
		ErrKeyConflict:             "Conflicto",
		ErrKeyInvalidToken:         "Token inválido o vencido",
		ErrKeyTokenRequired:        "Se requiere un token de autenticación",
		ErrKeyTimeout:              "La solicitud tardó demasiado",
		ErrKeyMaterialNotFound:     "No conozco ese material. Tenemos crusher run, piedra #57, grava #304, riprap y grava para entradas.",
		ErrKeyInvalidTruckCapacity: "La capacidad del camión debe ser mayor que cero",

		PromptZipRequired:               "Necesito el código postal de entrega para ver si llegamos a su zona. ¿Qué código postal reviso?",
		PromptZipInvalid:                "\"%s\" no parece un código postal válido. ¿Me da el código postal de 5 dígitos de la dirección de entrega?",
		PromptProjectTypeRequired:       "¿En qué tipo de proyecto está trabajando? ¿Una entrada de autos, un camino, un patio, drenaje o jardinería?",
		PromptRecommendationZipRequired: "Primero necesito su código postal para ver qué materiales hay en su zona. ¿Cuál es su código postal de entrega?",
		PromptDimensionsRequired:        "Necesito las medidas para calcular los materiales. ¿Cuál es el largo, el ancho y la profundidad?",
		PromptMaterialsRequired:         "Necesito saber qué materiales calcular. Déjeme recomendarle algunos según su proyecto.",
		PromptDimensionsUnreadable:      "No entendí esas medidas. ¿Me da el largo y el ancho en pies, y la profundidad en pulgadas?",
		PromptDimensionsNotPositive:     "Las medidas deben ser mayores que cero. ¿Cuáles son las medidas reales del área?",
		PromptNoValidMaterials:          "No encontré los materiales que indicó. Déjeme ayudarle a elegir los adecuados para su proyecto.",
		PromptDeliveryZipRequired:       "Necesito su código postal para calcular el costo de entrega.",
		PromptWeightRequired:            "Necesito el peso total para calcular la entrega. Primero calculemos las cantidades de material.",
		PromptWeightUnreadable:          "No entendí el peso. Volvamos a calcular las cantidades de material.",
		PromptSessionRequired:           "Hubo un problema técnico. Empecemos de nuevo: ¿qué materiales quería pedir?",
		PromptCartItemsRequired:         "No tengo artículos para agregar a su carrito. Primero calculemos lo que necesita.",
		PromptCartIDRequired:            "No tengo la información de su carrito. Primero agreguemos sus artículos.",
		PromptNameRequired:              "Necesito su nombre para el pedido. ¿A nombre de quién lo pongo?",
		PromptPhoneRequired:             "Necesito un número de teléfono para que el conductor le llame antes de la entrega. ¿Cuál es el mejor número?",
		PromptOrderLookupRequired:       "Puedo buscar su pedido, pero necesito el número de pedido, su teléfono o su correo. ¿Cuál me puede dar?",
		PromptOrderNotFound:             "No encontré un pedido con el número %s. ¿Puede revisar el número? Debería estar en su correo de confirmación.",
		PromptOrdersNotFound:            "No encontré pedidos con ese %s. ¿Tiene a mano su número de pedido? Estaría en su correo de confirmación.",

		TroubleServiceArea:     "Tengo problemas para revisar nuestras zonas de servicio. ¿Lo intentamos de nuevo en un momento, o le doy nuestro teléfono?",
		TroubleRecommendations: "Tengo problemas para obtener recomendaciones. Intentemos de nuevo: ¿en qué proyecto está trabajando?",
		TroubleCalculation:     "Tengo problemas para calcular las cantidades. ¿Me da las medidas otra vez?",
		TroubleDelivery:        "Tengo problemas para calcular la entrega. El costo exacto aparecerá al pagar, o le doy nuestro teléfono para una cotización.",
		TroubleCart:            "Tuve un problema al agregar artículos a su carrito. Intentemos de nuevo: ¿qué materiales quería pedir?",
		TroubleCheckout:        "Tuve un problema al preparar el pago. Le doy el enlace para que complete sus datos, o nuestro teléfono para terminar el pedido.",
		TroubleOrderStatus:     "Tengo problemas para buscar su pedido. ¿Puede llamarnos a nuestro número principal?",
	},
}
