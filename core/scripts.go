package show

import "fmt"

// The rotating cast of speakers. Each participant's turn belongs to the
// next King in order; the cursor never wraps mid-show.
var kings = []string{"MELCHOR", "GASPAR", "BALTASAR"}

// Fixed script lines, synthesized once at session creation.
const (
	ScriptIntro     = "¡Hola! Somos los Reyes Magos. Hemos viajado desde muy lejos siguiendo la estrella."
	ScriptListening = "Te escuchamos con atención..."
	ScriptGift      = "¡Mira lo que ha aparecido! Es un regalo mágico."
	ScriptClosing   = "Ha sido maravilloso visitaros. ¡Sed muy buenos! ¡Hasta el año que viene!"

	// genericGiftLabel is spoken when the gift list has no entry for
	// the current participant.
	genericGiftLabel = "un regalo"
)

func welcomeLine(name string) string {
	return fmt.Sprintf("¡%s! La estrella nos habló de ti...", name)
}

func giftLine(label string) string {
	return fmt.Sprintf("Mira... %s para ti.", label)
}

// questionWindowSeconds is the suggested recording budget sent to the
// input surface, derived from the purchased pack.
func questionWindowSeconds(pack string) int {
	if pack == PackBasic {
		return 12
	}
	return 15
}

func defaultQuestionLimit(pack string) int {
	if pack == PackBasic {
		return 1
	}
	return 2
}
