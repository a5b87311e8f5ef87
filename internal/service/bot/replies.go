package bot

import "fmt"

var jokes = []string{
	"—¿Me da un café? —Se le cayó. —¿Otro? —Se le cayó.",
	"Yo no ronco… sueño que soy una moto. 🏍️💤",
	"—Doctor, veo borroso. —¿Quién habla? —Soy la impresora.",
}

const menuText = `Soy tu bot de prueba 🤖

Comandos disponibles:
• hola — saludo + menú
• menu / ayuda — ver este menú
• nombre <tu nombre> — guardo tu nombre
• mi nombre? — te digo el nombre guardado
• hora — fecha y hora locales
• eco <texto> — repito lo que envíes
• dado [lados] — tiro un dado (por defecto 6)
• calc <expresión> — suma/resta/multiplica/divide^potencias
• chiste — te cuento uno

También entiendo:
• Imágenes/audio/documentos: te confirmo que los recibí
• Ubicación: te digo lat/lon que enviaste`

// helpText greets by name when one is saved.
func helpText(name string) string {
	greeting := "¡Hola!"
	if name != "" {
		greeting = fmt.Sprintf("¡Hola %s!", name)
	}
	return greeting + " " + menuText
}
