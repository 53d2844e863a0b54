// Package assets embeds static files shipped with the bot.
package assets

import _ "embed"

//go:embed birthday_card.png
var birthdayCard []byte

// BirthdayCard returns the image attached to generated greetings.
func BirthdayCard() []byte {
	return birthdayCard
}
