// Package ledcmd parses LED commands received by L0 firmware over UART.
package ledcmd

// A command is a single ASCII buffer of the form
//
//	"esp " <led> " " <state> [trailing bytes]
//
// where <led> is one of "led1".."led4" and <state> is "on" or "off".
//
// Only the "esp " prefix and the separator are anchored. The LED and state
// keywords are located anywhere inside the remaining bytes, so "esp xled2
// offz" is accepted as led2/off and "esp led1 onnnn" as led1/on. When more
// than one keyword occurs, the table order decides, not the position.
//
// Parsing never allocates, never retains the input and never mutates it.
// A rejected buffer is reported with Command.Success == false only; which
// stage rejected it is not exposed.
//
// Producer: ESP module
// Consumer: L0 firmware
