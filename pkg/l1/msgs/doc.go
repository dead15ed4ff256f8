// Package msgs provides L1 protocol support and all message schemas.
package msgs

// L1 protocol is communicated between the LED host (which owns the UART
// link and the LEDs) and its remote clients, over MQTT, websocket or a plain TCP stream.
// Every packet is a Typed envelope carrying a type id, a sequence number
// matching replies to commands, and the protobuf encoded message.
//
// Producer: LED host (replies, events), clients (commands)
// Consumer: clients (replies, events), LED host (commands)
