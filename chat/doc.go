// Package chat wires the IRC client to the command router. It owns nothing
// but transport: connecting, joining the configured channel, handing incoming
// messages to the router, and sending the reply lines back. Command semantics
// live in package command.
package chat
