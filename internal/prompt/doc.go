// Package prompt provides the user interfaces the question walker asks
// answers from: Terminal reads line input and numbered menus from a
// reader, and Headless answers from a preset bag without any I/O.
package prompt
