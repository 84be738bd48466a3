// Package questions holds the built-in questionnaires shipped with qflow.
package questions
