package ui

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Dim     = color.New(color.FgHiBlack)

	// Emojis with colors
	MateEmoji    = "🧉"
	SuccessEmoji = Success.Sprint("✅")
	ErrorEmoji   = Error.Sprint("❌")
	WarningEmoji = Warning.Sprint("⚠️")
	InfoEmoji    = Info.Sprint("ℹ️")
	SpinEmoji    = Info.Sprint("🌀")
)

var activeSpinner *SmartSpinner

// SmartSpinner is a spinner with enhanced capabilities
type SmartSpinner struct {
	spinner *spinner.Spinner
}

// NewSmartSpinner creates a new spinner with an initial message
func NewSmartSpinner(initialMessage string) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+MateEmoji+" "+initialMessage),
	)
	return &SmartSpinner{spinner: s}
}

// Start starts the spinner and registers it as the globally active spinner.
func (s *SmartSpinner) Start() {
	activeSpinner = s
	s.spinner.Start()
}

// Stop stops the spinner and clears the active spinner record.
func (s *SmartSpinner) Stop() {
	s.spinner.Stop()
	if activeSpinner == s {
		activeSpinner = nil
	}
}

// UpdateMessage replaces the spinner suffix with a new status message.
func (s *SmartSpinner) UpdateMessage(message string) {
	s.spinner.Suffix = " " + SpinEmoji + " " + message
}

// StopActiveSpinner stops the currently active spinner in the terminal session.
func StopActiveSpinner() {
	if activeSpinner != nil {
		activeSpinner.Stop()
	}
}

// UpdateActiveSpinner swaps the message of the running spinner, if any.
// Returns false when no spinner is active and the caller should print.
func UpdateActiveSpinner(message string) bool {
	if activeSpinner == nil {
		return false
	}
	activeSpinner.UpdateMessage(message)
	return true
}

// PrintSuccess prints a success line, stopping any active spinner first so
// the line is not clobbered by the animation.
func PrintSuccess(message string) {
	StopActiveSpinner()
	fmt.Printf("%s %s\n", SuccessEmoji, message)
}

// PrintError prints an error line.
func PrintError(message string) {
	StopActiveSpinner()
	fmt.Printf("%s %s\n", ErrorEmoji, message)
}

// PrintWarning prints a warning line.
func PrintWarning(message string) {
	StopActiveSpinner()
	fmt.Printf("%s %s\n", WarningEmoji, message)
}

// PrintInfo prints an informational line.
func PrintInfo(message string) {
	StopActiveSpinner()
	fmt.Printf("%s %s\n", InfoEmoji, message)
}
