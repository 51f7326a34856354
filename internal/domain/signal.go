package domain

// Trigger names a semantic event that may show a trust signal.
type Trigger string

const (
	TriggerSessionStart     Trigger = "session-start"
	TriggerPauseActivated   Trigger = "pause-activated"
	TriggerResumeActivated  Trigger = "resume-activated"
	TriggerSessionSaved     Trigger = "session-saved"
	TriggerHinglishDetected Trigger = "hinglish-detected"
)

// TrustSignal is a short-lived notification about a privacy or
// connection related event.
type TrustSignal struct {
	ID       string  `yaml:"id"`
	Trigger  Trigger `yaml:"trigger"`
	Message  string  `yaml:"message"`
	Icon     string  `yaml:"icon"`
	Category string  `yaml:"type"` // "info" or "success"
}
