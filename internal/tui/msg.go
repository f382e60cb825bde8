package tui

// MsgDBChanged is sent when the watched database file changed on disk.
type MsgDBChanged struct{}

// MsgStatus shows a line in the status bar.
type MsgStatus struct {
	Msg string
	Err bool
}
