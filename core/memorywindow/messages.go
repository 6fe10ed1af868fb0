package memorywindow

import "github.com/echocore/cogkernel/domain"

// OpenWindowMsg asks the actor to open a new window.
type OpenWindowMsg struct {
	Request OpenWindowRequest
}

// OpenWindowReply carries the opened window or an error.
type OpenWindowReply struct {
	Window domain.Window
	Err    error
}

// CloseWindowMsg asks the actor to close a window.
type CloseWindowMsg struct {
	ID domain.WindowId
}

// CloseWindowReply acknowledges closure or carries WindowNotFoundError.
type CloseWindowReply struct {
	Err error
}

// ListActiveWindowsMsg asks for every open window.
type ListActiveWindowsMsg struct{}

// ListActiveWindowsReply carries every open window and MAX_WINDOWS.
type ListActiveWindowsReply struct {
	Windows    []domain.Window
	MaxWindows int
}

// ActiveWindowCountMsg asks how many windows are open.
type ActiveWindowCountMsg struct{}

// ActiveWindowCountReply carries the open window count.
type ActiveWindowCountReply struct {
	Count int
}

// StoreMsg asks the actor to deposit Content.
type StoreMsg struct {
	Request StoreRequest
}

// StoreReply carries the target window id or an error.
type StoreReply struct {
	WindowID domain.WindowId
	Err      error
}

// UpdateWindowSalienceMsg asks the actor to replace a window's salience.
type UpdateWindowSalienceMsg struct {
	ID    domain.WindowId
	Score domain.SalienceScore
}

// UpdateWindowSalienceReply acknowledges the update or carries WindowNotFoundError.
type UpdateWindowSalienceReply struct {
	Err error
}

// RecallMsg asks the actor to score open windows against a query.
type RecallMsg struct {
	Query string
}

// RecallReply carries the ranked matches or an error.
type RecallReply struct {
	Matches []RecallMatch
	Err     error
}
