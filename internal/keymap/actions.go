// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionHelp        Action = "help"
	ActionToggleTheme Action = "toggle_theme"

	// Playback actions
	ActionPlayPause           Action = "play_pause"
	ActionSeekForward         Action = "seek_forward"
	ActionSeekBack            Action = "seek_back"
	ActionSeekForwardLong     Action = "seek_forward_long"
	ActionSeekBackLong        Action = "seek_back_long"
	ActionTogglePlayerDisplay Action = "toggle_player_display"
	ActionToggleMute          Action = "toggle_mute"
	ActionVolumeUp            Action = "volume_up"
	ActionVolumeDown          Action = "volume_down"

	// Navigation actions
	ActionNextSection Action = "next_section"
	ActionPrevSection Action = "prev_section"
	ActionScrollUp    Action = "scroll_up"
	ActionScrollDown  Action = "scroll_down"
	ActionPageUp      Action = "page_up"
	ActionPageDown    Action = "page_down"
	ActionJumpStart   Action = "jump_start"
	ActionJumpEnd     Action = "jump_end"

	// Projects section
	ActionCycleFilter Action = "cycle_filter" // f
	ActionClearFilter Action = "clear_filter" // esc
)
