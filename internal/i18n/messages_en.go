package i18n

var messagesEN = map[string]string{
	SplashTitle:   "Taskdeck",
	HomeTitle:     "Tasks",
	HomeLoading:   "Loading...",
	HomeEmpty:     "No tasks yet. Press a to add one.",
	TaskCreate:    "Create Task",
	TaskRemove:    "Remove",
	TaskSubmit:    "Submit",
	TaskCreated:   "Created %s",
	TaskLow:       "Low",
	TaskMedium:    "Medium",
	TaskHigh:      "High",
	RemainingNone: "No deadline",
	RemainingLate: "Overdue",
	RemainingDays: "%dd %dh left",
	RemainingHrs:  "%dh left",
	RemainingMins: "%dm left",
	DateLayout:    "Mon Jan 02 2006",
	ErrFetch:      "Failed to fetch tasks from storage",
	ErrSave:       "Failed to save task to storage",
	ErrDelete:     "Failed to delete task from storage",
	HelpCreate:    "create",
	HelpExpand:    "expand/submit",
	HelpCollapse:  "collapse",
	HelpCheck:     "check",
	HelpRemove:    "remove",
	HelpNavigate:  "navigate",
	HelpQuit:      "quit",
	HelpToggle:    "help",
	HelpTheme:     "theme",
	StatusTheme:   "Theme: %s",
}
